// Package pattern defines the recognition grammar for Brazilian tax
// identifiers (CPF and CNPJ).
//
// A single case-insensitive expression matches both shapes:
//
//   - CPF: 11 digits, optionally grouped 3-3-3-2 with ".", "-" or space
//     separators (e.g. "123.456.789-09"). Word-boundary anchored so it never
//     fires inside a longer digit run.
//   - CNPJ: 14 digits, optionally grouped 2-3-3-4-2 with an optional "/"
//     before the fourth group and an optional "CNPJ"/"cnpj" prefix with or
//     without a colon (e.g. "CNPJ: 12.345.678/0001-95"). The expression
//     itself is deliberately not boundary-anchored, so it keeps matching when
//     the prefix or surrounding punctuation touches the digits; FindAll and
//     Matches restore digit-run discipline by rejecting candidates that sit
//     inside a longer run of digits.
//
// The compiled pattern is built once at init and is read-only; it is shared
// by every detector in the pipeline. Check digits are intentionally not
// validated: any sequence with the right shape is treated as an identifier.
package pattern

import "regexp"

// cpfExpr matches the 11-digit shape, separated or glued, boundary anchored.
const cpfExpr = `\b(?:\d{3}[.\s-]?\d{3}[.\s-]?\d{3}[.\s-]?\d{2}|\d{11})\b`

// cnpjExpr matches the 14-digit shape with an optional type prefix. No
// boundary anchors: a "\b" after the prefix would reject glued forms such as
// "CNPJ12345678000195", since letter-to-digit is not a word boundary.
const cnpjExpr = `(?:CNPJ\s*:?\s*)?(?:\d{2}[.\s-]?\d{3}[.\s-]?\d{3}[\s/-]?\d{4}[\s-]?\d{2}|\d{14})`

// ID is the combined CPF/CNPJ pattern. Callers that need raw regex search
// (e.g. the native text detector) may use it directly; they inherit the
// unanchored CNPJ behavior described in the package comment.
var ID = regexp.MustCompile(`(?i)(?:` + cpfExpr + `|` + cnpjExpr + `)`)

// Match is one identifier occurrence inside a scanned string. Start and End
// are byte offsets into the input; Text is the matched substring.
type Match struct {
	Start int
	End   int
	Text  string
}

// Matches reports whether s contains at least one CPF or CNPJ occurrence.
// Substring semantics: surrounding text is allowed.
func Matches(s string) bool {
	return len(FindAll(s)) > 0
}

// FindAll enumerates every identifier occurrence in s, left to right.
// Candidates immediately preceded or followed by another digit are dropped,
// so a 15-digit run (or a 16-digit account number) never yields a hit.
func FindAll(s string) []Match {
	locs := ID.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start > 0 && isDigit(s[start-1]) {
			continue
		}
		if end < len(s) && isDigit(s[end]) {
			continue
		}
		matches = append(matches, Match{Start: start, End: end, Text: s[start:end]})
	}
	return matches
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
