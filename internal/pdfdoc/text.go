package pdfdoc

import "strings"

// lineRanges splits the extracted text into [start, end) byte ranges, one
// per line, newlines excluded. Empty lines are skipped.
func lineRanges(text string) [][2]int {
	var ranges [][2]int
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			if i > start {
				ranges = append(ranges, [2]int{start, i})
			}
			start = i + 1
		}
	}
	return ranges
}

// findOccurrences returns the [start, end) ranges of every non-overlapping
// occurrence of needle in text.
func findOccurrences(text, needle string) [][2]int {
	var occs [][2]int
	for from := 0; ; {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			return occs
		}
		start := from + i
		occs = append(occs, [2]int{start, start + len(needle)})
		from = start + len(needle)
	}
}

// splitByLines clips the [start, end) range against the line structure of
// text, producing one sub-range per line the range touches. Newline bytes
// themselves are never included.
func splitByLines(text string, start, end int) [][2]int {
	var segs [][2]int
	segStart := start
	for i := start; i < end && i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if i > segStart {
			segs = append(segs, [2]int{segStart, i})
		}
		segStart = i + 1
	}
	if end > len(text) {
		end = len(text)
	}
	if end > segStart {
		segs = append(segs, [2]int{segStart, end})
	}
	return segs
}
