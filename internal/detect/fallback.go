package detect

import (
	"strings"

	"github.com/lgpd-tools/tarja/internal/geom"
	"github.com/lgpd-tools/tarja/internal/pattern"
)

// Fallback extracts the page's plain text, enumerates identifier matches in
// memory, and re-searches the page literally for each matched substring.
//
// A single logical identifier may be rendered as several text fragments the
// native search cannot join; the concatenated plain text still contains it,
// and a literal search for the already-known substring recovers the
// rectangle of each fragment.
//
// Extraction or per-substring search failures are skipped silently; the
// worst outcome is an empty result.
func Fallback(p TextSearcher) []geom.Rect {
	text, err := p.PlainText()
	if err != nil || text == "" {
		return nil
	}
	var rects []geom.Rect
	seen := make(map[string]struct{})
	for _, m := range pattern.FindAll(text) {
		needle := strings.TrimSpace(m.Text)
		if needle == "" {
			continue
		}
		if _, dup := seen[needle]; dup {
			continue
		}
		seen[needle] = struct{}{}
		found, err := p.SearchLiteral(needle)
		if err != nil {
			continue
		}
		rects = append(rects, found...)
	}
	return rects
}
