package detect

import (
	"github.com/lgpd-tools/tarja/internal/geom"
	"github.com/lgpd-tools/tarja/internal/pattern"
)

// Native asks the page's own pattern-search capability for identifier
// occurrences and returns their page-space rectangles.
//
// Failures here are always recoverable: a page without the capability, or a
// search error, yields an empty result and never blocks the other
// strategies.
func Native(p TextSearcher) []geom.Rect {
	ps, ok := p.(PatternSearcher)
	if !ok {
		return nil
	}
	rects, err := ps.SearchPattern(pattern.ID)
	if err != nil {
		return nil
	}
	return rects
}
