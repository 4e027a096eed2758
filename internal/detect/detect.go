package detect

import (
	"image"
	"regexp"

	"github.com/lgpd-tools/tarja/internal/geom"
)

// TextSearcher is the text surface a page must expose for the two text
// detection strategies.
type TextSearcher interface {
	// PlainText returns the page text in reading order.
	PlainText() (string, error)
	// SearchLiteral returns the page-space rectangles of every occurrence
	// of the exact substring, one or more per occurrence when the glyphs
	// are fragmented.
	SearchLiteral(needle string) ([]geom.Rect, error)
}

// PatternSearcher is the optional native pattern-search capability of a
// page. Pages that do not implement it are handled by the fallback and OCR
// strategies alone.
type PatternSearcher interface {
	SearchPattern(re *regexp.Regexp) ([]geom.Rect, error)
}

// Rasterizer is the pixel surface a page must expose for the OCR strategy.
type Rasterizer interface {
	Render(t geom.RasterTransform) (image.Image, error)
}
