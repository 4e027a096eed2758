package detect

import (
	"fmt"

	"github.com/lgpd-tools/tarja/internal/geom"
	"github.com/lgpd-tools/tarja/internal/ocr"
	"github.com/lgpd-tools/tarja/internal/pattern"
)

// OCR rasterizes the page at the given resolution, recognizes text in the
// frame, and maps every fragment containing an identifier back into page
// space through the inverse of the rasterization transform.
//
// Unlike the text strategies, errors propagate: for scanned pages this is
// the only detector that can see anything, and dropping its failures would
// silently leave identifiers in the output.
func OCR(p Rasterizer, eng ocr.Engine, dpi float64) ([]geom.Rect, error) {
	t := geom.NewRasterTransform(dpi)
	frame, err := p.Render(t)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	fragments, err := eng.Recognize(frame)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	var rects []geom.Rect
	for _, f := range fragments {
		if !pattern.Matches(f.Text) {
			continue
		}
		rects = append(rects, t.Invert(geom.Rect{
			X0: float64(f.Box.Min.X),
			Y0: float64(f.Box.Min.Y),
			X1: float64(f.Box.Max.X),
			Y1: float64(f.Box.Max.Y),
		}))
	}
	return rects, nil
}
