// Package geom models the two coordinate systems the pipeline reconciles:
// page space (points, 72 per inch, origin at the top-left of the page, y
// growing downward) and raster space (pixels of a page rendered at a chosen
// DPI). The two are related by a pure scale transform and its inverse.
package geom

import "math"

// Rect is a detection rectangle in page space: the region of a page to
// redact. It has no identity beyond its coordinates; two rectangles denote
// the same region when all four coordinates agree after rounding to one
// decimal place.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Key returns the rounded-coordinate identity used for deduplication.
func (r Rect) Key() [4]float64 {
	return [4]float64{round1(r.X0), round1(r.Y0), round1(r.X1), round1(r.Y1)}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Dedupe merges near-identical rectangles: the first occurrence of each
// rounded key survives, later duplicates are dropped, and the original order
// is preserved. The input is not modified.
func Dedupe(rects []Rect) []Rect {
	if len(rects) == 0 {
		return nil
	}
	seen := make(map[[4]float64]struct{}, len(rects))
	out := make([]Rect, 0, len(rects))
	for _, r := range rects {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// RasterTransform is the scale between page space and the pixel grid of a
// page rendered at some DPI. It is carried alongside OCR results so the
// mapping back to page space is explicit rather than recomputed ad hoc.
type RasterTransform struct {
	// Zoom is the scale factor dpi/72: pixels per page-space point.
	Zoom float64
}

// NewRasterTransform builds the transform for a rendering resolution in
// dots per inch. A non-positive dpi yields the identity (zoom 1).
func NewRasterTransform(dpi float64) RasterTransform {
	if dpi <= 0 {
		return RasterTransform{Zoom: 1}
	}
	return RasterTransform{Zoom: dpi / 72}
}

// DPI returns the rendering resolution the transform was built for.
func (t RasterTransform) DPI() float64 { return t.Zoom * 72 }

// Apply maps a page-space rectangle into raster space.
func (t RasterTransform) Apply(r Rect) Rect {
	return Rect{r.X0 * t.Zoom, r.Y0 * t.Zoom, r.X1 * t.Zoom, r.Y1 * t.Zoom}
}

// Invert maps a raster-space rectangle back into page space.
func (t RasterTransform) Invert(r Rect) Rect {
	return Rect{r.X0 / t.Zoom, r.Y0 / t.Zoom, r.X1 / t.Zoom, r.Y1 / t.Zoom}
}
