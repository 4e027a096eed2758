package pdfdoc

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/render"

	"github.com/lgpd-tools/tarja/internal/geom"
)

// Page is one rendering surface of the document. It is read/search-only
// until ApplyRedactions flattens it.
type Page struct {
	doc   *Document
	index int
	page  *model.PdfPage

	// media box geometry, for normalizing unipdf coordinates
	llx, ury      float64
	width, height float64

	// text extraction cache, filled on first use
	extracted  bool
	extractErr error
	text       string
	marks      *extractor.TextMarkArray

	pending   []geom.Rect
	flattened image.Image
}

// Size returns the page dimensions in points.
func (p *Page) Size() (w, h float64) { return p.width, p.height }

func (p *Page) extract() error {
	if p.extracted {
		return p.extractErr
	}
	p.extracted = true
	ex, err := extractor.New(p.page)
	if err != nil {
		p.extractErr = fmt.Errorf("text extractor for page %d: %w", p.index+1, err)
		return p.extractErr
	}
	pageText, _, _, err := ex.ExtractPageText()
	if err != nil {
		p.extractErr = fmt.Errorf("extract text of page %d: %w", p.index+1, err)
		return p.extractErr
	}
	p.text = pageText.Text()
	p.marks = pageText.Marks()
	return nil
}

// PlainText returns the page text in reading order.
func (p *Page) PlainText() (string, error) {
	if err := p.extract(); err != nil {
		return "", err
	}
	return p.text, nil
}

// SearchPattern is the container's native pattern search: the regex is
// applied to each text line independently, so a match can never join glyphs
// across line or fragment boundaries (the limitation the fallback literal
// detector exists to compensate). One rectangle is returned per match, the
// union of the matched glyph boxes in page space.
func (p *Page) SearchPattern(re *regexp.Regexp) ([]geom.Rect, error) {
	if err := p.extract(); err != nil {
		return nil, err
	}
	var rects []geom.Rect
	for _, line := range lineRanges(p.text) {
		for _, loc := range re.FindAllStringIndex(p.text[line[0]:line[1]], -1) {
			r, ok := p.rangeRect(line[0]+loc[0], line[0]+loc[1])
			if ok {
				rects = append(rects, r)
			}
		}
	}
	return rects, nil
}

// SearchLiteral locates every occurrence of the exact substring needle in
// the page text, including occurrences whose glyphs are fragmented across
// rendering spans. An occurrence crossing a line break yields one rectangle
// per line touched.
func (p *Page) SearchLiteral(needle string) ([]geom.Rect, error) {
	if needle == "" {
		return nil, nil
	}
	if err := p.extract(); err != nil {
		return nil, err
	}
	var rects []geom.Rect
	for _, occ := range findOccurrences(p.text, needle) {
		for _, seg := range splitByLines(p.text, occ[0], occ[1]) {
			r, ok := p.rangeRect(seg[0], seg[1])
			if ok {
				rects = append(rects, r)
			}
		}
	}
	return rects, nil
}

// rangeRect maps a byte range of the extracted text to the union of the
// underlying glyph boxes, normalized to top-left page space. ok is false
// when no glyph with a real box falls inside the range (e.g. only synthetic
// whitespace marks).
func (p *Page) rangeRect(start, end int) (geom.Rect, bool) {
	if p.marks == nil || start >= end {
		return geom.Rect{}, false
	}
	span, err := p.marks.RangeOffset(start, end)
	if err != nil {
		return geom.Rect{}, false
	}
	first := true
	var llx, lly, urx, ury float64
	for _, mark := range span.Elements() {
		if mark.Meta || strings.TrimSpace(mark.Text) == "" {
			continue
		}
		b := mark.BBox
		if b.Urx <= b.Llx || b.Ury <= b.Lly {
			continue
		}
		if first {
			llx, lly, urx, ury = b.Llx, b.Lly, b.Urx, b.Ury
			first = false
			continue
		}
		llx = math.Min(llx, b.Llx)
		lly = math.Min(lly, b.Lly)
		urx = math.Max(urx, b.Urx)
		ury = math.Max(ury, b.Ury)
	}
	if first {
		return geom.Rect{}, false
	}
	return geom.Rect{
		X0: llx - p.llx,
		Y0: p.ury - ury,
		X1: urx - p.llx,
		Y1: p.ury - lly,
	}, true
}

// Render rasterizes the page through the given transform into a pixel grid.
// The frame is ephemeral: callers consume it and let it go before the next
// page.
func (p *Page) Render(t geom.RasterTransform) (image.Image, error) {
	device := render.NewImageDevice()
	device.OutputWidth = int(math.Round(p.width * t.Zoom))
	img, err := device.Render(p.page)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", p.index+1, err)
	}
	return img, nil
}

// AddRedaction registers a page-space rectangle for the next commit. The
// page is not mutated until ApplyRedactions.
func (p *Page) AddRedaction(r geom.Rect) {
	p.pending = append(p.pending, r)
}

// ApplyRedactions commits the registered rectangles: the page is flattened
// to a raster at the document's commit resolution with an opaque black box
// stamped over every rectangle, and the flattened image replaces the page
// content in the saved output. Calling with no registered rectangles is a
// no-op and leaves the page untouched.
func (p *Page) ApplyRedactions() error {
	if len(p.pending) == 0 {
		return nil
	}
	t := geom.NewRasterTransform(p.doc.commitDPI)
	frame, err := p.Render(t)
	if err != nil {
		return fmt.Errorf("flatten page %d: %w", p.index+1, err)
	}
	out := imaging.Clone(frame)
	bounds := out.Bounds()
	for _, r := range p.pending {
		px := t.Apply(r)
		x0 := int(math.Floor(px.X0))
		y0 := int(math.Floor(px.Y0))
		x1 := int(math.Ceil(px.X1))
		y1 := int(math.Ceil(px.Y1))
		box := image.Rect(x0, y0, x1, y1).Intersect(bounds)
		if box.Empty() {
			continue
		}
		bar := imaging.New(box.Dx(), box.Dy(), color.Black)
		out = imaging.Paste(out, bar, box.Min)
	}
	p.flattened = out
	p.pending = nil
	return nil
}
