package detect

import (
	"errors"
	"image"
	"math"
	"regexp"
	"testing"

	"github.com/lgpd-tools/tarja/internal/geom"
	"github.com/lgpd-tools/tarja/internal/ocr"
)

// fakeTextPage implements TextSearcher only (no native pattern search).
type fakeTextPage struct {
	text          string
	textErr       error
	literal      map[string][]geom.Rect
	literalErr   error
	literalCalls []string
}

func (p *fakeTextPage) PlainText() (string, error) {
	return p.text, p.textErr
}

func (p *fakeTextPage) SearchLiteral(needle string) ([]geom.Rect, error) {
	p.literalCalls = append(p.literalCalls, needle)
	if p.literalErr != nil {
		return nil, p.literalErr
	}
	return p.literal[needle], nil
}

// fakeSearchPage adds the native pattern-search capability.
type fakeSearchPage struct {
	fakeTextPage
	patternRects []geom.Rect
	patternErr   error
}

func (p *fakeSearchPage) SearchPattern(re *regexp.Regexp) ([]geom.Rect, error) {
	if p.patternErr != nil {
		return nil, p.patternErr
	}
	return p.patternRects, nil
}

// fakeRaster implements Rasterizer.
type fakeRaster struct {
	img image.Image
	err error
}

func (r *fakeRaster) Render(t geom.RasterTransform) (image.Image, error) {
	return r.img, r.err
}

// fakeEngine implements ocr.Engine.
type fakeEngine struct {
	fragments []ocr.Fragment
	err       error
	calls     int
}

func (e *fakeEngine) Recognize(img image.Image) ([]ocr.Fragment, error) {
	e.calls++
	return e.fragments, e.err
}

func (e *fakeEngine) Close() error { return nil }

func rectsNear(a, b geom.Rect, tol float64) bool {
	return math.Abs(a.X0-b.X0) <= tol && math.Abs(a.Y0-b.Y0) <= tol &&
		math.Abs(a.X1-b.X1) <= tol && math.Abs(a.Y1-b.Y1) <= tol
}

func TestNativeFindsSearchableIdentifier(t *testing.T) {
	want := geom.Rect{72, 100, 180, 112}
	page := &fakeSearchPage{patternRects: []geom.Rect{want}}

	got := Native(page)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Native = %+v, want [%+v]", got, want)
	}
}

func TestNativeWithoutCapabilityIsEmpty(t *testing.T) {
	page := &fakeTextPage{text: "CPF: 123.456.789-09"}
	if got := Native(page); got != nil {
		t.Fatalf("Native on page without pattern search = %+v, want nil", got)
	}
}

func TestNativeSwallowsSearchErrors(t *testing.T) {
	page := &fakeSearchPage{patternErr: errors.New("search not supported")}
	if got := Native(page); got != nil {
		t.Fatalf("Native = %+v, want nil on search failure", got)
	}
}

func TestFallbackRecoversFragmentedIdentifier(t *testing.T) {
	// The native search cannot join "123456" and "78909" across spans, but
	// the concatenated plain text contains the full CPF and the literal
	// search returns one rectangle per fragment.
	frag1 := geom.Rect{100, 200, 140, 212}
	frag2 := geom.Rect{140, 200, 175, 212}
	page := &fakeTextPage{
		text:    "cliente 12345678909 ativo",
		literal: map[string][]geom.Rect{"12345678909": {frag1, frag2}},
	}

	got := Fallback(page)
	if len(got) != 2 {
		t.Fatalf("Fallback = %+v, want two fragment rects", got)
	}
	if got[0] != frag1 || got[1] != frag2 {
		t.Errorf("Fallback rects = %+v, want [%+v %+v]", got, frag1, frag2)
	}
}

func TestFallbackSearchesDistinctSubstringsOnce(t *testing.T) {
	page := &fakeTextPage{
		text: "12345678909 e de novo 12345678909",
		literal: map[string][]geom.Rect{
			"12345678909": {{10, 10, 20, 20}},
		},
	}

	Fallback(page)
	if len(page.literalCalls) != 1 {
		t.Fatalf("literal search called %d times, want 1: %v", len(page.literalCalls), page.literalCalls)
	}
}

func TestFallbackNoIdentifiers(t *testing.T) {
	page := &fakeTextPage{text: "relatorio anual sem identificadores"}
	if got := Fallback(page); got != nil {
		t.Fatalf("Fallback = %+v, want nil", got)
	}
	if len(page.literalCalls) != 0 {
		t.Errorf("literal search called for text without matches: %v", page.literalCalls)
	}
}

func TestFallbackSwallowsExtractionError(t *testing.T) {
	page := &fakeTextPage{textErr: errors.New("no text layer")}
	if got := Fallback(page); got != nil {
		t.Fatalf("Fallback = %+v, want nil on extraction failure", got)
	}
}

func TestFallbackSwallowsLiteralSearchError(t *testing.T) {
	page := &fakeTextPage{
		text:       "CPF 123.456.789-09",
		literalErr: errors.New("search failed"),
	}
	if got := Fallback(page); got != nil {
		t.Fatalf("Fallback = %+v, want nil when every literal search fails", got)
	}
}

func TestOCRFindsScannedIdentifier(t *testing.T) {
	const dpi = 200.0
	zoom := dpi / 72
	raster := &fakeRaster{img: image.NewGray(image.Rect(0, 0, 1700, 2200))}
	engine := &fakeEngine{fragments: []ocr.Fragment{
		{Text: "NOTA FISCAL", Box: image.Rect(100, 100, 500, 130), Confidence: 0.99},
		{Text: "CNPJ 12.345.678/0001-95", Box: image.Rect(100, 300, 620, 330), Confidence: 0.93},
	}}

	got, err := OCR(raster, engine, dpi)
	if err != nil {
		t.Fatalf("OCR failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("OCR = %+v, want exactly the CNPJ rect", got)
	}
	want := geom.Rect{100 / zoom, 300 / zoom, 620 / zoom, 330 / zoom}
	if !rectsNear(got[0], want, 1e-9) {
		t.Errorf("OCR rect = %+v, want %+v", got[0], want)
	}
}

func TestOCRNoIdentifiers(t *testing.T) {
	raster := &fakeRaster{img: image.NewGray(image.Rect(0, 0, 100, 100))}
	engine := &fakeEngine{fragments: []ocr.Fragment{
		{Text: "apenas texto comum", Box: image.Rect(0, 0, 50, 10), Confidence: 0.9},
	}}

	got, err := OCR(raster, engine, 200)
	if err != nil {
		t.Fatalf("OCR failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("OCR = %+v, want none", got)
	}
}

func TestOCREngineErrorPropagates(t *testing.T) {
	raster := &fakeRaster{img: image.NewGray(image.Rect(0, 0, 10, 10))}
	engineErr := errors.New("tesseract init failed")
	engine := &fakeEngine{err: engineErr}

	_, err := OCR(raster, engine, 200)
	if !errors.Is(err, engineErr) {
		t.Fatalf("OCR error = %v, want wrapped %v", err, engineErr)
	}
}

func TestOCRRenderErrorPropagates(t *testing.T) {
	renderErr := errors.New("rasterization failed")
	raster := &fakeRaster{err: renderErr}
	engine := &fakeEngine{}

	_, err := OCR(raster, engine, 200)
	if !errors.Is(err, renderErr) {
		t.Fatalf("OCR error = %v, want wrapped %v", err, renderErr)
	}
	if engine.calls != 0 {
		t.Errorf("engine invoked despite render failure")
	}
}
