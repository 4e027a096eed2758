package pdfdoc

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/creator"

	"github.com/lgpd-tools/tarja/internal/geom"
	"github.com/lgpd-tools/tarja/internal/pattern"
)

var licenseOnce sync.Once

// requireLicense skips tests that exercise the real unipdf engine unless a
// license key is available in the environment.
func requireLicense(t *testing.T) {
	t.Helper()
	key := os.Getenv("UNIDOC_LICENSE_API_KEY")
	if key == "" {
		t.Skip("set UNIDOC_LICENSE_API_KEY to run unipdf integration tests")
	}
	licenseOnce.Do(func() {
		if err := license.SetMeteredKey(key); err != nil {
			t.Fatalf("unipdf license: %v", err)
		}
	})
}

// writeTextPDF builds a one-page PDF with the given line of text.
func writeTextPDF(t *testing.T, path, text string) {
	t.Helper()
	c := creator.New()
	c.NewPage()
	p := c.NewParagraph(text)
	p.SetPos(72, 100)
	if err := c.Draw(p); err != nil {
		t.Fatalf("draw paragraph: %v", err)
	}
	if err := c.WriteToFile(path); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
}

func TestSearchAndRedactRoundTrip(t *testing.T) {
	requireLicense(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	writeTextPDF(t, in, "CPF: 123.456.789-09")

	doc, err := Open(in, 150)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()
	if doc.NumPages() != 1 {
		t.Fatalf("NumPages = %d, want 1", doc.NumPages())
	}
	page, err := doc.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	text, err := page.PlainText()
	if err != nil {
		t.Fatalf("PlainText failed: %v", err)
	}
	if !strings.Contains(text, "123.456.789-09") {
		t.Fatalf("extracted text %q lacks the identifier", text)
	}

	rects, err := page.SearchPattern(pattern.ID)
	if err != nil {
		t.Fatalf("SearchPattern failed: %v", err)
	}
	if len(rects) == 0 {
		t.Fatal("SearchPattern found nothing")
	}
	w, h := page.Size()
	for _, r := range rects {
		if r.X0 < 0 || r.Y0 < 0 || r.X1 > w || r.Y1 > h || r.X0 >= r.X1 || r.Y0 >= r.Y1 {
			t.Errorf("rect %+v outside page %gx%g", r, w, h)
		}
	}

	literal, err := page.SearchLiteral("123.456.789-09")
	if err != nil {
		t.Fatalf("SearchLiteral failed: %v", err)
	}
	if len(literal) == 0 {
		t.Fatal("SearchLiteral found nothing")
	}

	for _, r := range rects {
		page.AddRedaction(r)
	}
	if err := page.ApplyRedactions(); err != nil {
		t.Fatalf("ApplyRedactions failed: %v", err)
	}
	if err := doc.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The identifier must be gone from the saved output's text layer.
	redacted, err := Open(out, 150)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer redacted.Close()
	rp, err := redacted.Page(0)
	if err != nil {
		t.Fatalf("reopen page failed: %v", err)
	}
	rtext, err := rp.PlainText()
	if err != nil {
		t.Fatalf("reopen PlainText failed: %v", err)
	}
	if pattern.Matches(rtext) {
		t.Fatalf("identifier survived redaction: %q", rtext)
	}
}

func TestApplyRedactionsWithoutMarksIsNoop(t *testing.T) {
	requireLicense(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTextPDF(t, in, "sem identificadores")

	doc, err := Open(in, 150)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()
	page, err := doc.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if err := page.ApplyRedactions(); err != nil {
		t.Fatalf("ApplyRedactions failed: %v", err)
	}
	if page.flattened != nil {
		t.Fatal("page flattened with no pending marks")
	}
}

func TestRenderHonorsTransform(t *testing.T) {
	requireLicense(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTextPDF(t, in, "escala")

	doc, err := Open(in, 150)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()
	page, err := doc.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	tr := geom.NewRasterTransform(144) // zoom 2
	img, err := page.Render(tr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	w, _ := page.Size()
	wantPx := int(w * tr.Zoom)
	if got := img.Bounds().Dx(); got < wantPx-1 || got > wantPx+1 {
		t.Errorf("rendered width = %dpx, want ~%dpx", got, wantPx)
	}
}
