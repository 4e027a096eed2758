package redact

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/lgpd-tools/tarja/internal/detect"
	"github.com/lgpd-tools/tarja/internal/geom"
	"github.com/lgpd-tools/tarja/internal/ocr"
	"github.com/lgpd-tools/tarja/internal/pdfdoc"
)

// Reference defaults, matching the resolution and language set the pipeline
// was tuned with. 200 DPI keeps identifier glyphs above Tesseract's minimum
// useful size without ballooning raster memory.
const DefaultDPI = 200.0

// DefaultLanguages covers the scripts a Brazilian document is likely to mix.
var DefaultLanguages = []string{"por", "eng"}

// Config carries the externally supplied parameters of a run.
type Config struct {
	// InputPath is the source PDF.
	InputPath string
	// OutputPath receives the redacted copy. Nothing is written on a fatal
	// failure.
	OutputPath string
	// DPI is the OCR rasterization resolution, samples per 72 page units.
	// Zero selects DefaultDPI.
	DPI float64
	// Languages are Tesseract language codes. Empty selects
	// DefaultLanguages.
	Languages []string
}

func (c Config) withDefaults() Config {
	if c.DPI <= 0 {
		c.DPI = DefaultDPI
	}
	if len(c.Languages) == 0 {
		c.Languages = append([]string(nil), DefaultLanguages...)
	}
	return c
}

// Page is what the pipeline needs from one page: the read-only detection
// surfaces and the redaction commit.
type Page interface {
	PlainText() (string, error)
	SearchLiteral(needle string) ([]geom.Rect, error)
	Render(t geom.RasterTransform) (image.Image, error)
	AddRedaction(r geom.Rect)
	ApplyRedactions() error
}

// Document is the pipeline's view of an open PDF.
type Document interface {
	NumPages() int
	Page(i int) (Page, error)
	Save(path string) error
}

// Summary describes a completed run.
type Summary struct {
	Pages    int // pages processed
	Redacted int // pages that received at least one redaction
	Regions  int // total committed regions
}

// Runner executes the detection-and-redaction pipeline over one document.
type Runner struct {
	cfg    Config
	engine ocr.Engine
	log    *zap.Logger
}

// NewRunner builds a runner around an initialized OCR engine. The engine is
// shared across all pages of the run; the runner does not close it. A nil
// logger disables logging.
func NewRunner(cfg Config, engine ocr.Engine, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg.withDefaults(), engine: engine, log: log}
}

// Run processes every page of doc in order and saves the redacted document
// to the configured output path.
//
// Per page, the three detectors run in the fixed order native, fallback,
// OCR; their concatenated results are reconciled and committed before the
// next page starts. A fatal failure (OCR, commit) aborts the run with no
// output written. Cancellation is honored between pages only: a page's
// detection-plus-commit cycle is the atomic unit.
func (r *Runner) Run(ctx context.Context, doc Document) (Summary, error) {
	sum := Summary{}
	n := doc.NumPages()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		page, err := doc.Page(i)
		if err != nil {
			return sum, fmt.Errorf("page %d: %w", i+1, err)
		}

		native := detect.Native(page)
		fallback := detect.Fallback(page)
		fromOCR, err := detect.OCR(page, r.engine, r.cfg.DPI)
		if err != nil {
			return sum, fmt.Errorf("page %d: %w", i+1, err)
		}

		all := make([]geom.Rect, 0, len(native)+len(fallback)+len(fromOCR))
		all = append(all, native...)
		all = append(all, fallback...)
		all = append(all, fromOCR...)

		committed, err := Reconcile(page, all)
		if err != nil {
			return sum, fmt.Errorf("page %d: %w", i+1, err)
		}
		sum.Pages++
		if committed > 0 {
			sum.Redacted++
			sum.Regions += committed
		}
		r.log.Debug("page processed",
			zap.Int("page", i+1),
			zap.Int("native", len(native)),
			zap.Int("fallback", len(fallback)),
			zap.Int("ocr", len(fromOCR)),
			zap.Int("committed", committed),
		)
	}
	if err := doc.Save(r.cfg.OutputPath); err != nil {
		return sum, err
	}
	r.log.Info("document redacted",
		zap.String("output", r.cfg.OutputPath),
		zap.Int("pages", sum.Pages),
		zap.Int("redacted_pages", sum.Redacted),
		zap.Int("regions", sum.Regions),
	)
	return sum, nil
}

// Run is the whole pipeline end to end: open the input, initialize the OCR
// engine once, process every page, save the output.
func Run(ctx context.Context, cfg Config, log *zap.Logger) (Summary, error) {
	cfg = cfg.withDefaults()
	doc, err := pdfdoc.Open(cfg.InputPath, cfg.DPI)
	if err != nil {
		return Summary{}, err
	}
	defer doc.Close()

	engine, err := ocr.NewTesseract(cfg.Languages)
	if err != nil {
		return Summary{}, err
	}
	defer engine.Close()

	return NewRunner(cfg, engine, log).Run(ctx, pdfDocument{doc})
}

// pdfDocument adapts *pdfdoc.Document to the pipeline's Document interface
// (Go interfaces are not covariant in return types).
type pdfDocument struct {
	doc *pdfdoc.Document
}

func (d pdfDocument) NumPages() int            { return d.doc.NumPages() }
func (d pdfDocument) Save(path string) error   { return d.doc.Save(path) }
func (d pdfDocument) Page(i int) (Page, error) { return d.doc.Page(i) }
