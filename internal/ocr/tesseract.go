package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Fragment is one recognized run of text: a pixel-space bounding box, the
// recognized string and the engine's confidence (0.0 to 1.0). Engines that
// report quadrilaterals must reduce them to the axis-aligned bounding box.
type Fragment struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// Engine recognizes text fragments in a raster image.
//
// Implementations are expected to be expensive to construct and cheap to
// reuse; callers hold one instance for a whole document run.
type Engine interface {
	Recognize(img image.Image) ([]Fragment, error)
	Close() error
}

// binarizeLevel is the fixed grayscale cutoff applied before recognition.
const binarizeLevel = 128

// Tesseract is the gosseract-backed Engine.
type Tesseract struct {
	client *gosseract.Client
	langs  []string
}

// NewTesseract creates an engine configured for the given Tesseract language
// codes (e.g. "por", "eng"). The language models are loaded once here, not
// per page. The caller owns the engine and must Close it.
func NewTesseract(langs []string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			client.Close()
			return nil, fmt.Errorf("set ocr languages %v: %w", langs, err)
		}
	}
	return &Tesseract{client: client, langs: langs}, nil
}

// Recognize runs Tesseract over img and returns text-line fragments with
// pixel bounding boxes. Empty lines are filtered out.
//
// The image is grayscaled and thresholded before recognition, then handed to
// Tesseract through a temporary PNG file (the client wants a file path).
func (t *Tesseract) Recognize(img image.Image) ([]Fragment, error) {
	if img == nil {
		return nil, fmt.Errorf("recognize: nil image")
	}
	tmp, err := os.CreateTemp("", "tarja-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, prepare(img)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("encode temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp image: %w", err)
	}

	if err := t.client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("ocr bounding boxes: %w", err)
	}

	fragments := make([]Fragment, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:       text,
			Box:        box.Box,
			Confidence: box.Confidence / 100.0,
		})
	}
	return fragments, nil
}

// Close releases the underlying Tesseract client.
func (t *Tesseract) Close() error {
	return t.client.Close()
}

// prepare binarizes the frame for recognition: grayscale, then a fixed
// threshold. Printed identifiers are dark-on-light; the threshold strips
// scanner noise and background tint that degrade recognition.
func prepare(img image.Image) image.Image {
	return segment.Threshold(imaging.Grayscale(img), binarizeLevel)
}
