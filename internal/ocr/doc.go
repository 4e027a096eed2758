// Package ocr recognizes text in rendered page images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). The engine
// is the last line of defense of the redaction pipeline: scanned pages carry
// no searchable text, so everything the text detectors miss must be found
// here, in pixel space.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-por tesseract-ocr-eng
//   - macOS: brew install tesseract tesseract-lang
//
// # Lifecycle
//
// Construct one engine per run with NewTesseract and reuse it for every
// page; loading language models is expensive and must be amortized. Close
// releases the underlying client. A single engine serializes its own use:
// it is not safe to call Recognize concurrently from multiple goroutines
// without external locking, because the gosseract client holds per-call
// image state.
//
// # Granularity
//
// Recognition is requested at text-line granularity, never paragraph level:
// paragraph grouping would merge unrelated runs of text and blur identifier
// boundaries. Each returned fragment carries the recognized string, its
// axis-aligned bounding box in pixel coordinates of the input image, and a
// confidence score in [0, 1].
package ocr
