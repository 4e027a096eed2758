package pdfdoc

import (
	"errors"
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"
)

// ErrEncrypted is returned by Open for password-protected documents that
// cannot be decrypted with an empty user password.
var ErrEncrypted = errors.New("pdfdoc: document is encrypted")

// Document is an open source PDF plus the mutations committed so far.
// Pages are read-only until their redaction commit; committed pages are kept
// as flattened rasters and reassembled into the output by Save.
type Document struct {
	f         *os.File
	reader    *model.PdfReader
	pages     []*model.PdfPage
	wrappers  map[int]*Page
	commitDPI float64
}

// Open reads the document at path. commitDPI is the resolution used when a
// page is flattened during redaction commit; non-positive values fall back
// to 72 via the raster transform.
//
// Encrypted documents are given one chance with an empty user password,
// which is how viewers open "owner locked" files; anything else fails with
// ErrEncrypted.
func Open(path string, commitDPI float64) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	reader, err := model.NewPdfReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	encrypted, err := reader.IsEncrypted()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil || !ok {
			f.Close()
			return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
		}
	}
	n, err := reader.GetNumPages()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	pages := make([]*model.PdfPage, n)
	for i := 0; i < n; i++ {
		page, err := reader.GetPage(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("load page %d of %s: %w", i+1, path, err)
		}
		pages[i] = page
	}
	return &Document{
		f:         f,
		reader:    reader,
		pages:     pages,
		wrappers:  make(map[int]*Page, n),
		commitDPI: commitDPI,
	}, nil
}

// Close releases the underlying file. The document must not be used after.
func (d *Document) Close() error {
	return d.f.Close()
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the wrapper for the zero-based page index. Wrappers are
// cached, so repeated calls observe the same extraction state and pending
// redaction marks.
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", i, len(d.pages))
	}
	if p, ok := d.wrappers[i]; ok {
		return p, nil
	}
	mbox, err := d.pages[i].GetMediaBox()
	if err != nil {
		return nil, fmt.Errorf("media box of page %d: %w", i+1, err)
	}
	p := &Page{
		doc:    d,
		index:  i,
		page:   d.pages[i],
		llx:    mbox.Llx,
		ury:    mbox.Ury,
		width:  mbox.Urx - mbox.Llx,
		height: mbox.Ury - mbox.Lly,
	}
	d.wrappers[i] = p
	return p, nil
}

// Save writes the mutated document to path. Untouched pages pass through
// unchanged; pages with a committed redaction are emitted as their flattened
// image at the original page dimensions.
func (d *Document) Save(path string) error {
	c := creator.New()
	for i, page := range d.pages {
		w := d.wrappers[i]
		if w == nil || w.flattened == nil {
			if err := c.AddPage(page); err != nil {
				return fmt.Errorf("copy page %d: %w", i+1, err)
			}
			continue
		}
		if err := drawFlattened(c, w); err != nil {
			return fmt.Errorf("write redacted page %d: %w", i+1, err)
		}
	}
	if err := c.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func drawFlattened(c *creator.Creator, w *Page) error {
	c.SetPageSize(creator.PageSize{w.width, w.height})
	c.NewPage()
	img, err := c.NewImageFromGoImage(w.flattened)
	if err != nil {
		return err
	}
	img.SetPos(0, 0)
	img.ScaleToWidth(w.width)
	return c.Draw(img)
}
