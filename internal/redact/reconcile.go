package redact

import (
	"fmt"

	"github.com/lgpd-tools/tarja/internal/geom"
)

// RedactionTarget is the mutable side of a page: registering redaction
// marks and committing them irreversibly.
type RedactionTarget interface {
	AddRedaction(r geom.Rect)
	ApplyRedactions() error
}

// Reconcile deduplicates the concatenated detector results and commits the
// survivors on the page. The caller concatenates in detector order (native,
// fallback, OCR); first appearance wins, so the surviving order reflects
// that priority. Returns the number of committed regions.
//
// With an empty survivor list no commit call is made and the page is left
// untouched.
func Reconcile(p RedactionTarget, rects []geom.Rect) (int, error) {
	merged := geom.Dedupe(rects)
	if len(merged) == 0 {
		return 0, nil
	}
	for _, r := range merged {
		p.AddRedaction(r)
	}
	if err := p.ApplyRedactions(); err != nil {
		return 0, fmt.Errorf("apply redactions: %w", err)
	}
	return len(merged), nil
}
