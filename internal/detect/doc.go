// Package detect implements the three identifier detection strategies of
// the redaction pipeline. Each strategy is an independent pure function from
// a page to page-space rectangles, composed downstream by the reconciler:
//
//   - Native: the container's own pattern search over page text.
//   - Fallback: plain-text extraction plus literal re-search, recovering
//     identifiers whose glyphs are fragmented across rendering spans and
//     therefore invisible to the native search.
//   - OCR: rasterize the page, recognize text in pixel space, map surviving
//     bounding boxes back through the inverse raster transform.
//
// The failure model is deliberately asymmetric and expressed in the
// signatures. Native and Fallback swallow every engine failure and yield an
// empty result: a page may simply have no text layer, and the other
// strategies still run. OCR returns its error: it is the only strategy able
// to see scanned content, so suppressing its failures would silently
// under-redact.
package detect
