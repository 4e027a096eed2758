// Package pdfdoc binds the redaction pipeline to its PDF container, unipdf.
//
// The rest of the system never imports unipdf directly; it sees a small
// surface of container primitives on Document and Page:
//
//   - reading-order plain text extraction,
//   - pattern and literal text search returning page-space rectangles,
//   - page rasterization at a chosen resolution,
//   - the destructive redaction commit,
//   - saving the mutated document.
//
// # Coordinate convention
//
// unipdf reports glyph boxes in PDF user space (origin bottom-left, y up).
// Everything this package returns is normalized to page space as the
// pipeline defines it: points, origin at the top-left corner of the media
// box, y growing downward. That makes the page-to-raster mapping a pure
// scale by dpi/72 in both axes.
//
// # Redaction commit
//
// ApplyRedactions flattens the page: it renders the page to a raster at the
// document's commit resolution, stamps an opaque black box over every
// registered rectangle, and replaces the page with that image. The original
// content stream of the page does not reach the saved output, so the covered
// regions are unrecoverable; this removes content rather than overlaying it.
// The trade-off is that the whole flattened page loses its text layer, which
// the pipeline accepts (structure preservation beyond the commit primitive's
// guarantee is out of scope).
package pdfdoc
