// Package redact reconciles detection results and drives the per-document
// pipeline.
//
// Reconcile merges the rectangle lists of the three detection strategies,
// deduplicates near-identical rectangles (coordinates equal after rounding
// to one decimal place), and commits the survivors as destructive black-box
// redactions: exactly one commit per page, and none at all when nothing
// survived.
//
// Runner iterates the document page by page, strategy by strategy, in a
// fixed order: native search, fallback literal search, OCR. Detection is
// read-only and strictly precedes the page's commit. A fatal OCR failure
// aborts the whole run before anything is written, so a partially-redacted
// file can never masquerade as a complete one; the output document is saved
// once, after every page has been processed.
package redact
