// Package vision adapts the external image-analysis service into the
// narrow signal contract the classifier consumes: OCR text, semantic
// labels, and detected face boxes.
//
// The adapter applies a two-tier call policy. Tier 1 always requests
// text and label annotations in a single call. Tier 2, face detection,
// is a separately billed capability and is requested only when the
// tier-1 text is nearly empty: documents with substantial OCR text are
// assumed not to be face photographs. Each tier that executes counts
// one API call against the run budget.
package vision
