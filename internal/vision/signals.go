package vision

import "context"

// sparseTextThreshold is the trimmed tier-1 text length below which the
// face-detection tier is requested.
const sparseTextThreshold = 10

// BoundingBox is an axis-aligned face bounding box in pixel
// coordinates.
type BoundingBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns the box area in square pixels.
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// Signals is the per-image evidence returned by the analysis service.
// It lives only long enough to compute a tag.
type Signals struct {
	// Text is the full OCR text, possibly empty.
	Text string
	// Labels are lowercase semantic labels, most confident first.
	Labels []string
	// Faces are detected face bounding boxes, possibly empty.
	Faces []BoundingBox
	// Width and Height are the image pixel dimensions when the service
	// reported them, zero otherwise.
	Width  int
	Height int
}

// Extractor turns an image file into analysis signals. Implementations
// report how many billable calls the extraction performed so the
// coordinator can keep the run's api_calls counter exact; the offline
// extractor always reports zero.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (Signals, int, error)
}
