package vision

import "strings"

// Wire types for the annotate REST endpoint. Only the fields the
// classifier consumes are mapped.

type annotateBatchRequest struct {
	Requests []annotateRequest `json:"requests"`
}

type annotateRequest struct {
	Image    annotateImage `json:"image"`
	Features []feature     `json:"features"`
}

// annotateImage carries inline image content; encoding/json emits the
// byte slice base64-encoded, which is the wire format the service
// expects.
type annotateImage struct {
	Content []byte `json:"content"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateBatchResponse struct {
	Responses []annotateResponse `json:"responses"`
}

type annotateResponse struct {
	TextAnnotations    []entityAnnotation  `json:"textAnnotations,omitempty"`
	LabelAnnotations   []entityAnnotation  `json:"labelAnnotations,omitempty"`
	FaceAnnotations    []faceAnnotation    `json:"faceAnnotations,omitempty"`
	FullTextAnnotation *fullTextAnnotation `json:"fullTextAnnotation,omitempty"`
	Error              *statusError        `json:"error,omitempty"`
}

type entityAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score,omitempty"`
}

type faceAnnotation struct {
	FdBoundingPoly boundingPoly `json:"fdBoundingPoly"`
}

type boundingPoly struct {
	Vertices []vertex `json:"vertices"`
}

type vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type fullTextAnnotation struct {
	Text  string `json:"text"`
	Pages []page `json:"pages,omitempty"`
}

type page struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type statusError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// signalsFromAnnotation maps a tier-1 response onto Signals. The full
// text annotation is preferred; the first text annotation (which
// aggregates the whole page) is the fallback.
func signalsFromAnnotation(resp *annotateResponse) Signals {
	signals := Signals{}

	if resp.FullTextAnnotation != nil && resp.FullTextAnnotation.Text != "" {
		signals.Text = resp.FullTextAnnotation.Text
		if len(resp.FullTextAnnotation.Pages) > 0 {
			signals.Width = resp.FullTextAnnotation.Pages[0].Width
			signals.Height = resp.FullTextAnnotation.Pages[0].Height
		}
	} else if len(resp.TextAnnotations) > 0 {
		signals.Text = resp.TextAnnotations[0].Description
	}

	for _, label := range resp.LabelAnnotations {
		if desc := strings.ToLower(strings.TrimSpace(label.Description)); desc != "" {
			signals.Labels = append(signals.Labels, desc)
		}
	}

	return signals
}

// facesFromAnnotation converts face polygons from a tier-2 response
// into axis-aligned bounding boxes.
func facesFromAnnotation(resp *annotateResponse) []BoundingBox {
	if len(resp.FaceAnnotations) == 0 {
		return nil
	}
	boxes := make([]BoundingBox, 0, len(resp.FaceAnnotations))
	for _, face := range resp.FaceAnnotations {
		if box, ok := boxFromPoly(face.FdBoundingPoly); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

func boxFromPoly(poly boundingPoly) (BoundingBox, bool) {
	if len(poly.Vertices) == 0 {
		return BoundingBox{}, false
	}
	minX, minY := poly.Vertices[0].X, poly.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range poly.Vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
