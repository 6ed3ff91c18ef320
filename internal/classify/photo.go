package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/juliaafonsoo/scrape-data/internal/vision"
)

// photoFilenamePattern recognizes the conventional names used for
// identity photos: an optional "foto" prefix, an optional separator,
// and an optional "3x4", with an image extension.
var photoFilenamePattern = regexp.MustCompile(`(?i)^(?:foto[-_ ]?3x4|foto|3x4)\.(?:png|jpe?g)$`)

// personLabels are the semantic labels that indicate a person in the
// top analysis labels.
var personLabels = []string{"person", "face", "head", "portrait", "human", "people"}

const (
	// contentTextLimit is the maximum trimmed OCR length for a photo;
	// identity photos carry almost no text.
	contentTextLimit = 50
	// topLabelWindow bounds how many labels are inspected for
	// person-indicating terms.
	topLabelWindow = 10
	// idPhotoRatio is the 3:4 identity-photo aspect ratio, normalized
	// to portrait orientation.
	idPhotoRatio = 0.75
	// ratioTolerance is the allowed deviation from idPhotoRatio.
	ratioTolerance = 0.10
	// minFaceCoverage is the minimum share of the image area the
	// dominant face box must cover in the geometric check.
	minFaceCoverage = 0.20
)

// MatchesPhotoFilename reports whether the filename alone identifies an
// identity photo. A match short-circuits classification entirely: no
// analysis call is made for such attachments.
func MatchesPhotoFilename(filename string) bool {
	return photoFilenamePattern.MatchString(strings.TrimSpace(filename))
}

// IsPhotoByContent detects an identity photo from analysis signals. It
// requires a detected face, near-empty OCR text, and a person-indicating
// label among the top labels. When the service reported pixel
// dimensions, the stricter geometric variant also validates the aspect
// ratio and the dominant face's coverage of the frame; without
// dimensions the looser check stands alone.
func IsPhotoByContent(sig vision.Signals) bool {
	if len(sig.Faces) == 0 {
		return false
	}
	if len(strings.TrimSpace(sig.Text)) >= contentTextLimit {
		return false
	}
	if !hasPersonLabel(sig.Labels) {
		return false
	}
	if sig.Width > 0 && sig.Height > 0 {
		return passesGeometry(sig)
	}
	return true
}

func hasPersonLabel(labels []string) bool {
	window := labels
	if len(window) > topLabelWindow {
		window = window[:topLabelWindow]
	}
	for _, label := range window {
		lower := strings.ToLower(label)
		for _, person := range personLabels {
			if strings.Contains(lower, person) {
				return true
			}
		}
	}
	return false
}

func passesGeometry(sig vision.Signals) bool {
	ratio := float64(sig.Width) / float64(sig.Height)
	if ratio > 1 {
		ratio = 1 / ratio
	}
	if math.Abs(ratio-idPhotoRatio) > ratioTolerance {
		return false
	}

	dominant := 0
	for _, face := range sig.Faces {
		if area := face.Area(); area > dominant {
			dominant = area
		}
	}
	imageArea := sig.Width * sig.Height
	return float64(dominant) >= minFaceCoverage*float64(imageArea)
}
