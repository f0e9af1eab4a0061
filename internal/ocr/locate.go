package ocr

import "strings"

// Point is a screen coordinate in page space.
type Point struct {
	X float64
	Y float64
}

// DefaultMinConfidence filters out low-quality detections when the caller
// does not set a threshold of its own.
const DefaultMinConfidence = 0.5

// Locate finds target within the detections by case-insensitive substring
// match, using the default confidence threshold.
func Locate(detections []TextDetection, target string) (Point, bool) {
	return LocateWithConfidence(detections, target, DefaultMinConfidence)
}

// LocateWithConfidence is Locate with an explicit confidence floor. Only
// detections strictly above the floor qualify, and the first qualifying
// detection wins regardless of later, more confident ones. The returned
// point is the center of the detection's bounding polygon.
func LocateWithConfidence(detections []TextDetection, target string, minConfidence float64) (Point, bool) {
	needle := strings.ToLower(target)

	for _, d := range detections {
		if d.Confidence <= minConfidence {
			continue
		}
		if !strings.Contains(strings.ToLower(d.Text), needle) {
			continue
		}
		// Midpoint of two diagonal corners.
		return Point{
			X: (d.Region[0][0] + d.Region[2][0]) / 2,
			Y: (d.Region[0][1] + d.Region[2][1]) / 2,
		}, true
	}

	return Point{}, false
}
