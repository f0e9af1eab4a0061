package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func region(x1, y1, x2, y2 float64) [4][2]float64 {
	return [4][2]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
}

func TestLocateFirstMatchWins(t *testing.T) {
	detections := []TextDetection{
		{Text: "ИСКАТЬ", Confidence: 0.9, Region: region(100, 40, 200, 60)},
		{Text: "искать сейчас", Confidence: 0.6, Region: region(300, 400, 500, 440)},
	}

	p, ok := Locate(detections, "искать")
	assert.True(t, ok)
	assert.Equal(t, Point{X: 150, Y: 50}, p)
}

func TestLocateSkipsLowConfidence(t *testing.T) {
	detections := []TextDetection{
		{Text: "Искать", Confidence: 0.4, Region: region(0, 0, 10, 10)},
		{Text: "искать товары", Confidence: 0.8, Region: region(20, 20, 40, 40)},
	}

	p, ok := Locate(detections, "Искать")
	assert.True(t, ok)
	assert.Equal(t, Point{X: 30, Y: 30}, p)
}

func TestLocateNotFound(t *testing.T) {
	detections := []TextDetection{
		{Text: "Корзина", Confidence: 0.95, Region: region(0, 0, 10, 10)},
	}

	_, ok := Locate(detections, "искать")
	assert.False(t, ok)

	_, ok = Locate(nil, "искать")
	assert.False(t, ok)
}
