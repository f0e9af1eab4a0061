package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// TextDetection is one recognized text fragment on a screenshot. Region
// holds the four corners of the bounding polygon in page coordinates.
type TextDetection struct {
	Text       string
	Confidence float64
	Region     [4][2]float64
}

// Recognizer turns a screenshot into text detections.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]TextDetection, error)
}

// Client calls a PaddleOCR-style serving endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "ocr"),
	}
}

type recognizeRequest struct {
	Images []string `json:"images"`
}

type recognizeResponse struct {
	Results [][]struct {
		Text       string       `json:"text"`
		Confidence float64      `json:"confidence"`
		TextRegion [][2]float64 `json:"text_region"`
	} `json:"results"`
}

// Recognize posts the PNG screenshot to the OCR service and returns the
// detections in the order the service produced them.
func (c *Client) Recognize(ctx context.Context, image []byte) ([]TextDetection, error) {
	body, err := json.Marshal(recognizeRequest{
		Images: []string{base64.StdEncoding.EncodeToString(image)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OCR response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR service returned %d", resp.StatusCode)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse OCR response: %w", err)
	}

	var detections []TextDetection
	for _, page := range parsed.Results {
		for _, r := range page {
			d := TextDetection{Text: r.Text, Confidence: r.Confidence}
			for i := 0; i < len(r.TextRegion) && i < 4; i++ {
				d.Region[i] = r.TextRegion[i]
			}
			detections = append(detections, d)
		}
	}

	c.logger.Debug("OCR pass complete", "detections", len(detections))
	return detections, nil
}
