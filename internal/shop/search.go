package shop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/artemdev/ozon-cart-bot/internal/ocr"
	"github.com/artemdev/ozon-cart-bot/internal/pacing"
)

const searchBoxOCRTarget = "Искать"

// SearchBox is a text input on the live page.
type SearchBox interface {
	Visible() (bool, error)
	Clear() error
	Fill(text string) error
	Press(key string) error
}

// SearchSurface is the page surface the searcher drives: selector lookup,
// raw coordinate clicks for the OCR fallback, and screenshots to feed it.
type SearchSurface interface {
	Box(selector string) SearchBox
	ClickAt(x, y float64) error
	Screenshot() ([]byte, error)
	WaitReady()
}

// Searcher drives the search UI: find the box, type the query, submit.
// When no selector matches, it falls back to locating the box visually
// through OCR and clicking its coordinates.
type Searcher struct {
	surface       SearchSurface
	recognizer    ocr.Recognizer
	pacer         pacing.Pacer
	retries       int
	retryDelay    time.Duration
	minConfidence float64
	logger        *slog.Logger
}

func NewSearcher(surface SearchSurface, recognizer ocr.Recognizer, pacer pacing.Pacer, retries int, retryDelay time.Duration, minConfidence float64, logger *slog.Logger) *Searcher {
	return &Searcher{
		surface:       surface,
		recognizer:    recognizer,
		pacer:         pacer,
		retries:       retries,
		retryDelay:    retryDelay,
		minConfidence: minConfidence,
		logger:        logger.With("component", "searcher"),
	}
}

func (s *Searcher) Search(ctx context.Context, query string) error {
	s.logger.Info("searching", "query", query)

	input, err := s.findSearchBox(ctx)
	if err != nil {
		return err
	}

	if err := s.pacer.Pause(ctx); err != nil {
		return err
	}
	if err := input.Clear(); err != nil {
		return fmt.Errorf("failed to clear search box: %w", err)
	}
	if err := s.pacer.PauseRange(ctx, 500*time.Millisecond, 1500*time.Millisecond); err != nil {
		return err
	}
	if err := input.Fill(query); err != nil {
		return fmt.Errorf("failed to fill search box: %w", err)
	}
	if err := s.pacer.Pause(ctx); err != nil {
		return err
	}
	if err := input.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}

	s.surface.WaitReady()
	return s.pacer.Pause(ctx)
}

func (s *Searcher) findSearchBox(ctx context.Context) (SearchBox, error) {
	for _, selector := range searchBoxSelectors {
		box := s.surface.Box(selector)
		visible, err := box.Visible()
		if err != nil {
			continue
		}
		if visible {
			s.logger.Debug("found search box", "selector", selector)
			return box, nil
		}
	}

	s.logger.Info("no search box selector matched, falling back to OCR")
	if err := s.clickByText(ctx, searchBoxOCRTarget); err != nil {
		return nil, fmt.Errorf("search box not found: %w", err)
	}

	// The coordinate click focuses the input the text was painted on.
	return s.surface.Box("input:focus"), nil
}

// clickByText screenshots the page, asks the OCR service where the target
// phrase is, and clicks its center. Retried a bounded number of times.
func (s *Searcher) clickByText(ctx context.Context, target string) error {
	for attempt := 1; attempt <= s.retries; attempt++ {
		point, found, err := s.locateText(ctx, target)
		if err != nil {
			s.logger.Warn("OCR pass failed", "attempt", attempt, "error", err)
		} else if found {
			s.logger.Info("OCR located text", "target", target, "x", point.X, "y", point.Y)
			if err := s.pacer.Pause(ctx); err != nil {
				return err
			}
			return s.surface.ClickAt(point.X, point.Y)
		} else {
			s.logger.Debug("OCR did not find text", "target", target, "attempt", attempt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}

	return fmt.Errorf("text %q not found after %d OCR attempts", target, s.retries)
}

func (s *Searcher) locateText(ctx context.Context, target string) (ocr.Point, bool, error) {
	shot, err := s.surface.Screenshot()
	if err != nil {
		return ocr.Point{}, false, err
	}

	detections, err := s.recognizer.Recognize(ctx, shot)
	if err != nil {
		return ocr.Point{}, false, err
	}

	point, found := ocr.LocateWithConfidence(detections, target, s.minConfidence)
	return point, found, nil
}
