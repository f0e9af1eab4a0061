package shop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artemdev/ozon-cart-bot/internal/parser"
)

// Extractor turns a search-result page into an ordered list of candidates.
type Extractor struct {
	maxCandidates    int
	deliveryKeywords []string
	logger           *slog.Logger
}

func NewExtractor(maxCandidates int, deliveryKeywords []string, logger *slog.Logger) *Extractor {
	return &Extractor{
		maxCandidates:    maxCandidates,
		deliveryKeywords: deliveryKeywords,
		logger:           logger.With("component", "extractor"),
	}
}

// Extract scans the first N result cards. A card that fails to read or
// parse is skipped, never aborting the pass: result markup varies and a
// single broken card must not cost the whole listing. Cards without a
// parseable price are logged and excluded from the returned set.
func (e *Extractor) Extract(ctx context.Context, page ResultsPage) []Candidate {
	cards := e.locateCards(page)
	if len(cards) == 0 {
		e.logger.Info("no result cards found")
		return nil
	}

	if len(cards) > e.maxCandidates {
		cards = cards[:e.maxCandidates]
	}
	e.logger.Debug("scanning result cards", "count", len(cards))

	var candidates []Candidate
	for i, card := range cards {
		select {
		case <-ctx.Done():
			return candidates
		default:
		}

		html, err := card.HTML()
		if err != nil {
			e.logger.Warn("failed to read card", "index", i+1, "error", err)
			continue
		}

		fields, err := parser.ParseCard(html, e.deliveryKeywords)
		if err != nil {
			e.logger.Warn("failed to parse card", "index", i+1, "error", err)
			continue
		}

		if !parser.HasPrice(fields.Price) {
			e.logger.Debug("card has no parseable price, skipping",
				"index", i+1, "name", fields.Name)
			continue
		}

		name := fields.Name
		if name == "" {
			name = fmt.Sprintf("Товар %d", i+1)
		}

		candidates = append(candidates, Candidate{
			Name:     name,
			Price:    fields.Price,
			Delivery: fields.Delivery,
			Card:     card,
		})
		e.logger.Info("candidate",
			"index", i+1,
			"name", name,
			"price", fields.Price,
			"delivery", fields.Delivery,
		)
	}

	return candidates
}

func (e *Extractor) locateCards(page ResultsPage) []Card {
	for _, selector := range cardSelectors {
		cards, err := page.Cards(selector)
		if err != nil {
			e.logger.Debug("card selector failed", "selector", selector, "error", err)
			continue
		}
		if len(cards) > 0 {
			e.logger.Debug("found result cards", "selector", selector, "count", len(cards))
			return cards
		}
	}
	return nil
}
