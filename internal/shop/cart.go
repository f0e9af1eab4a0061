package shop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artemdev/ozon-cart-bot/internal/pacing"
)

// Committer adds a chosen candidate to the cart. Strategies are tried in
// order until one lands a click; an error in one strategy only moves on to
// the next.
type Committer struct {
	page   ResultsPage
	pacer  pacing.Pacer
	logger *slog.Logger
}

func NewCommitter(page ResultsPage, pacer pacing.Pacer, logger *slog.Logger) *Committer {
	return &Committer{
		page:   page,
		pacer:  pacer,
		logger: logger.With("component", "committer"),
	}
}

// Commit returns false only when every strategy is exhausted.
func (c *Committer) Commit(ctx context.Context, cand *Candidate) bool {
	c.logger.Info("adding to cart", "name", cand.Name, "price", cand.Price)

	strategies := []struct {
		name string
		fn   func(context.Context, *Candidate) (bool, error)
	}{
		{"card_first_button", c.clickFirstCardButton},
		{"card_labeled_button", c.clickLabeledCardButton},
		{"detail_page", c.clickOnDetailPage},
	}

	for _, s := range strategies {
		clicked, err := s.fn(ctx, cand)
		if err != nil {
			c.logger.Warn("cart strategy failed", "strategy", s.name, "error", err)
			continue
		}
		if clicked {
			c.logger.Info("added to cart", "strategy", s.name, "name", cand.Name)
			return true
		}
		c.logger.Debug("cart strategy found no target", "strategy", s.name)
	}

	c.logger.Warn("all cart strategies exhausted", "name", cand.Name)
	return false
}

// On Ozon the delivery-day button on a card doubles as the add-to-cart
// button, so the first visible button is the primary strategy.
func (c *Committer) clickFirstCardButton(ctx context.Context, cand *Candidate) (bool, error) {
	button := cand.Card.Control("button")

	count, err := button.Count()
	if err != nil || count == 0 {
		return false, err
	}

	visible, err := button.Visible()
	if err != nil || !visible {
		return false, err
	}

	if text, err := button.Text(); err == nil {
		c.logger.Debug("clicking card button", "text", text)
	}

	return true, c.pacedClick(ctx, button)
}

func (c *Committer) clickLabeledCardButton(ctx context.Context, cand *Candidate) (bool, error) {
	for _, label := range cartButtonLabels {
		button := cand.Card.Control(fmt.Sprintf(`button:has-text("%s")`, label))

		count, err := button.Count()
		if err != nil || count == 0 {
			continue
		}

		visible, err := button.Visible()
		if err != nil || !visible {
			continue
		}

		if err := c.pacedClick(ctx, button); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// Last resort: open the product's detail page and click the add button
// there. This navigates away, so it must come after the in-card strategies.
func (c *Committer) clickOnDetailPage(ctx context.Context, cand *Candidate) (bool, error) {
	if err := c.pacer.Pause(ctx); err != nil {
		return false, err
	}
	if err := cand.Card.Click(); err != nil {
		return false, fmt.Errorf("failed to open product page: %w", err)
	}
	c.page.WaitReady()

	button := c.page.Control(fmt.Sprintf(`button:has-text("%s")`, detailAddLabel))
	count, err := button.Count()
	if err != nil || count == 0 {
		return false, err
	}

	return true, c.pacedClick(ctx, button)
}

func (c *Committer) pacedClick(ctx context.Context, button Control) error {
	if err := c.pacer.Pause(ctx); err != nil {
		return err
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return c.pacer.Pause(ctx)
}
