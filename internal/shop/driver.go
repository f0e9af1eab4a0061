package shop

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/artemdev/ozon-cart-bot/internal/models"
)

// Storefront is the navigation surface the driver runs against.
type Storefront interface {
	OpenHome(ctx context.Context) error
	OpenSection(ctx context.Context) error
	LoggedIn() bool
	AwaitLogin(ctx context.Context) error
}

// ItemShopper runs the search→extract→commit cycle for one item.
type ItemShopper interface {
	Search(ctx context.Context, query string) error
	Collect(ctx context.Context) ([]Candidate, error)
	Commit(ctx context.Context, cand *Candidate) bool
}

// OutcomeSink receives the terminal state of each item as it happens.
type OutcomeSink interface {
	Record(ctx context.Context, outcome models.ItemOutcome)
}

// ItemStarter is an optional OutcomeSink extension notified when an item
// begins processing, before its outcome exists.
type ItemStarter interface {
	StartItem(item string)
}

// Driver walks the whole run: open the storefront, pass the manual login
// checkpoint if needed, then work through the shopping list item by item.
// One item's failure never stops the run; only session infrastructure
// errors are fatal.
type Driver struct {
	runID        string
	front        Storefront
	shopper      ItemShopper
	policy       Policy
	sink         OutcomeSink
	waitForLogin bool
	observeHold  time.Duration
	logger       *slog.Logger
}

func NewDriver(front Storefront, shopper ItemShopper, policy Policy, sink OutcomeSink, waitForLogin bool, observeHold time.Duration, logger *slog.Logger) *Driver {
	runID := uuid.New().String()
	return &Driver{
		runID:        runID,
		front:        front,
		shopper:      shopper,
		policy:       policy,
		sink:         sink,
		waitForLogin: waitForLogin,
		observeHold:  observeHold,
		logger:       logger.With("component", "driver", "run_id", runID),
	}
}

func (d *Driver) RunID() string {
	return d.runID
}

// Run processes items strictly in order and returns one outcome per item.
// Browser teardown belongs to the caller and must run on every exit path.
func (d *Driver) Run(ctx context.Context, items []string) ([]models.ItemOutcome, error) {
	d.logger.Info("starting run", "items", len(items))

	if err := d.front.OpenHome(ctx); err != nil {
		return nil, err
	}

	if d.waitForLogin {
		if d.front.LoggedIn() {
			d.logger.Info("already logged in")
		} else if err := d.front.AwaitLogin(ctx); err != nil {
			return nil, err
		}
	}

	if err := d.front.OpenSection(ctx); err != nil {
		return nil, err
	}

	outcomes := make([]models.ItemOutcome, 0, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		d.logger.Info("processing item", "position", i+1, "item", item)
		if starter, ok := d.sink.(ItemStarter); ok {
			starter.StartItem(item)
		}
		outcome := d.processItem(ctx, item)
		outcomes = append(outcomes, outcome)

		if d.sink != nil {
			d.sink.Record(ctx, outcome)
		}

		// Back to the section root before the next search.
		if i < len(items)-1 {
			if err := d.front.OpenSection(ctx); err != nil {
				return outcomes, err
			}
		}
	}

	d.logger.Info("run complete", "items", len(items))

	if d.observeHold > 0 {
		d.logger.Info("holding session open for observation", "hold", d.observeHold)
		select {
		case <-ctx.Done():
		case <-time.After(d.observeHold):
		}
	}

	return outcomes, nil
}

// processItem always produces a terminal outcome. A panic inside the cycle
// is contained here so that one item cannot take down the rest of the run.
func (d *Driver) processItem(ctx context.Context, item string) (outcome models.ItemOutcome) {
	outcome = models.ItemOutcome{
		RunID:     d.runID,
		Item:      item,
		Status:    models.StatusNoCandidates,
		Timestamp: time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("item cycle panicked", "item", item, "panic", r)
			// A product was already selected, so the failure happened
			// while committing it.
			if outcome.Product != "" {
				outcome.Status = models.StatusCommitFailed
			} else {
				outcome.Status = models.StatusNoCandidates
			}
		}
	}()

	if err := d.shopper.Search(ctx, item); err != nil {
		d.logger.Error("search failed", "item", item, "error", err)
		return outcome
	}

	candidates, err := d.shopper.Collect(ctx)
	if err != nil {
		d.logger.Error("extraction failed", "item", item, "error", err)
		return outcome
	}
	if len(candidates) == 0 {
		d.logger.Warn("no candidates found", "item", item)
		return outcome
	}

	pick := d.policy.Select(candidates)
	if pick == nil {
		d.logger.Warn("no candidate selected", "item", item, "candidates", len(candidates))
		return outcome
	}

	d.logger.Info("selected cheapest",
		"item", item,
		"name", pick.Name,
		"price", pick.Price,
		"delivery", pick.Delivery,
	)

	outcome.Product = pick.Name
	outcome.Price = pick.Price
	outcome.Delivery = pick.Delivery

	if d.shopper.Commit(ctx, pick) {
		outcome.Status = models.StatusAdded
	} else {
		d.logger.Warn("commit failed", "item", item, "name", pick.Name)
		outcome.Status = models.StatusCommitFailed
	}

	return outcome
}
