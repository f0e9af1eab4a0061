// Package events publishes item outcomes to a Redis stream so other
// services (notifiers, dashboards) can react to cart activity live. The
// publisher is optional: when Redis is not configured it is nil and
// every call is a no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/artemdev/ozon-cart-bot/internal/models"
)

// EventType labels a stream entry.
type EventType string

const EventTypeItemOutcome EventType = "ITEM_OUTCOME"

// RedisClient is the subset of the Redis API the publisher needs.
type RedisClient interface {
	XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd
	Close() error
}

type Publisher struct {
	redis  RedisClient
	stream string
	logger *slog.Logger
}

// New connects to Redis and verifies the connection. An empty address
// returns a nil publisher, which is safe to use.
func New(ctx context.Context, addr, stream string, logger *slog.Logger) (*Publisher, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewWithClient(client, stream, logger), nil
}

// NewWithClient wraps an existing client, mainly for tests.
func NewWithClient(client RedisClient, stream string, logger *slog.Logger) *Publisher {
	return &Publisher{
		redis:  client,
		stream: stream,
		logger: logger.With("component", "event_publisher"),
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.redis.Close()
}

// PublishOutcome appends one outcome to the stream. A publish failure is
// logged and swallowed: eventing must never break a shopping run.
func (p *Publisher) PublishOutcome(ctx context.Context, outcome models.ItemOutcome) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(outcome)
	if err != nil {
		p.logger.Error("failed to marshal outcome", "item", outcome.Item, "error", err)
		return
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"id":        uuid.New().String(),
			"data":      string(payload),
			"type":      string(EventTypeItemOutcome),
			"run_id":    outcome.RunID,
			"item":      outcome.Item,
			"status":    string(outcome.Status),
			"timestamp": fmt.Sprintf("%d", outcome.Timestamp.UnixNano()),
		},
	}

	if _, err := p.redis.XAdd(ctx, args).Result(); err != nil {
		p.logger.Error("failed to publish outcome", "item", outcome.Item, "error", err)
		return
	}

	p.logger.Debug("outcome published",
		"stream", p.stream,
		"item", outcome.Item,
		"status", outcome.Status,
	)
}
