package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/sifan077/GifBoard/internal/app/model"
	"go.uber.org/zap"
)

// CacheInvalidator drops cached list snapshots.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// GifEventConsumer keeps this replica's list cache coherent with writes made
// by any replica. Each instance gets its own ephemeral subscription so every
// replica sees every event.
type GifEventConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	cache  CacheInvalidator
	sub    *nats.Subscription
}

// NewGifEventConsumer creates a new gif event consumer
func NewGifEventConsumer(js nats.JetStreamContext, logger *zap.Logger, cache CacheInvalidator) *GifEventConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GifEventConsumer{js: js, logger: logger, cache: cache}
}

// Start subscribes to new gif events. The stream must already exist.
func (c *GifEventConsumer) Start() error {
	sub, err := c.js.Subscribe(model.GifCreatedSubject, c.onMessage,
		nats.DeliverNew(),
		nats.ManualAck(),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	c.sub = sub
	return nil
}

// Stop removes the subscription.
func (c *GifEventConsumer) Stop() error {
	if c.sub == nil {
		return nil
	}
	return c.sub.Unsubscribe()
}

func (c *GifEventConsumer) onMessage(msg *nats.Msg) {
	if err := c.handle(context.Background(), msg.Data); err != nil {
		c.logger.Error("failed to handle gif event", zap.Error(err))
		_ = msg.Nak()
		return
	}
	_ = msg.Ack()
}

func (c *GifEventConsumer) handle(ctx context.Context, data []byte) error {
	var event model.GifEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// still a write happened somewhere; invalidate regardless
		c.logger.Warn("failed to unmarshal gif event", zap.Error(err))
	}

	if c.cache != nil {
		if err := c.cache.Invalidate(ctx); err != nil {
			return fmt.Errorf("invalidate gif list cache: %w", err)
		}
	}

	c.logger.Debug("gif event received",
		zap.String("id", event.ID),
		zap.Uint("gif_id", event.GifID),
		zap.String("name", event.Name),
		zap.Time("timestamp", event.Timestamp),
	)
	return nil
}
