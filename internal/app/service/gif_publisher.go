package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sifan077/GifBoard/internal/app/model"
)

// GifPublisher publishes gif events to NATS JetStream
type GifPublisher struct {
	js nats.JetStreamContext
}

// NewGifPublisher creates a new gif event publisher
func NewGifPublisher(js nats.JetStreamContext) *GifPublisher {
	return &GifPublisher{js: js}
}

// PublishCreated publishes a created event for gif to the stream
func (p *GifPublisher) PublishCreated(ctx context.Context, gif *model.Gif) error {
	event := model.GifEvent{
		ID:        uuid.New().String(),
		GifID:     gif.ID,
		Name:      gif.Name,
		URL:       gif.URL,
		Likes:     gif.Likes,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal gif event: %w", err)
	}

	if _, err := p.js.Publish(model.GifCreatedSubject, data, nats.Context(ctx), nats.MsgId(event.ID)); err != nil {
		return fmt.Errorf("publish gif event: %w", err)
	}
	return nil
}
