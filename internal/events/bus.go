// Package events publishes conversation lifecycle events. The production
// bus is NATS JetStream; a noop bus keeps the agent usable without a
// broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// Bus publishes conversation events.
type Bus interface {
	Publish(ctx context.Context, event *model.ConversationEvent) error
	Close()
}

// NewEvent builds a conversation event with a fresh UUIDv7 id.
func NewEvent(sessionID string, eventType model.EventType, data map[string]any) *model.ConversationEvent {
	return &model.ConversationEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		SessionID: sessionID,
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

// Noop discards every event.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Publish(context.Context, *model.ConversationEvent) error { return nil }
func (n *Noop) Close()                                                  {}
