package model

import (
	"time"
)

// EventType identifies a conversation lifecycle event published to the
// event bus.
type EventType string

const (
	EventConversationStarted EventType = "conversation.started"
	EventConversationEnded   EventType = "conversation.ended"
	EventLeadCreated         EventType = "lead.created"
	EventLeadQualified       EventType = "lead.qualified"
	EventObjectionDetected   EventType = "objection.detected"
	EventPhaseChanged        EventType = "phase.changed"
	EventDemoRequested       EventType = "demo.requested"
)

// EventTypes lists every recognized event type.
var EventTypes = []EventType{
	EventConversationStarted,
	EventConversationEnded,
	EventLeadCreated,
	EventLeadQualified,
	EventObjectionDetected,
	EventPhaseChanged,
	EventDemoRequested,
}

// ConversationEvent is a structured event emitted during a conversation.
type ConversationEvent struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
