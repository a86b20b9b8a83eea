// Package model defines data structures for the sales agent platform.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Phase is a named stage in the scripted sales dialogue.
type Phase string

const (
	PhaseGreeting          Phase = "greeting"
	PhaseDiscovery         Phase = "discovery"
	PhaseQualification     Phase = "qualification"
	PhasePresentation      Phase = "presentation"
	PhaseObjectionHandling Phase = "objection_handling"
	PhaseClosing           Phase = "closing"
	PhaseFollowUp          Phase = "follow_up"
)

// Phases lists all recognized phases in dialogue order.
var Phases = []Phase{
	PhaseGreeting,
	PhaseDiscovery,
	PhaseQualification,
	PhasePresentation,
	PhaseObjectionHandling,
	PhaseClosing,
	PhaseFollowUp,
}

// ValidPhase reports whether p is a recognized phase.
func ValidPhase(p Phase) bool {
	for _, known := range Phases {
		if p == known {
			return true
		}
	}
	return false
}

// Conversation holds the ordered message log and dialogue state for one
// session. TurnCount increments once per user message, never per assistant
// message.
type Conversation struct {
	SessionID    string    `json:"session_id"`
	Phase        Phase     `json:"phase"`
	PhaseHistory []Phase   `json:"phase_history"`
	TurnCount    int       `json:"turn_count"`
	Messages     []Message `json:"messages"`
}

// NewConversation creates a conversation in the greeting phase, seeded with
// the given system prompt.
func NewConversation(sessionID, systemPrompt string) *Conversation {
	c := &Conversation{
		SessionID: sessionID,
		Phase:     PhaseGreeting,
	}
	c.append(RoleSystem, systemPrompt)
	return c
}

func (c *Conversation) append(role Role, content string) Message {
	msg := Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		SessionID: c.SessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// AddUserMessage appends a user message and increments the turn count.
func (c *Conversation) AddUserMessage(content string) Message {
	c.TurnCount++
	return c.append(RoleUser, content)
}

// AddAssistantMessage appends an assistant message. The turn count is not
// affected.
func (c *Conversation) AddAssistantMessage(content string) Message {
	return c.append(RoleAssistant, content)
}

// Transition moves the conversation to a new phase, recording the previous
// phase in the history. Transitioning to the current phase is a no-op.
func (c *Conversation) Transition(next Phase) bool {
	if next == c.Phase || !ValidPhase(next) {
		return false
	}
	c.PhaseHistory = append(c.PhaseHistory, c.Phase)
	c.Phase = next
	return true
}

// Reset truncates the log back to the seeded system message and returns the
// conversation to the greeting phase.
func (c *Conversation) Reset() {
	if len(c.Messages) > 0 && c.Messages[0].Role == RoleSystem {
		c.Messages = c.Messages[:1]
	} else {
		c.Messages = nil
	}
	c.Phase = PhaseGreeting
	c.PhaseHistory = nil
	c.TurnCount = 0
}

// LastMessages returns the trailing n messages of the log.
func (c *Conversation) LastMessages(n int) []Message {
	if len(c.Messages) <= n {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-n:]
}

// ConversationSummary is a point-in-time digest of a conversation.
type ConversationSummary struct {
	SessionID          string  `json:"session_id"`
	TotalTurns         int     `json:"total_turns"`
	CurrentPhase       Phase   `json:"current_phase"`
	PhasesVisited      []Phase `json:"phases_visited"`
	UserMessages       int     `json:"user_messages"`
	AssistantMessages  int     `json:"assistant_messages"`
	DurationSeconds    int     `json:"duration_seconds"`
	EngagementScore    float64 `json:"engagement_score"`
	QualificationScore float64 `json:"qualification_score"`
}

// Summarize computes the summary for the current state of the log.
func (c *Conversation) Summarize() ConversationSummary {
	s := ConversationSummary{
		SessionID:     c.SessionID,
		TotalTurns:    c.TurnCount,
		CurrentPhase:  c.Phase,
		PhasesVisited: c.PhaseHistory,
	}
	for _, m := range c.Messages {
		switch m.Role {
		case RoleUser:
			s.UserMessages++
		case RoleAssistant:
			s.AssistantMessages++
		}
	}
	if len(c.Messages) > 0 {
		s.DurationSeconds = int(time.Since(c.Messages[0].CreatedAt).Seconds())
	}
	return s
}
