package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// maxMessageBytes caps a single chat message; anything larger is not a
// conversation turn.
const maxMessageBytes = 4096

// ValidateMessageContent validates a chat message body.
func ValidateMessageContent(content string) error {
	if len(content) == 0 {
		return errors.New("content cannot be empty")
	}
	if len(content) > maxMessageBytes {
		return errors.New("content exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("content must be valid UTF-8")
	}
	return nil
}

// ValidateSessionID validates a session ID.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}

// ValidateLeadID validates a lead ID.
func ValidateLeadID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid lead ID format")
	}
	return nil
}

// ValidateCopilotSessionID validates a copilot session key. Copilot
// sessions are named by the seller, not generated, so any short
// non-empty UTF-8 string is accepted.
func ValidateCopilotSessionID(id string) error {
	if len(id) == 0 {
		return errors.New("session ID cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("session ID exceeds maximum length")
	}
	if !utf8.ValidString(id) {
		return errors.New("session ID must be valid UTF-8")
	}
	return nil
}
