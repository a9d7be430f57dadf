package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of session events
type EventType string

const (
	EventSessionStarted   EventType = "session.started"
	EventSessionSubmitted EventType = "session.submitted"
	EventSessionExpired   EventType = "session.expired"
)

// SessionEvent is the base event structure for all session events
type SessionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SessionStartedEvent is emitted when a user dismisses the tutorial and the
// countdown begins.
type SessionStartedEvent struct {
	SessionID       string `json:"session_id"`
	UserID          string `json:"user_id"`
	CatalogID       string `json:"catalog_id"`
	TestKind        string `json:"test_kind"`
	DurationSeconds int    `json:"duration_seconds"`
}

// SessionSubmittedEvent is emitted on either submission path; Trigger
// distinguishes manual submits from timer expiry.
type SessionSubmittedEvent struct {
	SessionID       string  `json:"session_id"`
	UserID          string  `json:"user_id"`
	CatalogID       string  `json:"catalog_id"`
	TestKind        string  `json:"test_kind"`
	Trigger         string  `json:"trigger"`
	CorrectCount    int     `json:"correct_count"`
	TotalCount      int     `json:"total_count"`
	AccuracyPercent float64 `json:"accuracy_percent"`
	BandEstimate    float64 `json:"band_estimate"`
	AnsweredCount   int     `json:"answered_count"`
}

// NewSessionEvent wraps a payload in the event envelope.
func NewSessionEvent(eventType EventType, data interface{}) *SessionEvent {
	return &SessionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "practice-service",
		Version:   "1.0",
		Data:      data,
	}
}
