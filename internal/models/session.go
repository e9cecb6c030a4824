package models

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is the immutable record produced when a check-in closes.
// Exactly one is written per closure; it is never mutated or deleted.
type StudySession struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	SpotID            string    `json:"spot_id"`
	Status            string    `json:"status"`
	StatusNote        *string   `json:"status_note,omitempty"`
	StartedAt         time.Time `json:"started_at"`
	EndedAt           time.Time `json:"ended_at"`
	DurationMinutes   int       `json:"duration_minutes"`
	WasManualCheckout bool      `json:"was_manual_checkout"`
	CreatedAt         time.Time `json:"created_at"`
}
