package models

import (
	"time"

	"github.com/google/uuid"
)

// Check-in visibility statuses. "open" invites co-study; "solo" signals
// heads-down time.
const (
	CheckInStatusOpen = "open"
	CheckInStatusSolo = "solo"
)

// MaxStatusNoteLen bounds the free-text note attached to a check-in.
const MaxStatusNoteLen = 120

// CheckIn is a user's declared, time-bounded presence at a study spot.
// Expiry is passive: readers must treat expires_at <= now as inactive even
// when is_active has not been flipped yet.
type CheckIn struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	SpotID     string    `json:"spot_id"`
	Status     string    `json:"status"`
	StatusNote *string   `json:"status_note,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsActive   bool      `json:"is_active"`
}

// Live reports whether the check-in counts as active at the given instant.
func (c *CheckIn) Live(now time.Time) bool {
	return c.IsActive && c.ExpiresAt.After(now)
}

type CheckInRequest struct {
	SpotID          string  `json:"spot_id"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	StatusNote      *string `json:"status_note,omitempty"`
}
