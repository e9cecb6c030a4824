package services

import (
	"fmt"
	"time"
)

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// AlreadyCheckedInError rejects a check-in while another one is live. It
// carries the competing spot's name and the time left so the caller can
// render a useful conflict message.
type AlreadyCheckedInError struct {
	SpotName         string
	MinutesRemaining int
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("already checked in at %s (%s remaining)", e.SpotName, e.RemainingString())
}

// RemainingString formats the time left as hours and minutes for display.
func (e *AlreadyCheckedInError) RemainingString() string {
	h := e.MinutesRemaining / 60
	m := e.MinutesRemaining % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// MinutesUntil computes ceil((expiresAt - now) / 1 minute), never below zero.
func MinutesUntil(expiresAt, now time.Time) int {
	d := expiresAt.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}
