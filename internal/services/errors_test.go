package services

import (
	"testing"
	"time"
)

func TestMinutesUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{"exact minutes", now.Add(83 * time.Minute), 83},
		{"rounds up partial minute", now.Add(82*time.Minute + 30*time.Second), 83},
		{"one second remaining", now.Add(time.Second), 1},
		{"already expired", now.Add(-5 * time.Minute), 0},
		{"expires now", now, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MinutesUntil(tc.expiresAt, now); got != tc.want {
				t.Errorf("MinutesUntil() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAlreadyCheckedInError(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		remaining string
	}{
		{"hours and minutes", 83, "1h 23m"},
		{"minutes only", 45, "45m"},
		{"exact hours", 120, "2h 0m"},
		{"zero", 0, "0m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := &AlreadyCheckedInError{SpotName: "Doe Library", MinutesRemaining: tc.minutes}
			if got := err.RemainingString(); got != tc.remaining {
				t.Errorf("RemainingString() = %q, want %q", got, tc.remaining)
			}
		})
	}

	err := &AlreadyCheckedInError{SpotName: "Doe Library", MinutesRemaining: 83}
	want := "already checked in at Doe Library (1h 23m remaining)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
