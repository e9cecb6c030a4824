package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studyspot-backend/internal/gamification"
	"studyspot-backend/internal/models"
	"studyspot-backend/internal/repository"
)

// Check-in windows outside this range are rejected before any write.
const (
	MinCheckInMinutes = 15
	MaxCheckInMinutes = 12 * 60
)

// CheckInService owns the check-in lifecycle: opening a presence, closing
// it (manually or via the sweeper), recording the immutable session, and
// folding it into the user's aggregate.
type CheckInService struct {
	checkIns *repository.CheckInRepo
	sessions *repository.SessionRepo
	stats    *repository.StatsRepo
	spots    *repository.SpotRepo
	dailyXP  *DailyXPCounter
	events   *EventPublisher
	now      func() time.Time
	loc      *time.Location
}

func NewCheckInService(
	checkIns *repository.CheckInRepo,
	sessions *repository.SessionRepo,
	stats *repository.StatsRepo,
	spots *repository.SpotRepo,
	dailyXP *DailyXPCounter,
	events *EventPublisher,
	loc *time.Location,
) *CheckInService {
	return &CheckInService{
		checkIns: checkIns,
		sessions: sessions,
		stats:    stats,
		spots:    spots,
		dailyXP:  dailyXP,
		events:   events,
		now:      time.Now,
		loc:      loc,
	}
}

// CheckOutResult is the checkout response: the recorded session plus the
// live-scorer award for display.
type CheckOutResult struct {
	Session *models.StudySession         `json:"session"`
	XP      *gamification.ScoreBreakdown `json:"xp,omitempty"`
}

// RequestCheckIn opens a new presence. It fails with AlreadyCheckedInError
// when the user has a live check-in elsewhere, naming the competing spot
// and the time remaining.
func (s *CheckInService) RequestCheckIn(ctx context.Context, userID uuid.UUID, req models.CheckInRequest) (*models.CheckIn, error) {
	if err := validateCheckInRequest(req); err != nil {
		return nil, err
	}

	spot, err := s.spots.GetByID(ctx, req.SpotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Spot not found"}
		}
		return nil, err
	}

	now := s.now()
	if existing, err := s.checkIns.GetActiveByUser(ctx, userID); err == nil {
		return nil, s.conflict(ctx, existing, now)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	checkIn := &models.CheckIn{
		UserID:     userID,
		SpotID:     spot.ID,
		Status:     req.Status,
		StatusNote: req.StatusNote,
		StartedAt:  now,
		ExpiresAt:  now.Add(time.Duration(req.DurationMinutes) * time.Minute),
	}

	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		// Two simultaneous requests can both pass the pre-check; the partial
		// unique index decides the winner and the loser re-reads the row.
		if errors.Is(err, repository.ErrDuplicateActive) {
			if existing, lookupErr := s.checkIns.GetActiveByUser(ctx, userID); lookupErr == nil {
				return nil, s.conflict(ctx, existing, s.now())
			}
			return nil, &ConflictError{Message: "You are already checked in elsewhere"}
		}
		return nil, err
	}

	s.events.PublishSpot(ctx, spot.ID, models.WSMessage{Type: EventCheckInOpened, Payload: checkIn})
	return checkIn, nil
}

// CheckOut closes a check-in and records its session. Closing an already
// inactive check-in is a no-op, not an error; only the call that actually
// flips the flag records a session, so retries never double-count.
func (s *CheckInService) CheckOut(ctx context.Context, checkInID, userID uuid.UUID, manual bool) (*CheckOutResult, error) {
	checkIn, err := s.checkIns.GetByID(ctx, checkInID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Check-in not found"}
		}
		return nil, err
	}
	if checkIn.UserID != userID {
		return nil, &ForbiddenError{Message: "Not your check-in"}
	}

	closed, wasActive, err := s.checkIns.Deactivate(ctx, checkInID)
	if err != nil {
		return nil, err
	}
	if !wasActive {
		return &CheckOutResult{}, nil
	}

	return s.recordSession(ctx, closed, manual)
}

// RecordExpired closes an expired check-in on behalf of the sweeper and
// records its session as an automatic checkout.
func (s *CheckInService) RecordExpired(ctx context.Context, checkInID uuid.UUID) error {
	closed, wasActive, err := s.checkIns.Deactivate(ctx, checkInID)
	if err != nil {
		return err
	}
	if !wasActive {
		return nil
	}
	_, err = s.recordSession(ctx, closed, false)
	return err
}

// ActiveForUser returns the caller's live check-in, or NotFoundError.
func (s *CheckInService) ActiveForUser(ctx context.Context, userID uuid.UUID) (*models.CheckIn, error) {
	checkIn, err := s.checkIns.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "No active check-in"}
		}
		return nil, err
	}
	return checkIn, nil
}

// ActiveAtSpot lists the live presences at one spot.
func (s *CheckInService) ActiveAtSpot(ctx context.Context, spotID string) ([]models.CheckIn, error) {
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Spot not found"}
		}
		return nil, err
	}
	return s.checkIns.ListActiveBySpot(ctx, spotID)
}

// recordSession is the one-write-one-aggregate step: persist the immutable
// session, then fold it into UserStats under the row lock. The live scorer
// runs afterwards for display and the daily counter.
func (s *CheckInService) recordSession(ctx context.Context, checkIn *models.CheckIn, manual bool) (*CheckOutResult, error) {
	now := s.now()
	session := &models.StudySession{
		UserID:            checkIn.UserID,
		SpotID:            checkIn.SpotID,
		Status:            checkIn.Status,
		StatusNote:        checkIn.StatusNote,
		StartedAt:         checkIn.StartedAt,
		EndedAt:           now,
		DurationMinutes:   SessionDuration(checkIn.StartedAt, now),
		WasManualCheckout: manual,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	firstToday := false
	updated, err := s.stats.Update(ctx, checkIn.UserID, func(prev *models.UserStats) *models.UserStats {
		next, first := ApplySession(prev, checkIn.UserID, checkIn.SpotID, session.DurationMinutes, now, s.loc)
		firstToday = first
		return next
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	breakdown := gamification.ScoreSession(gamification.ScoreInput{
		DurationMinutes:     session.DurationMinutes,
		HasStatusNote:       session.StatusNote != nil && *session.StatusNote != "",
		IsCoStudy:           session.Status == models.CheckInStatusOpen,
		IsFirstSessionToday: firstToday,
		DailyXPSoFar:        s.dailyXP.Get(ctx, checkIn.UserID, now),
	})
	if err := s.dailyXP.Add(ctx, checkIn.UserID, now, breakdown.FinalXP); err != nil {
		// Display-path counter only; the persisted aggregate is already safe.
		log.Printf("daily xp counter update failed for user %s: %v", checkIn.UserID, err)
	}

	s.events.PublishSpot(ctx, checkIn.SpotID, models.WSMessage{Type: EventCheckInClosed, Payload: checkIn.ID})
	s.events.PublishUser(ctx, checkIn.UserID, models.WSMessage{Type: EventStatsUpdated, Payload: updated})

	return &CheckOutResult{Session: session, XP: &breakdown}, nil
}

// conflict builds the AlreadyCheckedIn response, degrading the spot name to
// a placeholder when the directory lookup fails.
func (s *CheckInService) conflict(ctx context.Context, existing *models.CheckIn, now time.Time) error {
	spotName := "Unknown Location"
	if spot, err := s.spots.GetByID(ctx, existing.SpotID); err == nil {
		spotName = spot.Name
	}
	return &AlreadyCheckedInError{
		SpotName:         spotName,
		MinutesRemaining: MinutesUntil(existing.ExpiresAt, now),
	}
}

func validateCheckInRequest(req models.CheckInRequest) error {
	fields := make(map[string]string)

	if req.SpotID == "" {
		fields["spot_id"] = "Spot is required"
	}
	if req.DurationMinutes < MinCheckInMinutes || req.DurationMinutes > MaxCheckInMinutes {
		fields["duration_minutes"] = fmt.Sprintf("Duration must be between %d and %d minutes", MinCheckInMinutes, MaxCheckInMinutes)
	}
	if req.Status != models.CheckInStatusOpen && req.Status != models.CheckInStatusSolo {
		fields["status"] = "Status must be open or solo"
	}
	if req.StatusNote != nil && len(*req.StatusNote) > models.MaxStatusNoteLen {
		fields["status_note"] = fmt.Sprintf("Note must be at most %d characters", models.MaxStatusNoteLen)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
