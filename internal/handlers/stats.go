package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"studyspot-backend/internal/gamification"
	"studyspot-backend/internal/middleware"
	"studyspot-backend/internal/models"
	"studyspot-backend/internal/repository"
)

type StatsHandler struct {
	stats    *repository.StatsRepo
	sessions *repository.SessionRepo
}

func NewStatsHandler(stats *repository.StatsRepo, sessions *repository.SessionRepo) *StatsHandler {
	return &StatsHandler{stats: stats, sessions: sessions}
}

func (h *StatsHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.stats.Get(r.Context(), userID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No sessions yet; render the zero aggregate rather than a 404.
		stats = &models.UserStats{
			UserID:         userID,
			SpotStats:      map[string]models.SpotStat{},
			MonthlyMinutes: map[string]int{},
		}
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Badges(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.stats.Get(r.Context(), userID)
	if errors.Is(err, pgx.ErrNoRows) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"earned":  []gamification.Badge{},
			"catalog": gamification.Badges,
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"earned":  gamification.EarnedBadges(stats),
		"catalog": gamification.Badges,
	})
}

func (h *StatsHandler) Tier(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	totalXP := 0
	stats, err := h.stats.Get(r.Context(), userID)
	if err == nil {
		totalXP = stats.TotalXP
	} else if !errors.Is(err, pgx.ErrNoRows) {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}

	writeJSON(w, http.StatusOK, gamification.TierDisplayForXP(totalXP))
}

func (h *StatsHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	sessions, err := h.sessions.ListByUser(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load sessions", r))
		return
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}
