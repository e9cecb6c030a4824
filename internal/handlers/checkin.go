package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyspot-backend/internal/middleware"
	"studyspot-backend/internal/models"
	"studyspot-backend/internal/services"
)

type CheckInHandler struct {
	checkIns *services.CheckInService
}

func NewCheckInHandler(checkIns *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkIns: checkIns}
}

func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	checkIn, err := h.checkIns.RequestCheckIn(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"check_in": checkIn,
	})
}

func (h *CheckInHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	checkInID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid check-in ID", r))
		return
	}

	result, err := h.checkIns.CheckOut(r.Context(), checkInID, userID, true)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if result.Session == nil {
		// Already closed; checkout is idempotent.
		writeJSON(w, http.StatusOK, map[string]string{"message": "Check-in already closed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *CheckInHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	checkIn, err := h.checkIns.ActiveForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"check_in": checkIn,
	})
}

func (h *CheckInHandler) ListBySpot(w http.ResponseWriter, r *http.Request) {
	spotID := chi.URLParam(r, "id")

	checkIns, err := h.checkIns.ActiveAtSpot(r.Context(), spotID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if checkIns == nil {
		checkIns = []models.CheckIn{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"check_ins": checkIns,
	})
}
