package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"studyspot-backend/internal/gamification"
	"studyspot-backend/internal/repository"
)

type SpotHandler struct {
	spots *repository.SpotRepo
}

func NewSpotHandler(spots *repository.SpotRepo) *SpotHandler {
	return &SpotHandler{spots: spots}
}

func (h *SpotHandler) List(w http.ResponseWriter, r *http.Request) {
	spots, err := h.spots.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load spots", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spots": spots,
	})
}

func (h *SpotHandler) Get(w http.ResponseWriter, r *http.Request) {
	spot, err := h.spots.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Spot not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load spot", r))
		return
	}

	writeJSON(w, http.StatusOK, spot)
}

// Catalog handlers: the static tier and quest tables.

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tiers": gamification.Tiers,
	})
}

func (h *CatalogHandler) Quests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quests": gamification.Quests,
	})
}
