package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyspot-backend/internal/models"
	"studyspot-backend/internal/services"
)

// ─── Service Error Mapping Tests ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"spot_id": "unknown spot"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "duplicate"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "no such check-in"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "bad credentials"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &services.ForbiddenError{Message: "not yours"}, http.StatusForbidden, "FORBIDDEN"},
		{"rate limited", &services.RateLimitError{Message: "slow down"}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"already checked in", &services.AlreadyCheckedInError{SpotName: "Doe Library", MinutesRemaining: 83}, http.StatusConflict, "ALREADY_CHECKED_IN"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", nil)
			req.Header.Set("X-Request-ID", "req-123")

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-123" {
				t.Errorf("Expected request_id 'req-123', got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestHandleServiceError_AlreadyCheckedInFields(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", nil)

	handleServiceError(rr, req, &services.AlreadyCheckedInError{
		SpotName:         "Moffitt Library",
		MinutesRemaining: 83,
	})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Error.Fields["spot_name"] != "Moffitt Library" {
		t.Errorf("Expected spot_name 'Moffitt Library', got %q", resp.Error.Fields["spot_name"])
	}
	if resp.Error.Fields["remaining"] != "1h 23m" {
		t.Errorf("Expected remaining '1h 23m', got %q", resp.Error.Fields["remaining"])
	}
}

// ─── JSON Response Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]interface{}{
		"message": "Account created. You can sign in now.",
		"user_id": "test-uuid",
	})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["user_id"] != "test-uuid" {
		t.Errorf("Expected user_id 'test-uuid', got %v", result["user_id"])
	}
}

func TestErrorRespOmitsEmptyFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/me", nil)
	resp := errorResp("NOT_FOUND", "No stats yet", req)

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if bytes.Contains(data, []byte(`"fields"`)) {
		t.Errorf("Expected fields to be omitted when empty, got %s", data)
	}
}

// ─── Request Parsing Tests ───

func TestCheckInRequestParsing(t *testing.T) {
	body := map[string]interface{}{
		"spot_id":          "doe-library",
		"duration_minutes": 120,
		"status":           "open",
		"status_note":      "working on CS61B",
	}
	jsonBody, _ := json.Marshal(body)

	var req models.CheckInRequest
	if err := json.NewDecoder(bytes.NewReader(jsonBody)).Decode(&req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.SpotID != "doe-library" {
		t.Errorf("Expected spot_id 'doe-library', got %q", req.SpotID)
	}
	if req.DurationMinutes != 120 {
		t.Errorf("Expected duration_minutes 120, got %d", req.DurationMinutes)
	}
	if req.Status != models.CheckInStatusOpen {
		t.Errorf("Expected status 'open', got %q", req.Status)
	}
	if req.StatusNote == nil || *req.StatusNote != "working on CS61B" {
		t.Errorf("Expected status_note 'working on CS61B', got %v", req.StatusNote)
	}
}

func TestRegisterRequestParsing(t *testing.T) {
	body := map[string]string{
		"email":    "test@berkeley.edu",
		"username": "night_owl",
		"password": "StrongPass123!",
	}
	jsonBody, _ := json.Marshal(body)

	var req models.RegisterRequest
	if err := json.NewDecoder(bytes.NewReader(jsonBody)).Decode(&req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.Email != "test@berkeley.edu" {
		t.Errorf("Expected email 'test@berkeley.edu', got %q", req.Email)
	}
	if req.Username != "night_owl" {
		t.Errorf("Expected username 'night_owl', got %q", req.Username)
	}
}
