package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fleetdesk-backend/internal/dates"
	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/logger"
	"fleetdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is a 500 and gets logged with the request path.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *domain.ValidationError
	var overlap *domain.RentalOverlapError

	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Message, Field: validation.Field})
	case errors.As(err, &overlap):
		respondJSON(w, http.StatusConflict, errorResponse{Error: overlap.Error()})
	case errors.Is(err, domain.ErrAlreadySettled),
		errors.Is(err, domain.ErrCarRented),
		errors.Is(err, domain.ErrCarDefleeted):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	default:
		logger.Error("request failed", "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "malformed JSON: %v", err)
	}
	return nil
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return int32(id), nil
}

// queryDate reads an optional yyyy-mm-dd query parameter, defaulting to the
// zero time (services substitute today).
func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(name, "must be a yyyy-mm-dd date")
	}
	return d, nil
}

// requiredDate parses a yyyy-mm-dd body field.
func requiredDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.NewValidationError(field, "date is required")
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a yyyy-mm-dd date")
	}
	return d, nil
}

// optionalDate parses a yyyy-mm-dd body field that may be absent.
func optionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a yyyy-mm-dd date")
	}
	return &d, nil
}
