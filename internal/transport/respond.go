package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/booking"
	"github.com/brookfield/admissions/internal/domain/slot"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// respondError maps domain errors onto HTTP status codes. User-actionable
// failures carry their message verbatim; anything unmapped is treated as an
// internal error, logged, and returned generically.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, slot.ErrInvalidInput),
		errors.Is(err, booking.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrDuplicateChild),
		errors.Is(err, slot.ErrSlotBooked),
		errors.Is(err, slot.ErrSlotNotBooked),
		errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrAlreadyScheduled):
		return http.StatusConflict
	case errors.Is(err, application.ErrApplicationNotFound),
		errors.Is(err, slot.ErrSlotNotFound),
		errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, booking.ErrApplicationNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
