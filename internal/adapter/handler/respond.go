package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"whenavailable/internal/core/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, key, message string) {
	writeJSON(w, status, errorResponse{Error: key, Message: message})
}

// mapError translates domain errors into the HTTP contract. 410 is used
// deliberately over 404 for things that existed but are no longer usable.
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, "invalid_selection", err.Error())
	case errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrSlotExpired):
		writeError(w, http.StatusGone, "expired", err.Error())
	case errors.Is(err, domain.ErrSlotFullyBooked):
		writeError(w, http.StatusGone, "fully_booked", err.Error())
	case errors.Is(err, domain.ErrSlotTaken):
		writeError(w, http.StatusGone, "slot_taken", err.Error())
	case errors.Is(err, domain.ErrBookingCancelled):
		writeError(w, http.StatusGone, "already_cancelled", err.Error())
	case errors.Is(err, domain.ErrRescheduleLimit):
		writeError(w, http.StatusForbidden, "reschedule_limit_reached", err.Error())
	default:
		log.Printf("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
