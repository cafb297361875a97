package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondErrorMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Duplicate
// events answer 200 so the gateway stops redelivering.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEvent):
		respondMessage(w, http.StatusOK, "Duplicate event")
	case errors.Is(err, domain.ErrUnauthenticated):
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		respondErrorMessage(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, domain.ErrNotFound):
		respondErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrLimitExceeded):
		respondErrorMessage(w, http.StatusBadRequest, err.Error())
	case domain.IsGatewayError(err):
		respondErrorMessage(w, http.StatusBadGateway, "payment gateway unavailable")
	default:
		logger.Error("Unhandled request error", "error", err)
		respondErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
