package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an error to a status code. Internal details are
// logged, never returned.
func respondWithAppError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		status, message = http.StatusNotFound, appMessage(err)
	case apperrors.ErrorTypeValidation:
		status, message = http.StatusBadRequest, appMessage(err)
	case apperrors.ErrorTypeExternal:
		status, message = http.StatusBadGateway, "upstream dataset API unavailable"
	}

	event := observability.LoggerFromContext(ctx).Warn()
	if status >= http.StatusInternalServerError {
		event = observability.LoggerFromContext(ctx).Error()
	}
	event.Err(err).Int("status", status).Msg("Request failed")

	respondWithError(w, status, message)
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
