package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eastlinkgh/connect/internal/usecase"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой в поле detail.
func respondWithError(w http.ResponseWriter, code int, detail string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"detail": detail}, logger)
}

// respondWithUseCaseError маппит ошибки бизнес-логики на таксономию API:
// валидация и конфликты — 400, проблемы авторизации — 401 с единым
// текстом, всё остальное — 500.
func respondWithUseCaseError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case usecase.IsValidation(err),
		errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrBadCredentials):
		respondWithError(w, http.StatusBadRequest, err.Error(), logger)

	case errors.Is(err, usecase.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, usecase.ErrUnauthorized.Error(), logger)

	default:
		logger.Error("request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
