package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eastlinkgh/connect/internal/usecase"
)

// AuthHandler — обработчик HTTP-запросов регистрации и входа.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// Register — POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.authUseCase.Register(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, result, h.logger)
}

// Login — POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.authUseCase.Login(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, result, h.logger)
}

// Me — GET /auth/me (за Authenticator-ом)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, usecase.ErrUnauthorized.Error(), h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// followRequest — тело PATCH /auth/follow: полный список городов,
// заменяющий текущие подписки.
type followRequest struct {
	Towns []string `json:"towns"`
}

// Follow — PATCH /auth/follow (за Authenticator-ом)
func (h *AuthHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, usecase.ErrUnauthorized.Error(), h.logger)
		return
	}

	var req followRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	updated, err := h.authUseCase.UpdateFollows(r.Context(), user.ID.Hex(), req.Towns)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, updated, h.logger)
}
