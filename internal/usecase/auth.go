package usecase

import (
	"context"

	"github.com/eastlinkgh/connect/internal/domain"
)

// RegisterInput — данные регистрации нового пользователя.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginInput — данные входа.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult — ответ register/login: bearer-токен и публичный пользователь.
type AuthResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// AuthUseCase — регистрация, вход и разрешение личности по токену.
type AuthUseCase interface {
	// Register создаёт пользователя и сразу выдаёт токен.
	// Повторный email — ErrEmailTaken.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// Login проверяет учётные данные и выдаёт токен.
	// Неверная пара email/пароль — ErrBadCredentials, без уточнения.
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)

	// ResolveUser разрешает bearer-токен в текущего пользователя.
	// Любой отказ (битый токен, пользователь исчез) — ErrUnauthorized.
	ResolveUser(ctx context.Context, token string) (*domain.User, error)

	// UpdateFollows полностью заменяет список подписанных городов.
	UpdateFollows(ctx context.Context, userID string, towns []string) (*domain.User, error)
}
