package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eastlinkgh/connect/internal/auth"
	"github.com/eastlinkgh/connect/internal/core/ports"
	"github.com/eastlinkgh/connect/internal/domain"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	users    ports.UserStore
	hasher   *auth.Hasher
	tokens   *auth.TokenIssuer
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthUseCase создаёт новый экземпляр AuthUseCase.
func NewAuthUseCase(
	users ports.UserStore,
	hasher *auth.Hasher,
	tokens *auth.TokenIssuer,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *authUseCase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}

	// Проверка занятости email. Гонку двух одновременных регистраций
	// окончательно закрывает уникальный индекс в базе.
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := uc.now().UTC()
	user := &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: hashed,
		Avatar:         in.Avatar,
		Follows:        []string{},
		Role:           domain.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := uc.users.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	uc.logger.Info("user registered", "user_id", id)
	return uc.issueFor(user)
}

func (uc *authUseCase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}

	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.HashedPassword) {
		return nil, ErrBadCredentials
	}

	uc.logger.Info("user logged in", "user_id", user.ID.Hex())
	return uc.issueFor(user)
}

func (uc *authUseCase) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	subject, err := uc.tokens.Verify(token, uc.now())
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := uc.users.GetByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	return user, nil
}

func (uc *authUseCase) UpdateFollows(ctx context.Context, userID string, towns []string) (*domain.User, error) {
	user, err := uc.users.ReplaceFollows(ctx, userID, towns)
	if err != nil {
		return nil, fmt.Errorf("update follows: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (uc *authUseCase) issueFor(user *domain.User) (*AuthResult, error) {
	token, err := uc.tokens.Issue(user.ID.Hex(), uc.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
