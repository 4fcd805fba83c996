package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eastlinkgh/connect/internal/domain"
	"github.com/eastlinkgh/connect/internal/handler"
	"github.com/eastlinkgh/connect/internal/messaging/payloads"
	"github.com/eastlinkgh/connect/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*usecase.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, in usecase.LoginInput) (*usecase.AuthResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*usecase.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthUseCase) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockAuthUseCase) UpdateFollows(ctx context.Context, userID string, towns []string) (*domain.User, error) {
	args := m.Called(ctx, userID, towns)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type MockDirectoryUseCase struct {
	mock.Mock
}

func (m *MockDirectoryUseCase) CreateBusiness(ctx context.Context, in domain.Business) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryUseCase) ListBusinesses(ctx context.Context, q, town, category string, limit int64) ([]domain.Document, error) {
	args := m.Called(ctx, q, town, category, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *MockDirectoryUseCase) CreateProduct(ctx context.Context, in domain.Product) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryUseCase) ListProducts(ctx context.Context, businessID, q string, limit int64) ([]domain.Document, error) {
	args := m.Called(ctx, businessID, q, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *MockDirectoryUseCase) CreateAttraction(ctx context.Context, in domain.Attraction) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryUseCase) ListAttractions(ctx context.Context, q, town string, limit int64) ([]domain.Document, error) {
	args := m.Called(ctx, q, town, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *MockDirectoryUseCase) CreateReview(ctx context.Context, in domain.Review) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryUseCase) ListReviews(ctx context.Context, targetType, targetID string, limit int64) ([]domain.Document, error) {
	args := m.Called(ctx, targetType, targetID, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *MockDirectoryUseCase) CreateUpdate(ctx context.Context, in domain.Update) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryUseCase) ListUpdates(ctx context.Context, town, category, q string, limit int64) ([]domain.Document, error) {
	args := m.Called(ctx, town, category, q, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *MockDirectoryUseCase) Stories(ctx context.Context, towns string, limit int64) ([]domain.Document, error) {
	args := m.Called(ctx, towns, limit)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *MockDirectoryUseCase) TallyTownActivity(ctx context.Context, payload payloads.UpdatePostedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// testRouter собирает маршруты так же, как боевой сервер.
func testRouter(authMock *MockAuthUseCase, dirMock *MockDirectoryUseCase) http.Handler {
	logger := testLogger()
	authHandler := handler.NewAuthHandler(authMock, logger)
	directoryHandler := handler.NewDirectoryHandler(dirMock, logger)
	requireUser := handler.Authenticator(authMock, logger)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/stories", directoryHandler.Stories)
	r.Get("/api/businesses", directoryHandler.ListBusinesses)
	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/auth/me", authHandler.Me)
		r.Patch("/auth/follow", authHandler.Follow)
		r.Post("/api/reviews", directoryHandler.CreateReview)
	})
	return r
}

func currentUser() *domain.User {
	return &domain.User{
		ID:             primitive.NewObjectID(),
		Name:           "Ama Mensah",
		Email:          "ama@example.com",
		HashedPassword: "$2a$10$secret-hash-never-shown",
		Follows:        []string{"Koforidua"},
		Role:           domain.RoleUser,
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("Duplicate email returns 400", func(t *testing.T) {
		authMock := &MockAuthUseCase{}
		authMock.On("Register", mock.Anything, mock.Anything).Return(nil, usecase.ErrEmailTaken)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"name":"A","email":"a@b.com","password":"pw"}`))
		rec := httptest.NewRecorder()
		testRouter(authMock, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"Email already registered"}`, rec.Body.String())
	})

	t.Run("Successful registration returns token and user without hash", func(t *testing.T) {
		user := currentUser()
		authMock := &MockAuthUseCase{}
		authMock.On("Register", mock.Anything, usecase.RegisterInput{
			Name:     "Ama Mensah",
			Email:    "ama@example.com",
			Password: "pw",
		}).Return(&usecase.AuthResult{
			AccessToken: "signed-token",
			TokenType:   "bearer",
			User:        user,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"name":"Ama Mensah","email":"ama@example.com","password":"pw"}`))
		rec := httptest.NewRecorder()
		testRouter(authMock, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `"access_token":"signed-token"`)
		assert.NotContains(t, body, "hashed_password")
		assert.NotContains(t, body, user.HashedPassword)
	})

	t.Run("Broken body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		testRouter(&MockAuthUseCase{}, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	authMock := &MockAuthUseCase{}
	authMock.On("Login", mock.Anything, mock.Anything).Return(nil, usecase.ErrBadCredentials)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	testRouter(authMock, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Incorrect email or password"}`, rec.Body.String())
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("Missing token returns uniform 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		testRouter(&MockAuthUseCase{}, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
	})

	t.Run("Invalid token returns same 401", func(t *testing.T) {
		authMock := &MockAuthUseCase{}
		authMock.On("ResolveUser", mock.Anything, "bad-token").Return(nil, usecase.ErrUnauthorized)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		testRouter(authMock, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
	})

	t.Run("Valid token returns user without hash", func(t *testing.T) {
		user := currentUser()
		authMock := &MockAuthUseCase{}
		authMock.On("ResolveUser", mock.Anything, "good-token").Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		testRouter(authMock, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":"ama@example.com"`)
		assert.NotContains(t, rec.Body.String(), "hashed_password")
	})
}

func TestFollowEndpoint(t *testing.T) {
	t.Parallel()

	user := currentUser()
	updated := *user
	updated.Follows = []string{"Mampong", "Aburi"}

	authMock := &MockAuthUseCase{}
	authMock.On("ResolveUser", mock.Anything, "good-token").Return(user, nil)
	authMock.On("UpdateFollows", mock.Anything, user.ID.Hex(), []string{"Mampong", "Aburi"}).
		Return(&updated, nil)

	req := httptest.NewRequest(http.MethodPatch, "/auth/follow",
		strings.NewReader(`{"towns":["Mampong","Aburi"]}`))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	testRouter(authMock, &MockDirectoryUseCase{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"follows":["Mampong","Aburi"]`)
	authMock.AssertExpectations(t)
}

func TestCreateReviewEndpoint(t *testing.T) {
	t.Parallel()

	user := currentUser()
	authMock := &MockAuthUseCase{}
	authMock.On("ResolveUser", mock.Anything, "good-token").Return(user, nil)

	dirMock := &MockDirectoryUseCase{}
	dirMock.On("CreateReview", mock.Anything, mock.Anything).
		Return("", &usecase.ValidationError{Detail: "Invalid target_type"})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		strings.NewReader(`{"target_type":"event","target_id":"x","rating":3}`))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	testRouter(authMock, dirMock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid target_type"}`, rec.Body.String())
}

func TestStoriesEndpoint(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		target    string
		wantTowns string
		wantLimit int64
	}{
		{name: "Towns and limit forwarded", target: "/stories?towns=Koforidua,Mampong&limit=2", wantTowns: "Koforidua,Mampong", wantLimit: 2},
		{name: "No params", target: "/stories", wantTowns: "", wantLimit: 0},
		{name: "Garbage limit treated as unset", target: "/stories?limit=abc", wantTowns: "", wantLimit: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dirMock := &MockDirectoryUseCase{}
			dirMock.On("Stories", mock.Anything, tc.wantTowns, tc.wantLimit).
				Return([]domain.Document{{"title": "Yam festival"}}, nil)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rec := httptest.NewRecorder()
			testRouter(&MockAuthUseCase{}, dirMock).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			dirMock.AssertExpectations(t)
		})
	}
}

func TestListBusinessesEndpoint(t *testing.T) {
	t.Parallel()

	dirMock := &MockDirectoryUseCase{}
	dirMock.On("ListBusinesses", mock.Anything, "craft", "Koforidua", "", int64(10)).
		Return([]domain.Document{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/businesses?q=craft&town=Koforidua&limit=10", nil)
	rec := httptest.NewRecorder()
	testRouter(&MockAuthUseCase{}, dirMock).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	dirMock.AssertExpectations(t)
}
