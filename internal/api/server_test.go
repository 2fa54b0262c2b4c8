package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/readnextapp/readnext-server/internal/auth"
	"github.com/readnextapp/readnext-server/internal/service"
	"github.com/readnextapp/readnext-server/internal/store"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// testErrorEnvelope mirrors the detailed error envelope.
type testErrorEnvelope struct {
	Version int            `json:"v"`
	Success bool           `json:"success"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// stubCoverGenerator lets tests control cover generation per call.
type stubCoverGenerator struct {
	fn func(ctx context.Context, name, author string) (string, error)
}

func (g *stubCoverGenerator) GenerateCover(ctx context.Context, name, author string) (string, error) {
	if g.fn == nil {
		return "https://covers.test/" + name + ".png", nil
	}
	return g.fn(ctx, name, author)
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
	coverGen     *stubCoverGenerator
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(authKey, 15*time.Minute)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	coverGen := &stubCoverGenerator{}

	services := &Services{
		Auth:           service.NewAuthService(st, tokenService, logger),
		Book:           service.NewBookService(st, logger),
		Recommendation: service.NewRecommendationService(st, logger),
		Cover:          service.NewCoverService(st, coverGen, 2, time.Second, logger),
	}

	router := chi.NewRouter()
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("ReadNext API Test", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          logger,
		apiRateLimiter:  NewRateLimiter(10000, time.Minute, 1000),
		authRateLimiter: NewRateLimiter(10000, time.Minute, 1000),
	}
	t.Cleanup(s.Close)

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerBookRoutes()
	s.registerRecommendationRoutes()
	s.registerCoverRoutes()

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, api),
		tokenService: tokenService,
		coverGen:     coverGen,
	}
}

// signupTestUser creates a user account and returns its username.
func (ts *testServer) signupTestUser(t *testing.T, username string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": username,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "Signup failed: %s", resp.Body.String())

	return username
}

// loginTestUser logs in and returns the access token.
func (ts *testServer) loginTestUser(t *testing.T, username string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": username,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Login failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	return envelope.Data.Token
}

// addTestBook records a book for the user via the API.
func (ts *testServer) addTestBook(t *testing.T, username, name, author, genre string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"username": username,
		"name":     name,
		"author":   author,
		"genre":    genre,
	})
	require.Equal(t, http.StatusOK, resp.Code, "Add book failed: %s", resp.Body.String())
}
