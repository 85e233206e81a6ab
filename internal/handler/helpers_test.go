package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/handler/dto"
	"github.com/stickynotes/stickynotes/internal/metrics"
	"github.com/stickynotes/stickynotes/internal/middleware"
	"github.com/stickynotes/stickynotes/internal/repository"
	"github.com/stickynotes/stickynotes/internal/service"
)

// testAPI is the API router backed by the in-memory store.
type testAPI struct {
	router  http.Handler
	metrics *metrics.InMemoryRecorder
	tokens  *auth.TokenManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemory()
	recorder := metrics.NewInMemory()

	tokens, err := auth.NewTokenManager("handler-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	hasher := &auth.Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1}

	authSvc := service.NewAuthService(store, hasher, tokens, nil, recorder)
	noteSvc := service.NewNoteService(store, recorder)

	authHandler := NewAuthHandler(authSvc, CookieConfig{SameSite: http.SameSiteLaxMode}, logger)
	noteHandler := NewNoteHandler(noteSvc, logger)

	requireAuth := middleware.Authenticate(middleware.AuthConfig{
		Logger:   logger,
		Verifier: authSvc,
		Metrics:  recorder,
	})

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})
		r.Route("/notes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/active", noteHandler.ListActive)
			r.Get("/completed", noteHandler.ListCompleted)
			r.Put("/{id}", noteHandler.Update)
			r.Put("/{id}/complete", noteHandler.Complete)
			r.Delete("/{id}", noteHandler.Delete)
		})
	})

	return &testAPI{router: r, metrics: recorder, tokens: tokens}
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its auth response.
func (a *testAPI) register(t *testing.T, email, name string) dto.AuthResponse {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Password: "correct horse",
		Name:     name,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	return decode[dto.AuthResponse](t, rec)
}

// createNote creates a note for token and returns it.
func (a *testAPI) createNote(t *testing.T, token, title, content string) dto.NoteResponse {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/notes", token, dto.CreateNoteRequest{Title: title, Content: content})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create note: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[dto.NoteResponse](t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func strPtr(s string) *string { return &s }

func serve(a *testAPI, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
