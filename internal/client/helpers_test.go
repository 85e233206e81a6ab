package client

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/handler"
	"github.com/stickynotes/stickynotes/internal/middleware"
	"github.com/stickynotes/stickynotes/internal/repository"
	"github.com/stickynotes/stickynotes/internal/service"
)

// newTestServer serves the real API over the in-memory store and returns a client for it.
func newTestServer(t *testing.T) *API {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemory()
	tokens, err := auth.NewTokenManager("client-test-secret", time.Hour)
	require.NoError(t, err)

	authSvc := service.NewAuthService(store, &auth.Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1}, tokens, nil, nil)
	authHandler := handler.NewAuthHandler(authSvc, handler.CookieConfig{SameSite: http.SameSiteLaxMode}, logger)
	noteHandler := handler.NewNoteHandler(service.NewNoteService(store, nil), logger)
	requireAuth := middleware.Authenticate(middleware.AuthConfig{Logger: logger, Verifier: authSvc})

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.With(requireAuth).Get("/auth/me", authHandler.Me)
		r.Route("/notes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", noteHandler.Create)
			r.Get("/active", noteHandler.ListActive)
			r.Get("/completed", noteHandler.ListCompleted)
			r.Put("/{id}", noteHandler.Update)
			r.Put("/{id}/complete", noteHandler.Complete)
			r.Delete("/{id}", noteHandler.Delete)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return NewAPIWithClient(srv.URL+"/api/", srv.Client())
}

func strPtr(s string) *string { return &s }
