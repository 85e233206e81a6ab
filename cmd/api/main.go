// Package main is the entrypoint for the Sticky Notes API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/cache"
	"github.com/stickynotes/stickynotes/internal/config"
	"github.com/stickynotes/stickynotes/internal/handler"
	"github.com/stickynotes/stickynotes/internal/metrics"
	"github.com/stickynotes/stickynotes/internal/middleware"
	"github.com/stickynotes/stickynotes/internal/repository"
	"github.com/stickynotes/stickynotes/internal/server"
	"github.com/stickynotes/stickynotes/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if cfg.MigrateOnStart {
		if err := repo.RunMigrations(ctx); err != nil {
			logger.Error("failed to run migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
			repo.Close()
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Redis is optional. Interface values stay nil when it is disabled.
	var (
		cacheClient *cache.Cache
		userCache   service.UserCache
		limiter     middleware.IPLimiter
		cacheHealth handler.HealthChecker
	)
	if cfg.RedisEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			repo.Close()
			os.Exit(1)
		}
		userCache, limiter, cacheHealth = cacheClient, cacheClient, cacheClient
		logger.Info("connected to Redis")
	} else {
		logger.Warn("REDIS_URL not set; rate limiting and identity cache disabled")
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to create token manager", "error", err)
		os.Exit(1)
	}

	metricsRecorder := metrics.NewInMemory()
	authService := service.NewAuthService(repo, auth.NewArgon2Hasher(), tokens, userCache, metricsRecorder)
	noteService := service.NewNoteService(repo, metricsRecorder)

	h := handler.New()
	handlers := routeHandlers{
		health: handler.NewHealthHandler(repo, cacheHealth),
		metric: handler.NewMetricsHandler(metricsRecorder),
		auth: handler.NewAuthHandler(authService, handler.CookieConfig{
			Secure:   cfg.CookieSecure(),
			SameSite: cfg.CookieSameSite(),
		}, logger),
		note: handler.NewNoteHandler(noteService, logger),
	}

	r := setupRouter(h, handlers, authService, limiter, metricsRecorder, cfg, logger)

	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"api_prefix", cfg.APIPrefix,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routeHandlers struct {
	health *handler.HealthHandler
	metric *handler.MetricsHandler
	auth   *handler.AuthHandler
	note   *handler.NoteHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	handlers routeHandlers,
	verifier middleware.TokenVerifier,
	limiter middleware.IPLimiter,
	recorder metrics.Recorder,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(middleware.CORS(corsCfg))

	// Probes and metrics (no auth required)
	r.Get("/healthz", handlers.health.Healthz)
	r.Get("/readyz", handlers.health.Readyz)
	r.Get("/metrics", handlers.metric.Metrics)
	r.Get("/", h.Index)

	requireAuth := middleware.Authenticate(middleware.AuthConfig{
		Logger:   logger,
		Verifier: verifier,
		Metrics:  recorder,
	})

	rateLimit := func(scope string) func(next http.Handler) http.Handler {
		return middleware.RateLimitIP(middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: limiter,
			Metrics: recorder,
			Enabled: cfg.RateLimitAuthEnabled,
			Scope:   scope,
			RPS:     cfg.RateLimitAuthRPS,
			Burst:   cfg.RateLimitAuthBurst,
		})
	}

	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rateLimit("register")).Post("/register", handlers.auth.Register)
			r.With(rateLimit("login")).Post("/login", handlers.auth.Login)
			r.Post("/logout", handlers.auth.Logout)
			r.With(requireAuth).Get("/me", handlers.auth.Me)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", handlers.note.List)
			r.Post("/", handlers.note.Create)
			r.Get("/active", handlers.note.ListActive)
			r.Get("/completed", handlers.note.ListCompleted)
			r.Put("/{id}", handlers.note.Update)
			r.Put("/{id}/complete", handlers.note.Complete)
			r.Delete("/{id}", handlers.note.Delete)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
