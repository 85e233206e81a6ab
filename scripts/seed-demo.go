// Command seed-demo creates a demo account with a few sample notes and
// prints a session token for it.
//
//	go run ./scripts/seed-demo.go -format json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stickynotes/stickynotes/internal/auth"
	"github.com/stickynotes/stickynotes/internal/model"
	"github.com/stickynotes/stickynotes/internal/repository"
	"github.com/stickynotes/stickynotes/internal/service"
)

type output struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Notes     int       `json:"notes_created"`
}

var sampleNotes = []service.CreateNoteInput{
	{Title: "Welcome", Content: "Press n to add a note, e to edit, c to complete."},
	{Title: "Groceries", Content: "Milk, eggs, coffee beans"},
	{Title: "Call the dentist", Content: "Reschedule the cleaning before Friday"},
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		jwtSecret   = flag.String("jwt-secret", os.Getenv("JWT_SECRET"), "secret used to sign session tokens")
		email       = flag.String("email", "demo@stickynotes.local", "demo account email")
		password    = flag.String("password", "demo-password", "demo account password")
		name        = flag.String("name", "Demo", "demo account display name")
		migrate     = flag.Bool("migrate", true, "apply migrations before seeding")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL, repository.PoolConfig{MaxConns: 2, MinConns: 0})
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if *migrate {
		if err := repo.RunMigrations(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "run migrations:", err)
			os.Exit(1)
		}
	}

	tokens, err := auth.NewTokenManager(*jwtSecret, auth.DefaultTokenTTL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "token manager:", err)
		os.Exit(1)
	}

	authSvc := service.NewAuthService(repo, auth.NewArgon2Hasher(), tokens, nil, nil)
	noteSvc := service.NewNoteService(repo, nil)

	result, err := ensureUser(ctx, authSvc, *email, *password, *name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	created, err := seedNotes(ctx, noteSvc, result.User.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out := output{
		UserID:    result.User.ID,
		Email:     result.User.Email,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Notes:     created,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

// ensureUser registers the demo account, or signs in when it already exists.
func ensureUser(ctx context.Context, svc *service.AuthService, email, password, name string) (*service.AuthResult, error) {
	result, err := svc.Register(ctx, service.RegisterInput{Email: email, Password: password, Name: name})
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, service.ErrAlreadyExists) {
		return nil, fmt.Errorf("register demo user: %w", err)
	}

	result, err = svc.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("demo user %s exists with a different password: %w", email, err)
	}
	return result, nil
}

// seedNotes adds the sample notes to an account that has none.
func seedNotes(ctx context.Context, svc *service.NoteService, userID string) (int, error) {
	existing, err := svc.ListAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list notes: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, in := range sampleNotes {
		in.Color = model.Palette[i%len(model.Palette)].Value
		if _, err := svc.Create(ctx, userID, in); err != nil {
			return i, fmt.Errorf("create note %q: %w", in.Title, err)
		}
	}
	return len(sampleNotes), nil
}
