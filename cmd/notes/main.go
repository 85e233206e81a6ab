// Package main is the entrypoint for the Sticky Notes terminal client.
//
// The client talks to the API at NOTES_API_URL. Set NOTES_TOKEN to resume a
// session issued earlier instead of signing in.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stickynotes/stickynotes/internal/client"
	"github.com/stickynotes/stickynotes/internal/tui"
)

func main() {
	opts, err := client.LoadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading options: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&opts.BaseURL, "api", opts.BaseURL, "API base URL including prefix")
	flag.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per-request timeout")
	route := flag.String("route", "/", "screen to open: /, /completed, /login or /register")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store := client.NewStore(client.NewAPI(opts), nil)
	app := tui.NewApp(ctx, store,
		tui.WithResumeToken(opts.Token),
		tui.WithInitialRoute(*route),
	)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
