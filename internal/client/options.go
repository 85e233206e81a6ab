// Package client is the terminal client's data layer: a typed REST client
// for the notes API and a Store that keeps the active and completed
// collections of one session in sync with the server.
package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Options configures the client.
type Options struct {
	// BaseURL is the API root including its prefix, e.g. http://localhost:8080/api.
	BaseURL string        `env:"NOTES_API_URL" envDefault:"http://localhost:8080/api"`
	Timeout time.Duration `env:"NOTES_API_TIMEOUT" envDefault:"10s"`

	// Token resumes an existing session when set.
	Token string `env:"NOTES_TOKEN"`
}

// LoadOptions reads Options from the environment.
func LoadOptions() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse client options: %w", err)
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.BaseURL == "" {
		return Options{}, fmt.Errorf("NOTES_API_URL must not be empty")
	}
	return opts, nil
}
