// Package browser drives live pages. A session snapshots the rendered HTML
// for the engine and replays the resulting mutations in the page, raising
// the same events a user's typing would.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// Driver names a browser automation backend.
type Driver string

const (
	// DriverChromedp drives Chrome through chromedp.
	DriverChromedp Driver = "chromedp"
	// DriverRod drives Chrome through rod.
	DriverRod Driver = "rod"
)

// Valid reports whether d names a supported driver.
func (d Driver) Valid() bool {
	return d == DriverChromedp || d == DriverRod
}

// Session is one live page.
type Session interface {
	// Navigate loads url and waits for the body to be ready.
	Navigate(ctx context.Context, url string) error
	// HTML returns the current rendered document.
	HTML(ctx context.Context) (string, error)
	// Apply replays mutations in the page and returns how many were applied.
	Apply(ctx context.Context, mutations []types.Mutation) (int, error)
	// Close releases the browser.
	Close() error
}

// Options configures a session.
type Options struct {
	Driver   Driver
	Timeout  time.Duration
	Headless bool
	Logger   *zap.Logger
}

// DefaultTimeout bounds every browser operation when Options.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// Open starts a browser with the configured driver.
func Open(ctx context.Context, opts Options) (Session, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	switch opts.Driver {
	case DriverChromedp, "":
		return openChromedp(ctx, opts)
	case DriverRod:
		return openRod(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown browser driver: %s", opts.Driver)
	}
}
