// Package host abstracts the environment that delivers document lifecycle
// events and renders annotations.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/store"
)

// Handlers is the dispatch table a host calls for lifecycle events.
// Each handler runs to completion before the host delivers the next event.
type Handlers struct {
	Open   func(ctx context.Context, doc document.Document) error
	Save   func(ctx context.Context, doc document.Document) error
	Change func(ctx context.Context, doc document.Document) error
	Close  func(ctx context.Context, id document.ID) error
}

// Host is an environment hosting the linter.
type Host interface {
	// Name identifies the host in logs.
	Name() string
	// Config reads the host's view of the configuration.
	Config() config.Reader
	// Collection is where annotations are rendered.
	Collection() store.Sink
	// Run delivers lifecycle events to h until ctx is done or the host's
	// event source ends.
	Run(ctx context.Context, h Handlers) error
}

// Candidate is a host that may be available in the current environment.
type Candidate struct {
	Name string
	// Detect reports why the host is unavailable. A nil Detect always succeeds.
	Detect func(ctx context.Context) error
	// New creates the host once Detect succeeded.
	New func(ctx context.Context) (Host, error)
}

// ErrNoHost is returned by Resolve when no candidate is available.
var ErrNoHost = errors.New("no usable host environment")

// Resolve returns the first available candidate, in order.
// A candidate that is available but fails to start stops the search.
func Resolve(ctx context.Context, candidates ...Candidate) (Host, error) {
	var reasons []error
	for _, c := range candidates {
		if c.Detect != nil {
			if err := c.Detect(ctx); err != nil {
				reasons = append(reasons, fmt.Errorf("%s: %w", c.Name, err))
				continue
			}
		}
		h, err := c.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("start %s host: %w", c.Name, err)
		}
		return h, nil
	}
	return nil, errors.Join(append([]error{ErrNoHost}, reasons...)...)
}

// NotTerminal is a Detect func succeeding when f is not attached to a terminal,
// which is how an editor spawns a language server.
func NotTerminal(f *os.File) func(context.Context) error {
	return func(context.Context) error {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return fmt.Errorf("%s is a terminal", f.Name())
		}
		return nil
	}
}
