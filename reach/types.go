package reach

import (
	"context"
	"errors"
	"fmt"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("reach: invalid option supplied")

// Option configures a BFS run via functional arguments. An invalid Option
// (e.g. negative depth) is recorded internally and surfaced as
// ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks customizing a BFS traversal.
type Options struct {
	// Ctx allows cancellation and deadlines. Checked once per dequeue.
	Ctx context.Context

	// OnVisit is called when a node is visited, in Order. If it returns an
	// error, BFS aborts and propagates that error.
	OnVisit func(n NodeVisit) error

	// MaxDepth, if > 0, stops exploring beyond this depth. A value of 0
	// explicitly disables any depth limit.
	MaxDepth int

	err error
}

// DefaultOptions returns Options with context.Background(), no depth
// limit, and a no-op OnVisit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnVisit:  func(NodeVisit) error { return nil },
		MaxDepth: 0,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback invoked for every visited node, in
// order. Returning an error from fn stops the traversal.
func WithOnVisit(fn func(NodeVisit) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits traversal to depth d (inclusive). d == 0 means no
// limit; d < 0 is an ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}
