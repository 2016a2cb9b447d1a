package flow

import (
	"errors"
	"io"
	"log/slog"
)

// ErrIterationLimit is returned when Options.MaxIterations is non-zero and
// the augmenting-path loop exceeds it. Edge capacities are positive
// integers, so the loop always terminates mathematically; this is a
// defensive ceiling against a malformed or adversarial Adjacency, not part
// of the algorithm's correctness argument.
var ErrIterationLimit = errors.New("flow: exceeded maximum augmenting-path iterations")

// ErrNegativeCancellation is returned if a residual-cancellation step would
// drive a real edge's used-flow entry negative. The algorithm's conservation
// argument guarantees this never happens on a well-formed Adjacency; Solve
// checks it defensively rather than silently truncating at zero.
var ErrNegativeCancellation = errors.New("flow: cancellation would drive used-edge flow negative")

// Options configures Solve. The zero value is production-safe: unbounded
// iterations, no logging.
type Options struct {
	// Logger receives one debug record per augmenting path and one at loop
	// exit. A nil Logger (the default) disables logging.
	Logger *slog.Logger

	// MaxIterations, if non-zero, bounds the number of augmenting-path
	// iterations before Solve gives up and returns ErrIterationLimit.
	MaxIterations int
}

// DefaultOptions returns production-safe defaults: no logging, no iteration
// cap.
func DefaultOptions() Options {
	return Options{}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// logger returns o.Logger, or a discard logger if none was set, so Solve can
// log unconditionally without a nil check at every call site.
func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}
