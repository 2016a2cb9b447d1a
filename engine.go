package flowengine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trustflow-network/flowengine/flow"
	"github.com/trustflow-network/flowengine/graph"
	"github.com/trustflow-network/flowengine/ledger"
	"github.com/trustflow-network/flowengine/transfer"
)

// Result is the outcome of a Compute call: the amount actually
// deliverable, and the ordered sequence of transfers that delivers it.
type Result struct {
	Flow      graph.Int
	Transfers []transfer.Transfer
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a structured logger used by every stage an Engine
// drives (the adjacency builder, the flow solver, the transfer
// extractor). A nil Logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxIterations bounds the number of augmenting-path iterations the
// flow solver will run per Compute call before returning
// flow.ErrIterationLimit. Zero (the default) means unbounded.
func WithMaxIterations(n int) Option {
	return func(e *Engine) { e.maxIterations = n }
}

// Engine is the single entry point into the flow computation: it reads a
// ledger.Source, builds (and caches) the pseudo-node adjacency, runs the
// max-flow solver, and extracts the realised transfer sequence.
//
// An Engine owns the one piece of mutable shared state in the core — the
// graph.Builder's fingerprinted adjacency cache — so it is safe for
// concurrent use once constructed; nothing below it needs its own lock.
type Engine struct {
	source        ledger.Source
	builder       *graph.Builder
	logger        *slog.Logger
	maxIterations int
}

// New constructs an Engine reading from source.
func New(source ledger.Source, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		logger: discardLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.builder = graph.NewBuilder(graph.WithLogger(e.logger))
	return e
}

// Compute finds the maximum amount of value movable from source to sink,
// capped at requested, and the ordered transfer sequence that realises
// it. If source == sink, it returns a zero Result with no error.
func (e *Engine) Compute(ctx context.Context, source, sink graph.Address, requested graph.Int) (Result, error) {
	if source == sink {
		return Result{Flow: graph.ZeroInt}, nil
	}

	diag := fmt.Sprintf("source=%x sink=%x requested=%s", source, sink, requested)

	adjacency, err := e.adjacency(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w (%s)", err, diag)
	}

	flowOpts := flow.Options{Logger: e.logger, MaxIterations: e.maxIterations}
	total, usedEdges, err := flow.Solve(ctx, graph.Real(source), graph.Real(sink), adjacency, requested, flowOpts)
	if err != nil {
		return Result{}, fmt.Errorf("flowengine: solving flow (%s): %w", diag, err)
	}

	if total.IsZero() {
		return Result{Flow: total}, nil
	}

	transfers, err := transfer.Extract(source, sink, total, usedEdges, transfer.Options{Logger: e.logger})
	if err != nil {
		return Result{}, fmt.Errorf("flowengine: extracting transfers (%s): %w", diag, err)
	}

	return Result{Flow: total, Transfers: transfers}, nil
}

// adjacency returns the current pseudo-node adjacency, consulting the
// source's Fingerprint first: a hit against the builder's cache lets it
// skip deriving the full edge set entirely. On a miss it falls back to
// Edges and lets the builder rebuild (and re-cache) from scratch.
func (e *Engine) adjacency(ctx context.Context) (graph.Adjacency, error) {
	fp, err := e.source.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("flowengine: reading fingerprint: %w", err)
	}

	if cached, ok := e.builder.CachedFor(fp); ok {
		return cached, nil
	}

	edges, err := e.source.Edges(ctx)
	if err != nil {
		return nil, fmt.Errorf("flowengine: reading edges: %w", err)
	}

	adjacency, err := e.builder.Build(edges)
	if err != nil {
		return nil, fmt.Errorf("flowengine: building adjacency: %w", err)
	}
	return adjacency, nil
}

// Invalidate forces the next Compute call to rebuild the adjacency cache
// from scratch, bypassing the fingerprint check. Callers normally don't
// need this: a changed edge set is detected automatically.
func (e *Engine) Invalidate() {
	e.builder.Invalidate()
}
