package graph

import (
	"fmt"
	"log/slog"
	"sync"
)

// BuilderOption configures a Builder. A nil/empty option list produces a
// Builder with no logging and an empty cache.
type BuilderOption func(*Builder)

// WithLogger attaches a structured logger used to trace cache hits, misses,
// and rebuilds. A nil logger (the default) disables logging entirely.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// Builder is the Graph Builder component (C1): it translates an edge
// multiset into a single-capacity Adjacency via pseudo-nodes, and caches the
// result keyed by a Fingerprint of the edge set.
//
// A Builder is safe for concurrent use: Build and Invalidate serialise
// through an internal mutex, matching the reference graph library's
// per-resource-mutex convention. It is the only mutable shared state in the
// flow engine's core.
type Builder struct {
	mu     sync.RWMutex
	logger *slog.Logger

	hasCache bool
	cacheFP  Fingerprint
	cached   Adjacency
}

// NewBuilder constructs an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Invalidate discards any cached Adjacency, forcing the next Build to
// recompute regardless of fingerprint. External code should call this
// whenever it knows the ledger's edge set has mutated.
func (b *Builder) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hasCache = false
	b.cached = nil
}

// Build translates edges into an Adjacency, reusing the cached result when
// edges fingerprints identically to the last call. See the package doc
// comment for the pseudo-node translation this performs.
//
// For each edge e = (from, to, token, cap):
//
//	p := PseudoNode(from, token)
//	adjacency[from][p] = max(adjacency[from][p], cap)  // sender-balance gate
//	adjacency[p][to]   = cap                           // per-recipient trust limit
//
// The first assignment merges parallel edges sharing (from, token) into one
// gate sized to the largest contributing capacity (in the source domain,
// the sender's balance, identical across every edge from that (from,
// token)). The second assignment is not maxed: each (from, token) → to pair
// is unique by construction, so two edges disagreeing on capacity for the
// same pair indicate a malformed edge set and Build returns ErrDuplicateEdge.
func (b *Builder) Build(edges []Edge) (Adjacency, error) {
	fp := ComputeFingerprint(edges)

	b.mu.RLock()
	if b.hasCache && b.cacheFP.Equal(fp) {
		cached := b.cached
		b.mu.RUnlock()
		b.log("cache hit", fp)
		return cached, nil
	}
	b.mu.RUnlock()

	adjacency, err := buildAdjacency(edges)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.hasCache = true
	b.cacheFP = fp
	b.cached = adjacency
	b.mu.Unlock()

	b.log("rebuilt", fp)
	return adjacency, nil
}

// CachedFor reports whether Builder already holds an Adjacency built for
// fingerprint fp, without needing the edge set that produced it. A caller
// holding a cheaper Fingerprint (one derived without a full edge listing)
// can use this to skip deriving edges at all when nothing has changed.
func (b *Builder) CachedFor(fp Fingerprint) (Adjacency, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.hasCache && b.cacheFP.Equal(fp) {
		return b.cached, true
	}
	return nil, false
}

func (b *Builder) log(event string, fp Fingerprint) {
	if b.logger == nil {
		return
	}
	b.logger.Debug("graph builder", "event", event, "edges", fp.Count)
}

// buildAdjacency is the pure, cache-free translation Build calls. It is also
// exposed as Build(edges) (package-level) for callers that never want
// caching at all.
func buildAdjacency(edges []Edge) (Adjacency, error) {
	adjacency := make(Adjacency)
	seenRecipientEdge := make(map[Node]map[Address]Int)

	for _, e := range edges {
		if e.Capacity.Sign() <= 0 {
			return nil, fmt.Errorf("%w: (%x, %x, %x)", ErrNonPositiveCapacity, e.From, e.To, e.Token)
		}

		from := Real(e.From)
		p := PseudoNode(e.From, e.Token)

		gate := adjacency.Get(from, p)
		adjacency.Set(from, p, maxInt(gate, e.Capacity))

		if byRecipient, ok := seenRecipientEdge[p]; ok {
			if prior, ok := byRecipient[e.To]; ok && prior.Cmp(e.Capacity) != 0 {
				return nil, fmt.Errorf("%w: (%x, %x, %x): %s vs %s",
					ErrDuplicateEdge, e.From, e.To, e.Token, prior, e.Capacity)
			}
		} else {
			seenRecipientEdge[p] = make(map[Address]Int)
		}
		seenRecipientEdge[p][e.To] = e.Capacity
		adjacency.Set(p, Real(e.To), e.Capacity)
	}

	return adjacency, nil
}

// Build is the package-level, cache-free form of (*Builder).Build, for
// callers who only ever build a graph once (e.g. tests and examples).
func Build(edges []Edge) (Adjacency, error) {
	return buildAdjacency(edges)
}

func maxInt(a, b Int) Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
