package ledger

import (
	"context"

	"github.com/trustflow-network/flowengine/graph"
)

// Source is the read boundary the flow engine depends on: a trust-graph
// edge set plus a fingerprint cheap enough to call on every request, so the
// engine's adjacency cache (graph.Builder) can tell whether the underlying
// ledger has changed without re-deriving the full adjacency list.
//
// Implementations must return edges whose (From, To, Token) triples are
// unique and whose Capacity is strictly positive; graph.Build rejects
// non-positive capacities and repeated triples with differing capacities.
type Source interface {
	// Edges returns every currently-valid trust edge.
	Edges(ctx context.Context) ([]graph.Edge, error)

	// Fingerprint returns a content fingerprint of the current edge set,
	// equivalent to graph.ComputeFingerprint(edges) but allowed to be
	// cheaper (e.g. an incrementally maintained hash) for large ledgers.
	Fingerprint(ctx context.Context) (graph.Fingerprint, error)
}
