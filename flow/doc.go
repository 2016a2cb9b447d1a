// Package flow implements the Flow Solver component (C2): an Edmonds–Karp
// style maximum-flow search over a graph.Adjacency, capped at a requested
// amount.
//
// # Algorithm
//
// Solve repeats breadth-first search for an augmenting path from source to
// sink over the residual capacity map until either the requested amount has
// been reached or no augmenting path remains. At each dequeued node, BFS
// visits neighbours in descending capacity order, breaking ties by
// descending Node identity — a deterministic ordering that is part of the
// contract: identical inputs always produce identical output, including the
// exact set of augmenting paths chosen.
//
// Each augmenting path is saturated by its bottleneck capacity (capped to
// whatever remains of the request), and the residual map is updated in both
// directions. A second map, usedEdges, tracks the net flow along each real
// edge of the original graph — not the residual graph — distinguishing a
// forward push from the cancellation of an earlier one (see Solve's doc
// comment for the exact rule).
//
// # Complexity
//
// O(V·E²) worst case, as for Edmonds–Karp generally; O(V+E) memory for the
// residual map and BFS bookkeeping.
//
// # Errors
//
//	ErrIterationLimit - Options.MaxIterations was exceeded (a safety valve
//	                     only; never expected to fire on a conservative
//	                     Adjacency).
//	context.Canceled / context.DeadlineExceeded - ctx was cancelled.
package flow
