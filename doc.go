// Package flowengine computes realisable transfer paths through a
// trust-token network: given a set of declared trust relations (who will
// accept whose token, up to what share of the accepting party's own
// balance) it finds
// the maximum amount deliverable from a source participant to a sink
// participant, and the ordered sequence of atomic transfers that realises
// it.
//
// The computation runs in three stages, each its own subpackage:
//
//	graph     — collapses the trust multigraph into a simple digraph via
//	            per-(holder, token) pseudo-nodes (C1)
//	flow      — Edmonds-Karp max-flow over that digraph, with a
//	            deterministic neighbour-visitation policy (C2)
//	transfer  — drains the solver's used-edges map into an ordered,
//	            balance-respecting sequence of transfers (C3)
//
// reach provides standalone BFS reachability diagnostics, and ledger
// defines the Source interface through which an Engine reads the trust
// graph.
//
// Engine wires all three stages behind a single Compute call and owns the
// one piece of mutable shared state in the core: the graph.Builder's
// adjacency cache. There is no package-level state; every Engine is
// independent and, once constructed, safe for concurrent use.
package flowengine
