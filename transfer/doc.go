// Package transfer implements the Transfer Extractor component (C3): it
// walks a flow solver's used-edges map in waves, producing an ordered
// sequence of atomic Transfer records whose cumulative effect moves a fixed
// amount of value from a source to a sink without ever letting an
// intermediary's running balance go negative.
//
// # Waves
//
// The used-edges graph can contain chains a→b→c where b must receive before
// it can forward. A single greedy pass over the map in key order would
// attempt b→c before a→b lands and, finding insufficient balance at b,
// stall permanently. Extract instead proceeds in waves: each wave fires
// every currently satisfiable transfer, then balances are re-examined for
// the next wave. Progress is guaranteed because a wave either emits at
// least one transfer or the extraction is done (or stuck, which is reported
// as ErrInconsistentFlow rather than silently truncated).
//
// # Determinism
//
// Every scan — over current balance holders, over the pseudo-nodes
// reachable from each, and over each pseudo-node's recipients — proceeds in
// ascending key order (graph.Address / graph.Node's total order), not Go's
// randomized map iteration order. Two calls on identical input therefore
// always emit the same transfer sequence.
package transfer
