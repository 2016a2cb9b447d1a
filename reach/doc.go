// Package reach provides breadth-first reachability diagnostics over a
// graph.Adjacency: unweighted hop distances, parent links, and visit order
// from a single source node.
//
// It exists alongside the flow package rather than inside it because
// reachability is a cheaper question than max-flow and answering it does
// not require running the solver: a builder or an operator can ask "is sink
// even reachable from source before a capacity constraint is applied" or
// "what is the shortest settlement path" without paying for a full
// Edmonds-Karp pass.
//
// Traversal order is deterministic: neighbors of a node are visited in
// ascending graph.Node order, so two calls on identical input always
// produce the same Order, Depth, and Parent maps.
package reach
