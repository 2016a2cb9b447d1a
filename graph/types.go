package graph

import "errors"

// Sentinel errors for the graph builder.
var (
	// ErrNonPositiveCapacity indicates an input Edge had Capacity <= 0.
	ErrNonPositiveCapacity = errors.New("graph: edge capacity must be positive")

	// ErrDuplicateEdge indicates two input edges shared (From, To, Token) but
	// disagreed on Capacity, which the trust model never produces legitimately.
	ErrDuplicateEdge = errors.New("graph: duplicate edge with conflicting capacity")
)

// Edge is an input trust relation: From may move up to Capacity units of
// Token to To. The triple (From, To, Token) is unique within a valid edge
// set; Capacity must be strictly positive.
type Edge struct {
	From     Address
	To       Address
	Token    Address
	Capacity Int
}

// Node is either a real participant (Pseudo == false, Token is the zero
// Address and ignored) or a pseudo-node (Pseudo == true) representing the
// pair (Addr, Token): "units of Token currently held by Addr". Node is a
// plain comparable struct, usable directly as a map key — real and pseudo
// nodes sharing the same Addr are always distinct because of the Pseudo tag.
type Node struct {
	Addr   Address
	Token  Address
	Pseudo bool
}

// Real constructs the real-node representation of a participant.
func Real(addr Address) Node {
	return Node{Addr: addr}
}

// PseudoNode constructs the pseudo-node (from, token): from's spendable pool
// of token.
func PseudoNode(from, token Address) Node {
	return Node{Addr: from, Token: token, Pseudo: true}
}

// Compare gives Node a total order: by Addr first; among nodes sharing an
// Addr, the real node before pseudo nodes; pseudo nodes then by Token. This
// order is what the flow
// solver's deterministic neighbour visitation and the transfer extractor's
// canonical iteration both rely on.
func (n Node) Compare(o Node) int {
	if c := CompareAddress(n.Addr, o.Addr); c != 0 {
		return c
	}
	if n.Pseudo != o.Pseudo {
		if !n.Pseudo {
			return -1
		}
		return 1
	}
	if !n.Pseudo {
		return 0
	}
	return CompareAddress(n.Token, o.Token)
}

// Less reports whether n sorts strictly before o under Compare.
func (n Node) Less(o Node) bool { return n.Compare(o) < 0 }

// SortNodes returns a sorted copy of nodes in ascending Compare order.
func SortNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Adjacency is the two-level Node → Node → Int capacity map: Adjacency[u][v]
// is the residual (or original) capacity of the edge u→v. A missing inner
// entry is equivalent to zero capacity.
type Adjacency map[Node]map[Node]Int

// Get returns the capacity of u→v, or the zero Int if absent.
func (a Adjacency) Get(u, v Node) Int {
	inner, ok := a[u]
	if !ok {
		return ZeroInt
	}
	return inner[v]
}

// Set records the capacity of u→v, creating the inner map if needed.
func (a Adjacency) Set(u, v Node, cap Int) {
	inner, ok := a[u]
	if !ok {
		inner = make(map[Node]Int)
		a[u] = inner
	}
	inner[v] = cap
}

// Has reports whether u→v carries a recorded, strictly positive capacity —
// the "is this a real edge of the original graph" test the solver's
// used-edges sign rule depends on.
func (a Adjacency) Has(u, v Node) bool {
	inner, ok := a[u]
	if !ok {
		return false
	}
	cap, ok := inner[v]
	return ok && cap.Sign() > 0
}

// Neighbors returns the out-edges of u as (target, capacity) pairs, in no
// particular order; callers that need determinism must sort the result
// themselves (see flow.sortedNeighbors).
func (a Adjacency) Neighbors(u Node) []NodeCapacity {
	inner := a[u]
	out := make([]NodeCapacity, 0, len(inner))
	for v, cap := range inner {
		out = append(out, NodeCapacity{Node: v, Capacity: cap})
	}
	return out
}

// Clone returns a deep copy of a, suitable for the flow solver's mutable
// residual working copy.
func (a Adjacency) Clone() Adjacency {
	out := make(Adjacency, len(a))
	for u, inner := range a {
		innerCopy := make(map[Node]Int, len(inner))
		for v, cap := range inner {
			innerCopy[v] = cap
		}
		out[u] = innerCopy
	}
	return out
}

// NodeCapacity pairs a neighbour Node with the capacity of the edge to it.
type NodeCapacity struct {
	Node     Node
	Capacity Int
}
