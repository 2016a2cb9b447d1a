// Package graph defines the trust-token flow graph's core data model and the
// Graph Builder component: the Address, Int, Edge, Node, and Adjacency types,
// plus the pseudo-node translation that turns a multi-edge trust graph into a
// single-capacity adjacency map.
//
// # Data model
//
//   - Address — a 20-byte participant/token identifier, backed by
//     github.com/ethereum/go-ethereum/common.Address.
//   - Int — a non-negative arbitrary-precision integer backed by math/big.Int.
//   - Edge — an input trust relation {From, To, Token, Capacity}.
//   - Node — either a real participant or a pseudo-node (from, token) pair
//     representing that participant's spendable pool of one token.
//   - Adjacency — the two-level Node → Node → Int capacity map produced by
//     Build; the flow solver mutates only a private residual copy of it.
//
// # Builder and caching
//
// Builder.Build translates an edge set into an Adjacency, introducing one
// pseudo-node per (from, token) pair so that a single sender-balance gate
// bounds every outflow in that token (see Build's doc comment). The result is
// cached and keyed by a Fingerprint of the edge set, so repeated calls with an
// unchanged edge set skip the rebuild, and a missed external invalidation
// degrades to an extra rebuild rather than silently serving stale data.
package graph
