package graph

import (
	"encoding/binary"
	"sort"

	"golang.org/x/crypto/sha3"
)

// Fingerprint is a cheap summary of an edge set used to detect whether a
// cached Adjacency may still be reused: the edge count plus a Keccak-256
// rolling hash over each edge's canonical byte encoding. Two edge sets that
// differ in membership or in any edge's capacity produce different
// fingerprints with overwhelming probability; an unchanged edge set always
// reproduces the same one.
//
// This is the "fingerprint of edge set: count + rolling hash" the design
// notes recommend in place of a bare dirty flag, so a caller that forgets to
// invalidate the cache degrades to "one extra rebuild" instead of silently
// serving a stale Adjacency.
type Fingerprint struct {
	Count int
	Hash  [32]byte
}

// Equal reports whether f and o summarise the same edge set.
func (f Fingerprint) Equal(o Fingerprint) bool {
	return f.Count == o.Count && f.Hash == o.Hash
}

// ComputeFingerprint derives the Fingerprint of edges. The result does not
// depend on the input slice's order: edges are sorted by (From, To, Token)
// before hashing.
func ComputeFingerprint(edges []Edge) Fingerprint {
	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		return edgeLess(sorted[i], sorted[j])
	})

	h := sha3.NewLegacyKeccak256()
	var lenBuf [8]byte
	for _, e := range sorted {
		h.Write(e.From[:])
		h.Write(e.To[:])
		h.Write(e.Token[:])
		capBytes := e.Capacity.Bytes()
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(capBytes)))
		h.Write(lenBuf[:])
		h.Write(capBytes)
	}

	var out Fingerprint
	out.Count = len(sorted)
	h.Sum(out.Hash[:0])
	return out
}

func edgeLess(a, b Edge) bool {
	if c := CompareAddress(a.From, b.From); c != 0 {
		return c < 0
	}
	if c := CompareAddress(a.To, b.To); c != 0 {
		return c < 0
	}
	return CompareAddress(a.Token, b.Token) < 0
}
