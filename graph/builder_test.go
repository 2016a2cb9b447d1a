package graph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/trustflow-network/flowengine/graph"
)

var (
	addrA = mustAddr(0xA)
	addrB = mustAddr(0xB)
	addrC = mustAddr(0xC)
	tokA  = addrA
)

func mustAddr(b byte) graph.Address {
	var a graph.Address
	a[graph.AddressLength-1] = b
	return a
}

// BuilderSuite groups tests for the graph Builder (C1).
type BuilderSuite struct {
	suite.Suite
}

// TestDirectEdge: a single trust edge A--a-->B becomes two adjacency hops
// through the pseudo-node (A, a).
func (s *BuilderSuite) TestDirectEdge() {
	edges := []graph.Edge{
		{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(100)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	p := graph.PseudoNode(addrA, tokA)
	require.Equal(s.T(), 0, graph.NewInt(100).Cmp(adj.Get(graph.Real(addrA), p)))
	require.Equal(s.T(), 0, graph.NewInt(100).Cmp(adj.Get(p, graph.Real(addrB))))
}

// TestSourceGateMerge: two trust edges sharing (from, token) but different
// recipients merge into one sender-balance gate sized to the max capacity.
func (s *BuilderSuite) TestSourceGateMerge() {
	edges := []graph.Edge{
		{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(80)},
		{From: addrA, To: addrC, Token: tokA, Capacity: graph.NewInt(80)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	p := graph.PseudoNode(addrA, tokA)
	require.Equal(s.T(), 0, graph.NewInt(80).Cmp(adj.Get(graph.Real(addrA), p)), "gate sized to shared balance")
	require.Equal(s.T(), 0, graph.NewInt(80).Cmp(adj.Get(p, graph.Real(addrB))))
	require.Equal(s.T(), 0, graph.NewInt(80).Cmp(adj.Get(p, graph.Real(addrC))))
}

// TestNonPositiveCapacity rejects a zero or negative capacity edge.
func (s *BuilderSuite) TestNonPositiveCapacity() {
	edges := []graph.Edge{{From: addrA, To: addrB, Token: tokA, Capacity: graph.ZeroInt}}
	_, err := graph.Build(edges)
	require.True(s.T(), errors.Is(err, graph.ErrNonPositiveCapacity))
}

// TestDuplicateEdgeConflict rejects two edges sharing (from, to, token) that
// disagree on capacity.
func (s *BuilderSuite) TestDuplicateEdgeConflict() {
	edges := []graph.Edge{
		{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(10)},
		{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(20)},
	}
	_, err := graph.Build(edges)
	require.True(s.T(), errors.Is(err, graph.ErrDuplicateEdge))
}

// TestEmptyEdgeSet yields an empty adjacency and no error.
func (s *BuilderSuite) TestEmptyEdgeSet() {
	adj, err := graph.Build(nil)
	require.NoError(s.T(), err)
	require.Empty(s.T(), adj)
}

// TestBuilderCacheHit: an unchanged edge set reuses the cached Adjacency.
func (s *BuilderSuite) TestBuilderCacheHit() {
	b := graph.NewBuilder()
	edges := []graph.Edge{{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(5)}}

	first, err := b.Build(edges)
	require.NoError(s.T(), err)
	second, err := b.Build(edges)
	require.NoError(s.T(), err)

	require.Equal(s.T(), len(first), len(second))
}

// TestBuilderCacheInvalidation: a changed edge set is rebuilt even without
// an explicit Invalidate call, because the fingerprint no longer matches.
func (s *BuilderSuite) TestBuilderCacheInvalidation() {
	b := graph.NewBuilder()
	edges := []graph.Edge{{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(5)}}
	_, err := b.Build(edges)
	require.NoError(s.T(), err)

	edges = append(edges, graph.Edge{From: addrB, To: addrC, Token: addrB, Capacity: graph.NewInt(7)})
	adj, err := b.Build(edges)
	require.NoError(s.T(), err)
	require.Len(s.T(), adj, 4) // A, pseudo(A,a), B, pseudo(B,b) -- C only appears as a value
}

// TestCachedForHitAndMiss: CachedFor reports a hit once Build has cached a
// fingerprint, and a miss for any other fingerprint, without ever deriving
// an edge set itself.
func (s *BuilderSuite) TestCachedForHitAndMiss() {
	b := graph.NewBuilder()
	edges := []graph.Edge{{From: addrA, To: addrB, Token: tokA, Capacity: graph.NewInt(5)}}
	fp := graph.ComputeFingerprint(edges)

	_, ok := b.CachedFor(fp)
	require.False(s.T(), ok, "nothing built yet")

	built, err := b.Build(edges)
	require.NoError(s.T(), err)

	cached, ok := b.CachedFor(fp)
	require.True(s.T(), ok)
	require.Equal(s.T(), len(built), len(cached))

	other := graph.ComputeFingerprint(append(edges, graph.Edge{From: addrB, To: addrC, Token: addrB, Capacity: graph.NewInt(1)}))
	_, ok = b.CachedFor(other)
	require.False(s.T(), ok, "unrelated fingerprint must miss")
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}
