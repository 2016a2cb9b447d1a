package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/trustflow-network/flowengine/flow"
	"github.com/trustflow-network/flowengine/graph"
)

func addr(b byte) graph.Address {
	var a graph.Address
	a[graph.AddressLength-1] = b
	return a
}

var (
	A = addr(0xA1)
	B = addr(0xB1)
	C = addr(0xC1)
	D = addr(0xD1)
)

// SolveSuite groups tests for the Edmonds–Karp flow solver (C2).
type SolveSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *SolveSuite) SetupTest() { s.ctx = context.Background() }

// TestDirectEdge: scenario 1 — a single trust edge saturates completely.
func (s *SolveSuite) TestDirectEdge() {
	edges := []graph.Edge{{From: A, To: B, Token: A, Capacity: graph.NewInt(100)}}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	total, used, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(B), adj, graph.NewInt(100), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, graph.NewInt(100).Cmp(total))
	require.Equal(s.T(), 0, graph.NewInt(100).Cmp(used.Get(graph.PseudoNode(A, A), graph.Real(B))))
}

// TestRequestCap: scenario 2 — flow is capped below the true maximum.
func (s *SolveSuite) TestRequestCap() {
	edges := []graph.Edge{{From: A, To: B, Token: A, Capacity: graph.NewInt(100)}}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	total, _, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(B), adj, graph.NewInt(30), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, graph.NewInt(30).Cmp(total))
}

// TestChain: scenario 3 — a two-hop chain is bottlenecked by its narrowest edge.
func (s *SolveSuite) TestChain() {
	edges := []graph.Edge{
		{From: A, To: B, Token: A, Capacity: graph.NewInt(50)},
		{From: B, To: C, Token: B, Capacity: graph.NewInt(40)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	total, used, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(C), adj, graph.NewInt(100), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, graph.NewInt(40).Cmp(total))
	require.Equal(s.T(), 0, graph.NewInt(40).Cmp(used.Get(graph.PseudoNode(A, A), graph.Real(B))))
	require.Equal(s.T(), 0, graph.NewInt(40).Cmp(used.Get(graph.PseudoNode(B, B), graph.Real(C))))
}

// TestParallelPaths: scenario 4 — two disjoint routes combine, bounded by
// the shared sender-balance gate on A.
func (s *SolveSuite) TestParallelPaths() {
	edges := []graph.Edge{
		{From: A, To: B, Token: A, Capacity: graph.NewInt(30)},
		{From: B, To: D, Token: B, Capacity: graph.NewInt(30)},
		{From: A, To: C, Token: A, Capacity: graph.NewInt(30)},
		{From: C, To: D, Token: C, Capacity: graph.NewInt(30)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)
	// Build sizes A's gate to its largest leg (30); A's balance of 60 is set
	// on the gate directly.
	adj.Set(graph.Real(A), graph.PseudoNode(A, A), graph.NewInt(60))

	total, _, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(D), adj, graph.NewInt(100), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, graph.NewInt(60).Cmp(total))
}

// TestSourceGateBottleneck: scenario 5 — A's shared balance gate of 80 caps
// the sum of two 80-capacity recipient legs, each forwarded onward over a
// 100-capacity edge.
func (s *SolveSuite) TestSourceGateBottleneck() {
	edges := []graph.Edge{
		{From: A, To: B, Token: A, Capacity: graph.NewInt(80)},
		{From: A, To: C, Token: A, Capacity: graph.NewInt(80)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	// Route both B and C onward to D so the gate on A is what's tested.
	edges = append(edges,
		graph.Edge{From: B, To: D, Token: B, Capacity: graph.NewInt(100)},
		graph.Edge{From: C, To: D, Token: C, Capacity: graph.NewInt(100)},
	)
	adj, err = graph.Build(edges)
	require.NoError(s.T(), err)

	total, _, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(D), adj, graph.NewInt(1000), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, graph.NewInt(80).Cmp(total), "shared sender gate caps total outflow")
}

// TestNoPath: scenario 6 — a disconnected sink yields zero flow.
func (s *SolveSuite) TestNoPath() {
	edges := []graph.Edge{{From: A, To: B, Token: A, Capacity: graph.NewInt(10)}}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	total, used, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(D), adj, graph.NewInt(10), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.True(s.T(), total.IsZero())
	require.Empty(s.T(), used)
}

// TestSourceSinkIdentity: source == sink is degenerate, not an error.
func (s *SolveSuite) TestSourceSinkIdentity() {
	edges := []graph.Edge{{From: A, To: B, Token: A, Capacity: graph.NewInt(10)}}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	total, used, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(A), adj, graph.NewInt(10), flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.True(s.T(), total.IsZero())
	require.Empty(s.T(), used)
}

// TestZeroRequested: a zero request never enters the loop.
func (s *SolveSuite) TestZeroRequested() {
	edges := []graph.Edge{{From: A, To: B, Token: A, Capacity: graph.NewInt(10)}}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	total, _, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(B), adj, graph.ZeroInt, flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.True(s.T(), total.IsZero())
}

// TestDeterminism: repeated solves of identical input produce
// byte-identical output.
func (s *SolveSuite) TestDeterminism() {
	edges := []graph.Edge{
		{From: A, To: B, Token: A, Capacity: graph.NewInt(30)},
		{From: B, To: D, Token: B, Capacity: graph.NewInt(30)},
		{From: A, To: C, Token: A, Capacity: graph.NewInt(30)},
		{From: C, To: D, Token: C, Capacity: graph.NewInt(30)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	t1, u1, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(D), adj, graph.NewInt(1000), flow.DefaultOptions())
	require.NoError(s.T(), err)
	t2, u2, err := flow.Solve(s.ctx, graph.Real(A), graph.Real(D), adj, graph.NewInt(1000), flow.DefaultOptions())
	require.NoError(s.T(), err)

	require.Equal(s.T(), 0, t1.Cmp(t2))
	require.Equal(s.T(), len(u1), len(u2))
	for u, inner := range u1 {
		for v, cap := range inner {
			require.Equal(s.T(), 0, cap.Cmp(u2[u][v]))
		}
	}
}

// TestIterationLimit exercises the defensive iteration ceiling: A's gate of
// 10 lets the first iteration push only 10 of the 20 requested, so the loop
// starts a second iteration and a cap of one must fail.
func (s *SolveSuite) TestIterationLimit() {
	edges := []graph.Edge{
		{From: A, To: B, Token: A, Capacity: graph.NewInt(10)},
		{From: A, To: C, Token: A, Capacity: graph.NewInt(10)},
	}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	_, _, err = flow.Solve(s.ctx, graph.Real(A), graph.Real(B), adj, graph.NewInt(10), flow.Options{MaxIterations: 0})
	require.NoError(s.T(), err, "MaxIterations == 0 disables the check")

	edges = append(edges,
		graph.Edge{From: B, To: D, Token: B, Capacity: graph.NewInt(10)},
		graph.Edge{From: C, To: D, Token: C, Capacity: graph.NewInt(10)},
	)
	adj, err = graph.Build(edges)
	require.NoError(s.T(), err)

	_, _, err = flow.Solve(s.ctx, graph.Real(A), graph.Real(D), adj, graph.NewInt(20), flow.Options{MaxIterations: 1})
	require.ErrorIs(s.T(), err, flow.ErrIterationLimit)
}

// TestContextCancellation propagates a pre-cancelled context.
func (s *SolveSuite) TestContextCancellation() {
	edges := []graph.Edge{{From: A, To: B, Token: A, Capacity: graph.NewInt(10)}}
	adj, err := graph.Build(edges)
	require.NoError(s.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = flow.Solve(ctx, graph.Real(A), graph.Real(B), adj, graph.NewInt(10), flow.DefaultOptions())
	require.ErrorIs(s.T(), err, context.Canceled)
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}
