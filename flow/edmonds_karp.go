package flow

import (
	"context"
	"fmt"

	"github.com/trustflow-network/flowengine/graph"
)

// Solve computes the maximum flow from source to sink over adjacency,
// capped at requested, using Edmonds–Karp (BFS augmenting paths).
//
// It returns:
//   - total: the flow actually pushed, total <= requested.
//   - usedEdges: the net flow along each real edge of adjacency (not the
//     residual graph); see the rule below.
//   - err: non-nil on context cancellation, on an iteration-limit
//     violation (Options.MaxIterations), or, on a malformed adjacency, on
//     ErrNegativeCancellation or a residual capacity that would go negative.
//
// adjacency is never mutated; Solve works on an internal residual copy.
//
// # Degenerate cases
//
// source == sink, source absent from adjacency, or requested == 0 all
// return (graph.ZeroInt, graph.Adjacency{}, nil) without entering the loop —
// these are not errors.
//
// # Main loop
//
// Repeat until total == requested or no augmenting path exists:
//
//  1. BFS the residual map from source, visiting each node's neighbours in
//     descending-capacity, descending-identity order (sortedNeighbors),
//     recording a parent pointer and the bottleneck capacity to each node
//     reached. Stop as soon as sink is enqueued.
//  2. If no path was found, stop.
//  3. Cap the path's bottleneck to whatever remains of requested.
//  4. Walk the path from sink back to source. For each hop (prev, node):
//     - capacities[prev][node] -= pushed; capacities[node][prev] += pushed.
//     - if (node, prev) is NOT a positive-capacity edge of the original
//     adjacency, this hop is a real forward edge: usedEdges[prev][node]
//     += pushed.
//     - otherwise this hop is travelling the reverse of a real edge
//     (cancelling earlier flow): usedEdges[node][prev] -= pushed.
//  5. total += pushed.
func Solve(
	ctx context.Context,
	source, sink graph.Node,
	adjacency graph.Adjacency,
	requested graph.Int,
	opts Options,
) (total graph.Int, usedEdges graph.Adjacency, err error) {
	log := opts.logger()
	usedEdges = make(graph.Adjacency)

	if source == sink || requested.Sign() <= 0 {
		return graph.ZeroInt, usedEdges, nil
	}
	if _, ok := adjacency[source]; !ok {
		return graph.ZeroInt, usedEdges, nil
	}

	residual := adjacency.Clone()
	total = graph.ZeroInt
	iterations := 0

	for total.LessThan(requested) {
		if err := ctx.Err(); err != nil {
			return total, usedEdges, err
		}
		if opts.MaxIterations > 0 && iterations >= opts.MaxIterations {
			return total, usedEdges, ErrIterationLimit
		}
		iterations++

		parent, bottleneck, found := augmentingPath(ctx, source, sink, residual)
		if err := ctx.Err(); err != nil {
			return total, usedEdges, err
		}
		if !found {
			break
		}

		remaining, subErr := requested.Sub(total)
		if subErr != nil {
			return total, usedEdges, subErr
		}
		pushed := graph.Min(bottleneck, remaining)

		if err := applyAugmentingPath(residual, usedEdges, adjacency, parent, source, sink, pushed); err != nil {
			return total, usedEdges, err
		}
		total = total.Add(pushed)

		log.Debug("flow: augmenting path", "pushed", pushed.String(), "total", total.String())
	}

	log.Debug("flow: solve complete", "flow", total.String(), "iterations", iterations)
	return total, usedEdges, nil
}

// augmentingPath runs one BFS over residual from source, returning the
// parent map and bottleneck capacity of the shortest (fewest-hop) path to
// sink, or found == false if none exists.
func augmentingPath(
	ctx context.Context,
	source, sink graph.Node,
	residual graph.Adjacency,
) (parent map[graph.Node]graph.Node, bottleneck graph.Int, found bool) {
	parent = map[graph.Node]graph.Node{}
	capTo := map[graph.Node]graph.Int{source: graph.InfInt()}
	visited := map[graph.Node]bool{source: true}

	type queued struct {
		node graph.Node
		cap  graph.Int
	}
	queue := []queued{{node: source, cap: graph.InfInt()}}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, graph.ZeroInt, false
		default:
		}

		cur := queue[0]
		queue = queue[1:]

		for _, nc := range sortedNeighbors(residual, cur.node) {
			if visited[nc.Node] || nc.Capacity.Sign() <= 0 {
				continue
			}
			visited[nc.Node] = true
			parent[nc.Node] = cur.node
			reach := graph.Min(cur.cap, nc.Capacity)
			capTo[nc.Node] = reach

			if nc.Node == sink {
				return parent, reach, true
			}
			queue = append(queue, queued{node: nc.Node, cap: reach})
		}
	}
	return nil, graph.ZeroInt, false
}

// sortedNeighbors returns u's out-edges in descending-capacity order,
// breaking ties by descending Node identity — the deterministic
// tie-breaking rule the BFS visitation order must follow.
func sortedNeighbors(adjacency graph.Adjacency, u graph.Node) []graph.NodeCapacity {
	neighbors := adjacency.Neighbors(u)
	for i := 1; i < len(neighbors); i++ {
		for j := i; j > 0 && lessNeighbor(neighbors[j], neighbors[j-1]); j-- {
			neighbors[j], neighbors[j-1] = neighbors[j-1], neighbors[j]
		}
	}
	return neighbors
}

// lessNeighbor orders a before b when a should be visited first: higher
// capacity first, then (on a capacity tie) the node with the greater
// identity first.
func lessNeighbor(a, b graph.NodeCapacity) bool {
	if c := a.Capacity.Cmp(b.Capacity); c != 0 {
		return c > 0
	}
	return b.Node.Less(a.Node)
}

// applyAugmentingPath walks parent from sink back to source, updating the
// residual capacities and the usedEdges net-flow map per the sign rule
// documented on Solve.
func applyAugmentingPath(
	residual, usedEdges, original graph.Adjacency,
	parent map[graph.Node]graph.Node,
	source, sink graph.Node,
	pushed graph.Int,
) error {
	for node := sink; node != source; {
		prev := parent[node]

		forward, err := residual.Get(prev, node).Sub(pushed)
		if err != nil {
			return fmt.Errorf("flow: residual capacity %v->%v: %w", prev, node, err)
		}
		residual.Set(prev, node, forward)
		residual.Set(node, prev, residual.Get(node, prev).Add(pushed))

		if !original.Has(node, prev) {
			usedEdges.Set(prev, node, usedEdges.Get(prev, node).Add(pushed))
		} else {
			cancelled, err := usedEdges.Get(node, prev).Sub(pushed)
			if err != nil {
				return fmt.Errorf("%w: %v->%v: %v", ErrNegativeCancellation, node, prev, err)
			}
			usedEdges.Set(node, prev, cancelled)
		}

		node = prev
	}
	return nil
}
