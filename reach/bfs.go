package reach

import (
	"fmt"
	"sort"

	"github.com/trustflow-network/flowengine/graph"
)

// NodeVisit describes one node as it is visited: its identity, its hop
// distance from the source, and the capacity of the edge that first
// reached it (zero for the source itself).
type NodeVisit struct {
	Node     graph.Node
	Depth    int
	Capacity graph.Int
}

// Result holds the outcome of a BFS traversal: every node reached, in
// visit order, plus the distance and parent-link maps needed to
// reconstruct a shortest path to any of them.
type Result struct {
	Order  []graph.Node
	Depth  map[graph.Node]int
	Parent map[graph.Node]graph.Node
}

// Reachable reports whether n was visited.
func (r *Result) Reachable(n graph.Node) bool {
	_, ok := r.Depth[n]
	return ok
}

// PathTo reconstructs the shortest (by hop count) path from the BFS
// source to dest, inclusive of both endpoints. Returns an error if dest
// was never visited.
func (r *Result) PathTo(dest graph.Node) ([]graph.Node, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("reach: no path to %v", dest)
	}
	path := []graph.Node{dest}
	for cur := dest; ; {
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type queueItem struct {
	node   graph.Node
	depth  int
	parent graph.Node
	hasPar bool
	cap    graph.Int
}

// walker encapsulates mutable BFS state, mirroring the shape of the flow
// solver's augmenting-path walk but exploring the entire reachable set
// rather than stopping at a sink.
type walker struct {
	adjacency graph.Adjacency
	opts      Options
	queue     []queueItem
	visited   map[graph.Node]bool
	res       *Result
}

// BFS explores adjacency from start, visiting every reachable node in
// ascending graph.Node order among same-depth neighbors, and returns the
// resulting Result. A neighbor with zero capacity is skipped: it is not a
// usable edge, merely a recorded one.
func BFS(adjacency graph.Adjacency, start graph.Node, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		adjacency: adjacency,
		opts:      o,
		visited:   make(map[graph.Node]bool),
		res: &Result{
			Order:  make([]graph.Node, 0, len(adjacency)),
			Depth:  make(map[graph.Node]int, len(adjacency)),
			Parent: make(map[graph.Node]graph.Node, len(adjacency)),
		},
	}

	w.enqueue(start, 0, graph.Node{}, graph.ZeroInt, false)
	return w.res, w.loop()
}

func (w *walker) enqueue(n graph.Node, depth int, parent graph.Node, cap graph.Int, hasParent bool) {
	w.visited[n] = true
	w.res.Depth[n] = depth
	if hasParent {
		w.res.Parent[n] = parent
	}
	w.queue = append(w.queue, queueItem{node: n, depth: depth, parent: parent, hasPar: hasParent, cap: cap})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.node)
		if err := w.opts.OnVisit(NodeVisit{Node: item.node, Depth: item.depth, Capacity: item.cap}); err != nil {
			return fmt.Errorf("reach: OnVisit error at %v: %w", item.node, err)
		}

		if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
			continue
		}

		for _, nc := range sortedNeighbors(w.adjacency, item.node) {
			if nc.Capacity.Sign() <= 0 || w.visited[nc.Node] {
				continue
			}
			w.enqueue(nc.Node, item.depth+1, item.node, nc.Capacity, true)
		}
	}
	return nil
}

// sortedNeighbors returns u's neighbors in ascending graph.Node order, so
// traversal order is independent of Go's randomized map iteration.
func sortedNeighbors(adjacency graph.Adjacency, u graph.Node) []graph.NodeCapacity {
	nc := adjacency.Neighbors(u)
	sort.Slice(nc, func(i, j int) bool { return nc[i].Node.Less(nc[j].Node) })
	return nc
}
