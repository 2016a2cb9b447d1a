package transfer

import (
	"log/slog"

	"github.com/trustflow-network/flowengine/graph"
)

// Options configures Extract. The zero value disables logging.
type Options struct {
	// Logger receives one debug record per wave. A nil Logger disables
	// logging.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// Extract walks usedEdges in waves (see the package doc comment),
// producing an ordered list of Transfers that move amount units from
// source to sink. usedEdges is not mutated; Extract works on a private
// clone.
func Extract(source, sink graph.Address, amount graph.Int, usedEdges graph.Adjacency, opts Options) ([]Transfer, error) {
	log := opts.logger()
	working := usedEdges.Clone()

	balances := map[graph.Address]graph.Int{source: amount}
	var transfers []Transfer
	wave := 0

	for !isDrained(balances, sink) {
		next, err := extractNextWave(working, balances)
		if err != nil {
			return nil, err
		}
		wave++
		log.Debug("transfer: wave", "index", wave, "emitted", len(next))

		if len(next) == 0 {
			return nil, &InconsistentFlowError{
				Source:    source,
				Sink:      sink,
				Requested: amount,
				Residual:  cloneBalances(balances),
			}
		}
		transfers = append(transfers, next...)
	}

	return transfers, nil
}

// isDrained reports whether balances is empty, or holds only the sink.
func isDrained(balances map[graph.Address]graph.Int, sink graph.Address) bool {
	if len(balances) == 0 {
		return true
	}
	if len(balances) > 1 {
		return false
	}
	for addr := range balances {
		return addr == sink
	}
	return true
}

// extractNextWave scans every participant with a positive balance, in
// ascending Address order, and for each one its reachable pseudo-nodes (in
// ascending Node order) and each pseudo-node's recipients (in ascending
// Address order), firing every transfer whose capacity the holder can
// currently afford. The first edge a wave finds it cannot yet afford ends
// the wave immediately once at least one transfer has fired; if none has
// fired yet, scanning continues past it (a later, smaller edge in the same
// wave may still be affordable).
func extractNextWave(working graph.Adjacency, balances map[graph.Address]graph.Int) ([]Transfer, error) {
	var wave []Transfer

	for _, node := range sortedBalanceHolders(balances) {
		balance := balances[node]
		if balance.IsZero() {
			continue
		}

		for _, p := range sortedPseudoSuccessors(working, node) {
			for _, to := range sortedRecipients(working, p) {
				cap := working.Get(p, graph.Real(to))
				if cap.IsZero() {
					continue
				}
				if balance.LessThan(cap) {
					if len(wave) > 0 {
						dropDepleted(balances)
						return wave, nil
					}
					continue
				}

				wave = append(wave, Transfer{From: p.Addr, To: to, Token: p.Token, Capacity: cap})

				var err error
				balance, err = balance.Sub(cap)
				if err != nil {
					return nil, err
				}
				balances[node] = balance
				balances[to] = balances[to].Add(cap)
				working.Set(p, graph.Real(to), graph.ZeroInt)
			}
		}
	}

	dropDepleted(balances)
	return wave, nil
}

func dropDepleted(balances map[graph.Address]graph.Int) {
	for addr, bal := range balances {
		if bal.IsZero() {
			delete(balances, addr)
		}
	}
}

func sortedBalanceHolders(balances map[graph.Address]graph.Int) []graph.Address {
	addrs := make([]graph.Address, 0, len(balances))
	for addr := range balances {
		addrs = append(addrs, addr)
	}
	return graph.SortAddresses(addrs)
}

// sortedPseudoSuccessors returns the pseudo-nodes working[Real(node)] points
// to, in ascending Node order.
func sortedPseudoSuccessors(working graph.Adjacency, node graph.Address) []graph.Node {
	inner := working[graph.Real(node)]
	nodes := make([]graph.Node, 0, len(inner))
	for n := range inner {
		if n.Pseudo {
			nodes = append(nodes, n)
		}
	}
	return graph.SortNodes(nodes)
}

// sortedRecipients returns the real-node recipients working[p] points to,
// in ascending Address order.
func sortedRecipients(working graph.Adjacency, p graph.Node) []graph.Address {
	inner := working[p]
	addrs := make([]graph.Address, 0, len(inner))
	for n := range inner {
		addrs = append(addrs, n.Addr)
	}
	return graph.SortAddresses(addrs)
}

func cloneBalances(balances map[graph.Address]graph.Int) map[graph.Address]graph.Int {
	out := make(map[graph.Address]graph.Int, len(balances))
	for k, v := range balances {
		out[k] = v
	}
	return out
}
