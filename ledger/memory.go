package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/trustflow-network/flowengine/graph"
)

// ErrPercentageOutOfRange is returned by Trust when limit is not in [0, 100].
var ErrPercentageOutOfRange = errors.New("ledger: trust percentage must be between 0 and 100")

// ErrNotSignedUp is returned when an operation references a participant
// who never called Signup.
var ErrNotSignedUp = errors.New("ledger: participant not signed up")

// MemorySource is an in-process, non-authoritative Source: a registry of
// signups, token balances, and trust declarations, guarded by a single
// RWMutex in the manner of the graph core's per-resource locking.
//
// Derivation rule: a trust edge is a declaration by trustee that it will
// accept up to limit percent of its own balance in a given token from
// truster. So if truster trusts trustee at limit percent, then for every
// token trustee currently holds, truster may send trustee up to
// floor(balance * limit / 100) units of that token, where balance is
// trustee's own holding of it. This generalizes the personal-token trust
// model of the ledger MemorySource is standing in for to every token a
// participant holds (not only their own personal issuance), since a
// production ledger lets any held token move along a trust edge.
type MemorySource struct {
	mu sync.RWMutex

	signedUp map[graph.Address]bool
	balances map[graph.Address]map[graph.Address]graph.Int // holder -> token -> amount
	trust    map[graph.Address]map[graph.Address]uint32     // truster -> trustee -> percent
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		signedUp: make(map[graph.Address]bool),
		balances: make(map[graph.Address]map[graph.Address]graph.Int),
		trust:    make(map[graph.Address]map[graph.Address]uint32),
	}
}

// Signup registers participant as known. Balances and trust declarations
// for an address that was never signed up are rejected.
func (m *MemorySource) Signup(participant graph.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.signedUp[participant] = true
}

// SetBalance records holder's balance of token, overwriting any prior
// value. holder must already be signed up.
func (m *MemorySource) SetBalance(holder, token graph.Address, amount graph.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.signedUp[holder] {
		return fmt.Errorf("%w: %x", ErrNotSignedUp, holder)
	}
	inner, ok := m.balances[holder]
	if !ok {
		inner = make(map[graph.Address]graph.Int)
		m.balances[holder] = inner
	}
	inner[token] = amount
	return nil
}

// Trust records that truster may send trustee up to limit percent of
// trustee's own balance of every token trustee holds. Both parties must
// already be signed up. A limit of 0 revokes trust without deleting the
// entry: Edges simply emits nothing for a zero-percent relation.
func (m *MemorySource) Trust(truster, trustee graph.Address, limit uint32) error {
	if limit > 100 {
		return fmt.Errorf("%w: %d", ErrPercentageOutOfRange, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.signedUp[truster] {
		return fmt.Errorf("%w: %x", ErrNotSignedUp, truster)
	}
	if !m.signedUp[trustee] {
		return fmt.Errorf("%w: %x", ErrNotSignedUp, trustee)
	}

	inner, ok := m.trust[truster]
	if !ok {
		inner = make(map[graph.Address]uint32)
		m.trust[truster] = inner
	}
	inner[trustee] = limit
	return nil
}

// Edges derives the current trust-graph edge set from signups, balances,
// and trust declarations, per MemorySource's doc comment.
func (m *MemorySource) Edges(_ context.Context) ([]graph.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var edges []graph.Edge
	for truster, trustees := range m.trust {
		for trustee, percent := range trustees {
			if percent == 0 || trustee == truster {
				continue
			}
			holdings := m.balances[trustee]
			for token, balance := range holdings {
				cap := percentOf(balance, percent)
				if cap.IsZero() {
					continue
				}
				edges = append(edges, graph.Edge{
					From:     truster,
					To:       trustee,
					Token:    token,
					Capacity: cap,
				})
			}
		}
	}
	return edges, nil
}

// Fingerprint returns ComputeFingerprint over the current derived edge
// set. A production Source backed by a real ledger would typically
// maintain this incrementally rather than recomputing it from scratch.
func (m *MemorySource) Fingerprint(ctx context.Context) (graph.Fingerprint, error) {
	edges, err := m.Edges(ctx)
	if err != nil {
		return graph.Fingerprint{}, err
	}
	return graph.ComputeFingerprint(edges), nil
}

// percentOf returns floor(balance * percent / 100), never negative.
func percentOf(balance graph.Int, percent uint32) graph.Int {
	if percent == 0 || balance.IsZero() {
		return graph.ZeroInt
	}
	scaled := new(big.Int).Mul(balance.Big(), big.NewInt(int64(percent)))
	scaled.Div(scaled, big.NewInt(100))
	return graph.NewIntFromBig(scaled)
}
