package transfer

import (
	"errors"
	"fmt"

	"github.com/trustflow-network/flowengine/graph"
)

// ErrInconsistentFlow is returned when extraction stalls with a non-empty,
// non-sink balance remaining after a wave that produced no transfers. This
// indicates the used-edges map handed to Extract was not conservative — a
// programming error upstream in the solver, not a normal runtime condition,
// so it is reported distinctly rather than the transfer list being silently
// truncated.
var ErrInconsistentFlow = errors.New("transfer: inconsistent flow: residual balance could not be drained")

// InconsistentFlowError carries the diagnostic context ErrInconsistentFlow
// wraps: the source, sink, requested amount, and whatever balances remained
// stuck when extraction gave up.
type InconsistentFlowError struct {
	Source, Sink graph.Address
	Requested    graph.Int
	Residual     map[graph.Address]graph.Int
}

func (e *InconsistentFlowError) Error() string {
	return fmt.Sprintf("%v: source=%x sink=%x requested=%s residual=%d entries",
		ErrInconsistentFlow, e.Source, e.Sink, e.Requested, len(e.Residual))
}

func (e *InconsistentFlowError) Unwrap() error { return ErrInconsistentFlow }

// Transfer is one atomic movement of Token from From to To, structurally an
// Edge whose Capacity is the amount actually moved in this step.
type Transfer struct {
	From     graph.Address
	To       graph.Address
	Token    graph.Address
	Capacity graph.Int
}
