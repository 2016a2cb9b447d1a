package graph

import (
	"fmt"
	"math/big"
)

// Int is a non-negative, arbitrary-precision integer used for every balance
// and capacity value in the flow engine. It is backed by math/big.Int rather
// than a fixed-width type (e.g. uint256) because trust limits and balances
// can carry full 18-decimal token precision and must never silently
// truncate or overflow.
//
// The zero value of Int is zero. Int also carries a distinguished "infinite"
// state, used only as the BFS's initial bottleneck capacity at the source —
// it never appears in a capacity map and is never returned from Solve.
type Int struct {
	bn  big.Int
	inf bool
}

// ZeroInt is the additive identity.
var ZeroInt = Int{}

// InfInt returns the sentinel "infinite" Int used to seed a BFS search from
// the source, where no finite bottleneck has yet been observed.
func InfInt() Int { return Int{inf: true} }

// NewInt constructs an Int from a non-negative int64. It panics if v is
// negative, since Int has no representation for negative values.
func NewInt(v int64) Int {
	if v < 0 {
		panic("graph: NewInt called with a negative value")
	}
	var bn big.Int
	bn.SetInt64(v)
	return Int{bn: bn}
}

// NewIntFromBig wraps a *big.Int. The returned Int holds its own copy of b,
// so later changes to b do not affect it; negative inputs panic.
func NewIntFromBig(b *big.Int) Int {
	if b.Sign() < 0 {
		panic("graph: NewIntFromBig called with a negative value")
	}
	var bn big.Int
	bn.Set(b)
	return Int{bn: bn}
}

// IsInf reports whether x is the sentinel infinite value.
func (x Int) IsInf() bool { return x.inf }

// IsZero reports whether x is exactly zero (and not infinite).
func (x Int) IsZero() bool { return !x.inf && x.bn.Sign() == 0 }

// Sign returns -1, 0, or 1; an infinite Int always reports 1.
func (x Int) Sign() int {
	if x.inf {
		return 1
	}
	return x.bn.Sign()
}

// Cmp compares x and y, returning -1, 0, or 1. Infinite values compare
// greater than every finite value and equal to each other.
func (x Int) Cmp(y Int) int {
	switch {
	case x.inf && y.inf:
		return 0
	case x.inf:
		return 1
	case y.inf:
		return -1
	default:
		return x.bn.Cmp(&y.bn)
	}
}

// GreaterThan reports whether x > y.
func (x Int) GreaterThan(y Int) bool { return x.Cmp(y) > 0 }

// LessThan reports whether x < y.
func (x Int) LessThan(y Int) bool { return x.Cmp(y) < 0 }

// Add returns x + y. Adding to or with an infinite value yields infinity.
func (x Int) Add(y Int) Int {
	if x.inf || y.inf {
		return InfInt()
	}
	var out big.Int
	out.Add(&x.bn, &y.bn)
	return Int{bn: out}
}

// Sub returns x - y and an error if the result would be negative, preserving
// the invariant that Int never represents a negative value. Subtracting a
// finite value from infinity yields infinity; subtracting infinity is never
// valid and always errors.
func (x Int) Sub(y Int) (Int, error) {
	if y.inf {
		return Int{}, fmt.Errorf("graph: cannot subtract an infinite value")
	}
	if x.inf {
		return InfInt(), nil
	}
	if x.bn.Cmp(&y.bn) < 0 {
		return Int{}, fmt.Errorf("graph: subtraction would be negative: %s - %s", x.String(), y.String())
	}
	var out big.Int
	out.Sub(&x.bn, &y.bn)
	return Int{bn: out}, nil
}

// MustSub is Sub, panicking on error. Reserved for callers that have
// independently established the subtraction is safe; the flow and transfer
// packages both prefer the error-returning Sub since neither can prove that
// statically.
func (x Int) MustSub(y Int) Int {
	out, err := x.Sub(y)
	if err != nil {
		panic(err)
	}
	return out
}

// Min returns the smaller of x and y.
func Min(x, y Int) Int {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// String renders x in decimal, or "inf" for the sentinel infinite value.
func (x Int) String() string {
	if x.inf {
		return "inf"
	}
	return x.bn.String()
}

// Big returns a copy of the underlying *big.Int. It panics for the infinite
// sentinel, which has no finite representation.
func (x Int) Big() *big.Int {
	if x.inf {
		panic("graph: Big called on an infinite Int")
	}
	var out big.Int
	out.Set(&x.bn)
	return &out
}

// Bytes returns the big-endian, zero-stripped byte representation of x, used
// when folding capacities into the builder's edge-set fingerprint.
func (x Int) Bytes() []byte {
	if x.inf {
		return []byte("inf")
	}
	return x.bn.Bytes()
}
