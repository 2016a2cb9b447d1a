package graph

import (
	"encoding/hex"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// AddressLength is the fixed width of an Address, in bytes.
const AddressLength = ethcommon.AddressLength

// Address is an opaque, fixed-width identifier for both participants and
// tokens. It is backed by go-ethereum's common.Address (20 bytes) since the
// reference deployment of this protocol runs on an Ethereum-compatible chain.
type Address = ethcommon.Address

// ParseAddress decodes a hex string (with or without a leading "0x") into an
// Address. It returns an error if the decoded length does not match
// AddressLength.
func ParseAddress(s string) (Address, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("graph: invalid address %q: %w", s, err)
	}
	if len(raw) != AddressLength {
		return Address{}, fmt.Errorf("graph: address %q has %d bytes, want %d", s, len(raw), AddressLength)
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// CompareAddress gives addresses a total order: -1 if a < b, 0 if equal, 1
// if a > b, ordered lexicographically over the underlying bytes.
func CompareAddress(a, b Address) int {
	for i := 0; i < AddressLength; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// LessAddress reports whether a sorts strictly before b.
func LessAddress(a, b Address) bool {
	return CompareAddress(a, b) < 0
}

// SortAddresses returns a sorted copy of addrs in ascending order.
func SortAddresses(addrs []Address) []Address {
	out := make([]Address, len(addrs))
	copy(out, addrs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && LessAddress(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
