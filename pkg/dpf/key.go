// Package dpf implements the two-key Distributed Point Function used to
// obliviously select and scatter an update into a single row of V without
// revealing its index to either party (spec §3, §4.2, §4.3).
package dpf

import "github.com/luxfi/privrec/pkg/field"

// CW is one level's correction word: a 64-bit seed correction and two
// advice bits, identical across both parties' keys (spec §3).
type CW struct {
	Seed     uint64
	LeftBit  bool
	RightBit bool
}

// Key is one party's half of a DPF key pair over a domain of size N with
// depth = ceil(log2(N)) (spec §3).
type Key struct {
	Depth   uint8
	Seed    uint64
	T0      bool
	CW      []CW
	FinalCW field.Elem
}

// DepthFor returns ceil(log2(n)), or 0 when n<=1 (spec §4.2).
func DepthFor(n uint64) uint8 {
	if n <= 1 {
		return 0
	}
	d := uint8(0)
	for (uint64(1) << d) < n {
		d++
	}
	return d
}
