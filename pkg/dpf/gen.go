package dpf

import (
	"math/rand"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
)

// GenerateDPF produces a key pair (K0, K1) for target index j over a
// domain of size n, following spec §4.2. Bits of j are read MSB-first; at
// each level the correction word is built so that off-target leaves
// cancel between K0 and K1 while the target leaf diverges (spec invariant
// 1, §8). The final correction words are split as fresh additive shares
// of zero (convention (ii), spec §4.2/§9): the real per-query payload is
// never baked into the key, it is carried at runtime as the public mask
// FCWm (spec §4.5.5).
func GenerateDPF(j, n uint64, rng *rand.Rand) (k0, k1 Key, err error) {
	if n == 0 {
		return Key{}, Key{}, errs.New(errs.InvariantViolation, "dpf.GenerateDPF", "domain size must be positive")
	}
	if j >= n {
		return Key{}, Key{}, errs.New(errs.InvariantViolation, "dpf.GenerateDPF", "target %d out of range [0,%d)", j, n)
	}

	depth := DepthFor(n)
	k0 = Key{Depth: depth, Seed: rng.Uint64(), T0: true}
	k1 = Key{Depth: depth, Seed: rng.Uint64(), T0: false}
	if depth > 0 {
		k0.CW = make([]CW, depth)
		k1.CW = make([]CW, depth)
	}

	seed0, flag0 := k0.Seed, k0.T0
	seed1, flag1 := k1.Seed, k1.T0

	for level := uint8(0); level < depth; level++ {
		bit := (j>>(depth-1-level))&1 == 1

		l0, r0, tl0, tr0 := expand(seed0, level)
		l1, r1, tl1, tr1 := expand(seed1, level)

		leftBit := (tl0 != tl1) != !bit
		rightBit := (tr0 != tr1) != bit

		var cwSeed uint64
		if bit {
			// on-path child is the right child; the off-path (left) seeds
			// are what must cancel between parties.
			cwSeed = l0 ^ l1
		} else {
			cwSeed = r0 ^ r1
		}

		// Exactly one party currently has flag=1 (root invariant, preserved
		// by construction); that party alone applies the correction to its
		// expansion before both advance (spec §4.2 step 3).
		if flag0 {
			l0 ^= cwSeed
			r0 ^= cwSeed
			tl0 = tl0 != leftBit
			tr0 = tr0 != rightBit
		} else {
			l1 ^= cwSeed
			r1 ^= cwSeed
			tl1 = tl1 != leftBit
			tr1 = tr1 != rightBit
		}

		cw := CW{Seed: cwSeed, LeftBit: leftBit, RightBit: rightBit}
		k0.CW[level] = cw
		k1.CW[level] = cw

		if bit {
			seed0, flag0 = r0, tr0
			seed1, flag1 = r1, tr1
		} else {
			seed0, flag0 = l0, tl0
			seed1, flag1 = l1, tl1
		}
	}

	r := field.Elem(rng.Int63n(field.P))
	k0.FinalCW = r
	k1.FinalCW = field.Neg(r)
	return k0, k1, nil
}
