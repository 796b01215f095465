package dpf

// EvalFlagAt descends key along x's MSB-first bit path over a domain of
// size n, applying the level's correction word (both the seed and the
// advice bit) whenever the current flag is 1, and returns the final leaf
// flag (spec §4.3). For x != target, evaluating K0 and K1 yields equal
// flags; at x == target they differ (spec invariant 1).
func EvalFlagAt(key Key, x, n uint64) bool {
	depth := DepthFor(n)
	seed, flag := key.Seed, key.T0

	for level := uint8(0); level < depth; level++ {
		bit := (x>>(depth-1-level))&1 == 1
		l, r, tl, tr := expand(seed, level)

		if flag {
			cw := key.CW[level]
			l ^= cw.Seed
			r ^= cw.Seed
			tl = tl != cw.LeftBit
			tr = tr != cw.RightBit
		}

		if bit {
			seed, flag = r, tr
		} else {
			seed, flag = l, tl
		}
	}
	return flag
}

// EvalSigns returns the length-n vector of ±1 signs for key: +1 where the
// leaf flag is 0, -1 where it is 1, globally flipped if negate is set
// (spec §4.3). Summing K0's and K1's signs (after the dealer's negate
// choice) gives 0 at every non-target leaf and +2 at the target (spec
// invariant 2, §8).
func EvalSigns(key Key, n uint64, negate bool) []int8 {
	out := make([]int8, n)
	for x := uint64(0); x < n; x++ {
		s := int8(1)
		if EvalFlagAt(key, x, n) {
			s = -1
		}
		if negate {
			s = -s
		}
		out[x] = s
	}
	return out
}

// ChooseNegateP0 is the dealer's sign-alignment choice (spec §3): the
// single public bit that makes the target leaf's two per-party signs sum
// to +2 rather than -2 once K0 applies it and K1 applies its complement.
func ChooseNegateP0(k0, k1 Key, j, n uint64) bool {
	f0 := EvalFlagAt(k0, j, n)
	f1 := EvalFlagAt(k1, j, n)
	sign0, sign1 := 1, 1
	if f0 {
		sign0 = -1
	}
	if f1 {
		sign1 = -1
	}
	return sign0-sign1 <= 0
}
