// Package field implements arithmetic over F_p for the fixed 31-bit
// prime p = 10^9+7 used throughout the protocol, and the additive share
// vectors built on top of it.
package field

// P is the field modulus, a prime fixed by the protocol (spec §1).
const P int64 = 1000000007

// Inv2 is (P+1)/2 mod P, the modular inverse of 2. Since P is odd this is
// an exact integer and is used to halve the ±2 DPF-scatter sum back to the
// signed contribution of a single party (spec §4.5.5).
const Inv2 int64 = (P + 1) / 2

// Elem is a field element, always held normalized into [0, P).
type Elem int64

// Norm reduces x into [0, P), accepting any int64 whose magnitude does not
// overflow (true of every value this package ever multiplies: P is a
// 31-bit prime, so a product of two normalized elements is bounded by
// roughly 2^60, well inside int64).
func Norm(x int64) Elem {
	x %= P
	if x < 0 {
		x += P
	}
	return Elem(x)
}

// Add returns a+b mod P.
func Add(a, b Elem) Elem { return Norm(int64(a) + int64(b)) }

// Sub returns a-b mod P.
func Sub(a, b Elem) Elem { return Norm(int64(a) - int64(b)) }

// Mul returns a*b mod P.
func Mul(a, b Elem) Elem { return Norm(int64(a) * int64(b)) }

// Neg returns -a mod P.
func Neg(a Elem) Elem { return Norm(-int64(a)) }
