// Package beaver implements Beaver multiplication triples: the correlated
// randomness that lets two parties compute a share of x*y from shares of x
// and y with one round of communication (spec §3, §4.4).
package beaver

import (
	"math/rand"

	"github.com/luxfi/privrec/pkg/field"
)

// Triple is one party's additive share (a, b, c) of a Beaver triple with
// c = a*b (spec §3).
type Triple struct {
	A, B, C field.Elem
}

// Split deals a full triple (a, b, c=a*b) into two additive share-triples
// using rng for the P0-side randomness (spec §3: "each party holds exactly
// one share-triple and no party sees the reconstructed a, b, or c").
func Split(a, b field.Elem, rng *rand.Rand) (t0, t1 Triple) {
	a0 := field.Elem(rng.Int63n(field.P))
	return SplitWithA(a0, a, b, rng)
}

// SplitWithA deals a full triple (a, b, c=a*b) using a caller-supplied a0,
// so that a batch of triples can share a single (a0, a1) split across
// every triple while b and c vary independently per triple (spec §4.4:
// "all k triples in a request share the same a component").
func SplitWithA(a0, a, b field.Elem, rng *rand.Rand) (t0, t1 Triple) {
	c := field.Mul(a, b)
	b0 := field.Elem(rng.Int63n(field.P))
	c0 := field.Elem(rng.Int63n(field.P))
	t0 = Triple{A: a0, B: b0, C: c0}
	t1 = Triple{A: field.Sub(a, a0), B: field.Sub(b, b0), C: field.Sub(c, c0)}
	return t0, t1
}
