// Package party implements the per-query online protocol a peer (P0 or
// P1) runs against its counterpart and the helper: shared dot products
// and scalar-vector products over Beaver triples, DPF-based oblivious
// select and scatter, and the end-of-run reconstruction dump
// (spec.md §4.5).
package party

import (
	"net"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/netio"
)

func packVecs(a, b field.Share) field.Share {
	k := a.Len()
	out := field.NewShare(2 * k)
	for i := 0; i < k; i++ {
		out.Set(i, a.At(i))
	}
	for i := 0; i < k; i++ {
		out.Set(k+i, b.At(i))
	}
	return out
}

func unpackVecs(s field.Share, k int) (a, b field.Share) {
	a = field.NewShare(k)
	b = field.NewShare(k)
	for i := 0; i < k; i++ {
		a.Set(i, s.At(i))
	}
	for i := 0; i < k; i++ {
		b.Set(i, s.At(k+i))
	}
	return a, b
}

// SharedDot computes this party's share of <x, y> using k Beaver triples
// fetched from helperConn and one simultaneous exchange with peerConn
// (spec.md §4.5.1). isP0 must match the caller's role: only P0 sends the
// Helper the triple count (spec.md §4.4).
func SharedDot(peerConn, helperConn net.Conn, isP0 bool, x, y field.Share) (field.Elem, error) {
	k := x.Len()
	if y.Len() != k {
		return 0, errs.New(errs.ShapeMismatch, "party.SharedDot", "x has length %d, y has length %d", k, y.Len())
	}

	triples, err := netio.RequestTriples(helperConn, k, isP0)
	if err != nil {
		return 0, errs.Wrap(errs.IOFailure, "party.SharedDot", err)
	}

	ab := field.NewShare(k)
	bb := field.NewShare(k)
	cb := field.NewShare(k)
	for i, t := range triples {
		ab.Set(i, t.A)
		bb.Set(i, t.B)
		cb.Set(i, t.C)
	}

	alpha := field.AddVec(x, ab)
	beta := field.AddVec(y, bb)

	peerVecs, err := netio.ExchangeVec(peerConn, packVecs(alpha, beta))
	if err != nil {
		return 0, errs.Wrap(errs.IOFailure, "party.SharedDot", err)
	}
	peerAlpha, peerBeta := unpackVecs(peerVecs, k)

	alphaFull := field.AddVec(alpha, peerAlpha)
	betaFull := field.AddVec(beta, peerBeta)

	z := field.Elem(0)
	for i := 0; i < k; i++ {
		term := field.Sub(field.Mul(alphaFull.At(i), y.At(i)), field.Mul(betaFull.At(i), ab.At(i)))
		z = field.Add(z, field.Add(term, cb.At(i)))
	}
	return z, nil
}

// ScalarVec computes this party's share of s*v (elementwise scaling of a
// length-k vector share v by a scalar share s), using k Beaver triples
// that all share a single `a` component, per the helper's batching
// (spec.md §4.5.2). isP0 must match the caller's role: only P0 sends the
// Helper the triple count (spec.md §4.4).
func ScalarVec(peerConn, helperConn net.Conn, isP0 bool, s field.Elem, v field.Share) (field.Share, error) {
	k := v.Len()
	triples, err := netio.RequestTriples(helperConn, k, isP0)
	if err != nil {
		return field.Share{}, errs.Wrap(errs.IOFailure, "party.ScalarVec", err)
	}

	aScalar := triples[0].A
	bb := field.NewShare(k)
	cb := field.NewShare(k)
	for i, t := range triples {
		bb.Set(i, t.B)
		cb.Set(i, t.C)
	}

	alphaB := field.Add(s, aScalar)
	betaB := field.AddVec(v, bb)

	local := field.NewShare(k + 1)
	local.Set(0, alphaB)
	for i := 0; i < k; i++ {
		local.Set(i+1, betaB.At(i))
	}

	peer, err := netio.ExchangeVec(peerConn, local)
	if err != nil {
		return field.Share{}, errs.Wrap(errs.IOFailure, "party.ScalarVec", err)
	}
	alphaPeer := peer.At(0)
	betaPeer := field.NewShare(k)
	for i := 0; i < k; i++ {
		betaPeer.Set(i, peer.At(i+1))
	}

	alphaFull := field.Add(alphaB, alphaPeer)
	betaFull := field.AddVec(betaB, betaPeer)

	r := field.NewShare(k)
	for i := 0; i < k; i++ {
		term := field.Sub(field.Mul(alphaFull, v.At(i)), field.Mul(betaFull.At(i), aScalar))
		r.Set(i, field.Add(term, cb.At(i)))
	}
	return r, nil
}
