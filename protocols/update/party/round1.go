package party

import (
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/party"
)

// signShare turns a raw ±1 DPF sign vector into its additive-share
// representation by scaling with inv2, so that the two parties' shares
// sum to 1 at the target index and 0 elsewhere once combined with the
// complementary sign pattern (spec.md §4.5.3).
func signShare(signs []int8) field.Share {
	out := field.NewShare(len(signs))
	half := field.Elem(field.Inv2)
	for i, s := range signs {
		if s == 1 {
			out.Set(i, half)
		} else {
			out.Set(i, field.Neg(half))
		}
	}
	return out
}

// obliviousSelect derives this party's share of the one-hot selector from
// the query's DPF sign vector, then runs k shared dot products (one per V
// column, each of length n) to obtain v_sel, a share of V's secret row
// (spec.md §4.5.3).
func (p *Party) obliviousSelect(signs []int8) (field.Share, error) {
	n := len(signs)
	k := p.Cfg.K
	if len(p.Cfg.VShares) != n {
		return field.Share{}, errs.New(errs.ShapeMismatch, "party.obliviousSelect",
			"V has %d rows, DPF domain is %d", len(p.Cfg.VShares), n)
	}

	sel := signShare(signs)
	vSel := field.NewShare(k)
	for d := 0; d < k; d++ {
		col := field.NewShare(n)
		for idx := 0; idx < n; idx++ {
			col.Set(idx, p.Cfg.VShares[idx].At(d))
		}
		z, err := SharedDot(p.Peer, p.Helper, p.Role == party.P0, sel, col)
		if err != nil {
			return field.Share{}, errs.Wrap(errs.IOFailure, "party.obliviousSelect", err)
		}
		vSel.Set(d, z)
	}
	return vSel, nil
}
