package party

import (
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/netio"
)

// itemSideScatter adds the public delta FCWm = M to V's secret row and
// nothing to any other row, without revealing which row, using the DPF's
// final correction word as a one-time mask and its sign vector to steer
// the contribution (spec.md §4.5.5).
func (p *Party) itemSideScatter(m field.Share, finalCW field.Elem, signs []int8) error {
	k := m.Len()
	masked := field.NewShare(k)
	for d := 0; d < k; d++ {
		masked.Set(d, field.Sub(m.At(d), finalCW))
	}

	peerMasked, err := netio.ExchangeVec(p.Peer, masked)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.itemSideScatter", err)
	}
	fcwm := field.AddVec(masked, peerMasked)

	if len(signs) != len(p.Cfg.VShares) {
		return errs.New(errs.ShapeMismatch, "party.itemSideScatter",
			"sign vector length %d != V row count %d", len(signs), len(p.Cfg.VShares))
	}

	half := field.Elem(field.Inv2)
	for idx, s := range signs {
		coeff := half
		if s != 1 {
			coeff = field.Neg(half)
		}
		row := p.Cfg.VShares[idx]
		for d := 0; d < k; d++ {
			row.Set(d, field.Add(row.At(d), field.Mul(coeff, fcwm.At(d))))
		}
	}
	return nil
}
