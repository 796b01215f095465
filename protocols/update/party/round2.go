package party

import (
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/party"
)

// userUpdateShare computes this party's share of delta = 1 - <u_i, v_sel>
// (spec.md §4.5.4): prod_b := SharedDot(u_i_b, v_sel_b); delta_b is
// (1-prod_b) for P0 and -prod_b for P1, since only one party's share
// needs to carry the public constant 1.
func (p *Party) userUpdateShare(uI, vSel field.Share) (field.Elem, error) {
	prod, err := SharedDot(p.Peer, p.Helper, p.Role == party.P0, uI, vSel)
	if err != nil {
		return 0, err
	}
	if p.Role == party.P0 {
		return field.Sub(1, prod), nil
	}
	return field.Neg(prod), nil
}
