package party

import (
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/netio"
	"github.com/luxfi/privrec/pkg/party"
)

// userFinalize computes u_i' = u_i + v_sel*(1-<u_i,v_sel>), reconstructs
// it across both parties, and re-shares it with fresh randomness so that
// no party's old share of u_i survives (spec.md §4.5.6). P0 draws the
// fresh randomness and sends P1 the masked value; this is the one
// exchange in the query where only one party sends to its peer. The
// reconstructed u_i' is
// recorded in p.reconstructed before re-sharing, since Cfg.UShares only
// holds the post-re-share share afterward (spec.md §4.5.7 dump).
func (p *Party) userFinalize(userIndex int, delta field.Elem, vSel field.Share) error {
	update, err := ScalarVec(p.Peer, p.Helper, p.Role == party.P0, delta, vSel)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.userFinalize", err)
	}
	uPrimeB := field.AddVec(p.Cfg.UShares[userIndex], update)

	peerUPrime, err := netio.ExchangeVec(p.Peer, uPrimeB)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.userFinalize", err)
	}
	uPrimeFull := field.AddVec(uPrimeB, peerUPrime)
	p.reconstructed[userIndex] = uPrimeFull

	if p.Role == party.P0 {
		r := field.NewShare(uPrimeFull.Len())
		r.Randomize(p.rng)
		masked := field.SubVec(uPrimeFull, r)
		if err := netio.SendVec(p.Peer, masked); err != nil {
			return errs.Wrap(errs.IOFailure, "party.userFinalize", err)
		}
		p.Cfg.UShares[userIndex] = r
	} else {
		masked, err := netio.RecvVec(p.Peer, uPrimeFull.Len())
		if err != nil {
			return errs.Wrap(errs.IOFailure, "party.userFinalize", err)
		}
		p.Cfg.UShares[userIndex] = masked
	}
	return nil
}
