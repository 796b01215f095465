package party

import (
	"github.com/luxfi/privrec/pkg/dpf"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/party"
)

// RunQuery executes one full query (spec.md §4.5 steps 1-4) against the
// party's current U/V shares, mutating U_shares[i] and V_shares in place.
func (p *Party) RunQuery(q int) error {
	key := p.Cfg.OwnDPF(q)
	negate := p.Cfg.OwnNegate(q)
	userIndex := p.Cfg.Users[q]
	if userIndex < 0 || userIndex >= len(p.Cfg.UShares) {
		return errs.New(errs.InvariantViolation, "party.RunQuery", "user index %d out of range [0,%d)", userIndex, len(p.Cfg.UShares))
	}

	signs := dpf.EvalSigns(key, uint64(len(p.Cfg.VShares)), negate)

	vSel, err := p.obliviousSelect(signs)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.RunQuery", err)
	}

	delta, err := p.userUpdateShare(p.Cfg.UShares[userIndex], vSel)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.RunQuery", err)
	}

	m, err := ScalarVec(p.Peer, p.Helper, p.Role == party.P0, delta, p.Cfg.UShares[userIndex])
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.RunQuery", err)
	}

	if err := p.itemSideScatter(m, key.FinalCW, signs); err != nil {
		return errs.Wrap(errs.IOFailure, "party.RunQuery", err)
	}

	if err := p.userFinalize(userIndex, delta, vSel); err != nil {
		return errs.Wrap(errs.IOFailure, "party.RunQuery", err)
	}

	return nil
}

// RunAll executes every query on the tape from startQuery onward, in
// order (spec.md §2 "Data flow per query"). When checkpointFn is non-nil
// it is invoked after each query with the index just completed, for
// optional crash-recovery persistence (SPEC_FULL §6); startQuery is
// normally 0, or one past the last checkpointed query on --resume.
func (p *Party) RunAll(startQuery int, checkpointFn func(lastQuery int) error) error {
	for q := startQuery; q < len(p.Cfg.Users); q++ {
		if err := p.RunQuery(q); err != nil {
			return errs.Wrap(errs.IOFailure, "party.RunAll", err)
		}
		if checkpointFn != nil {
			if err := checkpointFn(q); err != nil {
				return err
			}
		}
	}
	return nil
}
