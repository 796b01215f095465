package party

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/netio"
	"github.com/luxfi/privrec/pkg/party"
)

// Finish runs termination and dump (spec.md §4.5.7): P0 closes the
// helper, requests P1's V shares, and writes both result files plus the
// `done` flag; P1 answers the dump request and returns. Only P0's
// process is expected to produce output files. mpc_results.txt records
// u_i', the full reconstruction userFinalize captured per touched user
// index before re-sharing (spec.md §3, §4.5.7) — not the fresh random
// share left behind in Cfg.UShares.
func (p *Party) Finish(dir string) error {
	if p.Role == party.P0 {
		if err := netio.SendSigned(p.Helper, 0); err != nil {
			return errs.Wrap(errs.IOFailure, "party.Finish", err)
		}
		if err := netio.SendSigned(p.Peer, -1); err != nil {
			return errs.Wrap(errs.IOFailure, "party.Finish", err)
		}

		vPeer := make([]field.Share, len(p.Cfg.VShares))
		for idx := range vPeer {
			row, err := netio.RecvVec(p.Peer, p.Cfg.K)
			if err != nil {
				return errs.Wrap(errs.IOFailure, "party.Finish", err)
			}
			vPeer[idx] = row
		}

		vFull := make([]field.Share, len(p.Cfg.VShares))
		for idx := range vFull {
			vFull[idx] = field.AddVec(p.Cfg.VShares[idx], vPeer[idx])
		}
		if err := writeDump(filepath.Join(dir, "mpc_V_results.txt"), indexAll(vFull)); err != nil {
			return err
		}

		uRows := make([]indexedRow, 0, len(p.reconstructed))
		for idx, row := range p.reconstructed {
			uRows = append(uRows, indexedRow{idx, row})
		}
		if err := writeDump(filepath.Join(dir, "mpc_results.txt"), uRows); err != nil {
			return err
		}

		done, err := os.Create(filepath.Join(dir, "mpc_results.done"))
		if err != nil {
			return errs.Wrap(errs.IOFailure, "party.Finish", err)
		}
		return errs.Wrap(errs.IOFailure, "party.Finish", done.Close())
	}

	sentinel, err := netio.RecvSigned(p.Peer)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.Finish", err)
	}
	if sentinel != -1 {
		return errs.New(errs.InvariantViolation, "party.Finish", "expected dump sentinel -1, got %d", sentinel)
	}
	for _, row := range p.Cfg.VShares {
		if err := netio.SendVec(p.Peer, row); err != nil {
			return errs.Wrap(errs.IOFailure, "party.Finish", err)
		}
	}
	return nil
}

type indexedRow struct {
	idx int
	row field.Share
}

func indexAll(rows []field.Share) []indexedRow {
	out := make([]indexedRow, len(rows))
	for i, r := range rows {
		out[i] = indexedRow{i, r}
	}
	return out
}

func writeDump(path string, rows []indexedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "party.writeDump", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, r := range rows {
		if err := field.WriteIndexedRow(bw, r.idx, r.row); err != nil {
			return err
		}
	}
	return errs.Wrap(errs.IOFailure, "party.writeDump", bw.Flush())
}
