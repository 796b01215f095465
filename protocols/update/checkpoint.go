package update

import (
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
)

// Checkpoint is an optional per-party snapshot of mutable state, written
// after each query when --checkpoint is set (SPEC_FULL §6). It never
// substitutes for the spec's on-success-only output files; it only lets
// `--resume` skip queries already applied.
type Checkpoint struct {
	LastQuery int         `cbor:"last_query"`
	UShares   [][]int64   `cbor:"u_shares"`
	VShares   [][]int64   `cbor:"v_shares"`
}

func sharesToRows(shares []field.Share) [][]int64 {
	rows := make([][]int64, len(shares))
	for i, s := range shares {
		row := make([]int64, s.Len())
		for j := 0; j < s.Len(); j++ {
			row[j] = int64(s.At(j))
		}
		rows[i] = row
	}
	return rows
}

func rowsToShares(rows [][]int64) []field.Share {
	shares := make([]field.Share, len(rows))
	for i, row := range rows {
		s := field.NewShare(len(row))
		for j, v := range row {
			s.Set(j, field.Norm(v))
		}
		shares[i] = s
	}
	return shares
}

// NewCheckpoint captures lastQuery, uShares and vShares as a Checkpoint.
func NewCheckpoint(lastQuery int, uShares, vShares []field.Share) Checkpoint {
	return Checkpoint{
		LastQuery: lastQuery,
		UShares:   sharesToRows(uShares),
		VShares:   sharesToRows(vShares),
	}
}

// Shares decodes the checkpoint's rows back into field.Share values.
func (c Checkpoint) Shares() (uShares, vShares []field.Share) {
	return rowsToShares(c.UShares), rowsToShares(c.VShares)
}

// WriteCheckpoint cbor-encodes c to w.
func WriteCheckpoint(w io.Writer, c Checkpoint) error {
	data, err := cbor.Marshal(c)
	if err != nil {
		return errs.Wrap(errs.MalformedInput, "update.WriteCheckpoint", err)
	}
	_, err = w.Write(data)
	return errs.Wrap(errs.IOFailure, "update.WriteCheckpoint", err)
}

// ReadCheckpoint decodes a checkpoint from r.
func ReadCheckpoint(r io.Reader) (Checkpoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Checkpoint{}, errs.Wrap(errs.IOFailure, "update.ReadCheckpoint", err)
	}
	var c Checkpoint
	if err := cbor.Unmarshal(data, &c); err != nil {
		return Checkpoint{}, errs.Wrap(errs.MalformedInput, "update.ReadCheckpoint", err)
	}
	return c, nil
}

// SaveCheckpointFile atomically-enough writes a checkpoint file: write to
// a temp path then rename, so a crash mid-write never corrupts the
// previous checkpoint.
func SaveCheckpointFile(path string, c Checkpoint) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "update.SaveCheckpointFile", err)
	}
	if err := WriteCheckpoint(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(errs.IOFailure, "update.SaveCheckpointFile", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errs.Wrap(errs.IOFailure, "update.SaveCheckpointFile", err)
	}
	return nil
}

// LoadCheckpointFile reads a checkpoint file, if present. A missing file
// returns (Checkpoint{}, false, nil).
func LoadCheckpointFile(path string) (Checkpoint, bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, errs.Wrap(errs.IOFailure, "update.LoadCheckpointFile", err)
	}
	defer f.Close()
	c, err := ReadCheckpoint(f)
	if err != nil {
		return Checkpoint{}, false, err
	}
	return c, true, nil
}
