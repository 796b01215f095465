package dealer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/luxfi/privrec/pkg/dpf"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/protocols/update"
)

// WriteFiles emits every text file spec.md §6 names plus the session.cbor
// manifest (SPEC_FULL §4.7) into dir.
func WriteFiles(dir string, inst *Instance, seed int64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(errs.IOFailure, "dealer.WriteFiles", err)
	}

	if err := writeRowsFile(filepath.Join(dir, "U0.txt"), inst.U0); err != nil {
		return err
	}
	if err := writeRowsFile(filepath.Join(dir, "U1.txt"), inst.U1); err != nil {
		return err
	}
	if err := writeRowsFile(filepath.Join(dir, "V0.txt"), inst.V0); err != nil {
		return err
	}
	if err := writeRowsFile(filepath.Join(dir, "V1.txt"), inst.V1); err != nil {
		return err
	}
	if err := writeIndicesFile(filepath.Join(dir, "queries_users.txt"), inst.Users); err != nil {
		return err
	}
	if err := writeKeysFile(filepath.Join(dir, "DPF0.txt"), inst.DPF0); err != nil {
		return err
	}
	if err := writeKeysFile(filepath.Join(dir, "DPF1.txt"), inst.DPF1); err != nil {
		return err
	}
	if err := writeBitsFile(filepath.Join(dir, "DPF_NEG.txt"), inst.Negate); err != nil {
		return err
	}

	manifest := update.Manifest{
		M: inst.M, N: inst.N, K: inst.K,
		Queries: len(inst.Users), Seed: seed,
		CreatedAt: time.Now().UTC(),
	}
	mf, err := os.Create(filepath.Join(dir, "session.cbor"))
	if err != nil {
		return errs.Wrap(errs.IOFailure, "dealer.WriteFiles", err)
	}
	defer mf.Close()
	return update.WriteManifest(mf, manifest)
}

func writeRowsFile(path string, rows []field.Share) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "dealer.writeRowsFile", err)
	}
	defer f.Close()
	return field.WriteRows(f, rows)
}

func writeIndicesFile(path string, indices []int) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "dealer.writeIndicesFile", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, idx := range indices {
		if _, err := fmt.Fprintln(bw, idx); err != nil {
			return errs.Wrap(errs.IOFailure, "dealer.writeIndicesFile", err)
		}
	}
	return errs.Wrap(errs.IOFailure, "dealer.writeIndicesFile", bw.Flush())
}

func writeKeysFile(path string, keys []dpf.Key) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "dealer.writeKeysFile", err)
	}
	defer f.Close()
	return dpf.WriteKeys(f, keys)
}

func writeBitsFile(path string, bits []bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOFailure, "dealer.writeBitsFile", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, b := range bits {
		v := 0
		if b {
			v = 1
		}
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return errs.Wrap(errs.IOFailure, "dealer.writeBitsFile", err)
		}
	}
	return errs.Wrap(errs.IOFailure, "dealer.writeBitsFile", bw.Flush())
}
