// Package update implements the three-party private recommender update
// protocol: dealer-generated shares and DPF keys, a two-peer online
// protocol driven by Beaver triples from a helper, and the end-of-run
// reconstruction dump (spec.md §2–§5).
package update

import (
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/privrec/pkg/errs"
)

// Manifest is the session.cbor run manifest the Dealer writes alongside
// the spec.md §6 text files (SPEC_FULL §4.7): enough metadata for a party
// or operator to sanity-check a data directory before opening sockets.
type Manifest struct {
	M         int       `cbor:"m"`
	N         int       `cbor:"n"`
	K         int       `cbor:"k"`
	Queries   int       `cbor:"queries"`
	Seed      int64     `cbor:"seed"`
	CreatedAt time.Time `cbor:"created_at"`
}

// WriteManifest cbor-encodes m to w.
func WriteManifest(w io.Writer, m Manifest) error {
	data, err := cbor.Marshal(m)
	if err != nil {
		return errs.Wrap(errs.MalformedInput, "update.WriteManifest", err)
	}
	_, err = w.Write(data)
	return errs.Wrap(errs.IOFailure, "update.WriteManifest", err)
}

// ReadManifest decodes a session.cbor file.
func ReadManifest(r io.Reader) (Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Manifest{}, errs.Wrap(errs.IOFailure, "update.ReadManifest", err)
	}
	var m Manifest
	if err := cbor.Unmarshal(data, &m); err != nil {
		return Manifest{}, errs.Wrap(errs.MalformedInput, "update.ReadManifest", err)
	}
	return m, nil
}

// LoadManifestFile reads and decodes the session.cbor file in dir.
func LoadManifestFile(dir string) (Manifest, error) {
	f, err := os.Open(dir + "/session.cbor")
	if err != nil {
		return Manifest{}, errs.Wrap(errs.IOFailure, "update.LoadManifestFile", err)
	}
	defer f.Close()
	return ReadManifest(f)
}

// CheckAgainst validates CLI-supplied m, n, k against the manifest,
// surfacing a mismatch as an early InvariantViolation rather than a
// mid-protocol shape error (SPEC_FULL §6).
func (m Manifest) CheckAgainst(wantM, wantN, wantK int) error {
	if m.M != wantM || m.N != wantN || m.K != wantK {
		return errs.New(errs.InvariantViolation, "update.Manifest",
			"session.cbor records m=%d n=%d k=%d, CLI asked for m=%d n=%d k=%d",
			m.M, m.N, m.K, wantM, wantN, wantK)
	}
	return nil
}
