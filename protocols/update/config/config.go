// Package config implements per-party loading of the Dealer's output
// files into the in-memory state a party needs to run the query loop
// (spec.md §3 "Mutable state per party", §6 "Text file formats").
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/privrec/pkg/dpf"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/party"
)

// Config is the long-term, on-disk-loaded state of one party: its role,
// dimensions, U/V shares, DPF keys and negate hints, and the query tape.
type Config struct {
	Role party.Role
	M, N, K int

	UShares []field.Share
	VShares []field.Share

	Users []int
	DPF   []dpf.Key
	Negate []bool
}

// Validate checks the loaded config is internally consistent, per
// spec.md §7's "DPF file count != query count" invariant-violation case.
func (c *Config) Validate() error {
	if c.M <= 0 || c.N <= 0 || c.K <= 0 {
		return errs.New(errs.InvariantViolation, "update/config", "m, n, k must be positive: got %d %d %d", c.M, c.N, c.K)
	}
	if len(c.UShares) != c.M {
		return errs.New(errs.InvariantViolation, "update/config", "expected %d U rows, got %d", c.M, len(c.UShares))
	}
	if len(c.VShares) != c.N {
		return errs.New(errs.InvariantViolation, "update/config", "expected %d V rows, got %d", c.N, len(c.VShares))
	}
	if len(c.Users) != len(c.DPF) || len(c.Users) != len(c.Negate) {
		return errs.New(errs.InvariantViolation, "update/config",
			"query tape length mismatch: users=%d dpf=%d negate=%d", len(c.Users), len(c.DPF), len(c.Negate))
	}
	return nil
}

func textPath(dir, role party.Role, base string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d.txt", base, role.Tag()))
}

// LoadParty reads the spec.md §6 text files for role out of dir:
// U<role>.txt, V<role>.txt, queries_users.txt, DPF<role>.txt, DPF_NEG.txt.
func LoadParty(dir string, role party.Role, k int) (*Config, error) {
	u, err := readRows(textPath(dir, role, "U"), k)
	if err != nil {
		return nil, err
	}
	v, err := readRows(textPath(dir, role, "V"), k)
	if err != nil {
		return nil, err
	}
	users, err := readIndices(filepath.Join(dir, "queries_users.txt"))
	if err != nil {
		return nil, err
	}
	keys, err := readKeys(textPath(dir, role, "DPF"))
	if err != nil {
		return nil, err
	}
	negate, err := readBits(filepath.Join(dir, "DPF_NEG.txt"))
	if err != nil {
		return nil, err
	}

	c := &Config{
		Role: role, M: len(u), N: len(v), K: k,
		UShares: u, VShares: v,
		Users: users, DPF: keys, Negate: negate,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readRows(path string, k int) ([]field.Share, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOFailure, "update/config.readRows", err)
	}
	defer f.Close()
	return field.ReadRows(f, k)
}

func readIndices(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOFailure, "update/config.readIndices", err)
	}
	defer f.Close()

	var out []int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if len(line) == 0 {
			continue
		}
		var idx int
		if _, err := fmt.Sscan(line, &idx); err != nil {
			return nil, errs.Wrap(errs.MalformedInput, "update/config.readIndices", err)
		}
		out = append(out, idx)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.IOFailure, "update/config.readIndices", err)
	}
	return out, nil
}

func readBits(path string) ([]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOFailure, "update/config.readBits", err)
	}
	defer f.Close()

	var out []bool
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if len(line) == 0 {
			continue
		}
		var bit int
		if _, err := fmt.Sscan(line, &bit); err != nil {
			return nil, errs.Wrap(errs.MalformedInput, "update/config.readBits", err)
		}
		out = append(out, bit != 0)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.IOFailure, "update/config.readBits", err)
	}
	return out, nil
}

func readKeys(path string) ([]dpf.Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOFailure, "update/config.readKeys", err)
	}
	defer f.Close()
	return dpf.ReadKeys(f)
}

// OwnDPF returns the DPF key for this party at query q; Negate returns the
// negate bit this party should apply (§4.5.3: P0 applies negateP0 as-is,
// P1 applies its complement).
func (c *Config) OwnDPF(q int) dpf.Key { return c.DPF[q] }

func (c *Config) OwnNegate(q int) bool {
	if c.Role == party.P0 {
		return c.Negate[q]
	}
	return !c.Negate[q]
}
