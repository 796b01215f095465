// Package dealer implements the off-line role that samples U, V, splits
// them into additive shares, and generates a DPF key pair plus a
// sign-alignment bit for every query on the tape (spec.md §2, §3, §4.2).
package dealer

import (
	"math/rand"

	"github.com/luxfi/privrec/pkg/dpf"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
)

// Dealer samples an instance deterministically from a seeded RNG
// (spec.md §9: "the dealer exposes a seed parameter for deterministic
// tests").
type Dealer struct {
	rng *rand.Rand
}

// New constructs a Dealer seeded with seed.
func New(seed int64) *Dealer {
	return &Dealer{rng: rand.New(rand.NewSource(seed))}
}

// Instance is everything the dealer produces for one run: the plaintext
// U/V (kept only to compute the direct-replay comparison in tests), the
// two parties' shares, and the per-query DPF key pairs, user indices, and
// negate bits.
type Instance struct {
	M, N, K int

	U, V []field.Share // plaintext, dealer-only

	U0, U1 []field.Share
	V0, V1 []field.Share

	Users   []int
	Items   []int // secret target item index per query, dealer-only
	DPF0    []dpf.Key
	DPF1    []dpf.Key
	Negate  []bool
}

func randomMatrix(rng *rand.Rand, rows, k int) []field.Share {
	out := make([]field.Share, rows)
	for i := range out {
		s := field.NewShare(k)
		s.Randomize(rng)
		out[i] = s
	}
	return out
}

func splitMatrix(rng *rand.Rand, plain []field.Share) (s0, s1 []field.Share) {
	s0 = make([]field.Share, len(plain))
	s1 = make([]field.Share, len(plain))
	for i, row := range plain {
		r0 := field.NewShare(row.Len())
		r0.Randomize(rng)
		s0[i] = r0
		s1[i] = field.SubVec(row, r0)
	}
	return s0, s1
}

// GenerateInstance samples U (m×k), V (n×k), additively splits both, and
// produces numQueries query-tape entries: a uniform user index, a uniform
// secret item index, a DPF key pair over domain n targeting that item,
// and the dealer's sign-alignment bit (spec.md §2, §3, §4.2).
func (d *Dealer) GenerateInstance(m, n, k, numQueries int) (*Instance, error) {
	if m <= 0 || n <= 0 || k <= 0 || numQueries <= 0 {
		return nil, errs.New(errs.InvariantViolation, "dealer.GenerateInstance",
			"m, n, k, numQueries must all be positive: got %d %d %d %d", m, n, k, numQueries)
	}

	u := randomMatrix(d.rng, m, k)
	v := randomMatrix(d.rng, n, k)
	u0, u1 := splitMatrix(d.rng, u)
	v0, v1 := splitMatrix(d.rng, v)

	inst := &Instance{
		M: m, N: n, K: k,
		U: u, V: v,
		U0: u0, U1: u1,
		V0: v0, V1: v1,
		Users:  make([]int, numQueries),
		Items:  make([]int, numQueries),
		DPF0:   make([]dpf.Key, numQueries),
		DPF1:   make([]dpf.Key, numQueries),
		Negate: make([]bool, numQueries),
	}

	for q := 0; q < numQueries; q++ {
		i := d.rng.Intn(m)
		j := uint64(d.rng.Intn(n))

		k0, k1, err := dpf.GenerateDPF(j, uint64(n), d.rng)
		if err != nil {
			return nil, errs.Wrap(errs.InvariantViolation, "dealer.GenerateInstance", err)
		}

		inst.Users[q] = i
		inst.Items[q] = int(j)
		inst.DPF0[q] = k0
		inst.DPF1[q] = k1
		inst.Negate[q] = dpf.ChooseNegateP0(k0, k1, j, uint64(n))
	}

	return inst, nil
}
