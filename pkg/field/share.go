package field

import (
	"math/rand"

	"github.com/luxfi/privrec/pkg/errs"
)

// Share is an ordered sequence of k field elements. Two shares x0, x1 of
// equal length with x0[i]+x1[i] ≡ x[i] (mod P) for every i represent an
// additively secret-shared vector x (spec §3).
type Share struct {
	data []Elem
}

// NewShare allocates a zero share of length k.
func NewShare(k int) Share {
	return Share{data: make([]Elem, k)}
}

// ShareFrom wraps an existing slice without copying.
func ShareFrom(data []Elem) Share {
	return Share{data: data}
}

// Len returns the share's length.
func (s Share) Len() int { return len(s.data) }

// At returns the i-th element.
func (s Share) At(i int) Elem { return s.data[i] }

// Set assigns the i-th element.
func (s Share) Set(i int, v Elem) { s.data[i] = v }

// Data exposes the backing slice. Callers must not retain it across a
// mutation of s.
func (s Share) Data() []Elem { return s.data }

// Clone returns an independent copy.
func (s Share) Clone() Share {
	out := make([]Elem, len(s.data))
	copy(out, s.data)
	return Share{data: out}
}

func checkShape(component string, a, b Share) error {
	if len(a.data) != len(b.data) {
		return errs.New(errs.ShapeMismatch, component, "share length mismatch: %d vs %d", len(a.data), len(b.data))
	}
	return nil
}

// Combine returns the componentwise sum a+b. The two shares must have equal
// length or a ShapeMismatch error is returned.
func Combine(a, b Share) (Share, error) {
	if err := checkShape("field.Combine", a, b); err != nil {
		return Share{}, err
	}
	out := NewShare(len(a.data))
	for i := range a.data {
		out.data[i] = Add(a.data[i], b.data[i])
	}
	return out, nil
}

// AddVec returns a+b, panicking on shape mismatch. Used in call sites that
// have already validated shape (e.g. immediately after construction with a
// matching length) and want to keep arithmetic expressions terse, mirroring
// the teacher's unchecked operator+ in hot loops.
func AddVec(a, b Share) Share {
	out, err := Combine(a, b)
	if err != nil {
		panic(err)
	}
	return out
}

// SubVec returns a-b. Same shape-checking contract as AddVec.
func SubVec(a, b Share) Share {
	if len(a.data) != len(b.data) {
		panic(errs.New(errs.ShapeMismatch, "field.SubVec", "share length mismatch: %d vs %d", len(a.data), len(b.data)))
	}
	out := NewShare(len(a.data))
	for i := range a.data {
		out.data[i] = Sub(a.data[i], b.data[i])
	}
	return out
}

// Randomize fills s with uniform field elements drawn from rng.
func (s Share) Randomize(rng *rand.Rand) {
	for i := range s.data {
		s.data[i] = Norm(rng.Int63n(P))
	}
}
