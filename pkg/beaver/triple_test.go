package beaver_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/luxfi/privrec/pkg/beaver"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS6BeaverCorrectness is spec §8 scenario S6: for k=16 triples,
// (a0+a1)*(b0+b1) ≡ c0+c1 (mod p) for every triple.
func TestS6BeaverCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const k = 16

	t0s := make([]beaver.Triple, k)
	t1s := make([]beaver.Triple, k)
	a := field.Elem(rng.Int63n(field.P))
	for i := 0; i < k; i++ {
		b := field.Elem(rng.Int63n(field.P))
		t0, t1 := beaver.Split(a, b, rng)
		t0s[i], t1s[i] = t0, t1

		aFull := field.Add(t0.A, t1.A)
		bFull := field.Add(t0.B, t1.B)
		cFull := field.Add(t0.C, t1.C)
		assert.Equal(t, field.Mul(aFull, bFull), cFull)
		assert.Equal(t, a, aFull)
	}
}

func TestWireRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const k = 5
	triples := make([]beaver.Triple, k)
	for i := range triples {
		triples[i] = beaver.Triple{
			A: field.Elem(rng.Int63n(field.P)),
			B: field.Elem(rng.Int63n(field.P)),
			C: field.Elem(rng.Int63n(field.P)),
		}
	}

	var buf bytes.Buffer
	require.NoError(t, beaver.WriteTriples(&buf, triples))
	assert.Equal(t, k*beaver.WireWidth, buf.Len())

	got, err := beaver.ReadTriples(&buf, k)
	require.NoError(t, err)
	assert.Equal(t, triples, got)
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	buf := make([]byte, beaver.WireWidth)
	for i := range buf {
		buf[i] = 0xff // encodes a value >> P
	}
	_, err := beaver.Decode(buf)
	require.Error(t, err)
}
