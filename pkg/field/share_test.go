package field_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineShapeMismatch(t *testing.T) {
	a := field.NewShare(3)
	b := field.NewShare(4)
	_, err := field.Combine(a, b)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ShapeMismatch))
}

func TestCombineRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	secret := field.NewShare(5)
	secret.Randomize(rng)

	s0 := field.NewShare(5)
	s0.Randomize(rng)
	s1 := field.SubVec(secret, s0)

	recon, err := field.Combine(s0, s1)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.Equal(t, secret.At(i), recon.At(i))
	}
}

func TestReadRowsRejectsWrongWidth(t *testing.T) {
	in := bytes.NewBufferString("1 2 3\n1 2\n")
	_, err := field.ReadRows(in, 3)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.MalformedInput))
}

func TestWriteReadRowsRoundTrip(t *testing.T) {
	rows := []field.Share{field.NewShare(3), field.NewShare(3)}
	rows[0].Set(0, 1)
	rows[0].Set(1, 2)
	rows[0].Set(2, 3)
	rows[1].Set(0, field.Norm(field.P - 1))
	rows[1].Set(1, 0)
	rows[1].Set(2, 5)

	var buf bytes.Buffer
	require.NoError(t, field.WriteRows(&buf, rows))

	got, err := field.ReadRows(&buf, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for r := range rows {
		for i := 0; i < 3; i++ {
			assert.Equal(t, rows[r].At(i), got[r].At(i))
		}
	}
}
