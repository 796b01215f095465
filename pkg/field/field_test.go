package field_test

import (
	"testing"

	"github.com/luxfi/privrec/pkg/field"
	"github.com/stretchr/testify/assert"
)

func TestNormRange(t *testing.T) {
	cases := []int64{0, 1, field.P - 1, field.P, field.P + 1, -1, -field.P, -(field.P + 5)}
	for _, c := range cases {
		n := field.Norm(c)
		assert.GreaterOrEqual(t, int64(n), int64(0))
		assert.Less(t, int64(n), field.P)
	}
}

func TestAddSubMulRoundTrip(t *testing.T) {
	a := field.Norm(123456789)
	b := field.Norm(987654321)

	sum := field.Add(a, b)
	assert.Equal(t, a, field.Sub(sum, b))

	prod := field.Mul(a, b)
	assert.Equal(t, int64(prod), (int64(a)*int64(b))%field.P)
}

func TestNeg(t *testing.T) {
	a := field.Norm(42)
	assert.Equal(t, field.Elem(0), field.Add(a, field.Neg(a)))
}

func TestInv2(t *testing.T) {
	two := field.Norm(2)
	assert.Equal(t, field.Elem(1), field.Mul(two, field.Norm(field.Inv2)))
}
