package dpf_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/luxfi/privrec/pkg/dpf"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chooseNegate(k0, k1 dpf.Key, j, n uint64) bool {
	return dpf.ChooseNegateP0(k0, k1, j, n)
}

func TestS1TrivialSingleLeaf(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	k0, k1, err := dpf.GenerateDPF(0, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), k0.Depth)

	negate := chooseNegate(k0, k1, 0, 1)
	signs0 := dpf.EvalSigns(k0, 1, negate)
	signs1 := dpf.EvalSigns(k1, 1, !negate)
	assert.Equal(t, int8(2), signs0[0]+signs1[0])
}

func TestS2FourLeavesOneHot(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n, j = 4, 2
	k0, k1, err := dpf.GenerateDPF(j, n, rng)
	require.NoError(t, err)

	for x := uint64(0); x < n; x++ {
		f0 := dpf.EvalFlagAt(k0, x, n)
		f1 := dpf.EvalFlagAt(k1, x, n)
		if x == j {
			assert.NotEqual(t, f0, f1, "leaf %d should diverge", x)
		} else {
			assert.Equal(t, f0, f1, "leaf %d should agree", x)
		}
	}

	negateP0 := chooseNegate(k0, k1, j, n)
	signs0 := dpf.EvalSigns(k0, n, negateP0)
	signs1 := dpf.EvalSigns(k1, n, !negateP0)
	for x := uint64(0); x < n; x++ {
		want := int8(0)
		if x == j {
			want = 2
		}
		assert.Equal(t, want, signs0[x]+signs1[x], "leaf %d", x)
	}
}

func TestInvariantOverMultipleDomains(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []uint64{1, 2, 3, 5, 8, 17, 64} {
		for trial := 0; trial < 5; trial++ {
			j := uint64(rng.Intn(int(n)))
			k0, k1, err := dpf.GenerateDPF(j, n, rng)
			require.NoError(t, err)

			negateP0 := chooseNegate(k0, k1, j, n)
			signs0 := dpf.EvalSigns(k0, n, negateP0)
			signs1 := dpf.EvalSigns(k1, n, !negateP0)
			for x := uint64(0); x < n; x++ {
				want := int8(0)
				if x == j {
					want = 2
				}
				require.Equalf(t, want, signs0[x]+signs1[x], "n=%d j=%d x=%d", n, j, x)
			}
		}
	}
}

func TestFinalCWSumsToZero(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	k0, k1, err := dpf.GenerateDPF(3, 10, rng)
	require.NoError(t, err)
	assert.Equal(t, field.Elem(0), field.Add(k0.FinalCW, k1.FinalCW))
}

func TestOutOfRangeTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, _, err := dpf.GenerateDPF(5, 5, rng)
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	k0, k1, err := dpf.GenerateDPF(6, 13, rng)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dpf.WriteKeys(&buf, []dpf.Key{k0, k1}))

	got, err := dpf.ReadKeys(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, k0, got[0])
	assert.Equal(t, k1, got[1])
}
