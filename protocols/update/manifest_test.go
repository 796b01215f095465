package update_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/protocols/update"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	want := update.Manifest{M: 2, N: 4, K: 3, Queries: 5, Seed: 7, CreatedAt: time.Unix(1000, 0).UTC()}

	var buf bytes.Buffer
	require.NoError(t, update.WriteManifest(&buf, want))

	got, err := update.ReadManifest(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.M, got.M)
	assert.Equal(t, want.N, got.N)
	assert.Equal(t, want.K, got.K)
	assert.Equal(t, want.Queries, got.Queries)
	assert.Equal(t, want.Seed, got.Seed)
}

func TestManifestCheckAgainstMismatch(t *testing.T) {
	m := update.Manifest{M: 2, N: 4, K: 3}
	require.NoError(t, m.CheckAgainst(2, 4, 3))
	err := m.CheckAgainst(2, 4, 5)
	require.Error(t, err)
}

func TestCheckpointRoundTrip(t *testing.T) {
	u0 := field.NewShare(2)
	u0.Set(0, 1)
	u0.Set(1, 2)
	v0 := field.NewShare(2)
	v0.Set(0, 3)
	v0.Set(1, 4)

	c := update.NewCheckpoint(3, []field.Share{u0}, []field.Share{v0})

	var buf bytes.Buffer
	require.NoError(t, update.WriteCheckpoint(&buf, c))

	got, err := update.ReadCheckpoint(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, got.LastQuery)

	uShares, vShares := got.Shares()
	assert.Equal(t, u0.Data(), uShares[0].Data())
	assert.Equal(t, v0.Data(), vShares[0].Data())
}
