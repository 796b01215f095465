package config_test

import (
	"testing"

	"github.com/luxfi/privrec/pkg/party"
	"github.com/luxfi/privrec/protocols/update/dealer"
	"github.com/luxfi/privrec/protocols/update/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPartyRoundTrip(t *testing.T) {
	d := dealer.New(3)
	inst, err := d.GenerateInstance(2, 4, 3, 3)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, dealer.WriteFiles(dir, inst, 3))

	c0, err := config.LoadParty(dir, party.P0, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, c0.M)
	assert.Equal(t, 4, c0.N)
	assert.Len(t, c0.Users, 3)
	assert.Len(t, c0.DPF, 3)
	assert.Len(t, c0.Negate, 3)

	c1, err := config.LoadParty(dir, party.P1, 3)
	require.NoError(t, err)
	assert.Equal(t, c0.Users, c1.Users)
	assert.Equal(t, c0.Negate, c1.Negate)

	assert.True(t, c0.OwnNegate(0) == c0.Negate[0])
	assert.True(t, c1.OwnNegate(0) == !c1.Negate[0])
}

func TestValidateRejectsShapeMismatch(t *testing.T) {
	c := &config.Config{M: 2, N: 2, K: 1, UShares: nil}
	require.Error(t, c.Validate())
}

func TestCheckpointSnapshotResume(t *testing.T) {
	d := dealer.New(9)
	inst, err := d.GenerateInstance(1, 2, 2, 1)
	require.NoError(t, err)

	c := &config.Config{
		Role: party.P0, M: 1, N: 2, K: 2,
		UShares: inst.U0, VShares: inst.V0,
		Users: inst.Users, DPF: inst.DPF0, Negate: inst.Negate,
	}

	snap := c.Snapshot(0)
	assert.Equal(t, 0, snap.LastQuery)

	c2 := &config.Config{Role: party.P0, M: 1, N: 2, K: 2}
	next := c2.Resume(snap)
	assert.Equal(t, 1, next)
	assert.Equal(t, c.UShares[0].Data(), c2.UShares[0].Data())
}
