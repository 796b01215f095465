package dealer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luxfi/privrec/pkg/dpf"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/protocols/update"
	"github.com/luxfi/privrec/protocols/update/dealer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInstanceShapes(t *testing.T) {
	d := dealer.New(1)
	inst, err := d.GenerateInstance(2, 4, 3, 5)
	require.NoError(t, err)

	assert.Len(t, inst.U0, 2)
	assert.Len(t, inst.V0, 4)
	assert.Len(t, inst.Users, 5)
	assert.Len(t, inst.DPF0, 5)
	assert.Len(t, inst.Negate, 5)

	for q := 0; q < 5; q++ {
		assert.Equal(t, field.Elem(0), field.Add(inst.DPF0[q].FinalCW, inst.DPF1[q].FinalCW))
		j := uint64(inst.Items[q])
		for x := uint64(0); x < 4; x++ {
			f0 := dpf.EvalFlagAt(inst.DPF0[q], x, 4)
			f1 := dpf.EvalFlagAt(inst.DPF1[q], x, 4)
			if x == j {
				assert.NotEqual(t, f0, f1)
			} else {
				assert.Equal(t, f0, f1)
			}
		}
	}
}

func TestGenerateInstanceRejectsNonPositive(t *testing.T) {
	d := dealer.New(1)
	_, err := d.GenerateInstance(0, 4, 3, 5)
	require.Error(t, err)
}

func TestWriteFilesRoundTrip(t *testing.T) {
	d := dealer.New(2)
	inst, err := d.GenerateInstance(2, 4, 3, 3)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, dealer.WriteFiles(dir, inst, 2))

	u0, err := os.Open(filepath.Join(dir, "U0.txt"))
	require.NoError(t, err)
	defer u0.Close()
	rows, err := field.ReadRows(u0, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	dpf0, err := os.Open(filepath.Join(dir, "DPF0.txt"))
	require.NoError(t, err)
	defer dpf0.Close()
	keys, err := dpf.ReadKeys(dpf0)
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	mf, err := os.Open(filepath.Join(dir, "session.cbor"))
	require.NoError(t, err)
	defer mf.Close()
	manifest, err := update.ReadManifest(mf)
	require.NoError(t, err)
	assert.Equal(t, 2, manifest.M)
	assert.Equal(t, 4, manifest.N)
	assert.Equal(t, 3, manifest.K)
	assert.Equal(t, 3, manifest.Queries)

	_, err = os.Stat(filepath.Join(dir, "DPF_NEG.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "queries_users.txt"))
	require.NoError(t, err)
}
