package config

import (
	"fmt"
	"path/filepath"

	"github.com/luxfi/privrec/pkg/party"
	"github.com/luxfi/privrec/protocols/update"
)

// CheckpointPath is the per-role checkpoint file path inside dir
// (SPEC_FULL §6, "*.ckpt", one per party).
func CheckpointPath(dir string, role party.Role) string {
	return filepath.Join(dir, fmt.Sprintf("party%d.ckpt", role.Tag()))
}

// Snapshot captures the config's current mutable state as a Checkpoint,
// tagging it with the index of the last fully-processed query.
func (c *Config) Snapshot(lastQuery int) update.Checkpoint {
	return update.NewCheckpoint(lastQuery, c.UShares, c.VShares)
}

// Resume overwrites c's U/V shares from a loaded checkpoint and returns
// the index of the first query still to be processed.
func (c *Config) Resume(ck update.Checkpoint) int {
	u, v := ck.Shares()
	c.UShares = u
	c.VShares = v
	return ck.LastQuery + 1
}
