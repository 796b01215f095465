package party

import (
	"math/rand"
	"net"

	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/party"
	"github.com/luxfi/privrec/protocols/update/config"
)

// Party holds one peer's live connections and mutable protocol state for
// the duration of a run (spec.md §3 "Mutable state per party").
type Party struct {
	Role   party.Role
	Peer   net.Conn
	Helper net.Conn
	Cfg    *config.Config
	rng    *rand.Rand

	// reconstructed holds u_i', the full (unshared) reconstruction of
	// every touched user's updated vector, captured by userFinalize
	// before it re-shares with fresh randomness (spec.md §4.5.6). This
	// is what Finish dumps to mpc_results.txt, not the post-re-share
	// share left in Cfg.UShares.
	reconstructed map[int]field.Share
}

// New wraps an already-connected peer/helper socket pair and loaded
// config into a Party ready to run the query loop. seed drives only
// P0's fresh re-share randomness at finalize (spec.md §4.5.6); it does
// not need to match the dealer's seed.
func New(role party.Role, peerConn, helperConn net.Conn, cfg *config.Config, seed int64) *Party {
	return &Party{
		Role:          role,
		Peer:          peerConn,
		Helper:        helperConn,
		Cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		reconstructed: make(map[int]field.Share),
	}
}

// Close closes both sockets.
func (p *Party) Close() {
	p.Peer.Close()
	p.Helper.Close()
}
