// Command party runs one of the two symmetric update peers (P0 or P1)
// through the full query tape, then performs the §4.5.7 termination and
// dump (P0 only writes result files).
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/privrec/pkg/party"
	"github.com/luxfi/privrec/protocols/update"
	uconfig "github.com/luxfi/privrec/protocols/update/config"
	uparty "github.com/luxfi/privrec/protocols/update/party"
)

var (
	dataDir    string
	seed       int64
	roleFlag   string
	checkpoint bool
	resume     bool
)

var rootCmd = &cobra.Command{
	Use:   "party <m> <n> <k> <queries>",
	Short: "Run one privrec peer through its query tape",
	Args:  cobra.ExactArgs(4),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&dataDir, "dir", ".", "data directory written by the dealer")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed for this party's finalize randomness")
	rootCmd.Flags().StringVar(&roleFlag, "role", "", `party role, "0" or "1" (required)`)
	rootCmd.Flags().BoolVar(&checkpoint, "checkpoint", false, "write a checkpoint file after every query")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "resume from this party's checkpoint file, if present")
	rootCmd.MarkFlagRequired("role")
}

func run(cmd *cobra.Command, args []string) (err error) {
	m, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("party: invalid m: %w", err)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("party: invalid n: %w", err)
	}
	k, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("party: invalid k: %w", err)
	}
	queries, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("party: invalid queries: %w", err)
	}

	role, err := parseRole(roleFlag)
	if err != nil {
		return fmt.Errorf("party: %w", err)
	}

	logger := log.New(os.Stderr, fmt.Sprintf("[party%d] ", role.Tag()), log.LstdFlags)
	defer func() {
		if err != nil {
			logger.Printf("fatal: %v", err)
		}
	}()

	manifest, err := update.LoadManifestFile(dataDir)
	if err != nil {
		return fmt.Errorf("party: %w", err)
	}
	if err := manifest.CheckAgainst(m, n, k); err != nil {
		return fmt.Errorf("party: %w", err)
	}
	if manifest.Queries != queries {
		return fmt.Errorf("party: manifest has %d queries, requested %d", manifest.Queries, queries)
	}

	cfg, err := uconfig.LoadParty(dataDir, role, k)
	if err != nil {
		return fmt.Errorf("party: %w", err)
	}

	startQuery := 0
	if resume {
		ck, ok, err := update.LoadCheckpointFile(uconfig.CheckpointPath(dataDir, role))
		if err != nil {
			return fmt.Errorf("party: %w", err)
		}
		if ok {
			startQuery = cfg.Resume(ck)
			logger.Printf("resuming from query %d", startQuery)
		}
	}

	logger.Printf("connecting")
	peerConn, helperConn, err := uparty.Connect(role, uparty.DefaultHosts())
	if err != nil {
		return fmt.Errorf("party: %w", err)
	}

	p := uparty.New(role, peerConn, helperConn, cfg, seed)
	defer p.Close()

	var checkpointFn func(int) error
	if checkpoint {
		checkpointFn = func(lastQuery int) error {
			return update.SaveCheckpointFile(uconfig.CheckpointPath(dataDir, role), cfg.Snapshot(lastQuery))
		}
	}

	logger.Printf("running %d queries", len(cfg.Users)-startQuery)
	if err := p.RunAll(startQuery, checkpointFn); err != nil {
		return fmt.Errorf("party: %w", err)
	}

	logger.Printf("finishing")
	if err := p.Finish(dataDir); err != nil {
		return fmt.Errorf("party: %w", err)
	}

	logger.Printf("done")
	return nil
}

func parseRole(s string) (party.Role, error) {
	switch s {
	case "0":
		return party.P0, nil
	case "1":
		return party.P1, nil
	default:
		return 0, fmt.Errorf(`--role must be "0" or "1", got %q`, s)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
