// Command dealer samples U, V, and the per-query DPF key material for a
// privrec run and writes every file the two peers and the helper need
// (spec.md §6).
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/privrec/protocols/update/dealer"
)

var (
	dataDir string
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "dealer <m> <n> <k> <queries>",
	Short: "Generate shares, DPF keys, and the query tape for a privrec run",
	Args:  cobra.ExactArgs(4),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&dataDir, "dir", ".", "output directory")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed for deterministic instances")
}

func run(cmd *cobra.Command, args []string) error {
	m, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("dealer: invalid m: %w", err)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("dealer: invalid n: %w", err)
	}
	k, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("dealer: invalid k: %w", err)
	}
	queries, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("dealer: invalid queries: %w", err)
	}

	logger := log.New(os.Stderr, "[dealer] ", log.LstdFlags)

	d := dealer.New(seed)
	inst, err := d.GenerateInstance(m, n, k, queries)
	if err != nil {
		return fmt.Errorf("dealer: %w", err)
	}

	if err := dealer.WriteFiles(dataDir, inst, seed); err != nil {
		return fmt.Errorf("dealer: %w", err)
	}

	logger.Printf("wrote instance m=%d n=%d k=%d queries=%d to %s", m, n, k, queries, dataDir)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
