// Command helper runs the third-party Beaver-triple dealer (spec.md §4.4),
// listening for the two peers and serving triple batches until a party
// closes its connection (count <= 0, spec.md §6).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/privrec/protocols/update/helper"
)

var (
	listenAddr string
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "helper",
	Short: "Serve Beaver triples to the two privrec peers",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&listenAddr, "listen", ":9002", "address to listen on")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed for triple generation")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr, "[helper] ", log.LstdFlags)

	srv, err := helper.Listen(listenAddr, seed)
	if err != nil {
		return fmt.Errorf("helper: %w", err)
	}
	defer srv.Close()

	logger.Printf("listening on %s", srv.Addr())
	if err := srv.Serve(); err != nil {
		return fmt.Errorf("helper: %w", err)
	}
	logger.Printf("session complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
