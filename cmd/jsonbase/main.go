package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jsonbase",
		Short: "Zero-configuration JSON REST API server",
		Long: `jsonbase serves a full REST API from a single JSON file.
Collections are top-level arrays in the file; CRUD, nested routes,
filtering, sorting and relationship embedding come for free.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd())
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
