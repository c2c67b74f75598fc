// Package main provides the astroref CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// A .env file in the working directory may carry ADS_API_TOKEN.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "astroref",
	Short: "NASA ADS reference manager",
	Long: `astroref is a CLI for searching the NASA Astrophysics Data System,
managing ADS libraries, and fetching article PDFs.

Search results are cached on disk so repeated queries don't burn API
quota. All commands output JSON by default; use --human for readable
output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
