// Package main provides the refcheck CLI entry point.
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
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Verify bibliographic citations against scholarly databases",
	Long: `refcheck cross-checks freeform citations against OpenAlex and CrossRef
and classifies each line as verified, suspicious, or not found.

Paste a reference list (or point it at a paper's PDF) and it looks up each
citation in both databases, compares the returned title against your line,
and reports where human review is needed. All commands output JSON by
default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for REFCHECK_CONFIG and friends)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
