// Package main provides the entry point for the CivicPulse scoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "civic_agent",
	Short: "CivicPulse representative scoring engine",
	Long:  "CivicPulse maintains 0-100 trust and performance scores for elected representatives, driven by multi-agent analysis of news evidence, parliamentary activity and public trust votes.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
