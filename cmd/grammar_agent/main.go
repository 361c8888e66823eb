// Package main provides the entry point for the grammar check service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grammar_agent",
	Short: "Grammar Check HTTP API Server",
	Long: "Grammar Check forwards text to hosted inference models for grammar checking, " +
		"normalizes suggestions into a structured issue list, scores the text, and persists results.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
