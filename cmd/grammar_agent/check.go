package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/grammar-checker/internal/observability"
)

var (
	checkFile   string
	checkPretty bool
)

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Run a one-off grammar check",
	Long:  `Check a piece of text against the configured models and print the result as JSON.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFile, "file", "", "Read the text to check from a file")
	checkCmd.Flags().BoolVar(&checkPretty, "pretty", false, "Print a human-readable summary instead of JSON")
	checkCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	var text string
	switch {
	case checkFile != "":
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(data)
	case len(args) == 1:
		text = args[0]
	default:
		return fmt.Errorf("provide text as an argument or via --file")
	}
	if text == "" {
		return fmt.Errorf("text is empty")
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	checker, cleanup, err := newChecker(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := checker.Check(ctx, text)
	if err != nil {
		return fmt.Errorf("grammar check failed: %w", err)
	}

	if checkPretty {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintResult(result)
		printer.PrintCorrectedText(result.CorrectedText)
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
