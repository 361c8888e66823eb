package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/grammar-checker/internal/check"
	"github.com/jonathan/grammar-checker/internal/config"
	"github.com/jonathan/grammar-checker/internal/inference"
	"github.com/jonathan/grammar-checker/internal/server"
	"github.com/jonathan/grammar-checker/internal/store"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the grammar check endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	checker, cleanup, err := newChecker(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	serverCfg := server.Config{
		Port:    cfg.Port,
		Checker: checker,
	}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		serverCfg.Store = db
	} else {
		log.Println("DATABASE_URL not set, results will not be persisted")
	}

	srv := server.New(serverCfg)
	return srv.Start()
}

// buildConfig layers the config file over environment defaults and
// validates the result.
func buildConfig() (*config.Config, error) {
	cfg := config.FromEnv()
	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HuggingFaceAPIKey == "" {
		return nil, fmt.Errorf("HUGGINGFACE_API_KEY environment variable is required")
	}
	return &cfg, nil
}

// newChecker wires the inference clients and fallback policy from the
// configuration. The returned cleanup releases provider resources.
func newChecker(cfg *config.Config) (*check.Checker, func(), error) {
	var opts *inference.Options
	if cfg.InferenceTimeoutSeconds > 0 {
		opts = &inference.Options{Timeout: time.Duration(cfg.InferenceTimeoutSeconds) * time.Second}
	}
	client := inference.NewHFClient(cfg.HuggingFaceAPIKey, opts)

	policy := check.DefaultConfig()
	if cfg.AcceptabilityModel != "" {
		policy.AcceptabilityModel = cfg.AcceptabilityModel
	}
	if cfg.CorrectionModel != "" {
		policy.CorrectionModel = cfg.CorrectionModel
	}
	if cfg.AcceptThreshold != 0 {
		policy.AcceptThreshold = cfg.AcceptThreshold
	}
	if cfg.MinEscalationLength != 0 {
		policy.MinEscalationLength = cfg.MinEscalationLength
	}
	if cfg.MaxNewTokens != 0 {
		policy.MaxNewTokens = cfg.MaxNewTokens
	}

	cleanup := func() {}
	var corrector check.Corrector
	if cfg.CorrectionProvider == config.ProviderGemini {
		gemini, err := inference.NewGeminiCorrector(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini corrector: %w", err)
		}
		corrector = gemini
		cleanup = func() {
			if err := gemini.Close(); err != nil {
				log.Printf("Failed to close Gemini client: %v", err)
			}
		}
	}

	return check.New(client, corrector, policy), cleanup, nil
}
