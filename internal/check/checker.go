package check

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/jonathan/grammar-checker/internal/inference"
)

// Default model identifiers and fallback policy thresholds.
const (
	// DefaultAcceptabilityModel is the lightweight primary model: a CoLA
	// acceptability classifier.
	DefaultAcceptabilityModel = "textattack/roberta-base-CoLA"
	// DefaultCorrectionModel is the comprehensive secondary model: a
	// text2text grammar correction model.
	DefaultCorrectionModel = "grammarly/coedit-large"

	// DefaultAcceptThreshold is the minimum classification confidence
	// below which the primary verdict is not trusted.
	DefaultAcceptThreshold = 0.7
	// DefaultMinEscalationLength is the text length (in runes) above
	// which a clean primary verdict is still escalated: the lightweight
	// classifier is unreliable on long passages.
	DefaultMinEscalationLength = 500
	// DefaultMaxNewTokens bounds the correction model's output length.
	DefaultMaxNewTokens = 250
)

// Config holds the tunable fallback policy. Model identifiers and
// thresholds are configuration, not code.
type Config struct {
	AcceptabilityModel  string
	CorrectionModel     string
	AcceptThreshold     float64
	MinEscalationLength int
	MaxNewTokens        int
}

// DefaultConfig returns the default fallback policy.
func DefaultConfig() *Config {
	return &Config{
		AcceptabilityModel:  DefaultAcceptabilityModel,
		CorrectionModel:     DefaultCorrectionModel,
		AcceptThreshold:     DefaultAcceptThreshold,
		MinEscalationLength: DefaultMinEscalationLength,
		MaxNewTokens:        DefaultMaxNewTokens,
	}
}

// Corrector produces a corrected version of the input text. It abstracts
// providers that return rewritten text directly instead of a raw
// HuggingFace-style payload.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Checker orchestrates the two-tier model fallback: the cheap
// acceptability model runs first, and the comprehensive correction model
// runs only when the primary call fails or its verdict is low-confidence.
// A Checker holds no per-request state and is safe for concurrent use.
type Checker struct {
	client    inference.Client
	corrector Corrector
	cfg       *Config
}

// New creates a Checker. corrector may be nil, in which case the secondary
// call uses the configured HuggingFace correction model through client. A
// nil cfg uses DefaultConfig.
func New(client inference.Client, corrector Corrector, cfg *Config) *Checker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Checker{client: client, corrector: corrector, cfg: cfg}
}

// Check runs one grammar check. It never fails on upstream errors: when
// both models are unreachable it returns a degraded result with the
// neutral score instead.
func (c *Checker) Check(ctx context.Context, text string) (*Result, error) {
	primary, err := c.classify(ctx, text)
	switch {
	case err != nil:
		log.Printf("primary model %s failed, falling back: %v", c.cfg.AcceptabilityModel, err)
	case c.lowConfidence(text, primary):
		log.Printf("primary model %s verdict is low-confidence (%.2f), falling back",
			c.cfg.AcceptabilityModel, primary.Confidence)
	default:
		return c.buildResult(text, primary), nil
	}

	secondary, err := c.correct(ctx, text)
	if err != nil {
		log.Printf("secondary model failed, returning degraded result: %v", err)
		return DegradedResult(text), nil
	}
	return c.buildResult(text, secondary), nil
}

// DegradedResult is the safe fallback output when no remote model is
// reachable: the text passes through unchanged with the neutral score.
// This is an explicit "unable to verify, assume acceptable" policy, not a
// silent success.
func DegradedResult(text string) *Result {
	return &Result{
		CorrectedText: text,
		Issues:        []Issue{},
		Score:         NeutralScore,
	}
}

func (c *Checker) classify(ctx context.Context, text string) (*Normalized, error) {
	raw, err := c.client.Infer(ctx, c.cfg.AcceptabilityModel, inference.ClassificationRequest{Inputs: text})
	if err != nil {
		return nil, err
	}
	return Normalize(text, raw, KindAcceptability)
}

func (c *Checker) correct(ctx context.Context, text string) (*Normalized, error) {
	if c.corrector != nil {
		corrected, err := c.corrector.Correct(ctx, text)
		if err != nil {
			return nil, err
		}
		return NormalizedFromCorrected(text, corrected), nil
	}

	raw, err := c.client.Infer(ctx, c.cfg.CorrectionModel, inference.GenerationRequest{
		Inputs:     text,
		Parameters: &inference.GenerationParameters{MaxNewTokens: c.cfg.MaxNewTokens},
	})
	if err != nil {
		return nil, err
	}
	return Normalize(text, raw, KindCorrection)
}

// lowConfidence decides whether a primary verdict warrants escalation:
// the classifier's confidence fell below the threshold, or it found
// nothing wrong in a text long enough that a clean verdict is suspicious.
func (c *Checker) lowConfidence(text string, n *Normalized) bool {
	if n.Confidence < c.cfg.AcceptThreshold {
		return true
	}
	return len(n.Issues) == 0 && utf8.RuneCountInString(text) > c.cfg.MinEscalationLength
}

func (c *Checker) buildResult(text string, n *Normalized) *Result {
	issues := finalizeIssues(n.Issues)
	return &Result{
		CorrectedText: n.CorrectedText,
		Issues:        issues,
		Score:         Score(issues, utf8.RuneCountInString(text)),
	}
}
