// Package classifier exposes the pluggable classification port. Exactly one
// strategy is active per process, chosen at startup; turns never switch
// strategies.
package classifier

import (
	"context"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
)

// Result carries the classified label plus a confidence score. Confidence is
// surfaced for observability only and never steers control flow.
type Result struct {
	Label      emotion.Label
	Confidence float32
}

// Strategy classifies a single utterance.
type Strategy interface {
	Classify(ctx context.Context, text string) (Result, error)
	Name() string
}

// Lexicon is the deterministic keyword strategy. It needs no external
// resources and never fails.
type Lexicon struct{}

// NewLexicon returns the lexicon strategy.
func NewLexicon() Lexicon {
	return Lexicon{}
}

// Classify delegates to the keyword detector.
func (Lexicon) Classify(_ context.Context, text string) (Result, error) {
	return Result{Label: emotion.Detect(text), Confidence: 1.0}, nil
}

// Name identifies the strategy in logs.
func (Lexicon) Name() string { return "lexicon" }
