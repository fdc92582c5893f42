// Package assessment defines the Provider interface for phoneme-level
// pronunciation assessment backends.
//
// An assessment provider (e.g., Azure Speech pronunciation assessment)
// analyses a spoken attempt against the expected reference phrase and returns
// four 0–100 quality scores plus ordered per-word accuracy records with error
// tags. The scoring engine consumes these values as-is: fluency and
// completeness pass straight through to the final result, and the per-word
// records feed the coaching feedback.
//
// Implementations must be safe for concurrent use.
package assessment

import (
	"context"

	"github.com/lexiclash/lexiclash/pkg/types"
)

// Config describes a single assessment request.
type Config struct {
	// Language is the BCP-47 language tag of the reference phrase.
	Language string

	// Granularity selects the assessment detail level where the provider
	// supports it (e.g., "word", "phoneme"). Empty means provider default.
	Granularity string
}

// Result is a provider's full pronunciation analysis of one spoken attempt.
type Result struct {
	// PronunciationScore is the overall pronunciation quality (0–100). It is
	// the only scalar that drives the battle formulas.
	PronunciationScore float64 `json:"pronunciation_score"`

	// AccuracyScore reflects phoneme-level correctness (0–100).
	AccuracyScore float64 `json:"accuracy_score"`

	// FluencyScore reflects pause and rhythm quality (0–100). Passed through
	// to the final result unmodified.
	FluencyScore float64 `json:"fluency_score"`

	// CompletenessScore reflects how much of the reference was spoken
	// (0–100). Passed through unmodified.
	CompletenessScore float64 `json:"completeness_score"`

	// Words is the ordered per-word accuracy detail.
	Words []types.WordFeedbackItem `json:"words"`
}

// Provider is the abstraction over any pronunciation assessment backend.
type Provider interface {
	// Assess analyses a complete spoken attempt against referenceText.
	//
	// Returns an error if the provider cannot process the request. A non-nil
	// Result always carries all four scalar scores; Words may be empty for
	// providers without word-level output.
	Assess(ctx context.Context, audio []byte, referenceText string, cfg Config) (*Result, error)
}
