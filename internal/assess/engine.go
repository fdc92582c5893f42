// Package assess composes the lexiclash scoring stages into a single
// assessment of one spoken attempt.
//
// The [Engine] runs three pure stages in order:
//
//  1. Alignment ([align.Aligner]): the transcribed words are matched against
//     the reference phrase and every word pair is classified.
//  2. Battle numbers ([battle.Calculator]): the aggregate pronunciation score
//     plus game context become bounded attack damage and defense multiplier
//     with a full calculation breakdown.
//  3. Coaching ([coach.Generator]): per-word accuracy detail becomes a
//     prioritized human-readable feedback message.
//
// When a pronunciation assessment provider contributed scores and per-word
// detail, those are used directly. Without provider data the engine
// synthesizes per-word items from the alignment and derives aggregate scores
// from word confidences and similarities, so the game keeps working when the
// assessment service is unavailable.
//
// The Engine holds no state between calls and performs no I/O; it is safe
// for concurrent use. Callers wanting memoization should wrap Evaluate
// externally, keyed on the request — the engine itself stays cache-free.
package assess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lexiclash/lexiclash/internal/assess/align"
	"github.com/lexiclash/lexiclash/internal/assess/battle"
	"github.com/lexiclash/lexiclash/internal/assess/coach"
	"github.com/lexiclash/lexiclash/pkg/provider/assessment"
	"github.com/lexiclash/lexiclash/pkg/types"
)

// Option is a functional option for configuring an [Engine].
type Option func(*Engine)

// WithAligner replaces the default word aligner.
func WithAligner(a *align.Aligner) Option {
	return func(e *Engine) { e.aligner = a }
}

// WithCalculator replaces the default multiplier calculator.
func WithCalculator(c *battle.Calculator) Option {
	return func(e *Engine) { e.calculator = c }
}

// WithGenerator replaces the default feedback generator.
func WithGenerator(g *coach.Generator) Option {
	return func(e *Engine) { e.coach = g }
}

// Engine scores spoken attempts. Construct with [New]; the zero value is not
// usable.
type Engine struct {
	aligner    *align.Aligner
	calculator *battle.Calculator
	coach      *coach.Generator
}

// New returns an [Engine] with default stages, overridable via options.
func New(opts ...Option) *Engine {
	e := &Engine{
		aligner:    align.New(),
		calculator: battle.New(),
		coach:      coach.New(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Request carries everything needed to score one spoken attempt.
type Request struct {
	// ReferenceText is the expected phrase as whitespace-separated tokens
	// (external tokenizers emit space-delimited output for all supported
	// scripts). Empty means free-speech mode with no ground truth.
	ReferenceText string

	// Hypothesis is the recognizer's ordered word sequence.
	Hypothesis []types.WordToken

	// Provider optionally carries the pronunciation assessment provider's
	// scores and per-word detail. Nil when the provider was skipped or
	// unavailable.
	Provider *assessment.Result

	// Context holds the game-state scalars.
	Context types.AssessmentContext
}

// Evaluate scores one spoken attempt and returns the full assessment result.
//
// Empty reference text and empty hypothesis are valid degenerate inputs, not
// errors. Malformed values — confidences outside [0, 1], negative or
// reversed timings, provider scores outside [0, 100] — are caller-side
// programming errors and fail with a joined validation error rather than
// producing misleading numbers.
func (e *Engine) Evaluate(req Request) (*types.AssessmentResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	expected := strings.Fields(req.ReferenceText)
	comparisons := e.aligner.Align(expected, req.Hypothesis)

	var words []types.WordFeedbackItem
	var pron, accuracy, fluency, complete float64
	if req.Provider != nil {
		pron = req.Provider.PronunciationScore
		accuracy = req.Provider.AccuracyScore
		fluency = req.Provider.FluencyScore
		complete = req.Provider.CompletenessScore
		words = req.Provider.Words
	} else {
		pron = meanConfidence(req.Hypothesis) * 100
		accuracy = meanSimilarity(comparisons) * 100
		complete = completeness(comparisons, len(expected)) * 100
	}
	if len(words) == 0 {
		words = synthesizeFeedback(comparisons)
	}

	multipliers := e.calculator.Calculate(pron, req.Context)
	feedbackText := e.coach.Generate(words, pron)

	return &types.AssessmentResult{
		Rating:             multipliers.Rating,
		PronunciationScore: pron,
		AccuracyScore:      accuracy,
		FluencyScore:       fluency,
		CompletenessScore:  complete,
		AttackDamage:       multipliers.AttackDamage,
		DefenseMultiplier:  multipliers.DefenseMultiplier,
		Comparisons:        comparisons,
		DetailedFeedback:   words,
		WordFeedback:       feedbackText,
		Breakdown:          multipliers.Breakdown,
	}, nil
}

// validate checks that req contains a coherent set of values.
// It returns a joined error listing all failures found.
func validate(req Request) error {
	var errs []error

	for i, w := range req.Hypothesis {
		prefix := fmt.Sprintf("hypothesis[%d]", i)
		if w.Confidence < 0 || w.Confidence > 1 {
			errs = append(errs, fmt.Errorf("%s.confidence %.3f is out of range [0, 1]", prefix, w.Confidence))
		}
		if w.StartTime < 0 {
			errs = append(errs, fmt.Errorf("%s.start_time %.3f is negative", prefix, w.StartTime))
		}
		if w.EndTime < w.StartTime {
			errs = append(errs, fmt.Errorf("%s.end_time %.3f precedes start_time %.3f", prefix, w.EndTime, w.StartTime))
		}
	}

	if p := req.Provider; p != nil {
		scalars := []struct {
			name  string
			value float64
		}{
			{"pronunciation_score", p.PronunciationScore},
			{"accuracy_score", p.AccuracyScore},
			{"fluency_score", p.FluencyScore},
			{"completeness_score", p.CompletenessScore},
		}
		for _, s := range scalars {
			if s.value < 0 || s.value > 100 {
				errs = append(errs, fmt.Errorf("provider.%s %.1f is out of range [0, 100]", s.name, s.value))
			}
		}
		for i, w := range p.Words {
			prefix := fmt.Sprintf("provider.words[%d]", i)
			if w.AccuracyScore < 0 || w.AccuracyScore > 100 {
				errs = append(errs, fmt.Errorf("%s.accuracy_score %.1f is out of range [0, 100]", prefix, w.AccuracyScore))
			}
			if w.ErrorType != "" && !w.ErrorType.IsValid() {
				errs = append(errs, fmt.Errorf("%s.error_type %q is not recognised", prefix, w.ErrorType))
			}
		}
	}

	if c := req.Context; c.ItemRarity != "" && !c.ItemRarity.IsValid() {
		errs = append(errs, fmt.Errorf("context.item_rarity %q is not recognised", c.ItemRarity))
	}
	if c := req.Context; c.Interaction != "" && !c.Interaction.IsValid() {
		errs = append(errs, fmt.Errorf("context.interaction %q is not recognised", c.Interaction))
	}

	return errors.Join(errs...)
}

// synthesizeFeedback builds per-word accuracy items from alignment results,
// used when no provider detail is available. Accuracy comes from the pair
// similarity; error tags follow the match classification.
func synthesizeFeedback(comparisons []types.WordComparison) []types.WordFeedbackItem {
	items := make([]types.WordFeedbackItem, 0, len(comparisons))
	for _, c := range comparisons {
		item := types.WordFeedbackItem{
			Word:          c.Word,
			AccuracyScore: c.Similarity * 100,
			ErrorType:     types.ErrorNone,
		}
		switch c.MatchType {
		case types.MatchMissing:
			// The learner never said the word — show the expected form.
			item.Word = c.Expected
			item.AccuracyScore = 0
			item.ErrorType = types.ErrorOmission
		case types.MatchExtra:
			item.ErrorType = types.ErrorInsertion
		case types.MatchMismatch:
			item.ErrorType = types.ErrorMispronunciation
		}
		items = append(items, item)
	}
	return items
}

// meanConfidence averages recognizer word confidences, returning 0.0 for an
// empty word list.
func meanConfidence(words []types.WordToken) float64 {
	if len(words) == 0 {
		return 0.0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}

// meanSimilarity averages pair similarities, returning 0.0 for an empty
// comparison list.
func meanSimilarity(comparisons []types.WordComparison) float64 {
	if len(comparisons) == 0 {
		return 0.0
	}
	var sum float64
	for _, c := range comparisons {
		sum += c.Similarity
	}
	return sum / float64(len(comparisons))
}

// completeness is the fraction of reference words that were actually spoken.
// Returns 0.0 when there is no reference to complete.
func completeness(comparisons []types.WordComparison, expectedCount int) float64 {
	if expectedCount == 0 {
		return 0.0
	}
	missing := 0
	for _, c := range comparisons {
		if c.MatchType == types.MatchMissing {
			missing++
		}
	}
	return float64(expectedCount-missing) / float64(expectedCount)
}
