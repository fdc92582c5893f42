// Package types defines the shared types used across all lexiclash packages.
//
// These types form the lingua franca between the recognizer and assessment
// provider boundaries, the alignment and scoring engine, and the application
// layer. Each package defines its own domain types, but cross-cutting data
// structures live here to avoid circular imports.
package types

// WordToken is a single transcribed word as produced by a speech recognizer.
// Tokens are immutable and consumed once per assessment.
type WordToken struct {
	// Text is the transcribed word in its native script.
	Text string `json:"text"`

	// Confidence is the recognizer's confidence for this word (0.0–1.0).
	Confidence float64 `json:"confidence"`

	// StartTime is the word's start offset within the utterance, in seconds.
	StartTime float64 `json:"start_time"`

	// EndTime is the word's end offset within the utterance, in seconds.
	EndTime float64 `json:"end_time"`
}

// MatchType classifies how a transcribed word relates to its reference word.
type MatchType string

const (
	// MatchExact means the transcribed word equals the reference word.
	MatchExact MatchType = "exact"

	// MatchClose means the words differ but similarity is at or above the
	// close threshold.
	MatchClose MatchType = "close"

	// MatchPartial means similarity falls between the partial and close
	// thresholds.
	MatchPartial MatchType = "partial"

	// MatchMismatch means similarity is below the partial threshold.
	MatchMismatch MatchType = "mismatch"

	// MatchMissing means a reference word has no transcribed counterpart.
	MatchMissing MatchType = "missing"

	// MatchExtra means a transcribed word has no reference counterpart.
	MatchExtra MatchType = "extra"

	// MatchNoReference means no reference phrase was supplied at all; the
	// transcribed word is passed through with its recognizer confidence.
	MatchNoReference MatchType = "no_reference"
)

// IsValid reports whether m is a recognised match type.
func (m MatchType) IsValid() bool {
	switch m {
	case MatchExact, MatchClose, MatchPartial, MatchMismatch,
		MatchMissing, MatchExtra, MatchNoReference:
		return true
	}
	return false
}

// WordComparison is one classified word pair produced by the aligner.
// A slice of comparisons is created fresh per assessment, never mutated
// afterwards, and ordered by StartTime ascending (alignment order for ties).
type WordComparison struct {
	// Word is the transcribed word. Empty for missing reference words.
	Word string `json:"word"`

	// Confidence is the recognizer confidence of the transcribed word.
	// Zero for missing reference words.
	Confidence float64 `json:"confidence"`

	// Expected is the reference word this comparison was made against.
	// Empty for extra and no_reference comparisons.
	Expected string `json:"expected"`

	// MatchType classifies the pair.
	MatchType MatchType `json:"match_type"`

	// Similarity is the pair's similarity score (0.0–1.0). 1.0 for exact
	// matches; the recognizer confidence for extra and no_reference words;
	// 0.0 for missing words.
	Similarity float64 `json:"similarity"`

	// StartTime and EndTime carry the transcribed word's timing, in seconds.
	// Zero for missing reference words.
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// ErrorType tags a word-level pronunciation problem as reported by an
// external phoneme-level assessment provider.
type ErrorType string

const (
	ErrorNone             ErrorType = "None"
	ErrorMispronunciation ErrorType = "Mispronunciation"
	ErrorOmission         ErrorType = "Omission"
	ErrorInsertion        ErrorType = "Insertion"
	ErrorUnexpectedBreak  ErrorType = "UnexpectedBreak"
	ErrorMissingBreak     ErrorType = "MissingBreak"
	ErrorMonotone         ErrorType = "Monotone"
)

// IsValid reports whether e is a recognised error type.
func (e ErrorType) IsValid() bool {
	switch e {
	case ErrorNone, ErrorMispronunciation, ErrorOmission, ErrorInsertion,
		ErrorUnexpectedBreak, ErrorMissingBreak, ErrorMonotone:
		return true
	}
	return false
}

// WordFeedbackItem carries per-word accuracy detail consumed by the feedback
// generator. Items come from an assessment provider or are synthesized from
// alignment results when no provider data is available.
type WordFeedbackItem struct {
	// Word is the assessed word in its native script.
	Word string `json:"word"`

	// AccuracyScore is the word's pronunciation accuracy (0–100).
	AccuracyScore float64 `json:"accuracy_score"`

	// ErrorType tags the dominant pronunciation problem, or ErrorNone.
	ErrorType ErrorType `json:"error_type"`

	// Transliteration is an optional romanisation shown alongside the word.
	Transliteration string `json:"transliteration,omitempty"`
}

// ItemRarity distinguishes regular from special in-game items. Special items
// raise base damage and grant a larger defensive discount.
type ItemRarity string

const (
	RarityRegular ItemRarity = "regular"
	RaritySpecial ItemRarity = "special"
)

// IsValid reports whether r is a recognised rarity.
func (r ItemRarity) IsValid() bool {
	return r == RarityRegular || r == RaritySpecial
}

// Interaction identifies which side of a battle turn the pronunciation
// attempt belongs to.
type Interaction string

const (
	InteractionAttack  Interaction = "attack"
	InteractionDefense Interaction = "defense"
)

// IsValid reports whether i is a recognised interaction type.
func (i Interaction) IsValid() bool {
	return i == InteractionAttack || i == InteractionDefense
}

// AssessmentContext carries the game-state scalars that shape the multiplier
// formulas. Immutable per request.
type AssessmentContext struct {
	// Complexity is the vocabulary item's difficulty tier (1–5).
	// Out-of-range values are clamped to the nearest tier.
	Complexity int `json:"complexity"`

	// ItemRarity selects the base damage and defensive bonus magnitude.
	ItemRarity ItemRarity `json:"item_rarity"`

	// Interaction records whether the attempt powers an attack or a defense.
	Interaction Interaction `json:"interaction"`

	// WasRevealed is true when the player saw the answer before speaking.
	WasRevealed bool `json:"was_revealed"`
}

// Rating is the coarse pronunciation quality tier derived from the aggregate
// pronunciation score.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingOkay             Rating = "Okay"
	RatingNeedsImprovement Rating = "NeedsImprovement"
)

// IsValid reports whether r is a recognised rating.
func (r Rating) IsValid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingOkay, RatingNeedsImprovement:
		return true
	}
	return false
}

// CalculationBreakdown records every intermediate bonus and penalty that fed
// the final multiplier numbers. It is the authoritative explanation of the
// result — callers render audit trails from it without recomputation.
type CalculationBreakdown struct {
	Rating Rating `json:"rating"`

	// Attack path.
	AttackPronunciationBonus float64 `json:"attack_pronunciation_bonus"`
	AttackComplexityBonus    float64 `json:"attack_complexity_bonus"`
	AttackRevealPenalty      float64 `json:"attack_reveal_penalty"`
	AttackMultiplier         float64 `json:"attack_multiplier"`
	BaseDamage               float64 `json:"base_damage"`

	// Defense path.
	DefensePronunciationBonus float64 `json:"defense_pronunciation_bonus"`
	DefenseComplexityBonus    float64 `json:"defense_complexity_bonus"`
	DefenseRevealPenalty      float64 `json:"defense_reveal_penalty"`
	DefenseMultiplierRaw      float64 `json:"defense_multiplier_raw"`

	// AttackFormula and DefenseFormula are human-readable renderings of the
	// two computations, suitable for display in a battle log.
	AttackFormula  string `json:"attack_formula"`
	DefenseFormula string `json:"defense_formula"`
}

// MultiplierResult is the output of the multiplier calculator.
type MultiplierResult struct {
	// Rating is the pronunciation quality tier.
	Rating Rating `json:"rating"`

	// AttackDamage is the final attack damage. Always ≥ 0.
	AttackDamage float64 `json:"attack_damage"`

	// DefenseMultiplier scales incoming damage. Always within [0.1, 1.0];
	// lower is better for the defender.
	DefenseMultiplier float64 `json:"defense_multiplier"`

	// Breakdown itemises every bonus and penalty behind the numbers above.
	Breakdown CalculationBreakdown `json:"breakdown"`
}

// Transcript is the one-shot recognition result for a spoken attempt.
type Transcript struct {
	// Text is the full transcribed phrase.
	Text string `json:"text"`

	// Confidence is the overall confidence score (0.0–1.0). May be zero if
	// the recognizer does not report one.
	Confidence float64 `json:"confidence"`

	// Words is the ordered per-word detail. May be empty for recognizers
	// without word-level output.
	Words []WordToken `json:"words"`
}

// AssessmentResult is the full outcome of scoring one spoken attempt.
type AssessmentResult struct {
	// Rating is the coarse pronunciation quality tier.
	Rating Rating `json:"rating"`

	// The four 0–100 quality metrics. PronunciationScore drives the
	// multiplier formulas; the other three are carried through for display.
	PronunciationScore float64 `json:"pronunciation_score"`
	AccuracyScore      float64 `json:"accuracy_score"`
	FluencyScore       float64 `json:"fluency_score"`
	CompletenessScore  float64 `json:"completeness_score"`

	// AttackDamage and DefenseMultiplier are the game-balance numbers.
	AttackDamage      float64 `json:"attack_damage"`
	DefenseMultiplier float64 `json:"defense_multiplier"`

	// Comparisons is the classified word alignment, ordered by start time.
	Comparisons []WordComparison `json:"comparisons"`

	// DetailedFeedback is the per-word accuracy detail the coaching text was
	// built from, in the provider's original order.
	DetailedFeedback []WordFeedbackItem `json:"detailed_feedback"`

	// WordFeedback is the prioritized human-readable coaching text.
	WordFeedback string `json:"word_feedback"`

	// Breakdown itemises the multiplier computation.
	Breakdown CalculationBreakdown `json:"calculation_breakdown"`
}
