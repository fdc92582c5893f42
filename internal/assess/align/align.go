// Package align matches a transcribed word sequence against the expected
// reference phrase and classifies every word pair.
//
// The aligner runs a longest-common-subsequence diff over the two token
// sequences (the classic equal/replace/insert/delete opcode chain) and maps
// each opcode span to [types.WordComparison] records:
//
//   - equal spans become exact matches with similarity 1.0;
//   - replace spans are scored pair by pair with [Similarity] and classified
//     close, partial, or mismatch against the configured thresholds;
//   - insert spans (spoken words with no reference counterpart) become extra;
//   - delete spans (reference words never spoken) become missing.
//
// When no reference phrase is supplied at all, every transcribed word becomes
// a no_reference comparison carrying its recognizer confidence — the pure
// pass-through mode used for free-speech practice.
//
// The aligner is read-only after construction and safe for concurrent use.
package align

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/lexiclash/lexiclash/pkg/types"
)

const (
	defaultCloseThreshold   = 0.8
	defaultPartialThreshold = 0.5
)

// Option is a functional option for configuring an [Aligner].
type Option func(*Aligner)

// WithCloseThreshold sets the minimum similarity for a substituted word to be
// classified close rather than partial. Default: 0.8.
func WithCloseThreshold(threshold float64) Option {
	return func(a *Aligner) {
		a.closeThreshold = threshold
	}
}

// WithPartialThreshold sets the minimum similarity for a substituted word to
// be classified partial rather than mismatch. Default: 0.5.
func WithPartialThreshold(threshold float64) Option {
	return func(a *Aligner) {
		a.partialThreshold = threshold
	}
}

// Aligner classifies transcribed words against a reference phrase.
// All methods are safe for concurrent use — the Aligner is read-only after
// construction.
type Aligner struct {
	closeThreshold   float64
	partialThreshold float64
}

// New returns a new [Aligner] configured with the supplied options.
// Default thresholds are 0.8 for close and 0.5 for partial matches.
func New(opts ...Option) *Aligner {
	a := &Aligner{
		closeThreshold:   defaultCloseThreshold,
		partialThreshold: defaultPartialThreshold,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Align matches hypothesis against expected and returns one classified
// comparison per aligned word. The result is ordered by start time ascending;
// ties keep alignment order. Missing reference words carry zero timing, which
// places them at the front of the ordering.
//
// An empty expected slice yields all-no_reference comparisons; an empty
// hypothesis yields all-missing comparisons. Neither is an error.
//
// Align never mutates its inputs and is deterministic: identical inputs
// produce identical output.
func (a *Aligner) Align(expected []string, hypothesis []types.WordToken) []types.WordComparison {
	if len(expected) == 0 {
		return passthrough(hypothesis)
	}

	hypWords := make([]string, len(hypothesis))
	for i, w := range hypothesis {
		hypWords[i] = w.Text
	}

	comparisons := make([]types.WordComparison, 0, len(expected)+len(hypothesis))

	matcher := difflib.NewMatcher(expected, hypWords)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				tok := hypothesis[op.J1+k]
				comparisons = append(comparisons, types.WordComparison{
					Word:       tok.Text,
					Confidence: tok.Confidence,
					Expected:   expected[op.I1+k],
					MatchType:  types.MatchExact,
					Similarity: 1.0,
					StartTime:  tok.StartTime,
					EndTime:    tok.EndTime,
				})
			}
		case 'r':
			comparisons = append(comparisons, a.alignReplaceSpan(
				expected[op.I1:op.I2], hypothesis[op.J1:op.J2])...)
		case 'i':
			for _, tok := range hypothesis[op.J1:op.J2] {
				comparisons = append(comparisons, extraComparison(tok))
			}
		case 'd':
			for _, ref := range expected[op.I1:op.I2] {
				comparisons = append(comparisons, missingComparison(ref))
			}
		}
	}

	// Left-to-right reading order consistent with audio timing. Stable so
	// equal start times keep alignment order.
	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].StartTime < comparisons[j].StartTime
	})
	return comparisons
}

// alignReplaceSpan pairs the words of a replace span positionally — the i-th
// expected word with the i-th spoken word — until one side is exhausted.
// Leftover expected words become missing, leftover spoken words become extra.
func (a *Aligner) alignReplaceSpan(expected []string, hypothesis []types.WordToken) []types.WordComparison {
	comparisons := make([]types.WordComparison, 0, len(expected)+len(hypothesis))

	n := len(expected)
	if len(hypothesis) < n {
		n = len(hypothesis)
	}

	for i := 0; i < n; i++ {
		tok := hypothesis[i]
		s := Similarity(tok.Text, expected[i])
		comparisons = append(comparisons, types.WordComparison{
			Word:       tok.Text,
			Confidence: tok.Confidence,
			Expected:   expected[i],
			MatchType:  a.classify(s),
			Similarity: s,
			StartTime:  tok.StartTime,
			EndTime:    tok.EndTime,
		})
	}
	for _, ref := range expected[n:] {
		comparisons = append(comparisons, missingComparison(ref))
	}
	for _, tok := range hypothesis[n:] {
		comparisons = append(comparisons, extraComparison(tok))
	}
	return comparisons
}

// classify maps a similarity score to a substitution match type using the
// configured thresholds.
func (a *Aligner) classify(similarity float64) types.MatchType {
	switch {
	case similarity >= a.closeThreshold:
		return types.MatchClose
	case similarity >= a.partialThreshold:
		return types.MatchPartial
	default:
		return types.MatchMismatch
	}
}

// passthrough converts every spoken word into a no_reference comparison
// carrying the recognizer confidence as its similarity.
func passthrough(hypothesis []types.WordToken) []types.WordComparison {
	comparisons := make([]types.WordComparison, len(hypothesis))
	for i, tok := range hypothesis {
		comparisons[i] = types.WordComparison{
			Word:       tok.Text,
			Confidence: tok.Confidence,
			MatchType:  types.MatchNoReference,
			Similarity: tok.Confidence,
			StartTime:  tok.StartTime,
			EndTime:    tok.EndTime,
		}
	}
	return comparisons
}

func extraComparison(tok types.WordToken) types.WordComparison {
	return types.WordComparison{
		Word:       tok.Text,
		Confidence: tok.Confidence,
		MatchType:  types.MatchExtra,
		Similarity: tok.Confidence,
		StartTime:  tok.StartTime,
		EndTime:    tok.EndTime,
	}
}

func missingComparison(ref string) types.WordComparison {
	return types.WordComparison{
		Expected:  ref,
		MatchType: types.MatchMissing,
	}
}
