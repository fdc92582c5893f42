// Package coach turns per-word accuracy data into prioritized, human-readable
// coaching text.
//
// The [Generator] ranks words by accuracy, picks the weakest few, and builds a
// short message: a headline matched to the overall score, one remediation hint
// per weak word matched to that word's own score, a global technique tip, and
// a positive callout naming the strongest word when at least one word cleared
// the weak-word threshold.
//
// The Generator never mutates its input slice — callers may keep relying on
// the original per-word order for display.
package coach

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lexiclash/lexiclash/pkg/types"
)

const (
	defaultWeakWordThreshold = 80.0
	defaultMaxWeakWords      = 3
)

// Option is a functional option for configuring a [Generator].
type Option func(*Generator)

// WithWeakWordThreshold sets the accuracy score below which a word counts as
// needing work. Default: 80.
func WithWeakWordThreshold(threshold float64) Option {
	return func(g *Generator) {
		g.weakThreshold = threshold
	}
}

// WithMaxWeakWords sets how many of the weakest words the message calls out.
// Default: 3.
func WithMaxWeakWords(n int) Option {
	return func(g *Generator) {
		g.maxWeakWords = n
	}
}

// Generator builds coaching messages. It is read-only after construction and
// safe for concurrent use.
type Generator struct {
	weakThreshold float64
	maxWeakWords  int
}

// New returns a [Generator] with the supplied options applied over the
// defaults.
func New(opts ...Option) *Generator {
	g := &Generator{
		weakThreshold: defaultWeakWordThreshold,
		maxWeakWords:  defaultMaxWeakWords,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate returns the coaching message for the given per-word accuracy data
// and aggregate pronunciation score. The result is never empty: when no word
// needs work (or words is empty) a congratulatory message is returned, tiered
// on the aggregate score.
func (g *Generator) Generate(words []types.WordFeedbackItem, aggregate float64) string {
	weakest := g.weakestWords(words)
	if len(weakest) == 0 {
		if aggregate >= 90 {
			return "Outstanding pronunciation! Every word was spot on."
		}
		return "Great job! All your words came through clearly."
	}

	var b strings.Builder
	b.WriteString(headline(aggregate))
	b.WriteString("\n")

	for _, w := range weakest {
		b.WriteString("• ")
		b.WriteString(displayWord(w))
		b.WriteString(": ")
		b.WriteString(wordHint(w.AccuracyScore))
		b.WriteString("\n")
	}

	b.WriteString(techniqueTip(aggregate))

	// Some word cleared the bar — celebrate the strongest one. The length
	// comparison alone is not enough: the weak-word cap can leave uncalled-out
	// words that still scored below the threshold.
	best := words[0]
	for _, w := range words[1:] {
		if w.AccuracyScore > best.AccuracyScore {
			best = w
		}
	}
	if best.AccuracyScore >= g.weakThreshold {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Your strongest word was %s — keep that up!", displayWord(best)))
	}

	return b.String()
}

// weakestWords returns up to maxWeakWords entries scoring below the weak-word
// threshold, ranked worst first. The input slice is never reordered; the sort
// operates on a copy.
func (g *Generator) weakestWords(words []types.WordFeedbackItem) []types.WordFeedbackItem {
	ranked := make([]types.WordFeedbackItem, len(words))
	copy(ranked, words)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AccuracyScore < ranked[j].AccuracyScore
	})

	var weakest []types.WordFeedbackItem
	for _, w := range ranked {
		if w.AccuracyScore >= g.weakThreshold {
			break
		}
		weakest = append(weakest, w)
		if len(weakest) == g.maxWeakWords {
			break
		}
	}
	return weakest
}

func headline(aggregate float64) string {
	switch {
	case aggregate >= 75:
		return "Almost there! A few words could use some attention:"
	case aggregate >= 60:
		return "Good foundation. Let's sharpen these words:"
	default:
		return "Let's work on the basics. Start with these words:"
	}
}

// wordHint picks a remediation hint from the word's own accuracy band.
func wordHint(score float64) string {
	switch {
	case score < 50:
		return "break it into syllables and practice each part slowly"
	case score < 70:
		return "focus on the tone and vowel sounds"
	default:
		return "polish the final sounds of the word"
	}
}

func techniqueTip(aggregate float64) string {
	switch {
	case aggregate >= 75:
		return "Tip: record yourself and compare against a native speaker to close the last gap."
	case aggregate >= 60:
		return "Tip: slow down a little — clear beats fast every time."
	default:
		return "Tip: listen to the phrase a few times first, then shadow it word by word."
	}
}

func displayWord(w types.WordFeedbackItem) string {
	if w.Transliteration != "" {
		return fmt.Sprintf("%s (%s)", w.Word, w.Transliteration)
	}
	return w.Word
}
