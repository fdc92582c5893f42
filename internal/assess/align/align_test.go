package align_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/lexiclash/lexiclash/internal/assess/align"
	"github.com/lexiclash/lexiclash/pkg/types"
)

// tok builds a WordToken with sequential timing so ordering checks stay
// readable.
func tok(text string, confidence float64, index int) types.WordToken {
	return types.WordToken{
		Text:       text,
		Confidence: confidence,
		StartTime:  float64(index) * 0.5,
		EndTime:    float64(index)*0.5 + 0.4,
	}
}

func TestAlign_PerfectMatch(t *testing.T) {
	t.Parallel()

	a := align.New()
	expected := []string{"สวัสดี", "ครับ"}
	hyp := []types.WordToken{
		tok("สวัสดี", 0.95, 0),
		tok("ครับ", 0.90, 1),
	}

	got := a.Align(expected, hyp)
	if len(got) != 2 {
		t.Fatalf("len(comparisons) = %d, want 2", len(got))
	}
	for i, c := range got {
		if c.MatchType != types.MatchExact {
			t.Errorf("comparison[%d].MatchType = %q, want exact", i, c.MatchType)
		}
		if c.Similarity != 1.0 {
			t.Errorf("comparison[%d].Similarity = %f, want 1.0", i, c.Similarity)
		}
		if c.Word != expected[i] || c.Expected != expected[i] {
			t.Errorf("comparison[%d] = %q/%q, want both %q", i, c.Word, c.Expected, expected[i])
		}
	}
}

func TestAlign_PartialSubstitution(t *testing.T) {
	t.Parallel()

	a := align.New()
	// ไหม vs ไม: similarity 2/3 falls between the default thresholds.
	got := a.Align([]string{"ไหม"}, []types.WordToken{tok("ไม", 0.8, 0)})
	if len(got) != 1 {
		t.Fatalf("len(comparisons) = %d, want 1", len(got))
	}
	if got[0].MatchType != types.MatchPartial {
		t.Errorf("MatchType = %q, want partial", got[0].MatchType)
	}
	want := 1.0 - 1.0/3.0
	if math.Abs(got[0].Similarity-want) > 1e-9 {
		t.Errorf("Similarity = %f, want %f", got[0].Similarity, want)
	}
	if got[0].Expected != "ไหม" || got[0].Word != "ไม" {
		t.Errorf("pairing = %q against %q, want ไม against ไหม", got[0].Word, got[0].Expected)
	}
}

func TestAlign_ThresholdBoundaries(t *testing.T) {
	t.Parallel()

	// abcde vs abcdX: similarity 0.8, exactly the close threshold.
	a := align.New()
	got := a.Align([]string{"abcde"}, []types.WordToken{tok("abcdX", 0.9, 0)})
	if got[0].MatchType != types.MatchClose {
		t.Errorf("similarity 0.8: MatchType = %q, want close", got[0].MatchType)
	}

	// ab vs aX: similarity 0.5, exactly the partial threshold.
	got = a.Align([]string{"ab"}, []types.WordToken{tok("aX", 0.9, 0)})
	if got[0].MatchType != types.MatchPartial {
		t.Errorf("similarity 0.5: MatchType = %q, want partial", got[0].MatchType)
	}

	// abc vs aXY: similarity 1/3, below the partial threshold.
	got = a.Align([]string{"abc"}, []types.WordToken{tok("aXY", 0.9, 0)})
	if got[0].MatchType != types.MatchMismatch {
		t.Errorf("similarity 0.33: MatchType = %q, want mismatch", got[0].MatchType)
	}
}

func TestAlign_CustomThresholds(t *testing.T) {
	t.Parallel()

	a := align.New(
		align.WithCloseThreshold(0.6),
		align.WithPartialThreshold(0.3),
	)
	// Similarity 2/3 clears the lowered close threshold.
	got := a.Align([]string{"ไหม"}, []types.WordToken{tok("ไม", 0.8, 0)})
	if got[0].MatchType != types.MatchClose {
		t.Errorf("MatchType = %q, want close with threshold 0.6", got[0].MatchType)
	}
}

func TestAlign_MissingWord(t *testing.T) {
	t.Parallel()

	a := align.New()
	expected := []string{"สวัสดี", "ครับ"}
	got := a.Align(expected, []types.WordToken{tok("สวัสดี", 0.95, 0)})
	if len(got) != 2 {
		t.Fatalf("len(comparisons) = %d, want 2", len(got))
	}

	var missing *types.WordComparison
	for i := range got {
		if got[i].MatchType == types.MatchMissing {
			missing = &got[i]
		}
	}
	if missing == nil {
		t.Fatal("no missing comparison produced for unspoken reference word")
	}
	if missing.Expected != "ครับ" {
		t.Errorf("missing.Expected = %q, want ครับ", missing.Expected)
	}
	if missing.Word != "" || missing.Confidence != 0 || missing.Similarity != 0 {
		t.Errorf("missing comparison carries spoken-word data: %+v", missing)
	}
	if missing.StartTime != 0 || missing.EndTime != 0 {
		t.Errorf("missing comparison carries timing: %+v", missing)
	}
}

func TestAlign_ExtraWord(t *testing.T) {
	t.Parallel()

	a := align.New()
	got := a.Align([]string{"ครับ"}, []types.WordToken{
		tok("ครับ", 0.9, 0),
		tok("นะ", 0.7, 1),
	})
	if len(got) != 2 {
		t.Fatalf("len(comparisons) = %d, want 2", len(got))
	}

	var extra *types.WordComparison
	for i := range got {
		if got[i].MatchType == types.MatchExtra {
			extra = &got[i]
		}
	}
	if extra == nil {
		t.Fatal("no extra comparison produced for unexpected spoken word")
	}
	if extra.Word != "นะ" {
		t.Errorf("extra.Word = %q, want นะ", extra.Word)
	}
	if extra.Expected != "" {
		t.Errorf("extra.Expected = %q, want empty", extra.Expected)
	}
	if extra.Similarity != 0.7 {
		t.Errorf("extra.Similarity = %f, want the confidence 0.7", extra.Similarity)
	}
}

func TestAlign_EmptyReference_Passthrough(t *testing.T) {
	t.Parallel()

	a := align.New()
	hyp := []types.WordToken{
		tok("hello", 0.9, 0),
		tok("world", 0.6, 1),
	}
	got := a.Align(nil, hyp)
	if len(got) != 2 {
		t.Fatalf("len(comparisons) = %d, want 2", len(got))
	}
	for i, c := range got {
		if c.MatchType != types.MatchNoReference {
			t.Errorf("comparison[%d].MatchType = %q, want no_reference", i, c.MatchType)
		}
		if c.Similarity != hyp[i].Confidence {
			t.Errorf("comparison[%d].Similarity = %f, want confidence %f", i, c.Similarity, hyp[i].Confidence)
		}
		if c.Expected != "" {
			t.Errorf("comparison[%d].Expected = %q, want empty", i, c.Expected)
		}
	}
}

func TestAlign_EmptyHypothesis_AllMissing(t *testing.T) {
	t.Parallel()

	a := align.New()
	expected := []string{"สวัสดี", "ครับ"}
	got := a.Align(expected, nil)
	if len(got) != 2 {
		t.Fatalf("len(comparisons) = %d, want 2", len(got))
	}
	for i, c := range got {
		if c.MatchType != types.MatchMissing {
			t.Errorf("comparison[%d].MatchType = %q, want missing", i, c.MatchType)
		}
		if c.Expected != expected[i] {
			t.Errorf("comparison[%d].Expected = %q, want %q", i, c.Expected, expected[i])
		}
	}
}

func TestAlign_BothEmpty(t *testing.T) {
	t.Parallel()

	a := align.New()
	if got := a.Align(nil, nil); len(got) != 0 {
		t.Errorf("Align(nil, nil) produced %d comparisons, want 0", len(got))
	}
}

func TestAlign_OrderedByStartTime(t *testing.T) {
	t.Parallel()

	a := align.New()
	expected := []string{"หนึ่ง", "สอง", "สาม", "สี่"}
	hyp := []types.WordToken{
		tok("หนึ่ง", 0.9, 0),
		tok("XY", 0.5, 1), // mismatch for สอง
		tok("สาม", 0.9, 2),
		tok("สี่", 0.9, 3),
	}
	got := a.Align(expected, hyp)
	for i := 1; i < len(got); i++ {
		if got[i].StartTime < got[i-1].StartTime {
			t.Errorf("comparisons out of order at %d: %f after %f", i, got[i].StartTime, got[i-1].StartTime)
		}
	}
}

func TestAlign_Deterministic(t *testing.T) {
	t.Parallel()

	a := align.New()
	expected := []string{"สวัสดี", "ครับ", "ไหม"}
	hyp := []types.WordToken{
		tok("สวัสดี", 0.95, 0),
		tok("ไม", 0.70, 1),
	}

	first := a.Align(expected, hyp)
	second := a.Align(expected, hyp)
	if !reflect.DeepEqual(first, second) {
		t.Error("Align is not deterministic for identical inputs")
	}
}

func TestAlign_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	a := align.New()
	expected := []string{"สอง", "หนึ่ง"}
	hyp := []types.WordToken{
		tok("หนึ่ง", 0.9, 0),
		tok("สอง", 0.9, 1),
	}
	expectedCopy := append([]string(nil), expected...)
	hypCopy := append([]types.WordToken(nil), hyp...)

	a.Align(expected, hyp)

	if !reflect.DeepEqual(expected, expectedCopy) {
		t.Error("Align mutated the expected slice")
	}
	if !reflect.DeepEqual(hyp, hypCopy) {
		t.Error("Align mutated the hypothesis slice")
	}
}

func TestAlign_ReplaceSpanLeftovers(t *testing.T) {
	t.Parallel()

	// Two reference words replaced by one spoken word: the second reference
	// word has no positional partner and must come out missing.
	a := align.New()
	got := a.Align([]string{"ขอบ", "คุณ"}, []types.WordToken{tok("ขอ", 0.8, 0)})

	counts := map[types.MatchType]int{}
	for _, c := range got {
		counts[c.MatchType]++
	}
	if counts[types.MatchMissing] != 1 {
		t.Errorf("missing count = %d, want 1 (got %+v)", counts[types.MatchMissing], got)
	}
	if len(got) != 2 {
		t.Errorf("len(comparisons) = %d, want 2", len(got))
	}
}
