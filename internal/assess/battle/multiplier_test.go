package battle_test

import (
	"math"
	"strings"
	"testing"

	"github.com/lexiclash/lexiclash/internal/assess/battle"
	"github.com/lexiclash/lexiclash/pkg/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculate_ExcellentRegularAttack(t *testing.T) {
	t.Parallel()

	c := battle.New()
	got := c.Calculate(95, types.AssessmentContext{
		Complexity:  3,
		ItemRarity:  types.RarityRegular,
		Interaction: types.InteractionAttack,
	})

	// 50 × (1 + 0.60 + 0.30) = 95.
	if !almostEqual(got.AttackDamage, 95.0) {
		t.Errorf("AttackDamage = %f, want 95.0", got.AttackDamage)
	}
	if got.Rating != types.RatingExcellent {
		t.Errorf("Rating = %q, want Excellent", got.Rating)
	}
}

func TestCalculate_ExcellentSpecialAttack(t *testing.T) {
	t.Parallel()

	c := battle.New()
	got := c.Calculate(95, types.AssessmentContext{
		Complexity:  3,
		ItemRarity:  types.RaritySpecial,
		Interaction: types.InteractionAttack,
	})

	// 60 × (1 + 0.60 + 0.30) = 114.
	if !almostEqual(got.AttackDamage, 114.0) {
		t.Errorf("AttackDamage = %f, want 114.0", got.AttackDamage)
	}
}

func TestCalculate_ExcellentSpecialDefense(t *testing.T) {
	t.Parallel()

	c := battle.New()
	got := c.Calculate(95, types.AssessmentContext{
		Complexity:  3,
		ItemRarity:  types.RaritySpecial,
		Interaction: types.InteractionDefense,
	})

	// 1 - 0.70 - 0.10 = 0.20, inside the clamp range.
	if !almostEqual(got.DefenseMultiplier, 0.20) {
		t.Errorf("DefenseMultiplier = %f, want 0.20", got.DefenseMultiplier)
	}
}

func TestCalculate_RevealCancelsDefensiveDiscount(t *testing.T) {
	t.Parallel()

	c := battle.New()
	ctx := types.AssessmentContext{
		Complexity:  3,
		ItemRarity:  types.RaritySpecial,
		Interaction: types.InteractionDefense,
	}

	hidden := c.Calculate(95, ctx)
	ctx.WasRevealed = true
	revealed := c.Calculate(95, ctx)

	// The accumulated discount is 0.80, so the reveal penalty hits the 0.20
	// cap: 0.20 + 0.20 = 0.40.
	if !almostEqual(revealed.DefenseMultiplier, 0.40) {
		t.Errorf("DefenseMultiplier with reveal = %f, want 0.40", revealed.DefenseMultiplier)
	}
	if revealed.DefenseMultiplier <= hidden.DefenseMultiplier {
		t.Error("reveal must weaken the defense multiplier")
	}
	if !almostEqual(revealed.Breakdown.DefenseRevealPenalty, 0.20) {
		t.Errorf("DefenseRevealPenalty = %f, want capped 0.20", revealed.Breakdown.DefenseRevealPenalty)
	}
}

func TestCalculate_RevealPenaltyBelowCap(t *testing.T) {
	t.Parallel()

	c := battle.New()
	// Okay + regular + complexity 1 accumulates only -0.10 discount, so the
	// reveal penalty is 0.10, not the full cap.
	got := c.Calculate(65, types.AssessmentContext{
		Complexity:  1,
		ItemRarity:  types.RarityRegular,
		Interaction: types.InteractionDefense,
		WasRevealed: true,
	})
	if !almostEqual(got.Breakdown.DefenseRevealPenalty, 0.10) {
		t.Errorf("DefenseRevealPenalty = %f, want 0.10", got.Breakdown.DefenseRevealPenalty)
	}
	if !almostEqual(got.DefenseMultiplier, 1.00) {
		t.Errorf("DefenseMultiplier = %f, want 1.00 (discount fully cancelled)", got.DefenseMultiplier)
	}
}

func TestCalculate_AttackRevealPenaltyIsFlat(t *testing.T) {
	t.Parallel()

	c := battle.New()
	ctx := types.AssessmentContext{
		Complexity:  2,
		ItemRarity:  types.RarityRegular,
		Interaction: types.InteractionAttack,
	}

	hidden := c.Calculate(80, ctx)
	ctx.WasRevealed = true
	revealed := c.Calculate(80, ctx)

	// Flat -0.20 on the multiplier: 50 × 0.20 = 10 less damage.
	if !almostEqual(hidden.AttackDamage-revealed.AttackDamage, 10.0) {
		t.Errorf("reveal damage delta = %f, want 10.0", hidden.AttackDamage-revealed.AttackDamage)
	}
	if !almostEqual(revealed.Breakdown.AttackRevealPenalty, -0.20) {
		t.Errorf("AttackRevealPenalty = %f, want -0.20", revealed.Breakdown.AttackRevealPenalty)
	}
}

func TestCalculate_ComplexityGatedOnScore(t *testing.T) {
	t.Parallel()

	c := battle.New()
	// Below the gate, every complexity tier yields the same numbers.
	base := c.Calculate(45, types.AssessmentContext{
		Complexity:  1,
		ItemRarity:  types.RarityRegular,
		Interaction: types.InteractionAttack,
	})
	for cx := 2; cx <= 5; cx++ {
		got := c.Calculate(45, types.AssessmentContext{
			Complexity:  cx,
			ItemRarity:  types.RarityRegular,
			Interaction: types.InteractionAttack,
		})
		if !almostEqual(got.AttackDamage, base.AttackDamage) {
			t.Errorf("complexity %d below gate: AttackDamage = %f, want %f", cx, got.AttackDamage, base.AttackDamage)
		}
		if got.Breakdown.AttackComplexityBonus != 0 {
			t.Errorf("complexity %d below gate: bonus = %f, want 0", cx, got.Breakdown.AttackComplexityBonus)
		}
	}
}

func TestCalculate_ComplexityAppliesAtGate(t *testing.T) {
	t.Parallel()

	c := battle.New()
	got := c.Calculate(battle.GatingScore, types.AssessmentContext{
		Complexity:  5,
		ItemRarity:  types.RarityRegular,
		Interaction: types.InteractionAttack,
	})
	if !almostEqual(got.Breakdown.AttackComplexityBonus, 0.60) {
		t.Errorf("AttackComplexityBonus at gate = %f, want 0.60", got.Breakdown.AttackComplexityBonus)
	}
}

func TestCalculate_RatingBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  types.Rating
	}{
		{100, types.RatingExcellent},
		{90, types.RatingExcellent},
		{89.9, types.RatingGood},
		{75, types.RatingGood},
		{74.9, types.RatingOkay},
		{60, types.RatingOkay},
		{59.9, types.RatingNeedsImprovement},
		{0, types.RatingNeedsImprovement},
	}
	for _, tc := range cases {
		if got := battle.RatingFor(tc.score); got != tc.want {
			t.Errorf("RatingFor(%f) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestCalculate_DefenseMultiplierClamped(t *testing.T) {
	t.Parallel()

	c := battle.New()
	for score := 0.0; score <= 100; score += 5 {
		for cx := 0; cx <= 6; cx++ {
			for _, rarity := range []types.ItemRarity{types.RarityRegular, types.RaritySpecial} {
				for _, revealed := range []bool{false, true} {
					got := c.Calculate(score, types.AssessmentContext{
						Complexity:  cx,
						ItemRarity:  rarity,
						Interaction: types.InteractionDefense,
						WasRevealed: revealed,
					})
					if got.DefenseMultiplier < 0.10 || got.DefenseMultiplier > 1.00 {
						t.Fatalf("DefenseMultiplier = %f out of [0.10, 1.00] for score=%f cx=%d rarity=%s revealed=%v",
							got.DefenseMultiplier, score, cx, rarity, revealed)
					}
					if got.AttackDamage < 0 {
						t.Fatalf("AttackDamage = %f negative for score=%f cx=%d", got.AttackDamage, score, cx)
					}
				}
			}
		}
	}
}

func TestCalculate_ComplexityClampedToNearestTier(t *testing.T) {
	t.Parallel()

	c := battle.New()
	ctx := func(cx int) types.AssessmentContext {
		return types.AssessmentContext{
			Complexity:  cx,
			ItemRarity:  types.RarityRegular,
			Interaction: types.InteractionAttack,
		}
	}

	below := c.Calculate(80, ctx(0))
	tier1 := c.Calculate(80, ctx(1))
	if !almostEqual(below.AttackDamage, tier1.AttackDamage) {
		t.Errorf("complexity 0 damage = %f, want tier-1 value %f", below.AttackDamage, tier1.AttackDamage)
	}

	above := c.Calculate(80, ctx(9))
	tier5 := c.Calculate(80, ctx(5))
	if !almostEqual(above.AttackDamage, tier5.AttackDamage) {
		t.Errorf("complexity 9 damage = %f, want tier-5 value %f", above.AttackDamage, tier5.AttackDamage)
	}
}

func TestCalculate_CustomBaseDamage(t *testing.T) {
	t.Parallel()

	c := battle.New(battle.WithBaseDamage(100, 120))
	got := c.Calculate(95, types.AssessmentContext{
		Complexity:  3,
		ItemRarity:  types.RarityRegular,
		Interaction: types.InteractionAttack,
	})
	if !almostEqual(got.AttackDamage, 190.0) {
		t.Errorf("AttackDamage = %f, want 190.0 with base 100", got.AttackDamage)
	}
}

func TestCalculate_BreakdownIsComplete(t *testing.T) {
	t.Parallel()

	c := battle.New()
	got := c.Calculate(95, types.AssessmentContext{
		Complexity:  3,
		ItemRarity:  types.RaritySpecial,
		Interaction: types.InteractionAttack,
		WasRevealed: true,
	})

	b := got.Breakdown
	if b.Rating != types.RatingExcellent {
		t.Errorf("Breakdown.Rating = %q, want Excellent", b.Rating)
	}
	if !almostEqual(b.BaseDamage, 60) {
		t.Errorf("Breakdown.BaseDamage = %f, want 60", b.BaseDamage)
	}
	wantMult := 1.0 + 0.60 + 0.30 - 0.20
	if !almostEqual(b.AttackMultiplier, wantMult) {
		t.Errorf("Breakdown.AttackMultiplier = %f, want %f", b.AttackMultiplier, wantMult)
	}
	if !almostEqual(got.AttackDamage, b.BaseDamage*b.AttackMultiplier) {
		t.Error("AttackDamage must equal BaseDamage × AttackMultiplier")
	}
	if b.AttackFormula == "" || b.DefenseFormula == "" {
		t.Error("breakdown formulas must not be empty")
	}
	if !strings.Contains(b.AttackFormula, "60.0 base") {
		t.Errorf("AttackFormula = %q, want base damage rendered", b.AttackFormula)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	t.Parallel()

	c := battle.New()
	ctx := types.AssessmentContext{
		Complexity:  4,
		ItemRarity:  types.RaritySpecial,
		Interaction: types.InteractionDefense,
		WasRevealed: true,
	}
	first := c.Calculate(82.5, ctx)
	second := c.Calculate(82.5, ctx)
	if first != second {
		t.Error("Calculate is not deterministic for identical inputs")
	}
}
