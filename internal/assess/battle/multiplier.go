// Package battle converts an aggregate pronunciation score and game context
// into deterministic, bounded battle numbers.
//
// The [Calculator] applies a fixed sequence of tiers and penalties:
//
//  1. Rating tier — the aggregate score selects a rating (Excellent, Good,
//     Okay, NeedsImprovement) with an attack bonus and a rarity-dependent
//     defense bonus.
//  2. Complexity bonus — harder vocabulary items add bonuses, but only when
//     the score is at least [GatingScore]: complexity rewards competent
//     pronunciation, never compensates for a poor one.
//  3. Reveal penalty — seeing the answer before speaking costs a flat attack
//     penalty and cancels the accumulated defensive discount up to a cap.
//  4. Combine — attack damage is base damage times the summed multiplier;
//     the defense multiplier is clamped to [0.1, 1.0].
//
// Every intermediate value is recorded in a [types.CalculationBreakdown] so
// callers can render an audit trail without recomputing anything.
//
// The Calculator is pure and read-only after construction; it is safe for
// concurrent use.
package battle

import (
	"fmt"

	"github.com/lexiclash/lexiclash/pkg/types"
)

// GatingScore is the minimum aggregate pronunciation score required for
// complexity bonuses to apply.
const GatingScore = 60.0

const (
	defaultBaseDamageRegular   = 50.0
	defaultBaseDamageSpecial   = 60.0
	defaultAttackRevealPenalty = 0.20
	defaultDefenseRevealCap    = 0.20

	defenseMultiplierFloor = 0.10
	defenseMultiplierCeil  = 1.00
)

// ratingTier holds the per-rating bonuses. Tiers are evaluated top-down; the
// first tier whose minimum score is met wins.
type ratingTier struct {
	minScore       float64
	rating         types.Rating
	attackBonus    float64
	defenseRegular float64
	defenseSpecial float64
}

var ratingTiers = []ratingTier{
	{90, types.RatingExcellent, 0.60, -0.50, -0.70},
	{75, types.RatingGood, 0.30, -0.30, -0.50},
	{60, types.RatingOkay, 0.10, -0.10, -0.25},
	{0, types.RatingNeedsImprovement, 0, 0, 0},
}

// complexityBonuses maps complexity tiers 1–5 (index 0–4) to their attack and
// defense bonuses. Applied only when the score clears [GatingScore].
var complexityBonuses = [5]struct {
	attack  float64
	defense float64
}{
	{0, 0},
	{0.15, -0.05},
	{0.30, -0.10},
	{0.45, -0.15},
	{0.60, -0.20},
}

// Option is a functional option for configuring a [Calculator].
type Option func(*Calculator)

// WithBaseDamage overrides the base damage for regular and special items.
// Defaults: 50 regular, 60 special.
func WithBaseDamage(regular, special float64) Option {
	return func(c *Calculator) {
		c.baseDamageRegular = regular
		c.baseDamageSpecial = special
	}
}

// WithRevealPenalties overrides the flat attack reveal penalty and the cap on
// the defensive reveal penalty. Defaults: 0.20 for both.
func WithRevealPenalties(attack, defenseCap float64) Option {
	return func(c *Calculator) {
		c.attackRevealPenalty = attack
		c.defenseRevealCap = defenseCap
	}
}

// Calculator turns pronunciation scores into battle numbers. Construct with
// [New]; the zero value is not usable.
type Calculator struct {
	baseDamageRegular   float64
	baseDamageSpecial   float64
	attackRevealPenalty float64
	defenseRevealCap    float64
}

// New returns a [Calculator] with the supplied options applied over the
// defaults.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		baseDamageRegular:   defaultBaseDamageRegular,
		baseDamageSpecial:   defaultBaseDamageSpecial,
		attackRevealPenalty: defaultAttackRevealPenalty,
		defenseRevealCap:    defaultDefenseRevealCap,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RatingFor returns the rating tier for an aggregate pronunciation score.
func RatingFor(score float64) types.Rating {
	for _, tier := range ratingTiers {
		if score >= tier.minScore {
			return tier.rating
		}
	}
	return types.RatingNeedsImprovement
}

// Calculate computes the attack damage and defense multiplier for the given
// aggregate pronunciation score (0–100) and game context.
//
// Complexity values outside 1–5 are clamped to the nearest tier. The defense
// multiplier is always within [0.10, 1.00]; attack damage is never negative.
// Both numbers and every intermediate bonus are itemised in the returned
// breakdown.
func (c *Calculator) Calculate(score float64, ctx types.AssessmentContext) types.MultiplierResult {
	tier := tierFor(score)

	// Step 1 — rating bonuses. Rarity selects the defensive discount size.
	attackPron := tier.attackBonus
	defensePron := tier.defenseRegular
	if ctx.ItemRarity == types.RaritySpecial {
		defensePron = tier.defenseSpecial
	}

	// Step 2 — complexity bonuses, gated on a competent score.
	var attackComplexity, defenseComplexity float64
	if score >= GatingScore {
		cb := complexityBonuses[clampComplexity(ctx.Complexity)-1]
		attackComplexity = cb.attack
		defenseComplexity = cb.defense
	}

	// Step 3 — reveal penalties. The defensive penalty is positive: it
	// cancels the accumulated (negative) discount, capped at a fixed swing.
	var attackReveal, defenseReveal float64
	if ctx.WasRevealed {
		attackReveal = -c.attackRevealPenalty
		defenseReveal = -defensePron - defenseComplexity
		if defenseReveal > c.defenseRevealCap {
			defenseReveal = c.defenseRevealCap
		}
	}

	// Step 4 — combine.
	baseDamage := c.baseDamageRegular
	if ctx.ItemRarity == types.RaritySpecial {
		baseDamage = c.baseDamageSpecial
	}

	attackMultiplier := 1.0 + attackPron + attackComplexity + attackReveal
	attackDamage := baseDamage * attackMultiplier
	if attackDamage < 0 {
		attackDamage = 0
	}

	defenseRaw := 1.0 + defensePron + defenseComplexity + defenseReveal
	defenseMultiplier := clamp(defenseRaw, defenseMultiplierFloor, defenseMultiplierCeil)

	breakdown := types.CalculationBreakdown{
		Rating:                    tier.rating,
		AttackPronunciationBonus:  attackPron,
		AttackComplexityBonus:     attackComplexity,
		AttackRevealPenalty:       attackReveal,
		AttackMultiplier:          attackMultiplier,
		BaseDamage:                baseDamage,
		DefensePronunciationBonus: defensePron,
		DefenseComplexityBonus:    defenseComplexity,
		DefenseRevealPenalty:      defenseReveal,
		DefenseMultiplierRaw:      defenseRaw,
		AttackFormula: fmt.Sprintf(
			"%.1f base × (1.00 %+.2f pronunciation %+.2f complexity %+.2f reveal) = %.1f damage",
			baseDamage, attackPron, attackComplexity, attackReveal, attackDamage),
		DefenseFormula: fmt.Sprintf(
			"clamp(1.00 %+.2f pronunciation %+.2f complexity %+.2f reveal, %.2f, %.2f) = ×%.2f incoming damage",
			defensePron, defenseComplexity, defenseReveal,
			defenseMultiplierFloor, defenseMultiplierCeil, defenseMultiplier),
	}

	return types.MultiplierResult{
		Rating:            tier.rating,
		AttackDamage:      attackDamage,
		DefenseMultiplier: defenseMultiplier,
		Breakdown:         breakdown,
	}
}

func tierFor(score float64) ratingTier {
	for _, tier := range ratingTiers {
		if score >= tier.minScore {
			return tier
		}
	}
	return ratingTiers[len(ratingTiers)-1]
}

// clampComplexity forces a complexity value into the valid 1–5 range.
// Upstream callers validate their inputs; clamping keeps the formula total
// for values that slip through anyway.
func clampComplexity(complexity int) int {
	if complexity < 1 {
		return 1
	}
	if complexity > 5 {
		return 5
	}
	return complexity
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
