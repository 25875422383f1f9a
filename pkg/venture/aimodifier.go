package venture

import "log"

// aiModifierConfig is the graduated AI-native premium table: verticals
// already AI-native by definition (premium baked into their benchmark
// comps) carry no additional multiplier, while the rest get a per-vertical
// base premium scaled by the founder's self-assessed AI-native score.
type aiModifierConfig struct {
	frozenOn         map[Vertical]bool
	verticalPremiums map[Vertical]float64
}

var defaultAIModifierConfig = aiModifierConfig{
	frozenOn: map[Vertical]bool{
		VerticalAIInfra: true,
		VerticalAISaaS:  true,
	},
	verticalPremiums: map[Vertical]float64{
		VerticalB2BSaaS:     0.15,
		VerticalFintech:     0.10,
		VerticalHealthtech:  0.10,
		VerticalMarketplace: 0.10,
		VerticalDevTools:    0.15,
		VerticalVerticalSaaS: 0.12,
		VerticalConsumer:    0.08,
	},
}

type aiModifierResult struct {
	blendedAfterAI      float64
	premiumMultiplier   *float64
	applied             bool
	context             *string
}

// applyAIModifier applies the graduated AI-native premium to a blended
// valuation. Decision order: non-positive blended valuation, toggle off,
// zero score, frozen-on vertical
// (premium already in benchmark), unknown vertical, then the normal case.
// Never panics; any out-of-range score is clamped rather than rejected.
func applyAIModifier(isAINative bool, score float64, vertical Vertical, blended float64) aiModifierResult {
	score = clamp01(score)

	if blended <= 0 {
		log.Printf("venture: ai modifier skipped, blended valuation %.2f is not positive", blended)
		ctx := "blended_valuation must be positive"
		return aiModifierResult{blendedAfterAI: blended, context: &ctx}
	}
	if !isAINative {
		return aiModifierResult{blendedAfterAI: blended}
	}
	if score == 0 {
		return aiModifierResult{blendedAfterAI: blended}
	}
	if defaultAIModifierConfig.frozenOn[vertical] {
		ctx := "Vertical is AI-native by definition — premium already reflected in benchmarks"
		return aiModifierResult{blendedAfterAI: blended, context: &ctx}
	}
	basePremium, ok := defaultAIModifierConfig.verticalPremiums[vertical]
	if !ok {
		log.Printf("venture: vertical %q not found in AI modifier premium table", vertical)
		ctx := "vertical not found in AI modifier config — no premium applied"
		return aiModifierResult{blendedAfterAI: blended, context: &ctx}
	}

	premium := basePremium * score
	after := blended * (1 + premium)
	ctx := "AI-native premium applied"
	return aiModifierResult{blendedAfterAI: after, premiumMultiplier: &premium, applied: true, context: &ctx}
}
