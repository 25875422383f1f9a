package vcfund

import "fmt"

// BridgeRoundInput is the terms of a bridge note layered in ahead of a
// priced round. BridgeAmount, PreBridgeValuation, and
// ExpectedNextRoundValuation are all USD millions.
type BridgeRoundInput struct {
	BridgeAmount              float64 `json:"bridge_amount"`
	PreBridgeValuation        float64 `json:"pre_bridge_valuation"`
	CurrentOwnershipPct       float64 `json:"current_ownership_pct"`
	ExpectedNextRoundValuation float64 `json:"expected_next_round_valuation"`
	DiscountRate              float64 `json:"discount_rate"`
	InterestRate              float64 `json:"interest_rate"`
	MaturityMonths            float64 `json:"maturity_months"`
	WillParticipate           bool    `json:"will_participate"`
}

// BridgeRoundOutput is the dilutive impact of a bridge note and a call on
// whether to participate.
type BridgeRoundOutput struct {
	DilutionFromBridge       float64 `json:"dilution_from_bridge"`
	PostBridgeOwnershipPct   float64 `json:"post_bridge_ownership_pct"`
	EffectiveConversionPrice float64 `json:"effective_conversion_price"`
	ImpliedDiscount          float64 `json:"implied_discount"`
	AccruedInterest          float64 `json:"accrued_interest"`
	Recommendation           Recommendation `json:"recommendation"`
	RecommendationRationale  string         `json:"recommendation_rationale"`
}

// runBridgeAnalysis models the dilution a bridge note imposes on existing
// holders and the discount it converts at in the next priced round.
func runBridgeAnalysis(in BridgeRoundInput) BridgeRoundOutput {
	dilution := 0.0
	if in.PreBridgeValuation+in.BridgeAmount > 0 {
		dilution = in.BridgeAmount / (in.PreBridgeValuation + in.BridgeAmount)
	}
	postBridgeOwnership := in.CurrentOwnershipPct * (1 - dilution)

	effectiveConversionPrice := in.ExpectedNextRoundValuation * (1 - in.DiscountRate)
	impliedDiscount := 0.0
	if in.ExpectedNextRoundValuation > 0 {
		impliedDiscount = 1 - effectiveConversionPrice/in.ExpectedNextRoundValuation
	}

	var accrued float64
	if in.InterestRate > 0 {
		accrued = in.BridgeAmount * in.InterestRate * (in.MaturityMonths / 12)
	}

	var rec Recommendation
	var rationale string
	switch {
	case in.WillParticipate && dilution < 0.15:
		rec = RecExercise
		rationale = "Participating keeps dilution modest and locks in the next-round discount."
	case in.WillParticipate:
		rec = RecPartial
		rationale = fmt.Sprintf("Dilution from this bridge is material (%.0f%%) — consider a partial allocation.", dilution*100)
	default:
		rec = RecPass
		rationale = "Not participating — dilution will be absorbed without offsetting discount exposure."
	}

	return BridgeRoundOutput{
		DilutionFromBridge:       dilution,
		PostBridgeOwnershipPct:   postBridgeOwnership,
		EffectiveConversionPrice: effectiveConversionPrice,
		ImpliedDiscount:          impliedDiscount,
		AccruedInterest:          accrued,
		Recommendation:           rec,
		RecommendationRationale:  rationale,
	}
}
