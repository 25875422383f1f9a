package vcfund

// AntiDilutionInput is the down-round terms an existing share class's
// anti-dilution protection is evaluated against.
type AntiDilutionInput struct {
	Type                AntiDilutionType `json:"type"`
	OriginalPrice       float64          `json:"original_price"`
	InvestorShares      float64          `json:"investor_shares"`
	OriginalTotalShares float64          `json:"original_total_shares"`
	DownRoundPrice      float64          `json:"down_round_price"`
	NewSharesIssued     float64          `json:"new_shares_issued"`
}

// AntiDilutionOutput is the adjusted conversion price and its dilutive
// effect on the rest of the cap table.
type AntiDilutionOutput struct {
	AdjustedPrice        float64 `json:"adjusted_price"`
	AdditionalShares      float64 `json:"additional_shares"`
	ValueTransferred      float64 `json:"value_transferred"`
	EffectiveOwnershipPct float64 `json:"effective_ownership_pct"`
}

// runAntiDilution applies a share class's anti-dilution protection to a
// down round: full ratchet resets the conversion price to the new round's
// price outright, broad-based weighted average applies the standard
// NCP = OCP*(A+B)/(A+C) formula, and none leaves the class unadjusted.
func runAntiDilution(in AntiDilutionInput) AntiDilutionOutput {
	if in.Type == AntiDilutionNone || in.OriginalPrice <= 0 || in.DownRoundPrice <= 0 {
		return AntiDilutionOutput{
			AdjustedPrice:         in.OriginalPrice,
			EffectiveOwnershipPct: ownershipPctOf(in.InvestorShares, in.OriginalTotalShares),
		}
	}

	var adjustedPrice float64
	switch in.Type {
	case AntiDilutionFullRatchet:
		adjustedPrice = in.DownRoundPrice
	case AntiDilutionBroadBasedWA:
		a := in.OriginalTotalShares
		b := (in.NewSharesIssued * in.DownRoundPrice) / in.OriginalPrice
		c := in.NewSharesIssued
		adjustedPrice = in.OriginalPrice * (a + b) / (a + c)
	default:
		adjustedPrice = in.OriginalPrice
	}

	additionalShares := 0.0
	if adjustedPrice > 0 {
		additionalShares = (in.InvestorShares*in.OriginalPrice)/adjustedPrice - in.InvestorShares
	}
	valueTransferred := additionalShares * in.DownRoundPrice

	newTotal := in.OriginalTotalShares + in.NewSharesIssued + additionalShares
	effectiveOwnership := ownershipPctOf(in.InvestorShares+additionalShares, newTotal)

	return AntiDilutionOutput{
		AdjustedPrice:         adjustedPrice,
		AdditionalShares:      additionalShares,
		ValueTransferred:      valueTransferred,
		EffectiveOwnershipPct: effectiveOwnership,
	}
}

func ownershipPctOf(shares, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return shares / total
}
