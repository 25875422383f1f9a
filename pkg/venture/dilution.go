package venture

import (
	"fmt"
	"strings"

	"dealforge/pkg/bench"
)

// buildDilutionScenarios projects ownership through the current round and
// the typical rounds after it up to Series A: seed and Series A from
// pre-seed, Series A from seed, and none from Series A. A step-up floor on
// each projected round keeps later pre-money values from implying a down
// round relative to the prior round's post-money.
func buildDilutionScenarios(s StartupInput, blendedPreMoney float64, benchmarks *bench.Table) []DilutionScenario {
	raiseAmount := s.Fundraise.RaiseAmount
	stage := s.Fundraise.Stage
	var scenarios []DilutionScenario

	existingSAFEPct := 0.0
	if s.Fundraise.ExistingSAFEStack > 0 && blendedPreMoney > 0 {
		existingSAFEPct = minf(0.30, s.Fundraise.ExistingSAFEStack/blendedPreMoney)
	}
	founderPct := 1.0 - existingSAFEPct

	postMoney := blendedPreMoney + raiseAmount
	invPct := 0.0
	if postMoney > 0 {
		invPct = raiseAmount / postMoney
	}
	newFounderPct := founderPct * (1 - invPct)

	scenarios = append(scenarios, DilutionScenario{
		RoundLabel:                fmt.Sprintf("Current (%s)", titleCase(string(stage))),
		PreMoney:                  blendedPreMoney,
		RaiseAmount:               raiseAmount,
		PostMoney:                 postMoney,
		InvestorOwnershipPct:      invPct,
		FounderOwnershipPctBefore: founderPct,
		FounderOwnershipPctAfter:  newFounderPct,
		DilutionThisRound:         invPct,
	})
	founderPct = newFounderPct

	seriesAMedian := benchmarks.MarketMedian(string(StageSeriesA))
	type nextRound struct {
		label      string
		preMoney   float64
		raise      float64
		optionPool float64
	}
	var nextRounds []nextRound

	switch stage {
	case StagePreSeed:
		seedMedian := benchmarks.MarketMedian(string(StageSeed))
		seedPre := maxf(seedMedian, postMoney*1.5)
		seedPost := seedPre + 3.0
		seriesAPre := maxf(seriesAMedian, seedPost*2.0)
		nextRounds = []nextRound{
			{"Seed (projected)", seedPre, 3.0, 0.10},
			{"Series A (projected)", seriesAPre, 10.0, 0.10},
		}
	case StageSeed:
		seriesAPre := maxf(seriesAMedian, postMoney*2.0)
		nextRounds = []nextRound{
			{"Series A (projected)", seriesAPre, 10.0, 0.10},
		}
	}

	for _, r := range nextRounds {
		post := r.preMoney + r.raise
		invPct := r.raise / post
		founderAfterPool := founderPct * (1 - r.optionPool)
		founderAfterInv := founderAfterPool * (1 - invPct)

		scenarios = append(scenarios, DilutionScenario{
			RoundLabel:                r.label,
			PreMoney:                  r.preMoney,
			RaiseAmount:               r.raise,
			PostMoney:                 post,
			InvestorOwnershipPct:      invPct,
			FounderOwnershipPctBefore: founderPct,
			FounderOwnershipPctAfter:  founderAfterInv,
			DilutionThisRound:         founderPct - founderAfterInv,
		})
		founderPct = founderAfterInv
	}

	return scenarios
}

// buildSAFEConversion models how the current SAFE converts at the next
// priced round. Returns nil when the round isn't raised on a SAFE.
func buildSAFEConversion(s StartupInput, blendedPreMoney float64) *SAFEConversionSummary {
	if s.Fundraise.Instrument != InstrumentSAFE {
		return nil
	}

	cap := blendedPreMoney
	if s.Fundraise.PreMoneyValuationAsk != nil {
		cap = *s.Fundraise.PreMoneyValuationAsk
	}
	raiseAmount := s.Fundraise.RaiseAmount
	discount := s.Fundraise.SAFEDiscount

	impliedOwnership := 0.0
	if cap+raiseAmount > 0 {
		impliedOwnership = raiseAmount / (cap + raiseAmount)
	}

	var notes []string
	notes = append(notes, fmt.Sprintf("SAFE of $%.2fM with a $%.1fM valuation cap.", raiseAmount, cap))
	if discount > 0 {
		notes = append(notes, fmt.Sprintf("Includes %.0f%% discount on conversion price.", discount*100))
	}
	if s.Fundraise.HasMFNClause {
		notes = append(notes, "MFN clause present — monitor any subsequent SAFE issuances.")
	}
	if s.Fundraise.ExistingSAFEStack > 0 {
		notes = append(notes, fmt.Sprintf(
			"$%.1fM in existing SAFEs not yet converted — cumulative dilution at next priced round will be higher than this single instrument.",
			s.Fundraise.ExistingSAFEStack,
		))
	}

	return &SAFEConversionSummary{
		SAFEAmount:           raiseAmount,
		ValuationCap:         cap,
		DiscountRate:         discount,
		ConversionPriceAtCap: cap / 10.0, // illustrative 10M assumed shares outstanding; a real calc needs the next round's actual share count
		ImpliedOwnershipPct:  impliedOwnership,
		Note:                 strings.Join(notes, " "),
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func titleCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
