package vcfund

import (
	"fmt"

	"dealforge/pkg/bench"
)

// RunDealEvaluation runs the complete fund-seat analysis for a single
// prospective check: ownership math, the bear/base/bull scenario model,
// the quick screen, an optional liquidation waterfall, and IC memo
// materials.
func RunDealEvaluation(raw DealInput, fundRaw FundProfile, benchmarks *bench.Table) (*DealOutput, error) {
	d, err := NewDealInput(raw)
	if err != nil {
		return nil, err
	}
	fund, err := NewFundProfile(fundRaw)
	if err != nil {
		return nil, err
	}
	if benchmarks == nil {
		return nil, fmt.Errorf("vcfund: benchmarks table is required")
	}

	om := computeOwnershipMath(*d, *fund)
	bear, base, bull := computeScenarios(*d, *fund, om.ExitOwnershipPct, benchmarks)

	expectedValue, expectedMOIC, expectedIRR := expectedValueAndReturns(bear, base, bull, d.CheckSize, float64(d.ExpectedExitYears))

	quickScreen := computeQuickScreen(*d, *fund, om, bear, base, bull, benchmarks)

	var waterfall *WaterfallDistribution
	if len(d.LiquidationStack) > 0 {
		waterfall = computeWaterfall(*d, base.ExitEnterpriseValue)
	}

	memo := buildICMemo(*d, *fund, om, bear, base, bull, benchmarks)

	adequacy := ownershipAdequacy(om.EntryOwnershipPct, fund.TargetOwnershipPct)

	powerLawNote := "Base case does not clear any multiple of the fund — this check alone cannot return the fund."
	if base.FundContributionX > 0 {
		fundReturnersNeeded := 3.0 / base.FundContributionX
		powerLawNote = fmt.Sprintf(
			"At the base case's %.2fx fund-contribution multiple, the fund would need roughly %.1f similarly-sized base-case outcomes across the portfolio to return 3x gross.",
			base.FundContributionX, fundReturnersNeeded,
		)
	}

	var warnings []string
	if d.CheckSize < fund.TargetInitialCheckSize()*0.5 {
		warnings = append(warnings, fmt.Sprintf(
			"Check size $%.1fM is less than half the fund's target initial check ($%.1fM)",
			d.CheckSize, fund.TargetInitialCheckSize(),
		))
	}
	if _, usedPlaceholder := currentARR(*d); usedPlaceholder {
		warnings = append(warnings, "No ARR or trailing revenue supplied — scenarios were projected off a $10M placeholder ARR.")
	}

	vcBench, vcBenchFound := benchmarks.VCStage(string(d.Vertical), string(d.Stage))
	benchUsed := VCBenchmarkUsage{
		Vertical:  d.Vertical,
		Stage:     d.Stage,
		Found:     vcBenchFound,
		Benchmark: vcBench,
	}

	out := &DealOutput{
		CompanyName:            d.CompanyName,
		Stage:                  d.Stage,
		Vertical:               d.Vertical,
		FundSize:               fund.FundSize,
		CheckSize:              d.CheckSize,
		PostMoney:              d.PostMoneyValuation,
		Ownership:              om,
		BearScenario:           bear,
		BaseScenario:           base,
		BullScenario:           bull,
		ExpectedValue:          expectedValue,
		ExpectedMOIC:           expectedMOIC,
		ExpectedIRR:            expectedIRR,
		QuickScreen:            quickScreen,
		Waterfall:              waterfall,
		ICMemo:                 memo,
		PowerLawNote:           powerLawNote,
		OwnershipAdequacy:      adequacy,
		VerticalBenchmarksUsed: benchUsed,
		Flags:                  quickScreen.Flags,
		Warnings:               warnings,
	}
	return out, nil
}
