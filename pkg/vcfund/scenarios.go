package vcfund

import (
	"fmt"
	"math"

	"dealforge/pkg/bench"
)

const placeholderARR = 10.0

type scenarioSpec struct {
	label       string
	probability float64
	growthMod   float64
}

var scenarioSpecs = []scenarioSpec{
	{label: "Bear", probability: 0.40, growthMod: 0.5},
	{label: "Base", probability: 0.40, growthMod: 1.0},
	{label: "Bull", probability: 0.20, growthMod: 1.3},
}

// currentARR picks the revenue base scenarios project forward: ARR, then
// trailing-twelve-month revenue, then a placeholder when the deal carries
// no revenue data at all. usedPlaceholder reports whether the fallback fired.
func currentARR(d DealInput) (value float64, usedPlaceholder bool) {
	if d.ARR > 0 {
		return d.ARR, false
	}
	if d.RevenueTTM > 0 {
		return d.RevenueTTM, false
	}
	return placeholderARR, true
}

func exitMultipleFor(spec scenarioSpec, d DealInput, vcBench bench.VCStageBenchmark) float64 {
	switch spec.label {
	case "Bear":
		if d.BearExitMultipleARR != nil {
			return *d.BearExitMultipleARR
		}
		return vcBench.ExitMultipleBear
	case "Bull":
		if d.BullExitMultipleARR != nil {
			return *d.BullExitMultipleARR
		}
		return vcBench.ExitMultipleBull
	default:
		if d.BaseExitMultipleARR != nil {
			return *d.BaseExitMultipleARR
		}
		return vcBench.ExitMultipleBase
	}
}

func buildScenario(spec scenarioSpec, d DealInput, fund FundProfile, exitOwnershipPct float64, vcBench bench.VCStageBenchmark) Scenario {
	revenue, _ := currentARR(d)
	effectiveGrowth := d.RevenueGrowthRate * spec.growthMod
	years := float64(d.ExpectedExitYears)

	projectedARR := revenue * math.Pow(1+effectiveGrowth, years)
	cap := revenue * 100
	if projectedARR > cap {
		projectedARR = cap
	}

	exitMultiple := exitMultipleFor(spec, d, vcBench)
	exitEV := exitMultiple * projectedARR
	gross := exitEV * exitOwnershipPct
	net := carryAdjProceeds(gross, d.CheckSize, fund.CarryPct, fund.HurdleRate, years)

	grossMOIC := 0.0
	netMOIC := 0.0
	if d.CheckSize > 0 {
		grossMOIC = gross / d.CheckSize
		netMOIC = net / d.CheckSize
	}

	return Scenario{
		Label:               spec.label,
		Probability:         spec.probability,
		ExitYear:            d.ExpectedExitYears,
		ExitMultipleARR:      exitMultiple,
		ExitEnterpriseValue: exitEV,
		GrossProceedsToFund: gross,
		NetProceedsToFund:   net,
		GrossMOIC:           grossMOIC,
		NetMOIC:             netMOIC,
		GrossIRR:            irr(d.CheckSize, gross, years),
		NetIRR:              irr(d.CheckSize, net, years),
		FundContributionX:   grossMOIC,
		OutcomeDescription: fmt.Sprintf(
			"%s case: %.1fx ARR at exit ($%.0fM ARR -> $%.0fM EV), %.1fx gross MOIC",
			spec.label, exitMultiple, projectedARR, exitEV, grossMOIC,
		),
	}
}

// computeScenarios builds the bear/base/bull outcome set for a deal given
// its projected exit ownership percentage.
func computeScenarios(d DealInput, fund FundProfile, exitOwnershipPct float64, benchmarks *bench.Table) (bear, base, bull Scenario) {
	vcBench, _ := benchmarks.VCStage(string(d.Vertical), string(d.Stage))
	scenarios := make(map[string]Scenario, 3)
	for _, spec := range scenarioSpecs {
		scenarios[spec.label] = buildScenario(spec, d, fund, exitOwnershipPct, vcBench)
	}
	return scenarios["Bear"], scenarios["Base"], scenarios["Bull"]
}

// expectedValueAndReturns probability-weights the three scenarios into a
// single expected gross proceeds, MOIC and IRR figure.
func expectedValueAndReturns(bear, base, bull Scenario, checkSize float64, years float64) (expectedValue, expectedMOIC, expectedIRR float64) {
	expectedValue = bear.Probability*bear.GrossProceedsToFund +
		base.Probability*base.GrossProceedsToFund +
		bull.Probability*bull.GrossProceedsToFund
	if checkSize > 0 {
		expectedMOIC = expectedValue / checkSize
	}
	expectedIRR = irr(checkSize, expectedValue, years)
	return
}
