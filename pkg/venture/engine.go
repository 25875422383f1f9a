package venture

import (
	"fmt"

	"dealforge/pkg/bench"
)

// RunStartupValuation runs all applicable valuation methods, blends them
// into a single indicated pre-money valuation, applies the AI-native
// modifier, and projects dilution, scorecard flags, and round timing.
// It never mutates the input and never touches the network or disk;
// benchmarks must be loaded and passed in by the caller.
func RunStartupValuation(raw StartupInput, benchmarks *bench.Table) (*StartupValuationOutput, error) {
	s, err := NewStartupInput(raw)
	if err != nil {
		return nil, err
	}
	if benchmarks == nil {
		return nil, fmt.Errorf("venture: benchmarks table is required")
	}

	venBench, ok := benchmarks.Venture(string(s.Fundraise.Vertical))
	verticalFound := ok
	if !ok {
		venBench, _ = benchmarks.Venture("default")
	}
	stageBench, ok := venBench.Stage(string(s.Fundraise.Stage))
	if !ok {
		stageBench = VentureStageBenchmark{}
	}

	var warnings []string
	if !verticalFound || stageBench.ValuationP50 == 0 {
		warnings = append(warnings, fmt.Sprintf(
			"No benchmark data for vertical %q at stage %q — falling back to the default vertical's comps.",
			s.Fundraise.Vertical, s.Fundraise.Stage,
		))
	}

	berkus := runBerkus(*s, stageBench, benchmarks)
	scorecard := runScorecard(*s, stageBench, benchmarks)
	rfs := runRFS(*s, stageBench, benchmarks)
	arr := runARRMultiple(*s, stageBench)
	methodResults := []ValuationMethodResult{berkus, scorecard, rfs, arr}

	blended, notes := blendMethods(*s, methodResults, stageBench, benchmarks)

	aiResult := applyAIModifier(s.Fundraise.IsAINative, s.Fundraise.AINativeScore, s.Fundraise.Vertical, blended)
	finalBlended := aiResult.blendedAfterAI

	rangeLow := finalBlended * 0.80
	rangeHigh := finalBlended * 1.20
	if stageBench.ValuationP25 > 0 && stageBench.ValuationP75 > 0 {
		rangeLow = minf(rangeLow, stageBench.ValuationP25)
		rangeHigh = maxf(rangeHigh, stageBench.ValuationP75)
	}

	dilutionScenarios := buildDilutionScenarios(*s, finalBlended, benchmarks)
	safeConversion := buildSAFEConversion(*s, finalBlended)
	investorScorecard := buildInvestorScorecard(*s, finalBlended, stageBench)
	roundTiming := computeRoundTiming(*s)

	verdict, headline, subtext := assignVerdict(finalBlended, stageBench)
	percentile := percentileLabel(finalBlended, stageBench)

	var impliedDilution float64
	if len(dilutionScenarios) > 0 {
		impliedDilution = dilutionScenarios[0].DilutionThisRound
	}
	var recommendedSAFECap *float64
	if safeConversion != nil {
		recommendedSAFECap = ptr(safeConversion.ValuationCap)
	}

	out := &StartupValuationOutput{
		CompanyName:        s.CompanyName,
		Stage:              s.Fundraise.Stage,
		Vertical:           s.Fundraise.Vertical,
		BlendedValuation:   finalBlended,
		ValuationRangeLow:  rangeLow,
		ValuationRangeHigh: rangeHigh,
		RecommendedSAFECap: recommendedSAFECap,
		ImpliedDilution:    impliedDilution,
		MethodResults:      methodResults,
		BenchmarkP25:       stageBench.ValuationP25,
		BenchmarkP50:       stageBench.ValuationP50,
		BenchmarkP75:       stageBench.ValuationP75,
		BenchmarkP95:       stageBench.ValuationP95,
		PercentileInMarket: percentile,
		DilutionScenarios:  dilutionScenarios,
		SAFEConversion:     safeConversion,
		InvestorScorecard:  investorScorecard,
		TractionBar:        stageBench.TractionBar,
		Verdict:            verdict,
		VerdictHeadline:    headline,
		VerdictSubtext:     subtext,
		Warnings:           warnings,
		ComputationNotes:   notes,
		RoundTiming:        roundTiming,
	}

	if aiResult.applied {
		out.AIModifierApplied = true
		out.AIPremiumMultiplier = aiResult.premiumMultiplier
		out.BlendedBeforeAI = ptr(blended)
		out.AINativeScore = ptr(s.Fundraise.AINativeScore)
	}
	out.AIPremiumContext = aiResult.context

	return out, nil
}

// blendMethods combines the applicable method results into a single
// pre-money figure. Once revenue exists, the ARR multiple method
// dominates (65%) with the remaining pre-revenue methods averaged for
// the other 35%; before revenue, the applicable pre-revenue methods are
// averaged with equal weight. When nothing is applicable, the stage benchmark
// median is used as a last resort.
func blendMethods(s StartupInput, results []ValuationMethodResult, stage VentureStageBenchmark, benchmarks *bench.Table) (float64, []string) {
	var notes []string

	var preRevenue []float64
	var arrValue *float64
	for _, r := range results {
		if !r.Applicable || r.IndicatedValue == nil {
			continue
		}
		if r.MethodName == "arr_multiple" {
			arrValue = r.IndicatedValue
			continue
		}
		preRevenue = append(preRevenue, *r.IndicatedValue)
	}

	preRevenueAvg := 0.0
	if len(preRevenue) > 0 {
		sum := 0.0
		for _, v := range preRevenue {
			sum += v
		}
		preRevenueAvg = sum / float64(len(preRevenue))
	}

	switch {
	case arrValue != nil && len(preRevenue) > 0:
		notes = append(notes, "Revenue exists: blended 65% ARR multiple, 35% average of applicable pre-revenue methods.")
		return 0.65*(*arrValue) + 0.35*preRevenueAvg, notes
	case arrValue != nil:
		notes = append(notes, "Revenue exists but no pre-revenue method was applicable: used ARR multiple alone.")
		return *arrValue, notes
	case len(preRevenue) > 0:
		notes = append(notes, fmt.Sprintf("Pre-revenue: averaged %d applicable method(s).", len(preRevenue)))
		return preRevenueAvg, notes
	default:
		median, _ := regionalMedian(s, stage, benchmarks)
		notes = append(notes, "No method was applicable for the given inputs: fell back to the vertical/stage benchmark median.")
		return median, notes
	}
}
