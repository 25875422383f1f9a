package vcfund

import (
	"fmt"

	"dealforge/pkg/bench"
)

func valuationVsBenchmarkLabel(ratio float64, haveData bool) string {
	if !haveData {
		return "insufficient data"
	}
	switch {
	case ratio > 1.3:
		return "above market"
	case ratio < 0.8:
		return "below market"
	default:
		return "at market"
	}
}

func instrumentSummary(d DealInput) string {
	if d.BoardSeat {
		return "priced round with a board seat"
	}
	return "priced round with information rights"
}

// buildICMemo assembles the auto-generated financial section of an
// investment committee memo: entry terms, runway, the three scenarios, the
// fund-returner bar, and a fill-in-the-blank investment thesis template.
func buildICMemo(d DealInput, fund FundProfile, om OwnershipMath, bear, base, bull Scenario, benchmarks *bench.Table) ICMemoFinancials {
	entryPct := om.EntryOwnershipPct
	expectedValue, _, _ := expectedValueAndReturns(bear, base, bull, d.CheckSize, float64(d.ExpectedExitYears))

	var arrMultiple, stageMedian *float64
	valuationLabel := "insufficient data"
	if d.ARR > 0 {
		m := d.PostMoneyValuation / d.ARR
		arrMultiple = &m
		if vcBench, ok := benchmarks.VCStage(string(d.Vertical), string(d.Stage)); ok && vcBench.MedianARRMultiple > 0 {
			sm := vcBench.MedianARRMultiple
			stageMedian = &sm
			valuationLabel = valuationVsBenchmarkLabel(m/sm, true)
		}
	}

	runway := runwayMonths(d.CashOnHand, d.BurnRateMonthly)

	summary := fmt.Sprintf(
		"%s is raising a %s round at $%.1fM post-money ($%.1fM pre-money). A $%.1fM check buys %.1f%% ownership (%.1f%% at exit after projected dilution). ARR is $%.1fM growing at %.0f%% annually with %.0f%% gross margin.",
		d.CompanyName, d.Stage, d.PostMoneyValuation, d.PostMoneyValuation-d.CheckSize,
		d.CheckSize, entryPct*100, om.ExitOwnershipPct*100,
		d.ARR, d.RevenueGrowthRate*100, d.GrossMargin*100,
	)
	if runway != nil {
		summary += fmt.Sprintf(" Runway is %.0f months at the current burn rate.", *runway)
	}

	thesis := fmt.Sprintf(`INVESTMENT THESIS — %s

MARKET THESIS
[Why does this market matter now? What is the wedge?]

COMPANY DIFFERENTIATION
[What makes %s defensible against incumbents and fast-followers?]

TEAM
[Why is this team the right one to win this market?]

RISK FACTORS
[Technical, market, and execution risks. What would make this fail?]

EXIT PATH
[Who acquires this company, or what does an IPO path look like, in %d years?]`,
		d.CompanyName, d.CompanyName, d.ExpectedExitYears)

	return ICMemoFinancials{
		CompanyName:            d.CompanyName,
		Stage:                  d.Stage,
		Vertical:               d.Vertical,
		CheckSize:              d.CheckSize,
		PostMoney:              d.PostMoneyValuation,
		EntryOwnershipPct:      entryPct,
		Instrument:             instrumentSummary(d),
		BoardSeat:              d.BoardSeat,
		ProRataRights:          d.ProRataRights,
		ARR:                    d.ARR,
		RevenueGrowthRate:      d.RevenueGrowthRate,
		GrossMargin:            d.GrossMargin,
		BurnRateMonthly:        d.BurnRateMonthly,
		RunwayMonths:           runway,
		OwnershipAtExit:        om.ExitOwnershipPct,
		TotalDilutionPct:       om.TotalDilutionPct,
		Scenarios:              []Scenario{bear, base, bull},
		ExpectedValue:          expectedValue,
		FundReturnerThreshold:  om.FundReturner1xExit,
		FundContributionBase:   base.FundContributionX,
		ARRMultipleAtEntry:     arrMultiple,
		StageMedianARRMultiple: stageMedian,
		ValuationVsBenchmark:   valuationLabel,
		InvestmentThesisPrompt: thesis,
		FinancialSummaryText:   summary,
	}
}
