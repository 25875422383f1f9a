package venture

import (
	"testing"

	"dealforge/pkg/bench"
)

func b2bSaasStage(t *testing.T, stage string) VentureStageBenchmark {
	t.Helper()
	vb, ok := bench.Default().Venture("b2b_saas")
	if !ok {
		t.Fatalf("expected b2b_saas vertical")
	}
	s, ok := vb.Stage(stage)
	if !ok {
		t.Fatalf("expected %s stage", stage)
	}
	return s
}

func TestRunBerkus_OnlyApplicableAtPreSeed(t *testing.T) {
	s := baseStartupInput()
	s.Fundraise.Stage = StageSeed
	r := runBerkus(s, b2bSaasStage(t, "seed"), bench.Default())
	if r.Applicable {
		t.Errorf("expected Berkus to be inapplicable outside pre-seed")
	}
	if r.IndicatedValue == nil {
		t.Errorf("expected Berkus to still compute an indicated value for reference")
	}
}

func TestRunBerkus_StrongerTeamRaisesIndicatedValue(t *testing.T) {
	weak := baseStartupInput()
	weak.Team = TeamProfile{FounderCount: 1}

	strong := baseStartupInput()
	strong.Team = TeamProfile{FounderCount: 2, PriorExits: 1, DomainExperts: true, RepeatFounder: true, Tier1Background: true, NotableAdvisors: true}

	stage := b2bSaasStage(t, "pre_seed")
	rWeak := runBerkus(weak, stage, bench.Default())
	rStrong := runBerkus(strong, stage, bench.Default())

	if *rStrong.IndicatedValue <= *rWeak.IndicatedValue {
		t.Errorf("expected a stronger team to raise the indicated value: weak=%v strong=%v", *rWeak.IndicatedValue, *rStrong.IndicatedValue)
	}
}

func TestRunScorecard_ApplicableAtPreSeedAndSeedOnly(t *testing.T) {
	s := baseStartupInput()
	s.Fundraise.Stage = StageSeriesA
	r := runScorecard(s, b2bSaasStage(t, "series_a"), bench.Default())
	if r.Applicable {
		t.Errorf("expected Scorecard to be inapplicable at series A")
	}
}

func TestRunScorecard_ManualScoresOverrideAutoScoring(t *testing.T) {
	s := baseStartupInput()
	s.ScorecardScores = map[string]float64{
		"management_team":             1.5,
		"market_size":                 1.5,
		"product_technology":          1.5,
		"competitive_environment":     1.5,
		"marketing_sales_channels":    1.5,
		"additional_financing_needed": 1.5,
		"other_factors":               1.5,
	}
	stage := b2bSaasStage(t, "pre_seed")
	r := runScorecard(s, stage, bench.Default())

	regionalMed, _ := regionalMedian(s, stage, bench.Default())
	want := 1.5 * regionalMed
	if diff := *r.IndicatedValue - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("expected manual scores of 1.5x across the board to produce 1.5x regional median, got %v want %v", *r.IndicatedValue, want)
	}
}

func TestRunRFS_ApplicableAtPreSeedAndSeedOnly(t *testing.T) {
	s := baseStartupInput()
	s.Fundraise.Stage = StageSeriesA
	r := runRFS(s, b2bSaasStage(t, "series_a"), bench.Default())
	if r.Applicable {
		t.Errorf("expected RFS to be inapplicable at series A")
	}
}

func TestRunARRMultiple_InapplicableWithoutRevenue(t *testing.T) {
	s := baseStartupInput()
	r := runARRMultiple(s, b2bSaasStage(t, "pre_seed"))
	if r.Applicable {
		t.Errorf("expected ARR multiple to be inapplicable with zero ARR")
	}
}

func TestRunARRMultiple_ApplicableWithRevenueAtSeed(t *testing.T) {
	s := baseStartupInput()
	s.Traction.HasRevenue = true
	s.Traction.AnnualRecurringRevenue = 0.4
	s.Traction.NetRevenueRetention = 1.2
	s.Traction.MoMGrowthRate = 0.15
	s.Traction.GrossMargin = 0.75

	r := runARRMultiple(s, b2bSaasStage(t, "seed"))
	if !r.Applicable {
		t.Errorf("expected ARR multiple to be applicable with revenue at seed, got rationale: %s", r.Rationale)
	}
	if r.IndicatedValue == nil || *r.IndicatedValue <= 0 {
		t.Errorf("expected a positive indicated value")
	}
}

func TestRunARRMultiple_HighNRRRaisesMultipleAboveBase(t *testing.T) {
	low := baseStartupInput()
	low.Traction.HasRevenue = true
	low.Traction.AnnualRecurringRevenue = 0.4
	low.Traction.NetRevenueRetention = 0.85
	low.Traction.MoMGrowthRate = 0.05
	low.Traction.GrossMargin = 0.65

	high := low
	high.Traction.NetRevenueRetention = 1.45

	stage := b2bSaasStage(t, "seed")
	rLow := runARRMultiple(low, stage)
	rHigh := runARRMultiple(high, stage)

	if *rHigh.IndicatedValue <= *rLow.IndicatedValue {
		t.Errorf("expected higher NRR to raise the indicated value: low=%v high=%v", *rLow.IndicatedValue, *rHigh.IndicatedValue)
	}
}

func TestRegionalMedian_BayAreaPremiumExceedsOtherUS(t *testing.T) {
	bayArea := baseStartupInput()
	bayArea.Fundraise.Geography = GeoBayArea
	otherUS := baseStartupInput()
	otherUS.Fundraise.Geography = GeoOtherUS

	stage := b2bSaasStage(t, "pre_seed")
	bayMed, bayPremium := regionalMedian(bayArea, stage, bench.Default())
	otherMed, otherPremium := regionalMedian(otherUS, stage, bench.Default())

	if bayPremium <= otherPremium {
		t.Errorf("expected Bay Area premium %v to exceed other_us premium %v", bayPremium, otherPremium)
	}
	if bayMed <= otherMed {
		t.Errorf("expected Bay Area regional median %v to exceed other_us %v", bayMed, otherMed)
	}
}
