package vcfund

import "testing"

func samplePositions() []PortfolioPosition {
	fv1, fv2 := 3.0, 15.0
	return []PortfolioPosition{
		{
			CompanyName: "Acme Robotics", Vertical: VerticalB2BSaaS, StageAtEntry: StageSeed,
			CheckSize: 1.0, CostBasis: 1.0, FairValue: &fv1, Status: PositionActive, VintageYear: 2023,
		},
		{
			CompanyName: "Beta AI", Vertical: VerticalAIInfra, StageAtEntry: StageSeriesA,
			CheckSize: 2.0, ReserveDeployed: 1.0, CostBasis: 3.0, FairValue: &fv2, Status: PositionActive, VintageYear: 2022,
		},
		{
			CompanyName: "Gamma Co", Vertical: VerticalFintech, StageAtEntry: StagePreSeed,
			CheckSize: 0.5, CostBasis: 0.5, Status: PositionWrittenOff, VintageYear: 2021,
		},
	}
}

func TestComputePortfolioStats_TotalDeployedSumsChecksAndReserves(t *testing.T) {
	fund, _ := NewFundProfile(baseFundProfile())
	stats := computePortfolioStats(*fund, samplePositions())
	want := 1.0 + 2.0 + 0.5 + 1.0
	if stats.TotalDeployed != want {
		t.Errorf("TotalDeployed = %v, want %v", stats.TotalDeployed, want)
	}
}

func TestComputePortfolioStats_TVPIIsDPIPlusRVPI(t *testing.T) {
	fund, _ := NewFundProfile(baseFundProfile())
	stats := computePortfolioStats(*fund, samplePositions())
	if diff := stats.TVPI - (stats.DPI + stats.RVPI); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected TVPI = DPI + RVPI, got TVPI=%v DPI=%v RVPI=%v", stats.TVPI, stats.DPI, stats.RVPI)
	}
}

func TestComputePortfolioStats_VerticalBreakdownSumsToCostBasis(t *testing.T) {
	fund, _ := NewFundProfile(baseFundProfile())
	stats := computePortfolioStats(*fund, samplePositions())
	var sum float64
	for _, v := range stats.VerticalBreakdown {
		sum += v
	}
	if diff := sum - stats.TotalCostBasis; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected vertical breakdown to sum to total cost basis: got %v want %v", sum, stats.TotalCostBasis)
	}
}

func TestRunPortfolioAnalysis_AlertsOnSinglePositionConcentration(t *testing.T) {
	fund, _ := NewFundProfile(FundProfile{FundName: "Tiny Fund", FundSize: 5.0})
	positions := []PortfolioPosition{
		{CompanyName: "Big Bet", Vertical: VerticalB2BSaaS, StageAtEntry: StageSeed, CheckSize: 2.0, CostBasis: 2.0, Status: PositionActive},
	}
	out := runPortfolioAnalysis(*fund, positions)
	var sawConcentration bool
	for _, a := range out.Alerts {
		if a == "Single-position concentration: largest position is 40% of fund size" {
			sawConcentration = true
		}
	}
	if !sawConcentration {
		t.Errorf("expected a single-position concentration alert, got %+v", out.Alerts)
	}
}

func TestRunPortfolioAnalysis_NoAlertsWhenHealthy(t *testing.T) {
	fund, _ := NewFundProfile(baseFundProfile())
	out := runPortfolioAnalysis(*fund, nil)
	if len(out.Alerts) != 0 {
		t.Errorf("expected no alerts for an empty portfolio, got %+v", out.Alerts)
	}
	if len(out.Recommendations) == 0 {
		t.Errorf("expected at least one recommendation even for an empty portfolio")
	}
}
