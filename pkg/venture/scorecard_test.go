package venture

import (
	"testing"

	"dealforge/pkg/bench"
)

func defaultPreSeedStage(t *testing.T) VentureStageBenchmark {
	t.Helper()
	vb, ok := bench.Default().Venture("b2b_saas")
	if !ok {
		t.Fatalf("expected b2b_saas vertical in default benchmarks")
	}
	stage, ok := vb.Stage("pre_seed")
	if !ok {
		t.Fatalf("expected pre_seed stage in b2b_saas benchmarks")
	}
	return stage
}

func TestBurnMultipleLabel_Bands(t *testing.T) {
	cases := []struct {
		mult   float64
		signal Signal
	}{
		{0.8, SignalStrong},
		{1.3, SignalFair},
		{2.0, SignalWeak},
		{3.0, SignalWarning},
	}
	for _, c := range cases {
		signal, _ := burnMultipleLabel(c.mult)
		if signal != c.signal {
			t.Errorf("burnMultipleLabel(%v) = %v, want %v", c.mult, signal, c.signal)
		}
	}
}

func TestNRRLabel_Bands(t *testing.T) {
	cases := []struct {
		nrr    float64
		signal Signal
	}{
		{1.45, SignalStrong},
		{1.25, SignalStrong},
		{1.12, SignalFair},
		{1.02, SignalFair},
		{0.85, SignalWeak},
		{0.60, SignalWarning},
	}
	for _, c := range cases {
		signal, _ := nrrLabel(c.nrr)
		if signal != c.signal {
			t.Errorf("nrrLabel(%v) = %v, want %v", c.nrr, signal, c.signal)
		}
	}
}

func TestBuildInvestorScorecard_FlagsBurnMultipleOnlyWithRevenueAndBurn(t *testing.T) {
	s := baseStartupInput()
	s.Traction.MonthlyBurnRate = 0
	stage := defaultPreSeedStage(t)

	flags := buildInvestorScorecard(s, 4.5, stage)
	for _, f := range flags {
		if f.Metric == "Burn Multiple" {
			t.Errorf("did not expect a burn multiple flag without burn rate data")
		}
	}
}

func TestBuildInvestorScorecard_IncludesTeamAndTAMAlways(t *testing.T) {
	s := baseStartupInput()
	stage := defaultPreSeedStage(t)

	flags := buildInvestorScorecard(s, 4.5, stage)
	var sawTeam, sawTAM bool
	for _, f := range flags {
		if f.Metric == "Team Quality" {
			sawTeam = true
		}
		if f.Metric == "Total Addressable Market" {
			sawTAM = true
		}
	}
	if !sawTeam || !sawTAM {
		t.Errorf("expected Team Quality and TAM flags always present, got %+v", flags)
	}
}

func TestAssignVerdict_StrongAtOrAboveMedian(t *testing.T) {
	stage := defaultPreSeedStage(t)
	verdict, _, _ := assignVerdict(stage.ValuationP50, stage)
	if verdict != VerdictStrong {
		t.Errorf("expected VerdictStrong at the P50 boundary, got %v", verdict)
	}
}

func TestAssignVerdict_StretchedAboveP75(t *testing.T) {
	stage := defaultPreSeedStage(t)
	verdict, _, _ := assignVerdict(stage.ValuationP75+0.001, stage)
	if verdict != VerdictStretched {
		t.Errorf("expected VerdictStretched above P75, got %v", verdict)
	}
}

func TestAssignVerdict_AtRiskBelowP25(t *testing.T) {
	stage := defaultPreSeedStage(t)
	verdict, _, _ := assignVerdict(stage.ValuationP25-0.001, stage)
	if verdict != VerdictAtRisk {
		t.Errorf("expected VerdictAtRisk below P25, got %v", verdict)
	}
}

func TestAssignVerdict_FairBetweenP25AndP50(t *testing.T) {
	stage := defaultPreSeedStage(t)
	mid := (stage.ValuationP25 + stage.ValuationP50) / 2
	verdict, _, _ := assignVerdict(mid, stage)
	if verdict != VerdictFair {
		t.Errorf("expected VerdictFair between P25 and P50, got %v", verdict)
	}
}

func TestPercentileLabel_TopFivePercent(t *testing.T) {
	stage := defaultPreSeedStage(t)
	label := percentileLabel(stage.ValuationP95, stage)
	if label != "top 5%" {
		t.Errorf("expected 'top 5%%', got %q", label)
	}
}
