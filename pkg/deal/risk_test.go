package deal

import (
	"testing"

	"dealforge/pkg/bench"
)

func TestLeverageRisk_NilBelowMediumThreshold(t *testing.T) {
	d := baseDealInput()
	d.Structure.DebtPct = 0.1 // low leverage
	d.Acquirer.TotalDebt = 0
	if r := leverageRisk(d); r != nil {
		t.Errorf("expected no leverage risk below 4.0x, got %+v", r)
	}
}

func TestLeverageRisk_CriticalAboveSixTurns(t *testing.T) {
	d := baseDealInput()
	d.Target.AcquisitionPrice = 700_000_000
	d.Structure.DebtPct = 0.9
	d.Acquirer.TotalDebt = 100_000_000

	r := leverageRisk(d)
	if r == nil {
		t.Fatal("expected a leverage risk to be flagged")
	}
	if r.Severity != SeverityCritical {
		t.Errorf("severity = %v, want critical at this leverage", r.Severity)
	}
}

func TestSynergyExecutionRisk_NilWhenModest(t *testing.T) {
	d := baseDealInput()
	// base fixture has 3M synergies against 100M revenue: 3%, below the 8% threshold.
	if r := synergyExecutionRisk(d); r != nil {
		t.Errorf("expected no synergy execution risk at 3%% of revenue, got %+v", r)
	}
}

func TestSynergyExecutionRisk_HighWhenAggressive(t *testing.T) {
	d := baseDealInput()
	d.Synergies.CostSynergies[0].AnnualAmount = 20_000_000 // 20% of $100M revenue
	r := synergyExecutionRisk(d)
	if r == nil {
		t.Fatal("expected a synergy execution risk to be flagged")
	}
	if r.Severity != SeverityHigh {
		t.Errorf("severity = %v, want high above 15%% of revenue", r.Severity)
	}
}

func TestPurchasePriceRisk_NilWithinBenchmarkRange(t *testing.T) {
	d := baseDealInput()
	r := purchasePriceRisk(d, bench.Default())
	// Target.AcquisitionPrice / EBITDA = 150M / 15M = 10.0x, comfortably inside
	// the technology benchmark band, so no risk should fire.
	if r != nil {
		t.Errorf("expected no purchase price risk within benchmark range, got %+v", r)
	}
}

func TestPurchasePriceRisk_FlagsOverpay(t *testing.T) {
	d := baseDealInput()
	d.Target.AcquisitionPrice = 400_000_000 // ~26.7x EBITDA, well above typical tech multiples
	r := purchasePriceRisk(d, bench.Default())
	if r == nil {
		t.Fatal("expected a purchase price risk to be flagged for an extreme multiple")
	}
}

func TestIntegrationCostRisk_NilWhenCostsRecoveredInYearOne(t *testing.T) {
	d := baseDealInput()
	d.Synergies.CostSynergies[0].CostToAchieve = 100_000 // tiny relative to phased-in Year 1 synergy
	if r := integrationCostRisk(d); r != nil {
		t.Errorf("expected no integration cost risk when synergies cover the cost quickly, got %+v", r)
	}
}

func TestIntegrationCostRisk_HighWhenCostsDwarfSynergies(t *testing.T) {
	d := baseDealInput()
	d.Synergies.CostSynergies[0].AnnualAmount = 3_000_000
	d.Synergies.CostSynergies[0].PhaseInYears = 3
	d.Synergies.CostSynergies[0].CostToAchieve = 10_000_000 // Year 1 synergy is 1M, ratio = 10x
	r := integrationCostRisk(d)
	if r == nil {
		t.Fatal("expected an integration cost risk to be flagged")
	}
	if r.Severity != SeverityHigh {
		t.Errorf("severity = %v, want high when cost-to-synergy ratio exceeds 2x", r.Severity)
	}
}

func TestRevenueSynergyConcentrationRisk_NilWhenAllCostSynergies(t *testing.T) {
	d := baseDealInput()
	// base fixture has only cost synergies, no revenue synergies.
	if r := revenueSynergyConcentrationRisk(d); r != nil {
		t.Errorf("expected no concentration risk with zero revenue synergies, got %+v", r)
	}
}

func TestRevenueSynergyConcentrationRisk_HighWhenRevenueDominates(t *testing.T) {
	d := baseDealInput()
	d.Synergies.RevenueSynergies = []SynergyItem{{Category: "Cross-sell", AnnualAmount: 8_000_000, PhaseInYears: 3}}
	r := revenueSynergyConcentrationRisk(d)
	if r == nil {
		t.Fatal("expected a revenue synergy concentration risk to be flagged")
	}
	if r.Severity != SeverityHigh {
		t.Errorf("severity = %v, want high when revenue synergies exceed 70%% of total", r.Severity)
	}
}

func TestAnalyzeRisks_SortedBySeverityDescending(t *testing.T) {
	d := baseDealInput()
	d.Target.AcquisitionPrice = 700_000_000
	d.Structure.DebtPct = 0.9
	d.Acquirer.TotalDebt = 100_000_000
	d.Synergies.RevenueSynergies = []SynergyItem{{Category: "Cross-sell", AnnualAmount: 8_000_000, PhaseInYears: 3}}

	risks := analyzeRisks(d, nil, nil, nil, ReturnsAnalysis{}, bench.Default())
	if len(risks) < 2 {
		t.Fatal("expected multiple risks to be flagged by this aggressive scenario")
	}
	for i := 1; i < len(risks); i++ {
		if risks[i-1].Severity.rank() > risks[i].Severity.rank() {
			t.Errorf("risks not sorted by severity: %v before %v", risks[i-1].Severity, risks[i].Severity)
		}
	}
}
