package vcfund

import (
	"testing"

	"dealforge/pkg/bench"
)

func TestRunDealEvaluation_RejectsInvalidInput(t *testing.T) {
	d := baseDealInput()
	d.CompanyName = ""
	if _, err := RunDealEvaluation(d, baseFundProfile(), bench.Default()); err == nil {
		t.Errorf("expected an error for invalid deal input")
	}
}

func TestRunDealEvaluation_RequiresBenchmarks(t *testing.T) {
	if _, err := RunDealEvaluation(baseDealInput(), baseFundProfile(), nil); err == nil {
		t.Errorf("expected an error when benchmarks are nil")
	}
}

func TestRunDealEvaluation_ProducesThreeScenariosAndAScreen(t *testing.T) {
	out, err := RunDealEvaluation(baseDealInput(), baseFundProfile(), bench.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BaseScenario.Probability != 0.40 {
		t.Errorf("expected base scenario probability of 0.40, got %v", out.BaseScenario.Probability)
	}
	if out.QuickScreen.Recommendation == "" {
		t.Errorf("expected a populated quick-screen recommendation")
	}
}

func TestRunDealEvaluation_NoWaterfallWithoutLiquidationStack(t *testing.T) {
	d := baseDealInput()
	d.LiquidationStack = nil
	out, err := RunDealEvaluation(d, baseFundProfile(), bench.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Waterfall != nil {
		t.Errorf("expected a nil waterfall without a liquidation stack")
	}
}

func TestRunDealEvaluation_WaterfallPresentWithLiquidationStack(t *testing.T) {
	d := baseDealInput()
	d.LiquidationStack = []LiquidationPreference{
		{ShareClass: "Seed", InvestedAmount: d.CheckSize, PreferenceMultiple: 1.0, PreferenceType: PreferenceNonParticipating, Seniority: 1},
	}
	out, err := RunDealEvaluation(d, baseFundProfile(), bench.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Waterfall == nil {
		t.Errorf("expected a populated waterfall with a liquidation stack")
	}
}

func TestRunDealEvaluation_WarnsOnPlaceholderARR(t *testing.T) {
	d := baseDealInput()
	d.ARR = 0
	d.RevenueTTM = 0
	out, err := RunDealEvaluation(d, baseFundProfile(), bench.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawWarning bool
	for _, w := range out.Warnings {
		if w == "No ARR or trailing revenue supplied — scenarios were projected off a $10M placeholder ARR." {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Errorf("expected a placeholder-ARR warning, got %+v", out.Warnings)
	}
}

func TestRunDealEvaluation_PowerLawNoteScalesWithFundContribution(t *testing.T) {
	out, err := RunDealEvaluation(baseDealInput(), baseFundProfile(), bench.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PowerLawNote == "" {
		t.Errorf("expected a populated power-law note")
	}
}
