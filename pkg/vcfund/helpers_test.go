package vcfund

import "testing"

func TestIRR_ReturnsZeroForNonPositiveInputs(t *testing.T) {
	if v := irr(0, 100, 5); v != 0 {
		t.Errorf("expected 0 for zero investment, got %v", v)
	}
	if v := irr(100, 0, 5); v != 0 {
		t.Errorf("expected 0 for zero proceeds, got %v", v)
	}
	if v := irr(100, 200, 0); v != 0 {
		t.Errorf("expected 0 for zero years, got %v", v)
	}
}

func TestIRR_DoublingOverOneYearIsOneHundredPercent(t *testing.T) {
	v := irr(100, 200, 1)
	if diff := v - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected 100%% IRR for a 1-year double, got %v", v)
	}
}

func TestCarryAdjProceeds_NoCarryBelowHurdle(t *testing.T) {
	gross := 100.0
	net := carryAdjProceeds(gross, 100, 0.20, 0.08, 1)
	if net != gross {
		t.Errorf("expected no carry when proceeds don't clear the hurdle, got %v", net)
	}
}

func TestCarryAdjProceeds_ChargesCarryOnlyAboveHurdle(t *testing.T) {
	costBasis := 100.0
	gross := 1000.0
	net := carryAdjProceeds(gross, costBasis, 0.20, 0.08, 1)
	hurdleBasis := costBasis * 1.08
	wantCarry := (gross - hurdleBasis) * 0.20
	want := gross - wantCarry
	if diff := net - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("carryAdjProceeds = %v, want %v", net, want)
	}
}

func TestRunwayMonths_NilWithoutBurn(t *testing.T) {
	if m := runwayMonths(1_000_000, 0); m != nil {
		t.Errorf("expected nil runway without burn, got %v", *m)
	}
}

func TestRunwayMonths_DividesCashByBurn(t *testing.T) {
	m := runwayMonths(1_200_000, 100_000)
	if m == nil || *m != 12 {
		t.Errorf("expected 12 months of runway, got %v", m)
	}
}
