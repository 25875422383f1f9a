package vcfund

import (
	"strings"
	"testing"

	"dealforge/pkg/bench"
)

func TestValuationVsBenchmarkLabel_Bands(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{1.5, "above market"},
		{1.0, "at market"},
		{0.7, "below market"},
	}
	for _, c := range cases {
		if got := valuationVsBenchmarkLabel(c.ratio, true); got != c.want {
			t.Errorf("valuationVsBenchmarkLabel(%v) = %q, want %q", c.ratio, got, c.want)
		}
	}
	if got := valuationVsBenchmarkLabel(1.0, false); got != "insufficient data" {
		t.Errorf("expected insufficient data without benchmark data, got %q", got)
	}
}

func TestBuildICMemo_IncludesAllFiveThesisSections(t *testing.T) {
	d := baseDealInput()
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	bear, base, bull := computeScenarios(d, *f, om.ExitOwnershipPct, bench.Default())
	memo := buildICMemo(d, *f, om, bear, base, bull, bench.Default())

	sections := []string{"MARKET THESIS", "COMPANY DIFFERENTIATION", "TEAM", "RISK FACTORS", "EXIT PATH"}
	for _, s := range sections {
		if !strings.Contains(memo.InvestmentThesisPrompt, s) {
			t.Errorf("expected thesis prompt to contain section %q", s)
		}
	}
}

func TestBuildICMemo_RunwayNilWithoutBurn(t *testing.T) {
	d := baseDealInput()
	d.BurnRateMonthly = 0
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	bear, base, bull := computeScenarios(d, *f, om.ExitOwnershipPct, bench.Default())
	memo := buildICMemo(d, *f, om, bear, base, bull, bench.Default())
	if memo.RunwayMonths != nil {
		t.Errorf("expected nil runway without burn data")
	}
}

func TestBuildICMemo_ARRMultipleNilWithoutARR(t *testing.T) {
	d := baseDealInput()
	d.ARR = 0
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	bear, base, bull := computeScenarios(d, *f, om.ExitOwnershipPct, bench.Default())
	memo := buildICMemo(d, *f, om, bear, base, bull, bench.Default())
	if memo.ARRMultipleAtEntry != nil {
		t.Errorf("expected nil ARR multiple without ARR data")
	}
	if memo.ValuationVsBenchmark != "insufficient data" {
		t.Errorf("expected insufficient data label without ARR, got %q", memo.ValuationVsBenchmark)
	}
}
