package vcfund

import "testing"

func baseDealInput() DealInput {
	return DealInput{
		CompanyName:        "Acme Robotics",
		Vertical:           VerticalB2BSaaS,
		Stage:              StageSeed,
		PostMoneyValuation: 10.0,
		CheckSize:          1.0,
		ARR:                0.8,
		RevenueGrowthRate:  1.5,
		GrossMargin:        0.75,
		BurnRateMonthly:    0.1,
		CashOnHand:         1.8,
		CommonSharesPct:    0.30,
		ExpectedExitYears:  7,
	}
}

func baseFundProfile() FundProfile {
	return FundProfile{
		FundName:    "Test Ventures I",
		FundSize:    50.0,
		VintageYear: 2024,
	}
}

func TestNewFundProfile_FillsDefaults(t *testing.T) {
	f, err := NewFundProfile(baseFundProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.CarryPct != 0.20 {
		t.Errorf("expected default carry_pct 0.20, got %v", f.CarryPct)
	}
	if f.ReserveRatio != 0.40 {
		t.Errorf("expected default reserve_ratio 0.40, got %v", f.ReserveRatio)
	}
	if f.TargetInitialCheckCount != 25 {
		t.Errorf("expected default target_initial_check_count 25, got %v", f.TargetInitialCheckCount)
	}
}

func TestNewFundProfile_RejectsNonPositiveFundSize(t *testing.T) {
	bad := baseFundProfile()
	bad.FundSize = 0
	if _, err := NewFundProfile(bad); err == nil {
		t.Errorf("expected an error for a zero fund size")
	}
}

func TestFundProfile_InvestableCapitalAccountsForFeesAndRecycling(t *testing.T) {
	f, err := NewFundProfile(baseFundProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fees := f.FundSize * f.ManagementFeePct * float64(f.ManagementFeeYears)
	recycling := f.FundSize * f.RecyclingPct
	want := f.FundSize - fees + recycling
	if got := f.InvestableCapital(); got != want {
		t.Errorf("InvestableCapital() = %v, want %v", got, want)
	}
}

func TestFundProfile_InitialCheckPoolAndReservePoolSumToInvestableCapital(t *testing.T) {
	f, err := NewFundProfile(baseFundProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := f.InitialCheckPool() + f.ReservePool()
	if diff := sum - f.InvestableCapital(); diff > 0.001 || diff < -0.001 {
		t.Errorf("expected initial check pool + reserve pool to equal investable capital: got %v want %v", sum, f.InvestableCapital())
	}
}

func TestNewDealInput_FillsDefaults(t *testing.T) {
	d, err := NewDealInput(baseDealInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Dilution.PreSeedToSeed != 0.205 {
		t.Errorf("expected default dilution assumptions to be filled in, got %+v", d.Dilution)
	}
}

func TestNewDealInput_RejectsCheckSizeAboveValuation(t *testing.T) {
	bad := baseDealInput()
	bad.CheckSize = bad.PostMoneyValuation + 1
	if _, err := NewDealInput(bad); err == nil {
		t.Errorf("expected an error when check size exceeds post-money valuation")
	}
}

func TestNewDealInput_RejectsMissingCompanyName(t *testing.T) {
	bad := baseDealInput()
	bad.CompanyName = ""
	if _, err := NewDealInput(bad); err == nil {
		t.Errorf("expected an error for a missing company name")
	}
}
