package deal

import "testing"

func sampleTranches() []DebtTranche {
	return []DebtTranche{
		{Name: "Term Loan A", Amount: 40_000_000, InterestRate: 0.08, TermYears: 7, Amortization: AmortizationStraightLine},
		{Name: "Subordinated Notes", Amount: 10_000_000, InterestRate: 0.11, TermYears: 7, Amortization: AmortizationInterestOnly},
	}
}

func TestSolveYear_Converges(t *testing.T) {
	tranches := sampleTranches()
	balances := map[string]float64{"Term Loan A": 40_000_000, "Subordinated Notes": 10_000_000}
	result := solveYear(30_000_000, 6_000_000, 5_000_000, 1_000_000, 0.25, balances, tranches, 1)

	if !result.Converged {
		t.Errorf("expected convergence, got %d iterations without converging", result.Iterations)
	}
	if result.Iterations < 1 || result.Iterations > maxIterations {
		t.Errorf("iterations out of range: %d", result.Iterations)
	}
}

func TestSolveYear_WaterfallPaysHighestRateFirst(t *testing.T) {
	tranches := sampleTranches()
	balances := map[string]float64{"Term Loan A": 40_000_000, "Subordinated Notes": 10_000_000}
	// Large EBITDA generates ample FCF for an optional sweep.
	result := solveYear(60_000_000, 6_000_000, 2_000_000, 0, 0.25, balances, tranches, 1)

	var subNotes DebtScheduleYear
	for _, s := range result.Tranches {
		if s.TrancheName == "Subordinated Notes" {
			subNotes = s
		}
	}
	if subNotes.OptionalPaydown <= 0 {
		t.Error("expected the higher-rate subordinated tranche to receive optional paydown first")
	}
}

func TestSolveYear_NoTranchesSkipsSolver(t *testing.T) {
	result := solveYear(10_000_000, 1_000_000, 500_000, 0, 0.25, map[string]float64{}, nil, 1)
	if !result.Converged || result.Iterations != 0 {
		t.Errorf("no-tranche case should trivially converge with 0 iterations, got converged=%v iterations=%d", result.Converged, result.Iterations)
	}
	wantNI := (10_000_000 - 1_000_000) * (1 - 0.25)
	if result.NetIncome != wantNI {
		t.Errorf("NetIncome = %v, want %v", result.NetIncome, wantNI)
	}
}

func TestBuildDebtSchedule_BalancesRollForward(t *testing.T) {
	tranches := sampleTranches()
	ebitda := []float64{30_000_000, 31_000_000, 32_000_000}
	da := []float64{6_000_000, 6_000_000, 6_000_000}
	capex := []float64{5_000_000, 5_000_000, 5_000_000}

	schedules, _ := buildDebtSchedule(tranches, 3, ebitda, da, capex, 0.25, nil)
	if len(schedules) != 3 {
		t.Fatalf("expected 3 years of schedules, got %d", len(schedules))
	}

	for i := 1; i < len(schedules); i++ {
		prevEnding := schedules[i-1].TotalEndingBalance
		var curBeginning float64
		for _, tr := range schedules[i].Tranches {
			curBeginning += tr.BeginningBalance
		}
		if curBeginning > prevEnding+1 {
			t.Errorf("year %d beginning balance %v exceeds prior year ending %v", i+1, curBeginning, prevEnding)
		}
	}
}
