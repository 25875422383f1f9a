package vcfund

import "testing"

func TestComputeProRata_ScenarioProbabilitiesSumToOne(t *testing.T) {
	d := baseDealInput()
	pr := computeProRata(d, 0.05, 10.0)
	var sum float64
	for _, s := range pr.ExerciseScenarios {
		sum += s.Probability
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected exercise scenario probabilities to sum to 1, got %v", sum)
	}
}

func TestComputeProRata_MaintainedOwnershipExceedsDiluted(t *testing.T) {
	d := baseDealInput()
	d.Dilution = DefaultDilutionAssumptions()
	pr := computeProRata(d, 0.08, 10.0)
	if pr.MaintainedOwnershipPct <= pr.DilutedOwnershipIfPass {
		t.Errorf("expected maintaining ownership via pro-rata to beat passing: maintained=%v diluted=%v",
			pr.MaintainedOwnershipPct, pr.DilutedOwnershipIfPass)
	}
}

func TestComputeProRata_ExerciseWhenIncrementalValueLarge(t *testing.T) {
	d := baseDealInput()
	d.Dilution = DefaultDilutionAssumptions()
	d.CheckSize = 0.01
	pr := computeProRata(d, 0.08, 10.0)
	if pr.Recommendation != RecExercise {
		t.Errorf("expected an exercise recommendation for a tiny check relative to incremental value, got %v", pr.Recommendation)
	}
}

func TestComputeProRata_ReserveImpactEqualsCheckSize(t *testing.T) {
	d := baseDealInput()
	pr := computeProRata(d, 0.08, 10.0)
	if pr.ReserveImpact != d.CheckSize {
		t.Errorf("expected reserve impact to equal the deal's check size, got %v want %v", pr.ReserveImpact, d.CheckSize)
	}
}
