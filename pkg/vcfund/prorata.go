package vcfund

import "fmt"

// proRataScenarioSpecs mirrors the simplified fixed-multiple scenarios used
// for pro-rata exercise/pass comparisons, distinct from the richer
// benchmark-driven scenarios used for the initial-check evaluation.
var proRataScenarioSpecs = []struct {
	label       string
	probability float64
	multiple    float64
}{
	{label: "Bear", probability: 0.40, multiple: 2.0},
	{label: "Base", probability: 0.40, multiple: 7.0},
	{label: "Bull", probability: 0.20, multiple: 15.0},
}

func proRataScenario(label string, probability, multiple, arr, ownershipPct float64, years int) Scenario {
	exitEV := multiple * arr
	gross := exitEV * ownershipPct
	return Scenario{
		Label:               label,
		Probability:         probability,
		ExitYear:            years,
		ExitMultipleARR:      multiple,
		ExitEnterpriseValue: exitEV,
		GrossProceedsToFund: gross,
		FundContributionX:   multiple,
		OutcomeDescription: fmt.Sprintf(
			"%s case: %.1fx ARR exit multiple against %.1f%% ownership",
			label, multiple, ownershipPct*100,
		),
	}
}

// computeProRata compares exercising a pro-rata right at the next round
// against passing and accepting the resulting dilution, using a simplified
// fixed bear/base/bull multiple set against current ARR.
func computeProRata(d DealInput, currentOwnershipPct, reservePoolRemaining float64) ProRataAnalysis {
	arr, _ := currentARR(d)

	maintainedPct := currentOwnershipPct
	dilutedPct := currentOwnershipPct * (1 - d.Dilution.AToB)

	var exerciseScenarios, passScenarios []Scenario
	var evExercise, evPass float64
	for _, spec := range proRataScenarioSpecs {
		exercise := proRataScenario(spec.label, spec.probability, spec.multiple, arr, maintainedPct, d.ExpectedExitYears)
		pass := proRataScenario(spec.label, spec.probability, spec.multiple, arr, dilutedPct, d.ExpectedExitYears)
		exerciseScenarios = append(exerciseScenarios, exercise)
		passScenarios = append(passScenarios, pass)
		evExercise += spec.probability * exercise.GrossProceedsToFund
		evPass += spec.probability * pass.GrossProceedsToFund
	}

	incrementalValue := evExercise - evPass
	proRataCheck := d.CheckSize

	var rec Recommendation
	var rationale string
	switch {
	case proRataCheck <= 0 || incrementalValue > proRataCheck*2:
		rec = RecExercise
		rationale = "Incremental expected value from maintaining ownership more than doubles the pro-rata check."
	case incrementalValue > 0:
		rec = RecPartial
		rationale = "Exercising adds positive expected value but not by a wide enough margin to be clear-cut."
	default:
		rec = RecPass
		rationale = "Passing and accepting dilution has equal or greater expected value than exercising."
	}

	reserveImpact := proRataCheck
	reserveRemainingAfter := reservePoolRemaining - reserveImpact

	return ProRataAnalysis{
		CompanyName:              d.CompanyName,
		NextRoundValuation:       d.PostMoneyValuation,
		ProRataAmount:            proRataCheck,
		MaintainedOwnershipPct:   maintainedPct,
		DilutedOwnershipIfPass:   dilutedPct,
		ReserveImpact:            reserveImpact,
		ReservePctRemainingAfter: reserveRemainingAfter,
		ExerciseScenarios:        exerciseScenarios,
		PassScenarios:            passScenarios,
		ExpectedValueExercise:    evExercise,
		ExpectedValuePass:        evPass,
		Recommendation:           rec,
		RecommendationRationale:  rationale,
	}
}
