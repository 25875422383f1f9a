package vcfund

// dilutionSequence is the remaining rounds a company walks through between
// its current stage and an IPO, consulted when projecting ownership forward
// to exit.
func dilutionSequence(stage Stage) []string {
	switch stage {
	case StagePreSeed:
		return []string{"seed", "series_a", "series_b", "series_c", "ipo"}
	case StageSeed:
		return []string{"series_a", "series_b", "series_c", "ipo"}
	case StageSeriesA:
		return []string{"series_b", "series_c", "ipo"}
	case StageSeriesB:
		return []string{"series_c", "ipo"}
	case StageSeriesC:
		return []string{"ipo"}
	default:
		return nil
	}
}

func dilutionForRound(round string, d DilutionAssumptions) float64 {
	switch round {
	case "seed":
		return d.PreSeedToSeed
	case "series_a":
		return d.SeedToA
	case "series_b":
		return d.AToB
	case "series_c":
		return d.BToC
	case "ipo":
		return d.CToIPO
	default:
		return 0
	}
}

func roundLabel(round string) string {
	switch round {
	case "seed":
		return "Seed"
	case "series_a":
		return "Series A"
	case "series_b":
		return "Series B"
	case "series_c":
		return "Series C"
	case "ipo":
		return "IPO"
	default:
		return round
	}
}

// computeOwnershipMath computes entry ownership, the forward dilution stack
// to exit, and the exit enterprise values needed to return the fund at
// 1x/3x/5x multiples.
func computeOwnershipMath(d DealInput, fund FundProfile) OwnershipMath {
	entryPct := d.CheckSize / d.PostMoneyValuation

	currentPct := entryPct
	var stack []DilutionStep
	for _, round := range dilutionSequence(d.Stage) {
		before := currentPct
		effective := dilutionForRound(round, d.Dilution) + d.Dilution.OptionPoolExpansion
		currentPct *= (1 - effective)
		stack = append(stack, DilutionStep{
			Round:           roundLabel(round),
			DilutionPct:     effective,
			OwnershipBefore: before,
			OwnershipAfter:  currentPct,
		})
	}
	exitPct := currentPct

	totalDilution := 0.0
	if entryPct > 0 {
		totalDilution = 1 - exitPct/entryPct
	}

	fundReturner := func(targetX float64) float64 {
		if exitPct <= 0 {
			return 0
		}
		return fund.FundSize * targetX / exitPct
	}

	// exitValues are USD millions directly ($50M, $100M, ... $10B), the same
	// scale as every other monetary field in this package.
	exitValues := []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000}
	grossAtExits := make([]float64, len(exitValues))
	fundXAtExits := make([]float64, len(exitValues))
	for i, ev := range exitValues {
		gross := ev * exitPct
		grossAtExits[i] = gross
		if d.CheckSize > 0 {
			fundXAtExits[i] = gross / d.CheckSize
		}
	}

	om := OwnershipMath{
		EntryOwnershipPct:       entryPct,
		ExitOwnershipPct:        exitPct,
		DilutionStack:           stack,
		TotalDilutionPct:        totalDilution,
		FundReturner1xExit:      fundReturner(1.0),
		FundReturner3xExit:      fundReturner(3.0),
		FundReturner5xExit:      fundReturner(5.0),
		ExitValuesTested:        exitValues,
		GrossProceedsAtExits:    grossAtExits,
		FundContributionAtExits: fundXAtExits,
	}

	if d.ARR > 0 && exitPct > 0 {
		m1 := om.FundReturner1xExit / d.ARR
		m3 := om.FundReturner3xExit / d.ARR
		om.RequiredARRMultipleFor1xFund = &m1
		om.RequiredARRMultipleFor3xFund = &m3
	}

	return om
}

