package deal

import (
	"log"
	"math"
	"sort"
)

const (
	maxIterations     = 100
	absoluteTolerance = 1.0    // $1
	relativeTolerance = 0.0001 // 0.01%
	damping           = 0.5
)

// scheduledPrincipal computes the mandatory principal payment for a
// tranche in a given projection year.
func scheduledPrincipal(t DebtTranche, year int, currentBalance float64) float64 {
	switch t.Amortization {
	case AmortizationInterestOnly, AmortizationBullet:
		if year == t.TermYears {
			return currentBalance
		}
		return 0
	default: // straight line
		if year > t.TermYears {
			return 0
		}
		annual := t.Amount / float64(t.TermYears)
		if annual > currentBalance {
			return currentBalance
		}
		return annual
	}
}

// solveYear resolves the interest/income/paydown circularity for a single
// projection year via damped Picard iteration on average-balance interest.
// Interest is computed on the average of beginning and ending balance so
// that within-year FCF-driven paydown feeds back into the interest charge.
func solveYear(ebitda, da, capex, wcChange, taxRate float64, balances map[string]float64, tranches []DebtTranche, year int) YearDebtSchedule {
	if len(tranches) == 0 {
		ebit := ebitda - da
		ni := ebit
		if ni < 0 {
			ni = 0
		}
		ni = ni * (1 - taxRate)
		fcf := ni + da - capex - wcChange
		return YearDebtSchedule{
			Year:         year,
			Converged:    true,
			Iterations:   0,
			NetIncome:    ni,
			FreeCashFlow: fcf,
		}
	}

	mandatory := make(map[string]float64, len(tranches))
	var totalMandatory float64
	for _, t := range tranches {
		bal := balances[t.Name]
		if bal <= 0 {
			mandatory[t.Name] = 0
			continue
		}
		p := scheduledPrincipal(t, year, bal)
		mandatory[t.Name] = p
		totalMandatory += p
	}

	var prevInterest float64
	for _, t := range tranches {
		if bal := balances[t.Name]; bal > 0 {
			prevInterest += bal * t.InterestRate
		}
	}

	sorted := append([]DebtTranche(nil), tranches...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].InterestRate > sorted[j].InterestRate })

	converged := false
	iterations := 0
	var finalSchedules []DebtScheduleYear
	var finalNI, finalFCF float64

	for iter := 0; iter < maxIterations; iter++ {
		iterations = iter + 1

		ebit := ebitda - da
		ebt := ebit - prevInterest
		taxes := ebt * taxRate
		if taxes < 0 {
			taxes = 0
		}
		netIncome := ebt - taxes
		fcf := netIncome + da - capex - wcChange

		optionalAvailable := fcf - totalMandatory
		if optionalAvailable < 0 {
			optionalAvailable = 0
		}
		optional := make(map[string]float64, len(tranches))
		for _, t := range tranches {
			optional[t.Name] = 0
		}
		remaining := optionalAvailable
		for _, t := range sorted {
			if remaining <= 0 {
				break
			}
			boy := balances[t.Name]
			afterMandatory := boy - mandatory[t.Name]
			if afterMandatory <= 0 {
				continue
			}
			sweep := remaining
			if afterMandatory < sweep {
				sweep = afterMandatory
			}
			optional[t.Name] = sweep
			remaining -= sweep
		}

		var totalNewInterest float64
		schedules := make([]DebtScheduleYear, 0, len(tranches))
		for _, t := range tranches {
			boy := balances[t.Name]
			if boy <= 0 {
				continue
			}
			m := mandatory[t.Name]
			opt := optional[t.Name]
			ending := boy - m - opt
			if ending < 0 {
				ending = 0
			}
			avgBalance := (boy + ending) / 2
			interest := avgBalance * t.InterestRate
			totalNewInterest += interest
			schedules = append(schedules, DebtScheduleYear{
				Year:               year,
				TrancheName:        t.Name,
				BeginningBalance:   boy,
				ScheduledPrincipal: m,
				OptionalPaydown:    opt,
				InterestExpense:    interest,
				EndingBalance:      ending,
				InterestRate:       t.InterestRate,
			})
		}

		absDiff := math.Abs(totalNewInterest - prevInterest)
		denom := math.Abs(prevInterest)
		if denom < 1.0 {
			denom = 1.0
		}
		relDiff := absDiff / denom

		finalSchedules = schedules
		finalNI = netIncome
		finalFCF = fcf

		if absDiff <= absoluteTolerance || relDiff <= relativeTolerance {
			converged = true
			break
		}

		prevInterest = damping*prevInterest + (1-damping)*totalNewInterest
	}

	if !converged {
		log.Printf("circularity solver: year %d did not converge in %d iterations, using best estimate interest=$%.0f", year, maxIterations, prevInterest)
	}

	var totalInterest, totalSched, totalOpt, totalEnding float64
	for _, s := range finalSchedules {
		totalInterest += s.InterestExpense
		totalSched += s.ScheduledPrincipal
		totalOpt += s.OptionalPaydown
		totalEnding += s.EndingBalance
	}

	return YearDebtSchedule{
		Year:               year,
		Tranches:           finalSchedules,
		TotalInterest:      totalInterest,
		TotalScheduled:     totalSched,
		TotalOptional:      totalOpt,
		TotalEndingBalance: totalEnding,
		NetIncome:          finalNI,
		FreeCashFlow:       finalFCF,
		Converged:          converged,
		Iterations:         iterations,
	}
}

// buildDebtSchedule solves the circularity year by year, rolling each
// year's ending balances forward as the next year's beginning balances.
func buildDebtSchedule(tranches []DebtTranche, projectionYears int, ebitdaByYear, daByYear, capexByYear []float64, taxRate float64, wcChangeByYear []float64) ([]YearDebtSchedule, bool) {
	results := make([]YearDebtSchedule, 0, projectionYears)
	var anyNonConvergence bool

	if wcChangeByYear == nil {
		wcChangeByYear = make([]float64, projectionYears)
	}

	balances := make(map[string]float64, len(tranches))
	for _, t := range tranches {
		balances[t.Name] = t.Amount
	}

	at := func(s []float64, year int) float64 {
		if year-1 < len(s) {
			return s[year-1]
		}
		return 0
	}

	for year := 1; year <= projectionYears; year++ {
		result := solveYear(
			at(ebitdaByYear, year),
			at(daByYear, year),
			at(capexByYear, year),
			at(wcChangeByYear, year),
			taxRate,
			balances,
			tranches,
			year,
		)

		if !result.Converged {
			anyNonConvergence = true
		}

		next := make(map[string]float64, len(tranches))
		for _, s := range result.Tranches {
			next[s.TrancheName] = s.EndingBalance
		}
		for _, t := range tranches {
			if _, ok := next[t.Name]; !ok {
				next[t.Name] = 0
			}
		}
		balances = next

		results = append(results, result)
	}

	return results, anyNonConvergence
}
