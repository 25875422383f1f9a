package deal

import "math"

const (
	maxIRRIterations = 200
	irrTolerance     = 1e-8
	irrSeed          = 0.15
)

// npv returns the net present value of cashFlows at rate; cashFlows[0] is
// t=0 (the initial investment, typically negative).
func npv(rate float64, cashFlows []float64) float64 {
	var total float64
	for t, cf := range cashFlows {
		total += cf / math.Pow(1+rate, float64(t))
	}
	return total
}

// irr solves for the internal rate of return via Newton-Raphson on the NPV
// function. Returns -1.0 when the cash flow series never changes sign (no
// IRR exists), and clamps the result to -1.0 on the low end regardless.
func irr(cashFlows []float64) float64 {
	var hasNegative, hasPositive bool
	for _, cf := range cashFlows {
		if cf < 0 {
			hasNegative = true
		}
		if cf > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return -1.0
	}

	rate := irrSeed
	for i := 0; i < maxIRRIterations; i++ {
		v := npv(rate, cashFlows)
		var dv float64
		for t, cf := range cashFlows {
			dv += -float64(t) * cf / math.Pow(1+rate, float64(t+1))
		}
		if dv == 0 {
			break
		}
		newRate := rate - v/dv
		if math.Abs(newRate-rate) < irrTolerance {
			rate = newRate
			break
		}
		rate = newRate
	}
	if rate < -1.0 {
		return -1.0
	}
	return rate
}

var exitMultipleDeltas = []float64{-2.0, -1.5, -1.0, -0.5, 0.0, 0.5, 1.0, 1.5, 2.0}

// computeReturns builds the IRR/MOIC scenario grid across exit years
// {3, 5, 7} (capped at the projection horizon) and exit multiples spanning
// the entry multiple +/- 2.0x in 0.5x steps. Cash available to offset debt
// at exit is the cumulative pro-forma free cash flow through the exit year
// (floored at zero), not a net-income heuristic — free cash flow is already
// the post-capex, post-tax cash the deal actually generates.
func computeReturns(d DealInput, ebitdaByYear, netIncomeByYear, endingDebtByYear, fcfByYear []float64) ReturnsAnalysis {
	acquisitionPrice := d.Target.AcquisitionPrice
	structure := d.Structure

	equityInvested := acquisitionPrice * (structure.CashPct + structure.StockPct)
	if floor := acquisitionPrice * 0.10; equityInvested < floor {
		equityInvested = floor
	}

	targetEBITDA := d.Target.EBITDA
	var entryMultiple float64
	if targetEBITDA > 0 {
		entryMultiple = acquisitionPrice / targetEBITDA
	}

	var exitMultiples []float64
	for _, delta := range exitMultipleDeltas {
		m := roundTo(entryMultiple+delta, 1)
		if m > 1.0 {
			exitMultiples = append(exitMultiples, m)
		}
	}

	var exitYears []int
	for _, y := range []int{3, 5, 7} {
		if y <= len(ebitdaByYear) {
			exitYears = append(exitYears, y)
		}
	}

	var scenarios []ReturnScenario
	for _, exitYear := range exitYears {
		exitEBITDA := ebitdaByYear[exitYear-1]
		endingDebt := endingDebtByYear[exitYear-1]

		var cumulativeFCF float64
		for i := 0; i < exitYear && i < len(fcfByYear); i++ {
			cumulativeFCF += fcfByYear[i]
		}
		if cumulativeFCF < 0 {
			cumulativeFCF = 0
		}
		netDebtAtExit := endingDebt - cumulativeFCF
		if netDebtAtExit < 0 {
			netDebtAtExit = 0
		}

		for _, exitMult := range exitMultiples {
			exitEV := exitEBITDA * exitMult
			exitEquity := exitEV - netDebtAtExit
			if exitEquity < 0 {
				exitEquity = 0
			}

			cashFlows := make([]float64, exitYear+1)
			cashFlows[0] = -equityInvested
			cashFlows[exitYear] = exitEquity

			result := irr(cashFlows)
			var moic float64
			if equityInvested > 0 {
				moic = exitEquity / equityInvested
			}

			scenarios = append(scenarios, ReturnScenario{
				ExitYear:       exitYear,
				ExitMultiple:   exitMult,
				ExitEV:         exitEV,
				NetDebtAtExit:  netDebtAtExit,
				ExitEquity:     exitEquity,
				EquityInvested: equityInvested,
				IRR:            result,
				MOIC:           moic,
			})
		}
	}

	return ReturnsAnalysis{
		EntryMultiple: entryMultiple,
		Scenarios:     scenarios,
	}
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
