package deal

import (
	"fmt"
	"math"
	"sync"
)

// accretionFunc re-runs the deal model against a perturbed input and
// returns Year 1 accretion/dilution as a decimal. Implementations must
// disable their own sensitivity generation to avoid unbounded recursion.
type accretionFunc func(DealInput) float64

var priceShapePremiums = []float64{-0.20, -0.10, 0.0, 0.10, 0.20, 0.30, 0.40}
var synergyMultipliers = []float64{0.0, 0.25, 0.50, 0.75, 1.0, 1.25, 1.50}
var cashPercentages = []float64{0.0, 0.20, 0.40, 0.60, 0.80, 1.0}
var interestRates = []float64{0.05, 0.06, 0.07, 0.08, 0.09, 0.10, 0.11}
var leverageTurns = []float64{2.0, 3.0, 4.0, 5.0, 6.0, 7.0}

const sensitivityMaxWorkers = 8

// generateAllSensitivityMatrices produces the three standard 2D sensitivity
// grids: Purchase Price vs Synergies, Purchase Price vs Cash/Stock Mix, and
// Interest Rate vs Leverage. Each cell is computed by cloning the base deal,
// perturbing the two axis variables, and re-invoking fn.
func generateAllSensitivityMatrices(d DealInput, fn accretionFunc) []SensitivityMatrix {
	basePrice := d.Target.AcquisitionPrice
	baseSynergies := d.Synergies.TotalAnnual()

	priceRowLabels := make([]string, len(priceShapePremiums))
	for i, p := range priceShapePremiums {
		absPrice := basePrice * (1 + p)
		if p == 0 {
			priceRowLabels[i] = fmt.Sprintf("%s (Base)", formatCurrencyCompact(absPrice))
		} else {
			priceRowLabels[i] = fmt.Sprintf("%s (%+.0f%%)", formatCurrencyCompact(absPrice), p*100)
		}
	}

	synColLabels := make([]string, len(synergyMultipliers))
	for i, s := range synergyMultipliers {
		absSyn := baseSynergies * s
		switch {
		case s == 1.0 && absSyn > 0:
			synColLabels[i] = fmt.Sprintf("%s (Base)", formatCurrencyCompact(absSyn))
		case absSyn > 0:
			synColLabels[i] = formatCurrencyCompact(absSyn)
		default:
			synColLabels[i] = fmt.Sprintf("%.0f%%", s*100)
		}
	}

	priceVsSynergy := func(pricePrem, synMult float64) float64 {
		modified := d.clone()
		modified.Target.AcquisitionPrice = basePrice * (1 + pricePrem/100.0)
		scaleSynergies(&modified, synMult/100.0, baseSynergies)
		return fn(modified)
	}

	m1 := computeMatrixParallel(
		"Purchase Price vs Synergies", "Purchase Price", "Synergy Achievement",
		scalePct(priceShapePremiums), scalePct(synergyMultipliers),
		priceVsSynergy, 2, 4, priceRowLabels, synColLabels,
	)

	actualCashPct := d.Structure.CashPct
	cashBaseIdx := closestIndex(cashPercentages, actualCashPct)
	cashColLabels := make([]string, len(cashPercentages))
	for i, c := range cashPercentages {
		label := fmt.Sprintf("%.0f%% Cash", c*100)
		if math.Abs(c-actualCashPct) < 0.01 {
			label += " (Base)"
		}
		cashColLabels[i] = label
	}

	priceVsCashMix := func(pricePrem, cashPctAxis float64) float64 {
		modified := d.clone()
		modified.Target.AcquisitionPrice = basePrice * (1 + pricePrem/100.0)
		debt := modified.Structure.DebtPct
		remaining := 1.0 - debt
		var cashFrac, stockFrac float64
		if remaining <= 0 {
			cashFrac, stockFrac = 0, 0
		} else {
			cashFrac = math.Min(cashPctAxis/100.0, remaining)
			stockFrac = remaining - cashFrac
		}
		modified.Structure.CashPct = cashFrac
		modified.Structure.StockPct = stockFrac
		return fn(modified)
	}

	m2 := computeMatrixParallel(
		"Purchase Price vs Cash/Stock Mix", "Purchase Price", "Cash % of Deal",
		scalePct(priceShapePremiums), scalePct(cashPercentages),
		priceVsCashMix, 2, cashBaseIdx, priceRowLabels, cashColLabels,
	)

	targetEBITDA := d.Target.EBITDA
	combinedEBITDA := d.Acquirer.EBITDA + targetEBITDA
	baseDebt := basePrice * d.Structure.DebtPct

	var actualLeverage float64
	if combinedEBITDA > 0 {
		actualLeverage = baseDebt / combinedEBITDA
	}
	actualRate := 0.08
	if len(d.Structure.DebtTranches) > 0 {
		var totalDebt, weighted float64
		for _, t := range d.Structure.DebtTranches {
			totalDebt += t.Amount
			weighted += t.Amount * t.InterestRate
		}
		if totalDebt > 0 {
			actualRate = weighted / totalDebt
		}
	}
	rateBaseIdx := closestIndex(interestRates, actualRate)
	levBaseIdx := closestIndex(leverageTurns, actualLeverage)

	rateRowLabels := make([]string, len(interestRates))
	for i, r := range interestRates {
		label := fmt.Sprintf("%.1f%%", r*100)
		if math.Abs(r-actualRate) < 0.005 {
			label += " (Base)"
		}
		rateRowLabels[i] = label
	}
	levColLabels := make([]string, len(leverageTurns))
	for i, lv := range leverageTurns {
		label := fmt.Sprintf("%.1f×", lv)
		if math.Abs(lv-actualLeverage) < 0.5 {
			label += " (Base)"
		}
		levColLabels[i] = label
	}

	interestVsLeverage := func(ratePct, turns float64) float64 {
		modified := d.clone()
		rate := ratePct / 100.0
		totalDebtImplied := combinedEBITDA * turns
		debtPct := math.Min(totalDebtImplied/basePrice, 0.95)
		remaining := 1.0 - debtPct

		origNonDebt := d.Structure.CashPct + d.Structure.StockPct
		var cashFrac, stockFrac float64
		if origNonDebt > 0 {
			cashFrac = (d.Structure.CashPct / origNonDebt) * remaining
			stockFrac = remaining - cashFrac
		} else {
			cashFrac = remaining
			stockFrac = 0
		}
		modified.Structure.DebtPct = debtPct
		modified.Structure.CashPct = cashFrac
		modified.Structure.StockPct = stockFrac

		for i := range modified.Structure.DebtTranches {
			modified.Structure.DebtTranches[i].InterestRate = rate
		}
		if len(modified.Structure.DebtTranches) == 0 {
			modified.Structure.DebtTranches = []DebtTranche{{
				Name:         "Term Loan",
				Amount:       basePrice * debtPct,
				InterestRate: rate,
				TermYears:    7,
				Amortization: AmortizationStraightLine,
			}}
		}
		return fn(modified)
	}

	m3 := computeMatrixParallel(
		"Interest Rate vs Leverage", "Debt Interest Rate", "Total Debt / EBITDA",
		scalePct(interestRates), leverageTurns,
		interestVsLeverage, rateBaseIdx, levBaseIdx, rateRowLabels, levColLabels,
	)

	return []SensitivityMatrix{m1, m2, m3}
}

// scaleSynergies scales existing synergy amounts by multiplier, or — when
// the base deal carries no synergies at all — synthesizes a single cost
// synergy proportional to target revenue so the matrix isn't degenerate.
func scaleSynergies(d *DealInput, multiplier, baseTotal float64) {
	if baseTotal <= 0 {
		if multiplier > 0 {
			d.Synergies.CostSynergies = []SynergyItem{{
				Category:     "Combined savings",
				AnnualAmount: d.Target.Revenue * 0.02 * multiplier,
				PhaseInYears: 3,
			}}
		}
		return
	}
	for i := range d.Synergies.CostSynergies {
		d.Synergies.CostSynergies[i].AnnualAmount *= multiplier
	}
	for i := range d.Synergies.RevenueSynergies {
		d.Synergies.RevenueSynergies[i].AnnualAmount *= multiplier
	}
}

func scalePct(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * 100
	}
	return out
}

func closestIndex(values []float64, target float64) int {
	best := 0
	bestDiff := math.Abs(values[0] - target)
	for i, v := range values {
		if diff := math.Abs(v - target); diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best
}

// computeMatrixParallel fills an R x C grid by running compute_fn(row, col)
// for every cell, bounded by a semaphore so at most sensitivityMaxWorkers
// cells compute concurrently. Results are written into a pre-sized slice
// indexed by (row, col), so the output ordering is deterministic regardless
// of which goroutine finishes first.
func computeMatrixParallel(title, rowLabel, colLabel string, rowValues, colValues []float64, computeFn func(row, col float64) float64, baseRowIdx, baseColIdx int, rowDisplayLabels, colDisplayLabels []string) SensitivityMatrix {
	data := make([][]float64, len(rowValues))
	labels := make([][]string, len(rowValues))
	for i := range data {
		data[i] = make([]float64, len(colValues))
		labels[i] = make([]string, len(colValues))
	}

	sem := make(chan struct{}, sensitivityMaxWorkers)
	var wg sync.WaitGroup

	for i, rowVal := range rowValues {
		for j, colVal := range colValues {
			wg.Add(1)
			sem <- struct{}{}
			go func(i, j int, rowVal, colVal float64) {
				defer wg.Done()
				defer func() { <-sem }()
				result := computeFn(rowVal, colVal)
				rounded := math.Round(result*10000) / 10000
				data[i][j] = rounded
				labels[i][j] = fmt.Sprintf("%+.1f%%", result*100)
			}(i, j, rowVal, colVal)
		}
	}
	wg.Wait()

	return SensitivityMatrix{
		Title:            title,
		RowLabel:         rowLabel,
		ColLabel:         colLabel,
		RowValues:        rowValues,
		ColValues:        colValues,
		Data:             data,
		DataLabels:       labels,
		BaseRowIdx:       baseRowIdx,
		BaseColIdx:       baseColIdx,
		RowDisplayLabels: rowDisplayLabels,
		ColDisplayLabels: colDisplayLabels,
	}
}

func formatCurrencyCompact(value float64) string {
	absVal := math.Abs(value)
	sign := ""
	if value < 0 {
		sign = "-"
	}
	switch {
	case absVal >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, absVal/1_000_000_000)
	case absVal >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, absVal/1_000_000)
	case absVal >= 1_000:
		return fmt.Sprintf("%s$%.0fK", sign, absVal/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, absVal)
	}
}
