package deal

import (
	"fmt"

	"dealforge/pkg/bench"
)

// health classifies value against a low/mid/high benchmark band.
func health(value, low, mid, high float64, higherIsBetter bool) HealthStatus {
	if higherIsBetter {
		if value >= mid {
			return HealthGood
		}
		if value >= low {
			return HealthFair
		}
		return HealthPoor
	}
	if value <= mid {
		return HealthGood
	}
	if value <= high {
		return HealthFair
	}
	return HealthPoor
}

// buildScorecard assembles the eight standard benchmarked metrics (plus
// defense-specific additions when applicable) and renders the overall
// verdict headline. Defense deals widen the yellow band: contracted
// backlog coverage at or above 2.0x justifies carrying a near-term
// dilutive deal as "yellow" rather than "red", since EPS math alone
// undercounts the revenue visibility backlog provides.
func buildScorecard(d DealInput, incomeStatement []IncomeStatementYear, returns ReturnsAnalysis, acqDebtTotal float64, endingDebtByYear []float64, benchmarks *bench.Table, defense *DefensePositioning) ([]ScorecardEntry, Verdict, string) {
	y1 := incomeStatement[0]
	acq := d.Acquirer.CompanyProfile
	tgt := d.Target

	entryMultiple := returns.EntryMultiple
	combinedEBITDA := acq.EBITDA + tgt.EBITDA
	var postCloseLeverage float64
	if combinedEBITDA > 0 {
		postCloseLeverage = (acqDebtTotal + acq.TotalDebt) / combinedEBITDA
	}

	var irr5yr float64
	for _, s := range returns.Scenarios {
		if s.ExitYear == 5 && absf(s.ExitMultiple-entryMultiple) < 0.6 {
			irr5yr = s.IRR * 100
			break
		}
	}

	var totalAnnualSynergies float64
	for _, s := range d.Synergies.CostSynergies {
		totalAnnualSynergies += s.AnnualAmount
	}
	for _, s := range d.Synergies.RevenueSynergies {
		totalAnnualSynergies += s.AnnualAmount
	}

	var synergyNPV float64
	for yr := 1; yr <= 5 && yr <= d.ProjectionYears; yr++ {
		realized := d.Synergies.costYear(yr) + d.Synergies.revenueYear(yr)
		synergyNPV += realized / pow1p(0.10, yr)
	}

	breakevenSynergy := totalAnnualSynergies * 0.3
	if breakevenSynergy < 0 {
		breakevenSynergy = 0
	}

	paydownYear := d.ProjectionYears
	for i, bal := range endingDebtByYear {
		if bal <= acqDebtTotal*0.1 {
			paydownYear = i + 1
			break
		}
	}

	ind, _ := benchmarks.Industry(string(tgt.Industry))

	entries := []ScorecardEntry{
		{
			Metric:          "Entry EV/EBITDA Multiple",
			Value:           entryMultiple,
			BenchmarkLow:    ind.EVToEBITDA.Low,
			BenchmarkMedian: ind.EVToEBITDA.Median,
			BenchmarkHigh:   ind.EVToEBITDA.High,
			HigherIsBetter:  false,
			Status:          health(entryMultiple, ind.EVToEBITDA.Low, ind.EVToEBITDA.Median, ind.EVToEBITDA.High, false),
		},
		{
			Metric:          "Year 1 Accretion / Dilution",
			Value:           y1.AccretionDilutionPct,
			BenchmarkLow:    -5.0,
			BenchmarkMedian: 0.0,
			BenchmarkHigh:   10.0,
			HigherIsBetter:  true,
			Status:          yearOneAccretionStatus(y1.AccretionDilutionPct),
		},
		{
			Metric:          "Pro Forma EPS (Year 1)",
			Value:           y1.ProFormaEPS,
			BenchmarkLow:    y1.StandaloneEPS * 0.9,
			BenchmarkMedian: y1.StandaloneEPS,
			BenchmarkHigh:   y1.StandaloneEPS * 1.15,
			HigherIsBetter:  true,
			Status:          epsStatus(y1.ProFormaEPS, y1.StandaloneEPS),
		},
		{
			Metric:          "IRR at 5-Year Exit",
			Value:           irr5yr,
			BenchmarkLow:    12.0,
			BenchmarkMedian: 20.0,
			BenchmarkHigh:   30.0,
			HigherIsBetter:  true,
			Status:          health(irr5yr, 12.0, 20.0, 30.0, true),
		},
		{
			Metric:          "Post-Close Leverage",
			Value:           postCloseLeverage,
			BenchmarkLow:    2.0,
			BenchmarkMedian: 4.0,
			BenchmarkHigh:   6.0,
			HigherIsBetter:  false,
			Status:          health(postCloseLeverage, 2.0, 4.0, 6.0, false),
		},
		{
			Metric:          "Breakeven Annual Savings",
			Value:           breakevenSynergy,
			BenchmarkLow:    totalAnnualSynergies * 0.25,
			BenchmarkMedian: totalAnnualSynergies * 0.50,
			BenchmarkHigh:   totalAnnualSynergies * 0.75,
			HigherIsBetter:  false,
			Status:          synergyPresenceStatus(totalAnnualSynergies),
		},
		{
			Metric:          "Debt Repayment Timeline",
			Value:           float64(paydownYear),
			BenchmarkLow:    3.0,
			BenchmarkMedian: 5.0,
			BenchmarkHigh:   7.0,
			HigherIsBetter:  false,
			Status:          health(float64(paydownYear), 3.0, 5.0, 7.0, false),
		},
		{
			Metric:          "Total Synergy Value (NPV)",
			Value:           synergyNPV,
			BenchmarkLow:    tgt.AcquisitionPrice * 0.05,
			BenchmarkMedian: tgt.AcquisitionPrice * 0.15,
			BenchmarkHigh:   tgt.AcquisitionPrice * 0.30,
			HigherIsBetter:  true,
			Status:          health(synergyNPV, tgt.AcquisitionPrice*0.05, tgt.AcquisitionPrice*0.15, tgt.AcquisitionPrice*0.30, true),
		},
	}

	if defense != nil {
		evRevRange := ind.EVToRevenue
		evRevenue := safeDiv(tgt.AcquisitionPrice, tgt.Revenue)
		entries = append(entries, ScorecardEntry{
			Metric:          "Implied EV/Revenue",
			Value:           evRevenue,
			BenchmarkLow:    evRevRange.Low,
			BenchmarkMedian: evRevRange.Median,
			BenchmarkHigh:   evRevRange.High,
			HigherIsBetter:  false,
			Status:          health(evRevenue, evRevRange.Low, evRevRange.Median, evRevRange.High, false),
		})
		entries = append(entries, ScorecardEntry{
			Metric:          "Backlog Coverage Ratio",
			Value:           defense.BacklogCoverage,
			BenchmarkLow:    1.0,
			BenchmarkMedian: 2.0,
			BenchmarkHigh:   4.0,
			HigherIsBetter:  true,
			Status:          health(defense.BacklogCoverage, 1.0, 2.0, 4.0, true),
		})
	}

	verdict, headline := assignVerdict(y1, defense)
	return entries, verdict, headline
}

func yearOneAccretionStatus(pct float64) HealthStatus {
	switch {
	case pct > 2:
		return HealthGood
	case pct > 0:
		return HealthFair
	default:
		return HealthPoor
	}
}

func epsStatus(proForma, standalone float64) HealthStatus {
	if proForma >= standalone {
		return HealthGood
	}
	return HealthPoor
}

func synergyPresenceStatus(total float64) HealthStatus {
	if total > 0 {
		return HealthGood
	}
	return HealthFair
}

// assignVerdict renders the final GREEN/YELLOW/RED call on Year 1
// accretion, widening the yellow band for defense deals with strong
// backlog coverage.
func assignVerdict(y1 IncomeStatementYear, defense *DefensePositioning) (Verdict, string) {
	ad := y1.AccretionDilutionPct
	defenseUplift := defense != nil && defense.BacklogCoverage >= 2.0

	switch {
	case ad > 2.0:
		return VerdictGreen, fmt.Sprintf("This deal is accretive to earnings by %+.1f%% in Year 1", ad)
	case ad >= -2.0 || (defenseUplift && ad >= -8.0):
		if defenseUplift && ad < -2.0 {
			return VerdictYellow, fmt.Sprintf("Near-term dilutive (%+.1f%%) but justified by defense backlog", ad)
		}
		return VerdictYellow, fmt.Sprintf("This deal is marginally neutral (%+.1f%% in Year 1)", ad)
	default:
		return VerdictRed, fmt.Sprintf("At this price, the deal destroys near-term earnings by %.1f%%", ad)
	}
}
