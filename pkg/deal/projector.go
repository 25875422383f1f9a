package deal

import (
	"github.com/google/uuid"

	"dealforge/pkg/bench"
)

// synthesizeTranche builds a single acquisition term loan when the deal
// structure carries no explicit debt tranches, using a size-scaled blended
// interest rate as a smart default.
func synthesizeTranche(d DealInput) []DebtTranche {
	acqDebt := d.Target.AcquisitionPrice * d.Structure.DebtPct
	if acqDebt <= 0 {
		return nil
	}
	return []DebtTranche{{
		Name:         "Acquisition Term Loan",
		Amount:       acqDebt,
		InterestRate: bench.BlendedInterestRate(d.Target.AcquisitionPrice),
		TermYears:    7,
		Amortization: AmortizationStraightLine,
	}}
}

// ProjectOptions controls a single projector invocation. ProjectCore does
// not read IncludeSensitivity: it never generates sensitivity matrices,
// whatever the flag says, so re-invoking it from the sensitivity engine
// cannot recurse.
type ProjectOptions struct {
	IncludeSensitivity bool
}

// ProjectCore runs the deterministic core of the deal model: purchase price
// allocation, the debt circularity solve, the pro-forma income statement and
// accretion/dilution bridge, the balance sheet at close, returns, risk, and
// the scorecard/verdict. It never generates sensitivity matrices itself —
// that is ProjectFull's job, to keep this function safe to call repeatedly
// from inside the sensitivity engine.
func ProjectCore(d DealInput, benchmarks *bench.Table, _ ProjectOptions) (*DealOutput, error) {
	ppa := computePPA(d)
	txCosts := transactionCosts(d)
	var notes []string

	tranches := d.Structure.DebtTranches
	if len(tranches) == 0 {
		tranches = synthesizeTranche(d)
	}
	var acqDebtTotal float64
	for _, t := range tranches {
		acqDebtTotal += t.Amount
	}

	nYears := d.ProjectionYears
	acq := d.Acquirer.CompanyProfile
	tgt := d.Target

	acqEBITDAMargin := acq.EBITDAMargin()
	if acq.Revenue <= 0 {
		acqEBITDAMargin = 0.15
	}
	tgtEBITDAMargin := tgt.EBITDAMargin()
	if tgt.Revenue <= 0 {
		tgtEBITDAMargin = 0.12
	}

	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	acqGrossMarginBase := clamp(acqEBITDAMargin+0.20, 0.1, 0.95)
	tgtGrossMarginBase := clamp(tgtEBITDAMargin+0.20, 0.1, 0.95)

	acqStandaloneEPS := acq.EPS()

	var newSharesIssued float64
	if d.Structure.StockPct > 0 && acq.SharePrice > 0 {
		stockConsideration := tgt.AcquisitionPrice * d.Structure.StockPct
		newSharesIssued = stockConsideration / acq.SharePrice
	}
	totalSharesProForma := acq.SharesOutstanding + newSharesIssued

	rawEBITDA := make([]float64, nYears)
	rawDA := make([]float64, nYears)
	rawCapex := make([]float64, nYears)
	for yr := 1; yr <= nYears; yr++ {
		acqRevYr := acq.Revenue * pow1p(AcqGrowthRate, yr)
		tgtRevYr := tgt.Revenue * pow1p(tgt.RevenueGrowth, yr)
		rawEBITDA[yr-1] = acqRevYr*acqEBITDAMargin + tgtRevYr*tgtEBITDAMargin
		rawDA[yr-1] = acq.DA + tgt.DA + ppa.TotalIncrementalAnnual
		rawCapex[yr-1] = acq.Capex + tgt.Capex
	}

	debtSchedules, anyNonConvergence := buildDebtSchedule(tranches, nYears, rawEBITDA, rawDA, rawCapex, acq.TaxRate, nil)
	if anyNonConvergence {
		notes = append(notes, "debt circularity solver did not fully converge in some years; results are estimates")
	}

	incomeStatement := make([]IncomeStatementYear, 0, nYears)
	bridge := make([]AccretionDilutionBridge, 0, nYears)
	ebitdaByYear := make([]float64, nYears)
	netIncomeByYear := make([]float64, nYears)
	endingDebtByYear := make([]float64, nYears)
	fcfByYear := make([]float64, nYears)

	for yr := 1; yr <= nYears; yr++ {
		ds := debtSchedules[yr-1]

		acqRevYr := acq.Revenue * pow1p(AcqGrowthRate, yr)
		tgtRevYr := tgt.Revenue * pow1p(tgt.RevenueGrowth, yr)
		combinedRev := acqRevYr + tgtRevYr

		revSynYr := d.Synergies.revenueYear(yr)
		totalRev := combinedRev + revSynYr

		combinedCOGS := acqRevYr*(1-acqGrossMarginBase) + tgtRevYr*(1-tgtGrossMarginBase)
		costSynYr := d.Synergies.costYear(yr)

		grossProfit := totalRev - combinedCOGS

		acqSGA := acqRevYr * (acqGrossMarginBase - acqEBITDAMargin)
		tgtSGA := tgtRevYr * (tgtGrossMarginBase - tgtEBITDAMargin)
		combinedSGA := acqSGA + tgtSGA - costSynYr

		ebitda := grossProfit - combinedSGA

		daTotal := acq.DA*pow1p(AcqGrowthRate, yr) + tgt.DA*pow1p(tgt.RevenueGrowth, yr) + ppa.TotalIncrementalAnnual
		ebit := ebitda - daTotal

		interestExp := ds.TotalInterest
		ebt := ebit - interestExp

		var yearTxCosts float64
		if yr == 1 {
			ebt -= txCosts
			yearTxCosts = txCosts
		}

		taxes := ebt * acq.TaxRate
		if taxes < 0 {
			taxes = 0
		}
		netIncome := ebt - taxes

		var proFormaEPS float64
		if totalSharesProForma > 0 {
			proFormaEPS = netIncome / totalSharesProForma
		}

		standaloneEPSYr := acqStandaloneEPS * pow1p(0.03, yr)
		var accretionDilutionPct float64
		if standaloneEPSYr != 0 {
			accretionDilutionPct = (proFormaEPS - standaloneEPSYr) / absf(standaloneEPSYr) * 100
		}

		capexYr := acq.Capex + tgt.Capex
		fcfYr := netIncome + daTotal - capexYr - ds.TotalOptional

		ebitdaByYear[yr-1] = ebitda
		netIncomeByYear[yr-1] = netIncome
		endingDebtByYear[yr-1] = ds.TotalEndingBalance
		fcfByYear[yr-1] = fcfYr

		incomeStatement = append(incomeStatement, IncomeStatementYear{
			Year:                 yr,
			Revenue:              totalRev,
			COGS:                 combinedCOGS,
			GrossProfit:          grossProfit,
			SGA:                  combinedSGA,
			EBITDA:               ebitda,
			DA:                   daTotal,
			EBIT:                 ebit,
			InterestExpense:      interestExp,
			EBT:                  ebt,
			Taxes:                taxes,
			NetIncome:            netIncome,
			StandaloneEPS:        standaloneEPSYr,
			ProFormaEPS:          proFormaEPS,
			AccretionDilutionPct: accretionDilutionPct,
			FreeCashFlow:         fcfYr,
			TransactionCosts:     yearTxCosts,
		})

		bridge = append(bridge, buildBridgeYear(yr, acq, tgt, standaloneEPSYr, totalSharesProForma, newSharesIssued, interestExp, ppa, costSynYr, revSynYr, proFormaEPS, accretionDilutionPct))
	}

	balanceSheet := buildBalanceSheet(d, acq, tgt, ppa, acqDebtTotal, newSharesIssued)
	sourcesUses := buildSourcesAndUses(d, ppa, txCosts, acqDebtTotal, newSharesIssued)
	contribution := buildContribution(acq, tgt, newSharesIssued)
	implied := ImpliedValuation{
		EVToEBITDA:  safeDiv(tgt.AcquisitionPrice, tgt.EBITDA),
		EVToRevenue: safeDiv(tgt.AcquisitionPrice, tgt.Revenue),
	}

	creditMetrics := make([]CreditMetrics, nYears)
	for i := 0; i < nYears; i++ {
		creditMetrics[i] = CreditMetrics{
			Year:             i + 1,
			NetDebtToEBITDA:  safeDiv(endingDebtByYear[i], ebitdaByYear[i]),
			InterestCoverage: safeDiv(ebitdaByYear[i], debtSchedules[i].TotalInterest),
		}
	}

	returns := computeReturns(d, ebitdaByYear, netIncomeByYear, endingDebtByYear, fcfByYear)

	risks := analyzeRisks(d, incomeStatement, bridge, creditMetrics, returns, benchmarks)

	var defense *DefensePositioning
	if d.Defense != nil {
		defense = buildDefensePositioning(*d.Defense)
	}

	scorecard, verdict, headline := buildScorecard(d, incomeStatement, returns, acqDebtTotal, endingDebtByYear, benchmarks, defense)

	out := &DealOutput{
		IncomeStatement:     incomeStatement,
		Bridge:              bridge,
		DebtSchedule:        debtSchedules,
		BalanceSheetAtClose: balanceSheet,
		SourcesAndUses:      sourcesUses,
		Contribution:        contribution,
		CreditMetrics:       creditMetrics,
		ImpliedValuation:    implied,
		Returns:             returns,
		Risks:               risks,
		Scorecard:           scorecard,
		Verdict:             verdict,
		VerdictHeadline:     headline,
		Defense:             defense,
		ConvergenceWarning:  anyNonConvergence,
		ComputationNotes:    notes,
		ComputationID:       uuid.NewString(),
	}
	return out, nil
}

// ProjectFull runs ProjectCore for the base case and then generates the
// sensitivity matrices by re-invoking ProjectCore against perturbed clones
// of the input, with sensitivity generation suppressed on each re-entry.
func ProjectFull(d DealInput, benchmarks *bench.Table) (*DealOutput, error) {
	out, err := ProjectCore(d, benchmarks, ProjectOptions{IncludeSensitivity: false})
	if err != nil {
		return nil, err
	}
	accretionFn := func(modified DealInput) float64 {
		result, err := ProjectCore(modified, benchmarks, ProjectOptions{IncludeSensitivity: false})
		if err != nil || len(result.IncomeStatement) == 0 {
			return 0
		}
		return result.IncomeStatement[0].AccretionDilutionPct / 100
	}
	out.Sensitivity = generateAllSensitivityMatrices(d, accretionFn)
	return out, nil
}

// RunDeal is the package's single public entry point: validate, then
// project the full deal including sensitivity matrices.
func RunDeal(input DealInput, benchmarks *bench.Table) (*DealOutput, error) {
	validated, err := NewDealInput(input)
	if err != nil {
		return nil, err
	}
	return ProjectFull(*validated, benchmarks)
}

func pow1p(rate float64, n int) float64 {
	v := 1.0
	base := 1 + rate
	for i := 0; i < n; i++ {
		v *= base
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func (s Synergies) costYear(year int) float64 {
	var total float64
	for _, item := range s.CostSynergies {
		total += item.RealizedValue(year)
	}
	return total
}

func (s Synergies) revenueYear(year int) float64 {
	var total float64
	for _, item := range s.RevenueSynergies {
		total += item.RealizedValue(year)
	}
	return total
}

// buildBridgeYear reconstructs the accretion/dilution bridge for one year.
// Five components are computed explicitly from the deal's economics; the
// sixth, TaxImpact, is the reconciling residual that makes the bridge sum
// exactly to the income statement's own EPS delta.
func buildBridgeYear(yr int, acq CompanyProfile, tgt TargetProfile, standaloneEPSYr, totalSharesProForma, newSharesIssued, interestExp float64, ppa PPAResult, costSynYr, revSynYr, proFormaEPS, accretionDilutionPct float64) AccretionDilutionBridge {
	acqStandaloneNIYr := standaloneEPSYr * acq.SharesOutstanding
	targetNIYr := tgt.NetIncome * pow1p(tgt.RevenueGrowth, yr)

	var targetEarningsContribution, interestDrag, daAdj, synBenefit float64
	if totalSharesProForma > 0 {
		targetEarningsContribution = targetNIYr / totalSharesProForma
		interestDrag = -(interestExp * (1 - acq.TaxRate)) / totalSharesProForma
		daAdj = -(ppa.TotalIncrementalAnnual * (1 - acq.TaxRate)) / totalSharesProForma
		synBenefit = ((costSynYr + revSynYr) * (1 - acq.TaxRate)) / totalSharesProForma
	}

	var shareDilution float64
	if newSharesIssued > 0 && totalSharesProForma > 0 {
		shareDilution = -((acqStandaloneNIYr / totalSharesProForma) - standaloneEPSYr)
	}

	componentsSum := targetEarningsContribution + interestDrag + daAdj + synBenefit + shareDilution
	actualEPSDelta := proFormaEPS - standaloneEPSYr
	taxImpact := actualEPSDelta - componentsSum

	return AccretionDilutionBridge{
		Year:                       yr,
		TargetEarningsContribution: targetEarningsContribution,
		InterestDrag:               interestDrag,
		DAAdjustment:               daAdj,
		SynergyBenefit:             synBenefit,
		ShareDilution:              shareDilution,
		TaxImpact:                  taxImpact,
	}
}

// buildBalanceSheet assembles the simplified opening balance sheet at
// close. Combined assets use the same heuristic proxy as the original
// model (revenue × a rough multiplier) rather than a full target balance
// sheet — an explicit scope decision, not an omission.
func buildBalanceSheet(d DealInput, acq CompanyProfile, tgt TargetProfile, ppa PPAResult, acqDebtTotal, newSharesIssued float64) BalanceSheetAtClose {
	acqCombinedAssets := acq.Revenue*1.2 + ppa.Goodwill + ppa.IdentifiableIntangibles + ppa.AssetWriteup
	combinedTotalAssets := acqCombinedAssets + tgt.Revenue*0.8

	combinedTotalLiabilities := acq.TotalDebt + acqDebtTotal + ppa.DeferredTaxLiability
	combinedEquity := acq.MarketCap() + newSharesIssued*acq.SharePrice

	return BalanceSheetAtClose{
		Goodwill:                ppa.Goodwill,
		IdentifiableIntangibles: ppa.IdentifiableIntangibles,
		PPEWriteup:              ppa.AssetWriteup,
		NewAcquisitionDebt:      acqDebtTotal,
		CashUsed:                tgt.AcquisitionPrice * d.Structure.CashPct,
		SharesIssued:            newSharesIssued,
		CombinedAssets:          combinedTotalAssets,
		CombinedLiabilities:     combinedTotalLiabilities,
		CombinedEquity:          combinedEquity,
		DeferredTaxLiability:    ppa.DeferredTaxLiability,
	}
}

func buildSourcesAndUses(d DealInput, ppa PPAResult, txCosts, acqDebtTotal, newSharesIssued float64) SourcesAndUses {
	usesTotal := ppa.PurchasePrice + txCosts
	return SourcesAndUses{
		UsesPurchasePrice: ppa.PurchasePrice,
		UsesFees:          txCosts,
		UsesTotal:         usesTotal,
		SourcesNewDebt:    acqDebtTotal,
		SourcesStock:      newSharesIssued * d.Acquirer.SharePrice,
		SourcesCash:       ppa.PurchasePrice * d.Structure.CashPct,
		SourcesTotal:      acqDebtTotal + newSharesIssued*d.Acquirer.SharePrice + ppa.PurchasePrice*d.Structure.CashPct,
	}
}

// buildContribution compares each party's share of combined financial
// metrics against its resulting ownership of the pro-forma cap table — the
// standard "are you overpaying for what you're contributing" sanity check.
func buildContribution(acq CompanyProfile, tgt TargetProfile, newSharesIssued float64) ContributionAnalysis {
	combinedRevenue := acq.Revenue + tgt.Revenue
	combinedEBITDA := acq.EBITDA + tgt.EBITDA
	combinedNetIncome := acq.NetIncome + tgt.NetIncome
	totalShares := acq.SharesOutstanding + newSharesIssued

	return ContributionAnalysis{
		AcquirerRevenuePct:   safeDiv(acq.Revenue, combinedRevenue),
		TargetRevenuePct:     safeDiv(tgt.Revenue, combinedRevenue),
		AcquirerEBITDAPct:    safeDiv(acq.EBITDA, combinedEBITDA),
		TargetEBITDAPct:      safeDiv(tgt.EBITDA, combinedEBITDA),
		AcquirerNetIncomePct: safeDiv(acq.NetIncome, combinedNetIncome),
		TargetNetIncomePct:   safeDiv(tgt.NetIncome, combinedNetIncome),
		AcquirerOwnershipPct: safeDiv(acq.SharesOutstanding, totalShares),
		TargetOwnershipPct:   safeDiv(newSharesIssued, totalShares),
	}
}

// buildDefensePositioning passes through the defense-sector profile and
// computes backlog coverage for the output.
func buildDefensePositioning(in DefensePositioningInput) *DefensePositioning {
	return &DefensePositioning{
		ClearanceLevel:    in.ClearanceLevel,
		Backlog:           in.Backlog,
		BacklogCoverage:   in.BacklogCoverage(),
		Certifications:    append([]string(nil), in.Certifications...),
		ContractVehicles:  append([]string(nil), in.ContractVehicles...),
		YellowBandWidened: in.BacklogCoverage() >= 2.0,
	}
}
