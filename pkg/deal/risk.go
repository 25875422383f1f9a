package deal

import (
	"fmt"
	"sort"

	"dealforge/pkg/bench"
)

// riskFn evaluates one risk dimension and returns nil when nothing is
// flagged for this deal.
type riskFn func() *RiskItem

func leverageRisk(d DealInput) *RiskItem {
	acqDebt := d.Target.AcquisitionPrice * d.Structure.DebtPct
	totalDebt := acqDebt + d.Acquirer.TotalDebt
	combinedEBITDA := d.Acquirer.EBITDA + d.Target.EBITDA
	if combinedEBITDA <= 0 {
		return nil
	}

	leverage := totalDebt / combinedEBITDA
	const thresholdMedium, thresholdCritical = 4.0, 6.0
	if leverage < thresholdMedium {
		return nil
	}

	var severity RiskSeverity
	var description string
	if leverage >= thresholdCritical {
		severity = SeverityCritical
		description = fmt.Sprintf("Debt load is extremely high at %.1fx EBITDA. This level of leverage significantly elevates default risk and will severely restrict the company's financial flexibility.", leverage)
	} else if leverage > 5.0 {
		severity = SeverityHigh
		description = fmt.Sprintf("Post-close leverage of %.1fx EBITDA is above typical comfort levels for most lenders. The business has limited cushion if EBITDA underperforms projections.", leverage)
	} else {
		severity = SeverityMedium
		description = fmt.Sprintf("Post-close leverage of %.1fx EBITDA is above typical comfort levels for most lenders. The business has limited cushion if EBITDA underperforms projections.", leverage)
	}

	safeEBITDA := totalDebt / thresholdCritical
	declinePct := (combinedEBITDA - safeEBITDA) / combinedEBITDA * 100
	if declinePct < 0 {
		declinePct = 0
	}

	return &RiskItem{
		Check:         "Post-Close Debt / EBITDA",
		Severity:      severity,
		CurrentValue:  leverage,
		Threshold:     thresholdCritical,
		ToleranceBand: fmt.Sprintf("Deal hits critical leverage threshold if EBITDA falls by more than %.0f%% (to $%.1fM).", declinePct, safeEBITDA/1e6),
		Summary:       description,
		PlainEnglish:  fmt.Sprintf("For every $1 of annual profit, the combined company owes $%.1f in debt. Most lenders get nervous above $4.", leverage),
	}
}

func synergyExecutionRisk(d DealInput) *RiskItem {
	targetRevenue := d.Target.Revenue
	if targetRevenue <= 0 {
		return nil
	}
	totalSynergies := d.Synergies.TotalAnnual()
	if totalSynergies <= 0 {
		return nil
	}
	synergyPct := totalSynergies / targetRevenue
	const thresholdMedium, thresholdHigh = 0.08, 0.15
	if synergyPct < thresholdMedium {
		return nil
	}

	severity := SeverityMedium
	note := "This is above the typical range for comparable transactions."
	if synergyPct >= thresholdHigh {
		severity = SeverityHigh
		note = "This is an aggressive assumption that is rarely fully achieved."
	}

	return &RiskItem{
		Check:         "Synergies as % of Target Revenue",
		Severity:      severity,
		CurrentValue:  synergyPct * 100,
		Threshold:     thresholdHigh * 100,
		ToleranceBand: fmt.Sprintf("Synergies must exceed $%.1fM/year (3%% of target revenue) for the deal to generate meaningful value.", targetRevenue*0.03/1e6),
		Summary:       fmt.Sprintf("Assumed synergies of $%.1fM represent %.0f%% of target revenue. %s", totalSynergies/1e6, synergyPct*100, note),
		PlainEnglish:  fmt.Sprintf("You're counting on saving $%.1fM per year from combining these companies. Deals that assume large savings often end up capturing only 50-70%% of what was projected.", totalSynergies/1e6),
	}
}

func interestRateSensitivityRisk(d DealInput, incomeStatement []IncomeStatementYear) *RiskItem {
	acqDebt := d.Target.AcquisitionPrice * d.Structure.DebtPct
	if acqDebt <= 0 {
		return nil
	}

	blendedRate := 0.08
	if len(d.Structure.DebtTranches) > 0 {
		var totalDebtAmt, weighted float64
		for _, t := range d.Structure.DebtTranches {
			totalDebtAmt += t.Amount
			weighted += t.Amount * t.InterestRate
		}
		if totalDebtAmt > 0 {
			blendedRate = weighted / totalDebtAmt
		}
	}

	taxRate := d.Acquirer.TaxRate
	shares := d.Acquirer.SharesOutstanding
	if shares <= 0 {
		return nil
	}
	epsDragPer100bp := (acqDebt * 0.01 * (1 - taxRate)) / shares

	if len(incomeStatement) == 0 {
		return nil
	}
	y1 := incomeStatement[0]
	currentEPSAccretion := y1.ProFormaEPS - y1.StandaloneEPS
	if currentEPSAccretion <= 0 || epsDragPer100bp <= 0 {
		return nil
	}

	breakeven100bp := currentEPSAccretion / epsDragPer100bp
	breakevenBP := breakeven100bp * 100
	breakevenRate := blendedRate + breakevenBP/10000

	if breakevenBP >= 200 {
		return nil
	}

	severity := SeverityMedium
	if breakevenBP < 100 {
		severity = SeverityHigh
	}

	return &RiskItem{
		Check:         "Rate Increase to Dilution (bp)",
		Severity:      severity,
		CurrentValue:  breakevenBP,
		Threshold:     200.0,
		ToleranceBand: fmt.Sprintf("Deal remains accretive as long as borrowing rates stay below %.2f%%.", breakevenRate*100),
		Summary:       fmt.Sprintf("The deal is sensitive to interest rate changes. A rate increase of just %.0f basis points (%.2f%%) would eliminate all earnings benefit from the acquisition.", breakevenBP, breakevenBP/100),
		PlainEnglish:  fmt.Sprintf("If interest rates rise by more than %.0f basis points (%.2f%%), this deal stops adding value. Current rates leave limited room for error.", breakevenBP, breakevenBP/100),
	}
}

func purchasePriceRisk(d DealInput, benchmarks *bench.Table) *RiskItem {
	targetEBITDA := d.Target.EBITDA
	if targetEBITDA <= 0 {
		return nil
	}

	entryMultiple := d.Target.AcquisitionPrice / targetEBITDA
	ind, _ := benchmarks.Industry(string(d.Target.Industry))
	medianMultiple := ind.EVToEBITDA.Median
	highMultiple := ind.EVToEBITDA.High
	overpayThreshold := medianMultiple * 1.5

	if entryMultiple < highMultiple {
		return nil
	}

	severity := SeverityMedium
	if entryMultiple > overpayThreshold {
		severity = SeverityHigh
	}
	pctAboveMedian := (entryMultiple - medianMultiple) / medianMultiple * 100

	return &RiskItem{
		Check:         "Entry EV/EBITDA Multiple",
		Severity:      severity,
		CurrentValue:  entryMultiple,
		Threshold:     overpayThreshold,
		ToleranceBand: fmt.Sprintf("At the current price, EBITDA must grow to $%.1fM to reach a fair %.1fx multiple.", d.Target.AcquisitionPrice/medianMultiple/1e6, medianMultiple),
		Summary:       fmt.Sprintf("You're paying %.1fx EBITDA for the target, which is %.0f%% above the typical %.1fx for %s companies. High entry prices require exceptional execution to generate returns.", entryMultiple, pctAboveMedian, medianMultiple, d.Target.Industry),
		PlainEnglish:  fmt.Sprintf("You're paying a premium price — %.1fx annual earnings, vs the typical %.1fx for this type of business. You're betting on above-average performance to earn this back.", entryMultiple, medianMultiple),
	}
}

func integrationCostRisk(d DealInput) *RiskItem {
	var year1Synergies, totalCostToAchieve float64
	all := append(append([]SynergyItem(nil), d.Synergies.CostSynergies...), d.Synergies.RevenueSynergies...)
	for _, s := range all {
		if s.PhaseInYears > 0 {
			year1Synergies += s.AnnualAmount / float64(s.PhaseInYears)
		}
		totalCostToAchieve += s.CostToAchieve
	}

	if year1Synergies <= 0 || totalCostToAchieve <= 0 {
		return nil
	}

	ratio := totalCostToAchieve / year1Synergies
	if ratio <= 1.0 {
		return nil
	}

	severity := SeverityMedium
	if ratio > 2.0 {
		severity = SeverityHigh
	}

	return &RiskItem{
		Check:         "Integration Costs / Year 1 Synergies",
		Severity:      severity,
		CurrentValue:  ratio,
		Threshold:     1.0,
		ToleranceBand: fmt.Sprintf("Breakeven on integration investment occurs when cumulative synergies reach $%.1fM — approximately %.1f years at current phase-in.", totalCostToAchieve/1e6, ratio),
		Summary:       fmt.Sprintf("One-time integration costs of $%.1fM exceed Year 1 synergy benefits of $%.1fM by %.1fx. The deal will be cash flow negative in the near term.", totalCostToAchieve/1e6, year1Synergies/1e6, ratio),
		PlainEnglish:  fmt.Sprintf("The costs of combining these companies ($%.1fM) outweigh what you'll save in the first year. You're investing upfront for future payoff.", totalCostToAchieve/1e6),
	}
}

func revenueSynergyConcentrationRisk(d DealInput) *RiskItem {
	var totalCost, totalRevenue float64
	for _, s := range d.Synergies.CostSynergies {
		totalCost += s.AnnualAmount
	}
	for _, s := range d.Synergies.RevenueSynergies {
		totalRevenue += s.AnnualAmount
	}
	total := totalCost + totalRevenue
	if total <= 0 || totalRevenue <= 0 {
		return nil
	}

	revPct := totalRevenue / total
	if revPct < 0.50 {
		return nil
	}

	severity := SeverityMedium
	if revPct > 0.70 {
		severity = SeverityHigh
	}

	return &RiskItem{
		Check:         "Revenue Synergy % of Total",
		Severity:      severity,
		CurrentValue:  revPct * 100,
		Threshold:     50.0,
		ToleranceBand: fmt.Sprintf("Deal economics hold even if revenue synergies are zero, as long as cost synergies of $%.1fM are achieved.", totalCost/1e6),
		Summary:       fmt.Sprintf("%.0f%% of your projected synergies come from revenue growth — selling more by combining the companies. Revenue synergies are significantly harder to achieve than cost synergies and often take longer to materialize.", revPct*100),
		PlainEnglish:  "You're counting on growing revenue by combining these companies. That's harder than cutting costs — customers don't always respond the way you expect when companies merge.",
	}
}

// analyzeRisks runs every risk dimension and returns the flagged items
// sorted critical -> high -> medium -> low. Each analyzer is independent
// and pure; none can fail the overall deal analysis.
func analyzeRisks(d DealInput, incomeStatement []IncomeStatementYear, bridge []AccretionDilutionBridge, credit []CreditMetrics, returns ReturnsAnalysis, benchmarks *bench.Table) []RiskItem {
	fns := []riskFn{
		func() *RiskItem { return leverageRisk(d) },
		func() *RiskItem { return synergyExecutionRisk(d) },
		func() *RiskItem { return interestRateSensitivityRisk(d, incomeStatement) },
		func() *RiskItem { return purchasePriceRisk(d, benchmarks) },
		func() *RiskItem { return integrationCostRisk(d) },
		func() *RiskItem { return revenueSynergyConcentrationRisk(d) },
	}

	var risks []RiskItem
	for _, fn := range fns {
		if r := fn(); r != nil {
			risks = append(risks, *r)
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Severity.rank() < risks[j].Severity.rank()
	})
	return risks
}
