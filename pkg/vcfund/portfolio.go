package vcfund

import "fmt"

// computePortfolioStats aggregates a list of positions against a fund
// profile into deployment, concentration, and performance statistics.
func computePortfolioStats(fund FundProfile, positions []PortfolioPosition) PortfolioConstructionStats {
	stats := PortfolioConstructionStats{
		FundSize:          fund.FundSize,
		InvestableCapital: fund.InvestableCapital(),
		InitialCheckPool:  fund.InitialCheckPool(),
		ReservePool:       fund.ReservePool(),
		StageBreakdown:    map[string]float64{},
		VerticalBreakdown: map[string]float64{},
	}

	var totalCostBasis, totalFairValue, realizedProceeds float64
	var followOnMultiples []float64

	for _, p := range positions {
		stats.TotalInitialDeployed += p.CheckSize
		stats.TotalReserveDeployed += p.ReserveDeployed
		stats.CompanyCount++
		stats.StageBreakdown[string(p.StageAtEntry)] += p.CostBasis
		stats.VerticalBreakdown[string(p.Vertical)] += p.CostBasis

		totalCostBasis += p.CostBasis
		if p.FairValue != nil {
			totalFairValue += *p.FairValue
		}
		realizedProceeds += p.RealizedProceeds

		if p.ReserveDeployed > 0 && p.CheckSize > 0 {
			followOnMultiples = append(followOnMultiples, (p.CheckSize+p.ReserveDeployed)/p.CheckSize)
		}

		if stats.FundSize > 0 && p.CostBasis/stats.FundSize > stats.LargestPositionPct {
			stats.LargestPositionPct = p.CostBasis / stats.FundSize
		}
	}

	stats.TotalDeployed = stats.TotalInitialDeployed + stats.TotalReserveDeployed
	if stats.InvestableCapital > 0 {
		stats.PctDeployed = stats.TotalDeployed / stats.InvestableCapital
	}
	stats.InitialRemaining = stats.InitialCheckPool - stats.TotalInitialDeployed
	stats.ReserveRemaining = stats.ReservePool - stats.TotalReserveDeployed
	stats.TotalRemaining = stats.InvestableCapital - stats.TotalDeployed

	stats.TotalCostBasis = totalCostBasis
	stats.TotalFairValue = totalFairValue
	stats.RealizedProceeds = realizedProceeds

	if totalCostBasis > 0 {
		stats.DPI = realizedProceeds / totalCostBasis
		stats.RVPI = totalFairValue / totalCostBasis
		stats.TVPI = stats.DPI + stats.RVPI
		stats.UnrealizedTVPI = stats.RVPI
	}

	switch {
	case stats.ReservePool <= 0:
		stats.ReserveAdequacy = "unknown"
	case stats.TotalReserveDeployed <= stats.ReservePool*0.90:
		stats.ReserveAdequacy = "adequate"
	case stats.TotalReserveDeployed <= stats.ReservePool*1.10:
		stats.ReserveAdequacy = "tight"
	default:
		stats.ReserveAdequacy = "over-reserved"
	}

	if len(followOnMultiples) > 0 {
		var sum float64
		for _, m := range followOnMultiples {
			sum += m
		}
		stats.AverageFollowOnMultiple = sum / float64(len(followOnMultiples))
	}

	return stats
}

// runPortfolioAnalysis builds the full portfolio dashboard: stats, alerts
// for concentration and pacing risk, and plain recommendations.
func runPortfolioAnalysis(fund FundProfile, positions []PortfolioPosition) PortfolioOutput {
	stats := computePortfolioStats(fund, positions)

	var alerts []string
	for vertical, basis := range stats.VerticalBreakdown {
		if stats.TotalCostBasis > 0 && basis/stats.TotalCostBasis > 0.35 {
			alerts = append(alerts, fmt.Sprintf("Vertical concentration: %s is %.0f%% of cost basis", vertical, basis/stats.TotalCostBasis*100))
		}
	}
	if stats.LargestPositionPct > 0.20 {
		alerts = append(alerts, fmt.Sprintf("Single-position concentration: largest position is %.0f%% of fund size", stats.LargestPositionPct*100))
	}
	if stats.ReserveAdequacy == "over-reserved" {
		alerts = append(alerts, "Reserve pool is over-allocated relative to plan")
	}
	if stats.ReserveAdequacy == "tight" {
		alerts = append(alerts, "Reserve pool is running tight relative to plan")
	}
	if stats.PctDeployed > 0.80 {
		alerts = append(alerts, fmt.Sprintf("%.0f%% of investable capital deployed — approaching full deployment", stats.PctDeployed*100))
	}
	if stats.TotalCostBasis > 0 && stats.TVPI < 1.0 {
		alerts = append(alerts, fmt.Sprintf("Portfolio TVPI is below 1.0x (%.2fx)", stats.TVPI))
	}

	var recs []string
	if stats.ReserveAdequacy == "adequate" && stats.PctDeployed < 0.50 {
		recs = append(recs, "Capital remains available for both new checks and follow-ons — pacing is healthy.")
	}
	if len(alerts) == 0 {
		recs = append(recs, "No portfolio construction alerts — concentration and pacing are within plan.")
	}

	return PortfolioOutput{
		Stats:           stats,
		Positions:       positions,
		Alerts:          alerts,
		Recommendations: recs,
	}
}
