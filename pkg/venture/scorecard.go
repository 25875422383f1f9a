package venture

import (
	"fmt"

	"dealforge/pkg/bench"
)

// burnMultipleLabel classifies annualized burn per dollar of ARR into the
// standard Series A diligence bands.
func burnMultipleLabel(burnMult float64) (Signal, string) {
	switch {
	case burnMult <= 1.0:
		return SignalStrong, "Exceptional (<=1.0x)"
	case burnMult <= 1.5:
		return SignalFair, "Great (1.0-1.5x)"
	case burnMult <= 2.5:
		return SignalWeak, "Average (1.5-2.5x)"
	default:
		return SignalWarning, "Red flag (>2.5x)"
	}
}

func nrrLabel(nrr float64) (Signal, string) {
	switch {
	case nrr >= 1.40:
		return SignalStrong, "Elite (140%+)"
	case nrr >= 1.20:
		return SignalStrong, "Excellent (120-139%)"
	case nrr >= 1.10:
		return SignalFair, "Good (110-119%)"
	case nrr >= 1.00:
		return SignalFair, "Stable (100-109%)"
	case nrr >= 0.80:
		return SignalWeak, "Eroding (80-99%)"
	default:
		return SignalWarning, "Severe churn (<80%)"
	}
}

// buildInvestorScorecard assembles the investor-grade signal flags shown
// alongside the headline valuation.
func buildInvestorScorecard(s StartupInput, blended float64, stage VentureStageBenchmark) []ScorecardFlag {
	var flags []ScorecardFlag
	t := s.Traction
	team := s.Team

	if t.MonthlyBurnRate > 0 && (t.MonthlyRecurringRevenue > 0 || t.AnnualRecurringRevenue > 0) {
		arr := t.ARR()
		burnMult := 99.0
		if arr > 0 {
			burnMult = (t.MonthlyBurnRate * 12) / arr
		}
		signal, label := burnMultipleLabel(burnMult)
		flags = append(flags, ScorecardFlag{
			Metric:     "Burn Multiple",
			Value:      fmt.Sprintf("%.1fx", burnMult),
			Signal:     signal,
			Benchmark:  label,
			Commentary: "Annualized burn per dollar of ARR. Below 1.5x is strong; above 2.5x is a Series A red flag.",
		})
	}

	if t.HasRevenue && t.NetRevenueRetention > 0 {
		signal, label := nrrLabel(t.NetRevenueRetention)
		flags = append(flags, ScorecardFlag{
			Metric:     "Net Revenue Retention",
			Value:      fmt.Sprintf("%.0f%%", t.NetRevenueRetention*100),
			Signal:     signal,
			Benchmark:  label,
			Commentary: "The single most powerful valuation driver for SaaS. Below 100% = erosion; above 120% = expansion engine.",
		})
	}

	teamSignal := SignalFair
	teamValue := "Standard"
	switch {
	case team.PriorExits >= 1 || (team.DomainExperts && team.RepeatFounder):
		teamSignal = SignalStrong
		if team.PriorExits >= 1 {
			teamValue = "Prior exit"
		} else {
			teamValue = "Domain expert"
		}
	case !team.TechnicalCofounder:
		teamSignal = SignalWeak
	case team.DomainExperts:
		teamValue = "Domain expert"
	}
	flags = append(flags, ScorecardFlag{
		Metric:     "Team Quality",
		Value:      teamValue,
		Signal:     teamSignal,
		Benchmark:  "30% of Berkus/Scorecard weight; prior exit = immediate $1-5M premium",
		Commentary: "Team is the dominant variable at pre-seed. Prior exits, domain expertise, and technical depth matter most.",
	})

	tam := s.Market.TAMUSDBillions
	tamSignal := SignalWarning
	switch {
	case tam >= 10:
		tamSignal = SignalStrong
	case tam >= 1:
		tamSignal = SignalFair
	}
	flags = append(flags, ScorecardFlag{
		Metric:     "Total Addressable Market",
		Value:      fmt.Sprintf("$%.0fB", tam),
		Signal:     tamSignal,
		Benchmark:  "VC threshold: $1B+ TAM minimum; $10B+ for top-tier institutional seed",
		Commentary: "Market ceiling limits valuation upside. Even with 100% capture, the math needs to support 10x fund returns.",
	})

	if blended > 0 && stage.ValuationP50 > 0 {
		var vsSignal Signal
		var vsLabel string
		switch {
		case blended >= stage.ValuationP75:
			vsSignal, vsLabel = SignalWarning, "Top quartile — above-average growth required to sustain at next round"
		case blended >= stage.ValuationP50:
			vsSignal, vsLabel = SignalFair, "Median range — market-rate terms"
		case blended >= stage.ValuationP25:
			vsSignal, vsLabel = SignalWeak, "Bottom quartile — re-evaluate traction or team before raising"
		default:
			vsSignal, vsLabel = SignalWarning, "Below P25 — consider bridge round or additional milestones first"
		}
		flags = append(flags, ScorecardFlag{
			Metric:     "Valuation vs. Benchmark",
			Value:      fmt.Sprintf("$%.1fM", blended),
			Signal:     vsSignal,
			Benchmark:  fmt.Sprintf("P25 $%.0fM | P50 $%.0fM | P75 $%.0fM", stage.ValuationP25, stage.ValuationP50, stage.ValuationP75),
			Commentary: vsLabel,
		})
	}

	if t.MonthlyBurnRate > 0 {
		runwayMonths := t.CashOnHand / t.MonthlyBurnRate
		runwaySignal := SignalWarning
		switch {
		case runwayMonths >= 18:
			runwaySignal = SignalStrong
		case runwayMonths >= 12:
			runwaySignal = SignalFair
		}
		flags = append(flags, ScorecardFlag{
			Metric:     "Current Runway",
			Value:      fmt.Sprintf("%.0f months", runwayMonths),
			Signal:     runwaySignal,
			Benchmark:  "18+ months post-close is the standard investor expectation",
			Commentary: "Short runway limits negotiating leverage. Raise when you have 12+ months remaining.",
		})
	}

	return flags
}

// assignVerdict renders the overall valuation call against the vertical's
// benchmark distribution.
func assignVerdict(blended float64, stage VentureStageBenchmark) (Verdict, string, string) {
	if stage.ValuationP50 <= 0 {
		return VerdictFair, "Indicative range computed", "Limited benchmarks available for this vertical/stage combination."
	}

	switch {
	case blended >= stage.ValuationP75:
		return VerdictStretched, "Above-market valuation — strong story required", fmt.Sprintf(
			"Your indicated $%.1fM is in the top quartile for this vertical/stage (P75 = $%.0fM). This is achievable with an exceptional team or breakout traction, but requires roughly 3x ARR growth before the next round to avoid a flat or down round.",
			blended, stage.ValuationP75,
		)
	case blended >= stage.ValuationP50:
		return VerdictStrong, "Well-positioned at median to top-half range", fmt.Sprintf(
			"Your indicated $%.1fM sits between the P50 ($%.0fM) and P75 ($%.0fM) for your vertical. You have pricing power. Standard terms apply.",
			blended, stage.ValuationP50, stage.ValuationP75,
		)
	case blended >= stage.ValuationP25:
		return VerdictFair, "Market-rate — room to grow before raising", fmt.Sprintf(
			"Your indicated $%.1fM is in the P25-P50 range ($%.0fM-$%.0fM). Consider adding 1-2 additional milestones to strengthen your position before committing to a cap.",
			blended, stage.ValuationP25, stage.ValuationP50,
		)
	default:
		return VerdictAtRisk, "Below-market — milestone first, then raise", fmt.Sprintf(
			"Your indicated $%.1fM is below the P25 ($%.0fM) for your vertical/stage. Focus on reaching a clear product or traction milestone before formalizing the round.",
			blended, stage.ValuationP25,
		)
	}
}

func percentileLabel(blended float64, stage VentureStageBenchmark) string {
	switch {
	case stage.ValuationP95 > 0 && blended >= stage.ValuationP95:
		return "top 5%"
	case stage.ValuationP75 > 0 && blended >= stage.ValuationP75:
		return "top quartile (P75-P95)"
	case stage.ValuationP50 > 0 && blended >= stage.ValuationP50:
		return "top half (P50-P75)"
	case stage.ValuationP25 > 0 && blended >= stage.ValuationP25:
		return "bottom half (P25-P50)"
	default:
		return "bottom quartile (below P25)"
	}
}

var _ = bench.VentureStageBenchmark{}
