package venture

import "fmt"

// stageMonthsToNext is the median months from close of the current round
// to the next round, per market comp data; the raise window opens
// fundraiseProcessMonths before that.
var stageMonthsToNext = map[Stage]float64{
	StagePreSeed: 18.0,
	StageSeed:    24.0,
	StageSeriesA: 0.0, // terminal — no next stage modeled
}

const fundraiseProcessMonths = 6.0

type milestoneCheck struct {
	description string
	check       func(StartupInput) bool
}

var stageMilestones = map[Stage][]milestoneCheck{
	StagePreSeed: {
		{"Working prototype or MVP", func(s StartupInput) bool {
			switch s.Product.Stage {
			case ProductMVP, ProductBeta, ProductPayingCustomers, ProductScaling:
				return true
			}
			return false
		}},
		{"At least 1 paying customer or signed LOI", func(s StartupInput) bool {
			return s.Traction.PayingCustomerCount >= 1 || s.Traction.HasLOIs
		}},
		{"Technical co-founder on team", func(s StartupInput) bool { return s.Team.TechnicalCofounder }},
		{"TAM >= $1B", func(s StartupInput) bool { return s.Market.TAMUSDBillions >= 1.0 }},
	},
	StageSeed: {
		{"$100K+ ARR or strong pilot pipeline", func(s StartupInput) bool {
			return s.Traction.ARR() >= 0.1 || s.Traction.LogoCustomerCount >= 2
		}},
		{"MoM growth >= 10%", func(s StartupInput) bool { return s.Traction.MoMGrowthRate >= 0.10 }},
		{"NRR >= 100%", func(s StartupInput) bool { return s.Traction.NetRevenueRetention >= 1.0 }},
		{">= 3 paying customers", func(s StartupInput) bool { return s.Traction.PayingCustomerCount >= 3 }},
		{"Gross margin >= 60%", func(s StartupInput) bool { return s.Traction.GrossMargin >= 0.60 }},
	},
	StageSeriesA: {
		{"$1M+ ARR", func(s StartupInput) bool { return s.Traction.ARR() >= 1.0 }},
		{"MoM growth >= 15%", func(s StartupInput) bool { return s.Traction.MoMGrowthRate >= 0.15 }},
		{"NRR >= 110%", func(s StartupInput) bool { return s.Traction.NetRevenueRetention >= 1.10 }},
		{">= 10 paying customers", func(s StartupInput) bool { return s.Traction.PayingCustomerCount >= 10 }},
		{"Gross margin >= 70%", func(s StartupInput) bool { return s.Traction.GrossMargin >= 0.70 }},
	},
}

func nextStage(stage Stage) (Stage, bool) {
	switch stage {
	case StagePreSeed:
		return StageSeed, true
	case StageSeed:
		return StageSeriesA, true
	default:
		return "", false
	}
}

// computeRoundTiming recommends whether the founder should raise now,
// raise within the next year, or focus on milestones, and lists the
// milestone gaps for their current stage regardless of the signal.
func computeRoundTiming(s StartupInput) RoundTimingSignal {
	t := s.Traction
	stage := s.Fundraise.Stage

	runwayMonths := 999.0
	if t.MonthlyBurnRate > 0 {
		runwayMonths = t.CashOnHand / t.MonthlyBurnRate
	}

	monthsToNext := stageMonthsToNext[stage]
	monthsUntilWindow := monthsToNext - fundraiseProcessMonths

	var signal RaiseSignal
	var signalLabel, signalDetail string
	var raiseInMonths *float64

	if _, hasNext := nextStage(stage); !hasNext {
		signal = FocusOnMilestones
		signalLabel = "Focus on Growth"
		signalDetail = "You're at Series A — the next raise (Series B) depends on hitting $5-10M ARR and demonstrable unit economics. Focus on growth and efficiency metrics."
	} else {
		switch {
		case runwayMonths < monthsUntilWindow:
			signal = RaiseNow
			signalLabel = "Raise Now"
			signalDetail = fmt.Sprintf(
				"With %.0f months of runway and a typical %.0f-month path to your next round, you need to begin fundraising immediately. Allow %.0f months for the process.",
				runwayMonths, monthsToNext, fundraiseProcessMonths,
			)
		case runwayMonths < monthsUntilWindow+12:
			monthsLeft := runwayMonths - monthsUntilWindow
			if monthsLeft < 1 {
				monthsLeft = 1
			}
			signal = RaiseInMonths
			signalLabel = fmt.Sprintf("Raise in ~%.0f Months", monthsLeft)
			signalDetail = fmt.Sprintf(
				"Your runway supports waiting, but the raise window opens in roughly %.0f months. Use this time to hit key milestones and warm up investor relationships.",
				monthsLeft,
			)
			raiseInMonths = &monthsLeft
		default:
			signal = FocusOnMilestones
			signalLabel = "Focus on Milestones"
			signalDetail = fmt.Sprintf(
				"You have %.0f months of runway — well ahead of the raise window. Prioritize hitting the milestones below to maximize your valuation at the next round.",
				runwayMonths,
			)
		}
	}

	var gaps []string
	metCount := 0
	milestones := stageMilestones[stage]
	for _, m := range milestones {
		if m.check(s) {
			metCount++
		} else {
			gaps = append(gaps, m.description)
		}
	}

	var warnings []string
	if t.MonthlyBurnRate > 0 && runwayMonths < 6 {
		warnings = append(warnings, fmt.Sprintf(
			"Critical: only %.0f months of runway remaining. Fundraising at this stage severely limits negotiating leverage.",
			runwayMonths,
		))
	}
	if t.MonthlyBurnRate == 0 && t.CashOnHand == 0 {
		warnings = append(warnings, "No burn rate or cash data provided — runway estimate is unavailable. Add cash on hand and monthly burn for an accurate timing signal.")
	}

	reportedRunway := runwayMonths
	if reportedRunway >= 999 {
		reportedRunway = 0
	}

	return RoundTimingSignal{
		RunwayMonths:           reportedRunway,
		MonthsToNextRound:      monthsToNext,
		FundraiseProcessMonths: fundraiseProcessMonths,
		MonthsUntilRaiseWindow: monthsUntilWindow,
		Signal:                 signal,
		SignalLabel:            signalLabel,
		SignalDetail:           signalDetail,
		MilestoneGaps:          gaps,
		MilestoneMetCount:      metCount,
		MilestoneTotalCount:    len(milestones),
		RaiseInMonths:          raiseInMonths,
		Warnings:               warnings,
	}
}
