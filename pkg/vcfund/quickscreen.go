package vcfund

import (
	"fmt"
	"strings"

	"dealforge/pkg/bench"
)

// ownershipAdequacy labels how close entry ownership comes to the fund's
// target ownership percentage.
func ownershipAdequacy(entryPct, targetPct float64) string {
	if targetPct <= 0 {
		return "unknown"
	}
	ratio := entryPct / targetPct
	switch {
	case ratio >= 0.90:
		return "strong"
	case ratio >= 0.70:
		return "acceptable"
	default:
		return "thin"
	}
}

// computeQuickScreen produces the one-page pass/look-deeper/strong-interest
// screen: ownership adequacy, check-size and valuation sanity checks, the
// fund-returner bar, and a runway flag, synthesized into a single call.
func computeQuickScreen(d DealInput, fund FundProfile, om OwnershipMath, bear, base, bull Scenario, benchmarks *bench.Table) QuickScreenResult {
	vcBench, _ := benchmarks.VCStage(string(d.Vertical), string(d.Stage))

	adequacy := ownershipAdequacy(om.EntryOwnershipPct, fund.TargetOwnershipPct)

	var flags []string

	if d.CheckSize > fund.TargetInitialCheckSize()*1.5 {
		flags = append(flags, fmt.Sprintf(
			"Check size $%.1fM is more than 1.5x the fund's target initial check ($%.1fM)",
			d.CheckSize, fund.TargetInitialCheckSize(),
		))
	}
	if vcBench.MedianPostMoney > 0 && d.PostMoneyValuation > vcBench.MedianPostMoney*1.5 {
		flags = append(flags, fmt.Sprintf(
			"Post-money $%.1fM is more than 1.5x the %s/%s median ($%.1fM)",
			d.PostMoneyValuation, d.Vertical, d.Stage, vcBench.MedianPostMoney,
		))
	}
	if om.FundReturner1xExit > 0 && base.ExitEnterpriseValue < om.FundReturner1xExit {
		flags = append(flags, fmt.Sprintf(
			"Base case exit EV ($%.0fM) is below the fund-returner threshold ($%.0fM)",
			base.ExitEnterpriseValue, om.FundReturner1xExit,
		))
	}
	if rw := runwayMonths(d.CashOnHand, d.BurnRateMonthly); rw != nil && *rw < 12 {
		flags = append(flags, fmt.Sprintf("Short runway: %.0f months of cash at current burn", *rw))
	}
	if vcBench.MedianARRMultiple > 0 && d.ARR > 0 {
		impliedMultiple := d.PostMoneyValuation / d.ARR
		if impliedMultiple > vcBench.MedianARRMultiple*1.5 {
			flags = append(flags, fmt.Sprintf(
				"Implied ARR multiple %.1fx is more than 1.5x the %s/%s median (%.1fx)",
				impliedMultiple, d.Vertical, d.Stage, vcBench.MedianARRMultiple,
			))
		}
	}

	seriousCount := 0
	for _, f := range flags {
		lower := strings.ToLower(f)
		if strings.Contains(lower, "thin") || strings.Contains(lower, "below the fund-returner") || strings.Contains(lower, "short runway") {
			seriousCount++
		}
	}
	if adequacy == "thin" {
		seriousCount++
	}

	var rec Recommendation
	var rationale string
	switch {
	case base.GrossMOIC >= 10 && (adequacy == "strong" || adequacy == "acceptable") && seriousCount == 0:
		rec = RecStrongInterest
		rationale = "Base case clears 10x MOIC with adequate ownership and no serious flags."
	case base.GrossMOIC >= 5 && seriousCount <= 1:
		rec = RecLookDeeper
		rationale = "Base case clears 5x MOIC with at most one serious flag — worth a closer look."
	default:
		rec = RecPass
		rationale = "Base case MOIC or flag count falls short of the fund's strong-interest or look-deeper bar."
	}

	var arrMultiple *float64
	if om.RequiredARRMultipleFor1xFund != nil {
		arrMultiple = om.RequiredARRMultipleFor1xFund
	}

	return QuickScreenResult{
		CompanyName:             d.CompanyName,
		Stage:                   d.Stage,
		Vertical:                d.Vertical,
		PostMoney:               d.PostMoneyValuation,
		CheckSize:               d.CheckSize,
		EntryOwnershipPct:       om.EntryOwnershipPct,
		ExitOwnershipPct:        om.ExitOwnershipPct,
		FundReturnerThreshold:   om.FundReturner1xExit,
		FundReturnerARRMultiple: arrMultiple,
		BearEV:                  bear.ExitEnterpriseValue,
		BaseEV:                  base.ExitEnterpriseValue,
		BullEV:                  bull.ExitEnterpriseValue,
		BearMOIC:                bear.GrossMOIC,
		BaseMOIC:                base.GrossMOIC,
		BullMOIC:                bull.GrossMOIC,
		Recommendation:          rec,
		RecommendationRationale: rationale,
		Flags:                   flags,
	}
}
