package vcfund

import (
	"math"
	"sort"
)

// classAsConvertedPct estimates what fraction of the fully-diluted cap
// table a share class would hold if it converted to common, proportional
// to its invested amount among the preferred pool (the remaining pct after
// carving out the common pool).
func classAsConvertedPct(class LiquidationPreference, totalPreferredInvested, commonSharesPct float64) float64 {
	if totalPreferredInvested <= 0 {
		return 0
	}
	preferredPoolPct := 1 - commonSharesPct
	return preferredPoolPct * (class.InvestedAmount / totalPreferredInvested)
}

// computeWaterfall distributes exit proceeds through a liquidation
// preference stack: senior preferences are paid off the top in seniority
// order, non-participating classes convert to common when that pays more,
// participating classes double-dip (capped where specified), and whatever
// remains splits between common and the classes sharing in it.
func computeWaterfall(d DealInput, exitEV float64) *WaterfallDistribution {
	if len(d.LiquidationStack) == 0 {
		return nil
	}

	stack := append([]LiquidationPreference(nil), d.LiquidationStack...)
	sort.SliceStable(stack, func(i, j int) bool { return stack[i].Seniority < stack[j].Seniority })

	var totalPreferredInvested float64
	for _, c := range stack {
		totalPreferredInvested += c.InvestedAmount
	}

	remaining := exitEV
	dists := make([]ShareClassDistribution, len(stack))
	for i, c := range stack {
		prefAmount := c.InvestedAmount * multipleOrDefault(c.PreferenceMultiple)
		payout := math.Min(prefAmount, remaining)
		remaining -= payout
		dists[i] = ShareClassDistribution{
			ShareClass:         c.ShareClass,
			Type:               string(c.PreferenceType),
			PreferenceAmount:   prefAmount,
			PreferenceMultiple: multipleOrDefault(c.PreferenceMultiple),
			LiquidationPayout:  payout,
			ConversionValue:    classAsConvertedPct(c, totalPreferredInvested, d.CommonSharesPct) * exitEV,
		}
	}

	remainderPool := remaining
	type participant struct {
		idx      int
		pct      float64
		maxTotal float64
	}
	var participants []participant
	var convertedCommonPct float64

	for i, c := range stack {
		asConverted := dists[i].ConversionValue
		switch c.PreferenceType {
		case PreferenceNonParticipating:
			if asConverted > dists[i].LiquidationPayout {
				dists[i].Converted = true
				dists[i].LiquidationPayout = 0
				convertedCommonPct += classAsConvertedPct(c, totalPreferredInvested, d.CommonSharesPct)
			}
		case PreferenceParticipating:
			participants = append(participants, participant{
				idx:      i,
				pct:      classAsConvertedPct(c, totalPreferredInvested, d.CommonSharesPct),
				maxTotal: math.MaxFloat64,
			})
		case PreferenceParticipatingCapped:
			cap := 3.0
			if c.ParticipationCap != nil {
				cap = *c.ParticipationCap
			}
			participants = append(participants, participant{
				idx:      i,
				pct:      classAsConvertedPct(c, totalPreferredInvested, d.CommonSharesPct),
				maxTotal: c.InvestedAmount * cap,
			})
		}
	}

	commonPct := d.CommonSharesPct + convertedCommonPct
	totalParticipantPct := commonPct
	for _, p := range participants {
		totalParticipantPct += p.pct
	}

	commonGets := 0.0
	if totalParticipantPct > 0 {
		commonGets = remainderPool * (commonPct / totalParticipantPct)
	}
	for _, p := range participants {
		share := 0.0
		if totalParticipantPct > 0 {
			share = remainderPool * (p.pct / totalParticipantPct)
		}
		total := dists[p.idx].LiquidationPayout + share
		if total > p.maxTotal {
			total = p.maxTotal
		}
		dists[p.idx].LiquidationPayout = total
	}

	for i := range dists {
		if dists[i].Converted {
			dists[i].Gets = dists[i].ConversionValue
		} else {
			dists[i].Gets = dists[i].LiquidationPayout
		}
	}

	total := commonGets
	for _, dist := range dists {
		total += dist.Gets
	}

	investorTotal := 0.0
	if len(dists) > 0 {
		investorTotal = dists[0].Gets
	}
	investorMOIC := 0.0
	if len(stack) > 0 && stack[0].InvestedAmount > 0 {
		investorMOIC = investorTotal / stack[0].InvestedAmount
	}

	conversionWasOptimal := false
	for _, dist := range dists {
		if dist.Converted {
			conversionWasOptimal = true
		}
	}

	return &WaterfallDistribution{
		ExitEV:               exitEV,
		ShareClasses:         dists,
		CommonGets:           commonGets,
		TotalDistributed:     total,
		InvestorTotal:        investorTotal,
		InvestorMOIC:         investorMOIC,
		ConversionWasOptimal: conversionWasOptimal,
	}
}

func multipleOrDefault(m float64) float64 {
	if m <= 0 {
		return 1.0
	}
	return m
}
