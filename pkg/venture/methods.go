package venture

import (
	"fmt"

	"dealforge/pkg/bench"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampf(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// regionalMedian returns the vertical/stage baseline scaled by the
// founder's regional premium, the shared anchor for Berkus, Scorecard, and
// Risk Factor Summation.
func regionalMedian(s StartupInput, stage VentureStageBenchmark, benchmarks *bench.Table) (float64, float64) {
	premium := benchmarks.RegionalPremium(string(s.Fundraise.Geography))
	baseline := stage.ValuationP50
	if baseline <= 0 {
		baseline = benchmarks.MarketMedian(string(StagePreSeed))
	}
	return baseline * premium, premium
}

// VentureStageBenchmark is re-exported for readability inside this package;
// the type itself lives in pkg/bench.
type VentureStageBenchmark = bench.VentureStageBenchmark

func ptr(v float64) *float64 { return &v }

// runBerkus applies the Berkus Method: five 0-1 scored dimensions, each
// worth up to 20% of the regional median.
func runBerkus(s StartupInput, stage VentureStageBenchmark, benchmarks *bench.Table) ValuationMethodResult {
	regionalMed, premium := regionalMedian(s, stage, benchmarks)

	var sIdea, sManagement, sPrototype, sRelationships, sRollout float64
	if s.BerkusScores != nil {
		sIdea = clamp01(getOr(s.BerkusScores, "idea", 0.7))
		sManagement = clamp01(getOr(s.BerkusScores, "management", 0.7))
		sPrototype = clamp01(getOr(s.BerkusScores, "prototype", 0.7))
		sRelationships = clamp01(getOr(s.BerkusScores, "relationships", 0.5))
		sRollout = clamp01(getOr(s.BerkusScores, "rollout", 0.3))
	} else {
		t := s.Traction
		team := s.Team
		prod := s.Product

		marketSizeScore := clampf(s.Market.TAMUSDBillions/10.0, 0, 1)
		moatScore := moatScore(s.Market.CompetitiveMoat)
		sIdea = marketSizeScore*0.5 + moatScore*0.5

		mgmtBase := 0.5
		if team.PriorExits >= 1 {
			mgmtBase += 0.2
		}
		if team.DomainExperts {
			mgmtBase += 0.1
		}
		if team.RepeatFounder {
			mgmtBase += 0.1
		}
		if team.Tier1Background {
			mgmtBase += 0.05
		}
		if team.NotableAdvisors {
			mgmtBase += 0.05
		}
		sManagement = clampf(mgmtBase, 0, 1)

		sPrototype = productStageScore(prod.Stage)
		if prod.HasPatentOrIP {
			sPrototype = clampf(sPrototype+0.05, 0, 1)
		}
		if prod.ProprietaryDataMoat {
			sPrototype = clampf(sPrototype+0.05, 0, 1)
		}

		sRelationships = 0.3
		if t.HasLOIs {
			sRelationships += 0.25
		}
		if t.LogoCustomerCount >= 1 {
			sRelationships += 0.2
		}
		if team.NotableAdvisors {
			sRelationships += 0.15
		}
		if t.PayingCustomerCount >= 5 {
			sRelationships += 0.1
		}
		sRelationships = clampf(sRelationships, 0, 1)

		switch {
		case t.HasRevenue && t.MonthlyRecurringRevenue > 0:
			arr := t.ARR()
			sRollout = clampf(0.3+arr, 0, 1)
		case t.PayingCustomerCount >= 1:
			sRollout = 0.5
		case t.HasLOIs:
			sRollout = 0.35
		case prod.Stage == ProductBeta || prod.Stage == ProductPayingCustomers:
			sRollout = 0.4
		default:
			sRollout = 0.1
		}
	}

	factorMax := 0.20 * regionalMed
	indicated := (sIdea + sManagement + sPrototype + sRelationships + sRollout) * factorMax
	low := indicated * 0.7
	high := indicated * 1.4

	return ValuationMethodResult{
		MethodName:     "berkus",
		MethodLabel:    "Berkus Method",
		IndicatedValue: ptr(indicated),
		ValueLow:       ptr(low),
		ValueHigh:      ptr(high),
		Applicable:     s.Fundraise.Stage == StagePreSeed,
		Rationale: fmt.Sprintf(
			"5 dimensions scored against regional median of $%.1fM (%s premium %.1fx). Scores: Idea %.0f%%, Team %.0f%%, Product %.0f%%, Relationships %.0f%%, Sales %.0f%%.",
			regionalMed, s.Fundraise.Geography, premium, sIdea*100, sManagement*100, sPrototype*100, sRelationships*100, sRollout*100,
		),
		InputsUsed: map[string]interface{}{
			"regional_median":   regionalMed,
			"regional_premium":  premium,
			"score_idea":        sIdea,
			"score_management":  sManagement,
			"score_prototype":   sPrototype,
			"score_relationships": sRelationships,
			"score_rollout":     sRollout,
		},
	}
}

func getOr(m map[string]float64, key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func moatScore(moat string) float64 {
	switch moat {
	case "low":
		return 0.4
	case "high":
		return 1.0
	default:
		return 0.7
	}
}

func productStageScore(stage ProductStage) float64 {
	switch stage {
	case ProductIdea:
		return 0.2
	case ProductMVP:
		return 0.5
	case ProductBeta:
		return 0.7
	case ProductPayingCustomers:
		return 0.9
	case ProductScaling:
		return 1.0
	default:
		return 0.5
	}
}

// runScorecard applies the Bill Payne Scorecard Method: seven weighted
// factors (0.5-1.5 each) applied to the regional median.
func runScorecard(s StartupInput, stage VentureStageBenchmark, benchmarks *bench.Table) ValuationMethodResult {
	regionalMed, _ := regionalMedian(s, stage, benchmarks)
	weights := benchmarks.ScorecardWeights

	scores := s.ScorecardScores
	if scores == nil {
		t := s.Traction
		team := s.Team
		prod := s.Product
		market := s.Market

		mgmt := 0.85
		if team.PriorExits >= 1 {
			mgmt += 0.25
		}
		if team.DomainExperts {
			mgmt += 0.1
		}
		if team.RepeatFounder {
			mgmt += 0.1
		}
		if team.TechnicalCofounder {
			mgmt += 0.05
		}
		if team.Tier1Background {
			mgmt += 0.05
		}
		mgmt = clampf(mgmt, 0.5, 1.5)

		var marketScore float64
		switch {
		case market.TAMUSDBillions >= 50:
			marketScore = 1.5
		case market.TAMUSDBillions >= 10:
			marketScore = 1.2
		case market.TAMUSDBillions >= 1:
			marketScore = 1.0
		default:
			marketScore = 0.7
		}

		productScore := 0.75
		switch prod.Stage {
		case ProductIdea:
			productScore += 0.0
		case ProductMVP:
			productScore += 0.15
		case ProductBeta:
			productScore += 0.3
		case ProductPayingCustomers:
			productScore += 0.4
		case ProductScaling:
			productScore += 0.5
		default:
			productScore += 0.15
		}
		if prod.HasPatentOrIP {
			productScore += 0.1
		}
		if prod.ProprietaryDataMoat {
			productScore += 0.1
		}
		if prod.OpenSourceTraction {
			productScore += 0.05
		}
		productScore = clampf(productScore, 0.5, 1.5)

		compScore := map[string]float64{"low": 0.7, "medium": 1.0, "high": 1.35}[market.CompetitiveMoat]
		if compScore == 0 {
			compScore = 1.0
		}

		salesScore := 0.7
		if t.HasRevenue {
			salesScore += 0.2
		}
		if t.HasLOIs {
			salesScore += 0.15
		}
		switch {
		case t.PayingCustomerCount >= 10:
			salesScore += 0.2
		case t.PayingCustomerCount >= 3:
			salesScore += 0.1
		}
		salesScore = clampf(salesScore, 0.5, 1.5)

		runway := 24.0
		if t.MonthlyBurnRate > 0 {
			runway = t.CashOnHand / t.MonthlyBurnRate
		}
		var financingScore float64
		switch {
		case runway >= 18:
			financingScore = 1.2
		case runway >= 12:
			financingScore = 1.0
		case runway >= 6:
			financingScore = 0.8
		default:
			financingScore = 0.6
		}

		otherScore := 1.0
		if prod.RegulatoryClearance {
			otherScore = 1.2
		}
		if s.Fundraise.Geography == GeoBayArea || s.Fundraise.Geography == GeoNewYork {
			otherScore = clampf(otherScore+0.1, 0, 1.5)
		}

		scores = map[string]float64{
			"management_team":             mgmt,
			"market_size":                 marketScore,
			"product_technology":          productScore,
			"competitive_environment":     compScore,
			"marketing_sales_channels":    salesScore,
			"additional_financing_needed": financingScore,
			"other_factors":               otherScore,
		}
	}

	var weightedSum float64
	for k, v := range scores {
		weightedSum += weights[k] * v
	}
	indicated := weightedSum * regionalMed
	low := indicated * 0.8
	high := indicated * 1.25

	return ValuationMethodResult{
		MethodName:     "scorecard",
		MethodLabel:    "Scorecard (Bill Payne) Method",
		IndicatedValue: ptr(indicated),
		ValueLow:       ptr(low),
		ValueHigh:      ptr(high),
		Applicable:     s.Fundraise.Stage == StagePreSeed || s.Fundraise.Stage == StageSeed,
		Rationale: fmt.Sprintf(
			"Weighted scoring vs. regional median of $%.1fM. Overall multiplier: %.2fx (1.0 = peer average). Key drivers: team %.2fx, market %.2fx, product %.2fx.",
			regionalMed, weightedSum, scores["management_team"], scores["market_size"], scores["product_technology"],
		),
		InputsUsed: map[string]interface{}{
			"regional_median":     regionalMed,
			"weighted_multiplier": weightedSum,
			"scores":              scores,
		},
	}
}

// runRFS applies Risk Factor Summation: 12 categories scored -2..+2, each
// step worth a fraction of the regional baseline proportional to it, so
// the step size stays meaningful across verticals priced very differently
// from the market-wide median it was calibrated against.
func runRFS(s StartupInput, stage VentureStageBenchmark, benchmarks *bench.Table) ValuationMethodResult {
	base, _ := regionalMedian(s, stage, benchmarks)
	marketMedian := benchmarks.MarketMedian(string(StagePreSeed))
	adjPerStep := benchmarks.RiskStepUSDMillions
	if marketMedian > 0 {
		adjPerStep = benchmarks.RiskStepUSDMillions * (base / marketMedian)
	}

	rfs := s.RiskFactorScores
	if rfs == nil {
		t := s.Traction
		team := s.Team
		prod := s.Product
		rfs = map[string]int{}

		mgmtScore := 0
		switch {
		case team.PriorExits >= 1:
			mgmtScore = 2
		case team.DomainExperts:
			mgmtScore = 1
		case !team.TechnicalCofounder && (s.Fundraise.Vertical == VerticalAIInfra || s.Fundraise.Vertical == VerticalDevTools):
			mgmtScore = -1
		}
		rfs["management"] = clampInt(mgmtScore, -2, 2)

		stageMap := map[ProductStage]int{ProductIdea: -2, ProductMVP: -1, ProductBeta: 0, ProductPayingCustomers: 1, ProductScaling: 2}
		rfs["stage_of_business"] = stageMap[prod.Stage]

		highReg := s.Fundraise.Vertical == VerticalFintech || s.Fundraise.Vertical == VerticalHealthtech ||
			s.Fundraise.Vertical == VerticalBiotech || s.Fundraise.Vertical == VerticalDefenseTech
		switch {
		case highReg:
			rfs["legislation_political"] = -1
		case prod.RegulatoryClearance:
			rfs["legislation_political"] = 1
		default:
			rfs["legislation_political"] = 0
		}

		hardHW := s.Fundraise.Vertical == VerticalHardware || s.Fundraise.Vertical == VerticalClimate || s.Fundraise.Vertical == VerticalBiotech
		if hardHW {
			rfs["manufacturing_operations"] = -1
		}

		salesScore := -1
		switch {
		case t.PayingCustomerCount >= 10:
			salesScore = 2
		case t.PayingCustomerCount >= 3:
			salesScore = 1
		case t.HasLOIs || t.PayingCustomerCount >= 1:
			salesScore = 0
		}
		rfs["sales_marketing"] = salesScore

		runway := 18.0
		if t.MonthlyBurnRate > 0 {
			runway = t.CashOnHand / t.MonthlyBurnRate
		}
		switch {
		case runway >= 18:
			rfs["funding_capital_raising"] = 1
		case runway >= 12:
			rfs["funding_capital_raising"] = 0
		default:
			rfs["funding_capital_raising"] = -1
		}

		compMap := map[string]int{"low": -2, "medium": 0, "high": 1}
		rfs["competition"] = compMap[s.Market.CompetitiveMoat]

		techScore := 0
		if prod.HasPatentOrIP {
			techScore++
		}
		if prod.ProprietaryDataMoat {
			techScore++
		}
		rfs["technology"] = clampInt(techScore, -2, 2)

		rfs["litigation"] = 0

		if s.Market.TAMUSDBillions >= 5 {
			rfs["international"] = 1
		}

		repScore := 0
		if team.Tier1Background {
			repScore++
		}
		if team.PriorExits >= 1 {
			repScore++
		}
		rfs["reputation"] = clampInt(repScore, -2, 2)

		exitScore := 0
		if s.Market.TAMUSDBillions >= 10 {
			exitScore++
		}
		if s.Fundraise.Vertical == VerticalAIInfra || s.Fundraise.Vertical == VerticalAISaaS || s.Fundraise.Vertical == VerticalDefenseTech {
			exitScore++
		}
		rfs["exit_potential"] = clampInt(exitScore, -2, 2)
	}

	var totalScore int
	for _, v := range rfs {
		totalScore += v
	}
	totalAdjustment := float64(totalScore) * adjPerStep
	indicated := base + totalAdjustment
	if indicated < 0.5 {
		indicated = 0.5
	}

	low := indicated * 0.80
	if low < 0.5 {
		low = 0.5
	}
	high := indicated * 1.25

	return ValuationMethodResult{
		MethodName:     "risk_factor_summation",
		MethodLabel:    "Risk Factor Summation",
		IndicatedValue: ptr(indicated),
		ValueLow:       ptr(low),
		ValueHigh:      ptr(high),
		Applicable:     s.Fundraise.Stage == StagePreSeed || s.Fundraise.Stage == StageSeed,
		Rationale: fmt.Sprintf(
			"Base $%.1fM + total adjustment $%+.2fM from %d net score across 12 risk categories ($%.2fM per step).",
			base, totalAdjustment, totalScore, adjPerStep,
		),
		InputsUsed: map[string]interface{}{
			"base":              base,
			"adjustment_per_step": adjPerStep,
			"scores":            rfs,
			"total_adjustment":  totalAdjustment,
		},
	}
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// runARRMultiple applies the ARR Multiple method, the primary method once
// a startup carries revenue. Returns a non-applicable result when there's
// no ARR, or when the vertical's benchmark carries no multiple band
// (milestone/asset-based verticals like biotech).
func runARRMultiple(s StartupInput, stage VentureStageBenchmark) ValuationMethodResult {
	arr := s.Traction.ARR()
	if arr <= 0 {
		return ValuationMethodResult{
			MethodName:  "arr_multiple",
			MethodLabel: "ARR Multiple",
			Applicable:  false,
			Rationale:   "No ARR reported — ARR multiple method not applicable.",
			InputsUsed:  map[string]interface{}{"arr": 0},
		}
	}

	if stage.ARRMultipleP50 <= 0 {
		return ValuationMethodResult{
			MethodName:  "arr_multiple",
			MethodLabel: "ARR Multiple",
			Applicable:  false,
			Rationale:   "ARR multiples are not the primary method for this vertical (milestone/asset-based).",
			InputsUsed:  map[string]interface{}{"arr": arr},
		}
	}

	baseMultiple := stage.ARRMultipleP50
	t := s.Traction

	var nrrAdj float64
	switch {
	case t.NetRevenueRetention >= 1.40:
		nrrAdj = 0.30
	case t.NetRevenueRetention >= 1.20:
		nrrAdj = 0.15
	case t.NetRevenueRetention >= 1.10:
		nrrAdj = 0.05
	case t.NetRevenueRetention < 1.00:
		nrrAdj = -0.20
	}

	var growthAdj float64
	switch {
	case t.MoMGrowthRate >= 0.20:
		growthAdj = 0.15
	case t.MoMGrowthRate >= 0.10:
		growthAdj = 0.05
	case t.MoMGrowthRate >= 0.05:
		growthAdj = 0.0
	default:
		growthAdj = -0.10
	}

	var gmAdj float64
	switch {
	case t.GrossMargin >= 0.80:
		gmAdj = 0.05
	case t.GrossMargin >= 0.60:
		gmAdj = 0.0
	case t.GrossMargin < 0.40:
		gmAdj = -0.15
	default:
		gmAdj = -0.07
	}

	var burnAdj float64
	if t.MonthlyBurnRate > 0 && arr > 0 {
		burnMult := (t.MonthlyBurnRate * 12) / arr
		switch {
		case burnMult <= 1.0:
			burnAdj = 0.10
		case burnMult <= 1.5:
			burnAdj = 0.05
		case burnMult > 2.5:
			burnAdj = -0.10
		}
	}

	adjustedMultiple := baseMultiple * (1 + nrrAdj + growthAdj + gmAdj + burnAdj)
	if adjustedMultiple < 1.0 {
		adjustedMultiple = 1.0
	}

	indicated := arr * adjustedMultiple
	lowMultiple := stage.ARRMultipleP25
	if lowMultiple <= 0 {
		lowMultiple = adjustedMultiple * 0.7
	}
	highMultiple := stage.ARRMultipleP75
	if highMultiple <= 0 {
		highMultiple = adjustedMultiple * 1.4
	}
	low := arr * lowMultiple
	high := arr * highMultiple

	yoyGrowthPct := t.MoMGrowthRate * 12 * 100
	ebitdaMarginProxy := (1 - t.GrossMargin) * -100
	ruleOf40 := yoyGrowthPct + ebitdaMarginProxy

	return ValuationMethodResult{
		MethodName:     "arr_multiple",
		MethodLabel:    "ARR Multiple",
		IndicatedValue: ptr(indicated),
		ValueLow:       ptr(low),
		ValueHigh:      ptr(high),
		Applicable:     true,
		Rationale: fmt.Sprintf(
			"ARR $%.2fM x %.1fx adjusted multiple (base %.0fx, NRR %.0f%% adj %+.0f%%, growth adj %+.0f%%, GM adj %+.0f%%).",
			arr, adjustedMultiple, baseMultiple, t.NetRevenueRetention*100, nrrAdj*100, growthAdj*100, gmAdj*100,
		),
		InputsUsed: map[string]interface{}{
			"arr":               arr,
			"base_multiple_p50": baseMultiple,
			"adjusted_multiple": adjustedMultiple,
			"nrr":               t.NetRevenueRetention,
			"mom_growth":        t.MoMGrowthRate,
			"gross_margin":      t.GrossMargin,
			"rule_of_40_approx": ruleOf40,
		},
	}
}
