package vcfund

import "math"

// QSBSInput is the per-LP eligibility and benefit inputs for an IRC §1202
// qualified small business stock analysis. InvestmentAmount is USD millions.
type QSBSInput struct {
	IsCCorp               bool    `json:"is_c_corp"`
	IsDomesticCorp        bool    `json:"is_domestic_corp"`
	IsActiveBusiness      bool    `json:"is_active_business"`
	AssetsAtIssuanceUnder50M bool `json:"assets_at_issuance_under_50m"`
	IsOriginalIssuance    bool    `json:"is_original_issuance"`

	InvestmentAmount   float64 `json:"investment_amount"`
	HoldingPeriodYears float64 `json:"holding_period_years"`
	IssuedAfterJuly2025 bool   `json:"issued_after_july_2025"`

	LPMarginalTaxRate float64 `json:"lp_marginal_tax_rate"`
	LPCount           int     `json:"lp_count"`
}

// QSBSOutput is the eligibility determination and estimated LP tax benefit.
type QSBSOutput struct {
	IsEligible             bool    `json:"is_eligible"`
	HoldingPeriodSatisfied bool    `json:"holding_period_satisfied"`
	FailedChecks           []string `json:"failed_checks"`

	ExclusionCap    float64 `json:"exclusion_cap"`
	EstimatedGain   float64 `json:"estimated_gain"`
	ExcludedGain    float64 `json:"excluded_gain"`
	TaxSavedPerLP   float64 `json:"tax_saved_per_lp"`
	TotalLPBenefit  float64 `json:"total_lp_benefit"`
}

// runQSBSAnalysis estimates the federal tax benefit of IRC §1202 qualified
// small business stock treatment: five eligibility checks, a 5-year holding
// period gate, and an exclusion cap of the greater statutory figure or 10x
// the original investment, assuming a 10x exit multiple.
func runQSBSAnalysis(in QSBSInput) QSBSOutput {
	checks := []struct {
		name string
		ok   bool
	}{
		{"is_c_corp", in.IsCCorp},
		{"is_domestic_corp", in.IsDomesticCorp},
		{"is_active_business", in.IsActiveBusiness},
		{"assets_at_issuance_under_50m", in.AssetsAtIssuanceUnder50M},
		{"is_original_issuance", in.IsOriginalIssuance},
	}
	var failed []string
	eligible := true
	for _, c := range checks {
		if !c.ok {
			eligible = false
			failed = append(failed, c.name)
		}
	}

	holdingSatisfied := in.HoldingPeriodYears >= 5.0

	statutoryCap := 10.0
	if in.IssuedAfterJuly2025 {
		statutoryCap = 15.0
	}
	exclusionCap := math.Min(statutoryCap, in.InvestmentAmount*10.0)

	estimatedGain := in.InvestmentAmount * 10.0

	var excludedGain, taxSaved, totalBenefit float64
	if eligible && holdingSatisfied {
		excludedGain = math.Min(exclusionCap, estimatedGain)
		taxSaved = excludedGain * in.LPMarginalTaxRate
		totalBenefit = taxSaved * float64(in.LPCount)
	}

	return QSBSOutput{
		IsEligible:             eligible,
		HoldingPeriodSatisfied: holdingSatisfied,
		FailedChecks:           failed,
		ExclusionCap:           exclusionCap,
		EstimatedGain:          estimatedGain,
		ExcludedGain:           excludedGain,
		TaxSavedPerLP:          taxSaved,
		TotalLPBenefit:         totalBenefit,
	}
}
