package vcfund

import "testing"

func eligibleQSBSInput() QSBSInput {
	return QSBSInput{
		IsCCorp:                  true,
		IsDomesticCorp:           true,
		IsActiveBusiness:         true,
		AssetsAtIssuanceUnder50M: true,
		IsOriginalIssuance:       true,
		InvestmentAmount:         1.0,
		HoldingPeriodYears:       6,
		LPMarginalTaxRate:        0.238,
		LPCount:                  20,
	}
}

func TestRunQSBSAnalysis_EligibleWithAllChecksPassing(t *testing.T) {
	out := runQSBSAnalysis(eligibleQSBSInput())
	if !out.IsEligible {
		t.Errorf("expected eligibility with all checks passing, failed: %+v", out.FailedChecks)
	}
	if out.TotalLPBenefit <= 0 {
		t.Errorf("expected a positive total LP benefit, got %v", out.TotalLPBenefit)
	}
}

func TestRunQSBSAnalysis_IneligibleWhenAnyCheckFails(t *testing.T) {
	in := eligibleQSBSInput()
	in.IsCCorp = false
	out := runQSBSAnalysis(in)
	if out.IsEligible {
		t.Errorf("expected ineligibility when is_c_corp fails")
	}
	if out.TotalLPBenefit != 0 {
		t.Errorf("expected zero benefit when ineligible, got %v", out.TotalLPBenefit)
	}
	var sawFailure bool
	for _, f := range out.FailedChecks {
		if f == "is_c_corp" {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Errorf("expected is_c_corp listed among failed checks")
	}
}

func TestRunQSBSAnalysis_NoBenefitBelowFiveYearHold(t *testing.T) {
	in := eligibleQSBSInput()
	in.HoldingPeriodYears = 3
	out := runQSBSAnalysis(in)
	if out.HoldingPeriodSatisfied {
		t.Errorf("expected holding period unsatisfied at 3 years")
	}
	if out.TotalLPBenefit != 0 {
		t.Errorf("expected zero benefit below the 5-year hold, got %v", out.TotalLPBenefit)
	}
}

func TestRunQSBSAnalysis_ExclusionCapBoundedByTenXInvestment(t *testing.T) {
	in := eligibleQSBSInput()
	in.InvestmentAmount = 0.1
	out := runQSBSAnalysis(in)
	if out.ExclusionCap != 1.0 {
		t.Errorf("expected the 10x-investment cap to bind for a small check, got %v", out.ExclusionCap)
	}
}

func TestRunQSBSAnalysis_PostJuly2025IssuanceGetsFifteenMillionCap(t *testing.T) {
	in := eligibleQSBSInput()
	in.InvestmentAmount = 10.0
	in.IssuedAfterJuly2025 = true
	out := runQSBSAnalysis(in)
	if out.ExclusionCap != 15.0 {
		t.Errorf("expected the $15M statutory cap for post-2025 issuance, got %v", out.ExclusionCap)
	}
}
