package deal

import "testing"

func baseDealInput() DealInput {
	return DealInput{
		Acquirer: AcquirerProfile{CompanyProfile: CompanyProfile{
			Name: "Acquirer Co", Revenue: 500_000_000, EBITDA: 75_000_000,
			NetIncome: 40_000_000, TotalDebt: 50_000_000, CashOnHand: 20_000_000,
			WorkingCapital: 10_000_000, SharesOutstanding: 20_000_000, SharePrice: 40,
			TaxRate: 0.25, DA: 15_000_000, Capex: 18_000_000, Industry: IndustryTechnology,
		}},
		Target: TargetProfile{CompanyProfile: CompanyProfile{
			Name: "Target Co", Revenue: 100_000_000, EBITDA: 15_000_000,
			NetIncome: 8_000_000, TotalDebt: 10_000_000, CashOnHand: 5_000_000,
			WorkingCapital: 3_000_000, SharesOutstanding: 1, SharePrice: 1,
			TaxRate: 0.25, DA: 4_000_000, Capex: 5_000_000, Industry: IndustryTechnology,
		}, AcquisitionPrice: 150_000_000, RevenueGrowth: 0.08},
		Structure: DealStructure{
			CashPct: 0.5, StockPct: 0.2, DebtPct: 0.3,
			TransactionFeesPct: 0.02, AdvisoryFees: 1_000_000,
		},
		PPA: PurchasePriceAllocationInput{
			AssetWriteup: 10_000_000, AssetWriteupUsefulLife: 10,
			IdentifiableIntangibles: 20_000_000, IntangibleUsefulLife: 8,
		},
		Synergies: Synergies{
			CostSynergies: []SynergyItem{{Category: "Back office", AnnualAmount: 3_000_000, PhaseInYears: 3, CostToAchieve: 1_000_000}},
		},
		ProjectionYears: 5,
	}
}

func TestComputePPA_GoodwillIsResidualAboveFVNA(t *testing.T) {
	d := baseDealInput()
	result := computePPA(d)

	netAssetsBook := d.Target.CashOnHand + d.Target.WorkingCapital - d.Target.TotalDebt
	wantDTL := (d.PPA.AssetWriteup + d.PPA.IdentifiableIntangibles) * d.Acquirer.TaxRate
	wantFVNA := netAssetsBook + d.PPA.AssetWriteup + d.PPA.IdentifiableIntangibles - wantDTL
	wantGoodwill := d.Target.AcquisitionPrice - wantFVNA

	if result.DeferredTaxLiability != wantDTL {
		t.Errorf("DTL = %v, want %v", result.DeferredTaxLiability, wantDTL)
	}
	if result.Goodwill != wantGoodwill {
		t.Errorf("Goodwill = %v, want %v", result.Goodwill, wantGoodwill)
	}
	if result.Goodwill < 0 {
		t.Error("Goodwill must never be negative")
	}
}

func TestComputePPA_GoodwillFloorsAtZero(t *testing.T) {
	d := baseDealInput()
	d.Target.AcquisitionPrice = 1 // far below FVNA
	result := computePPA(d)
	if result.Goodwill != 0 {
		t.Errorf("Goodwill should floor at 0 when price < FVNA, got %v", result.Goodwill)
	}
}

func TestComputePPA_IncrementalChargesRequireUsefulLife(t *testing.T) {
	d := baseDealInput()
	d.PPA.AssetWriteupUsefulLife = 0
	result := computePPA(d)
	if result.IncrementalDAAnnual != 0 {
		t.Errorf("incremental D&A should be 0 without a useful life, got %v", result.IncrementalDAAnnual)
	}
}

func TestTransactionCosts(t *testing.T) {
	d := baseDealInput()
	got := transactionCosts(d)
	want := d.Target.AcquisitionPrice*d.Structure.TransactionFeesPct + d.Structure.AdvisoryFees
	if got != want {
		t.Errorf("transactionCosts = %v, want %v", got, want)
	}
}
