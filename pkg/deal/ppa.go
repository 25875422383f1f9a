package deal

// PPAResult is the purchase price allocation result under ASC 805/740:
// goodwill is the residual over fair value of net identifiable assets, and
// the asset step-up/intangibles generate a deferred tax liability along
// with incremental annual D&A and amortization charges.
type PPAResult struct {
	PurchasePrice           float64 `json:"purchase_price"`
	NetAssetsBookValue      float64 `json:"net_assets_book_value"`
	AssetWriteup            float64 `json:"asset_writeup"`
	IdentifiableIntangibles float64 `json:"identifiable_intangibles"`
	DeferredTaxLiability    float64 `json:"deferred_tax_liability"`
	Goodwill                float64 `json:"goodwill"`
	IncrementalDAAnnual     float64 `json:"incremental_da_annual"`
	IncrementalAmortAnnual  float64 `json:"incremental_amort_annual"`
	TotalIncrementalAnnual  float64 `json:"total_incremental_annual"`
}

// computePPA allocates the purchase price to net identifiable assets plus
// goodwill. Net asset book value is a rough proxy (cash + working capital -
// debt) rather than a full target balance sheet, matching the original
// model's scope.
func computePPA(d DealInput) PPAResult {
	target := d.Target
	ppa := d.PPA
	taxRate := d.Acquirer.TaxRate

	netAssetsBook := target.CashOnHand + target.WorkingCapital - target.TotalDebt

	taxableTemporaryDifference := ppa.AssetWriteup + ppa.IdentifiableIntangibles
	dtl := taxableTemporaryDifference * taxRate

	fvna := netAssetsBook + ppa.AssetWriteup + ppa.IdentifiableIntangibles - dtl

	goodwill := target.AcquisitionPrice - fvna
	if goodwill < 0 {
		goodwill = 0
	}

	var incrementalDA float64
	if ppa.AssetWriteupUsefulLife > 0 && ppa.AssetWriteup > 0 {
		incrementalDA = ppa.AssetWriteup / ppa.AssetWriteupUsefulLife
	}

	var incrementalAmort float64
	if ppa.IntangibleUsefulLife > 0 && ppa.IdentifiableIntangibles > 0 {
		incrementalAmort = ppa.IdentifiableIntangibles / ppa.IntangibleUsefulLife
	}

	return PPAResult{
		PurchasePrice:           target.AcquisitionPrice,
		NetAssetsBookValue:      netAssetsBook,
		AssetWriteup:            ppa.AssetWriteup,
		IdentifiableIntangibles: ppa.IdentifiableIntangibles,
		DeferredTaxLiability:    dtl,
		Goodwill:                goodwill,
		IncrementalDAAnnual:     incrementalDA,
		IncrementalAmortAnnual:  incrementalAmort,
		TotalIncrementalAnnual:  incrementalDA + incrementalAmort,
	}
}

// transactionCosts sums the percentage-of-deal-size fee and the flat
// advisory fee. Expensed in year 1 under ASC 805, never capitalized into
// goodwill.
func transactionCosts(d DealInput) float64 {
	dealSize := d.Target.AcquisitionPrice
	pctFee := d.Structure.TransactionFeesPct
	advisory := d.Structure.AdvisoryFees
	return dealSize*pctFee + advisory
}
