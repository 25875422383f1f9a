// Command dealforge runs the deterministic deal, venture, and VC fund-seat
// evaluation engines against a sample set of inputs and prints a Markdown
// report for each.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"dealforge/pkg/bench"
	"dealforge/pkg/deal"
	"dealforge/pkg/report"
	"dealforge/pkg/vcfund"
	"dealforge/pkg/venture"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	benchmarks, err := loadBenchmarks()
	if err != nil {
		log.Fatalf("Critical: could not load benchmark data: %v", err)
	}

	runID := uuid.NewString()
	fmt.Printf("dealforge run %s\n", runID)

	if err := runDealDemo(runID, benchmarks); err != nil {
		log.Printf("deal evaluation failed: %v", err)
	}
	if err := runVentureDemo(runID, benchmarks); err != nil {
		log.Printf("venture evaluation failed: %v", err)
	}
	if err := runVCFundDemo(runID, benchmarks); err != nil {
		log.Printf("vc fund evaluation failed: %v", err)
	}
}

// loadBenchmarks loads an override file when BENCHMARKS_OVERRIDE_PATH is
// set, falling back to the built-in defaults otherwise.
func loadBenchmarks() (*bench.Table, error) {
	base := bench.Default()
	overridePath := os.Getenv("BENCHMARKS_OVERRIDE_PATH")
	if overridePath == "" {
		return base, nil
	}
	merged, err := bench.LoadOverride(base, overridePath)
	if err != nil {
		return nil, fmt.Errorf("loading benchmark override: %w", err)
	}
	return merged, nil
}

func runDealDemo(runID string, benchmarks *bench.Table) error {
	input := deal.DealInput{
		Acquirer: deal.AcquirerProfile{
			CompanyProfile: deal.CompanyProfile{
				Name:              "Meridian Industrial Holdings",
				Revenue:           420_000_000,
				EBITDA:            63_000_000,
				NetIncome:         31_000_000,
				TotalDebt:         90_000_000,
				CashOnHand:        25_000_000,
				SharesOutstanding: 40_000_000,
				SharePrice:        22.00,
				TaxRate:           0.25,
				DA:                12_000_000,
				Capex:             14_000_000,
				Industry:          deal.IndustryManufacturing,
			},
		},
		Target: deal.TargetProfile{
			CompanyProfile: deal.CompanyProfile{
				Name:              "Northwind Logistics",
				Revenue:           45_000_000,
				EBITDA:            8_100_000,
				NetIncome:         3_600_000,
				TotalDebt:         8_000_000,
				CashOnHand:        2_000_000,
				SharesOutstanding: 5_000_000,
				SharePrice:        14.00,
				TaxRate:           0.25,
				DA:                2_000_000,
				Capex:             1_500_000,
				Industry:          deal.IndustryManufacturing,
			},
			AcquisitionPrice: 68_000_000,
			RevenueGrowth:    0.09,
		},
		Structure: deal.DealStructure{
			CashPct:            0.70,
			StockPct:           0.30,
			TransactionFeesPct: 0.02,
		},
		PPA: deal.PurchasePriceAllocationInput{
			AssetWriteup:            5_000_000,
			AssetWriteupUsefulLife:  10,
			IdentifiableIntangibles: 12_000_000,
			IntangibleUsefulLife:    8,
		},
		Synergies: deal.Synergies{
			CostSynergies: []deal.SynergyItem{
				{Category: "procurement", AnnualAmount: 2_500_000, PhaseInYears: 2},
			},
		},
		ProjectionYears: 5,
		Mode:            deal.ModeDeep,
	}
	out, err := deal.RunDeal(input, benchmarks)
	if err != nil {
		return fmt.Errorf("evaluating deal: %w", err)
	}

	memo := report.Memo{
		Title:         fmt.Sprintf("Deal Memo: %s acquires %s", input.Acquirer.Name, input.Target.Name),
		CorrelationID: runID,
		Sections: []report.Section{
			{
				Heading: "Summary",
				Lines: []string{
					fmt.Sprintf("Verdict: %s — %s", out.Verdict, out.VerdictHeadline),
					fmt.Sprintf("EV/EBITDA paid: %.1fx, EV/Revenue paid: %.1fx", out.ImpliedValuation.EVToEBITDA, out.ImpliedValuation.EVToRevenue),
					fmt.Sprintf("Year 1 accretion/(dilution): %.2f%%", out.IncomeStatement[0].AccretionDilutionPct*100),
				},
			},
		},
	}
	rendered, err := memo.Render()
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func runVentureDemo(runID string, benchmarks *bench.Table) error {
	input := venture.StartupInput{
		CompanyName: "Acme Robotics",
		Team: venture.TeamProfile{
			FounderCount:       2,
			TechnicalCofounder: true,
			DomainExperts:      true,
		},
		Traction: venture.TractionMetrics{
			HasRevenue:      true,
			CashOnHand:      1.2,
			MonthlyBurnRate: 0.08,
		},
		Product: venture.ProductProfile{
			Stage: venture.ProductMVP,
		},
		Market: venture.MarketProfile{
			TAMUSDBillions:  5,
			SAMUSDMillions:  400,
			CompetitiveMoat: "medium",
		},
		Fundraise: venture.FundraisingProfile{
			Stage:       venture.StagePreSeed,
			Vertical:    venture.VerticalB2BSaaS,
			Geography:   venture.GeoAustin,
			RaiseAmount: 1.5,
			Instrument:  venture.InstrumentSAFE,
		},
	}
	out, err := venture.RunStartupValuation(input, benchmarks)
	if err != nil {
		return fmt.Errorf("evaluating startup: %w", err)
	}

	memo := report.Memo{
		Title:         fmt.Sprintf("Venture Memo: %s", input.CompanyName),
		CorrelationID: runID,
		Sections: []report.Section{
			{
				Heading: "Summary",
				Lines: []string{
					fmt.Sprintf("Verdict: %s — %s", out.Verdict, out.VerdictHeadline),
					fmt.Sprintf("Blended valuation: $%.1fM (range $%.1fM-$%.1fM)", out.BlendedValuation, out.ValuationRangeLow, out.ValuationRangeHigh),
					fmt.Sprintf("Percentile in market: %s", out.PercentileInMarket),
				},
			},
		},
	}
	rendered, err := memo.Render()
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func runVCFundDemo(runID string, benchmarks *bench.Table) error {
	fund := vcfund.FundProfile{
		FundName: "Forge Ventures I",
		FundSize: 50.0,
	}
	dealInput := vcfund.DealInput{
		CompanyName:        "Beta AI",
		Vertical:           vcfund.VerticalAIInfra,
		Stage:              vcfund.StageSeed,
		PostMoneyValuation: 20.0,
		CheckSize:          1.0,
		ARR:                1.2,
	}
	out, err := vcfund.RunDealEvaluation(dealInput, fund, benchmarks)
	if err != nil {
		return fmt.Errorf("evaluating vc deal: %w", err)
	}

	memo := report.Memo{
		Title:         fmt.Sprintf("VC Fund Memo: %s", dealInput.CompanyName),
		CorrelationID: runID,
		Sections: []report.Section{
			{
				Heading: "Summary",
				Lines: []string{
					fmt.Sprintf("Recommendation: %s", out.QuickScreen.Recommendation),
					fmt.Sprintf("Expected MOIC: %.1fx, expected IRR: %.1f%%", out.ExpectedMOIC, out.ExpectedIRR*100),
					fmt.Sprintf("Power law note: %s", out.PowerLawNote),
				},
			},
		},
	}
	rendered, err := memo.Render()
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
