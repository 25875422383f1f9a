// Package bench loads and serves the industry benchmark tables that the
// deal, venture, and vcfund engines consult for multiples, margins, and
// default financing assumptions. Benchmarks are data, not behavior: the
// engines never embed a benchmark value directly.
package bench

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// MultipleRange is a low/median/high benchmark band.
type MultipleRange struct {
	Low    float64 `yaml:"low"`
	Median float64 `yaml:"median"`
	High   float64 `yaml:"high"`
}

// IndustryBenchmark is one industry's set of typical operating and
// valuation assumptions, sourced from public comps and sector research.
type IndustryBenchmark struct {
	EVToEBITDA               MultipleRange `yaml:"ev_ebitda_multiple_range"`
	EVToRevenue              MultipleRange `yaml:"ev_revenue_multiple_range"`
	TypicalEBITDAMargin      float64       `yaml:"typical_ebitda_margin"`
	TypicalGrossMargin       float64       `yaml:"typical_gross_margin"`
	TypicalSGAPctRevenue     float64       `yaml:"typical_sga_pct_revenue"`
	TypicalWorkingCapitalPct float64       `yaml:"typical_working_capital_pct_revenue"`
	TypicalCapexPctRevenue   float64       `yaml:"typical_capex_pct_revenue"`
	TypicalDAPctRevenue      float64       `yaml:"typical_da_pct_revenue"`
	TypicalRevenueGrowth     float64       `yaml:"typical_revenue_growth_rate"`
	TypicalDebtCapacityTurns float64       `yaml:"typical_debt_capacity_turns_ebitda"`
}

// Table is the full benchmark document: one entry per industry key plus
// the venture-side vertical/stage tables and the cross-cutting venture
// constants (regional premiums, market-wide medians, scorecard weights).
type Table struct {
	Industries map[string]IndustryBenchmark `yaml:"industries"`
	Ventures   map[string]VentureBenchmark  `yaml:"venture_verticals"`

	RegionalPremiums    map[string]float64 `yaml:"regional_premiums"`
	MarketWideMedians   map[string]float64 `yaml:"market_wide_medians"`
	DownRoundPct        float64            `yaml:"down_round_pct"`
	ScorecardWeights    map[string]float64 `yaml:"scorecard_weights"`
	RiskStepUSDMillions float64            `yaml:"risk_factor_step_usd_millions"`

	VCVerticals map[string]VCVerticalBenchmark `yaml:"vc_verticals"`
}

// VentureStageBenchmark is one vertical's data for a single fundraising
// stage: the valuation distribution and (once ARR-relevant) the multiple
// band applied to annual recurring revenue. Valuations are in USD millions,
// matching the venture and VC-fund engines' input/output scale.
type VentureStageBenchmark struct {
	ValuationP25   float64 `yaml:"valuation_p25"`
	ValuationP50   float64 `yaml:"valuation_p50"`
	ValuationP75   float64 `yaml:"valuation_p75"`
	ValuationP95   float64 `yaml:"valuation_p95"`
	ARRMultipleP25 float64 `yaml:"arr_multiple_p25"`
	ARRMultipleP50 float64 `yaml:"arr_multiple_p50"`
	ARRMultipleP75 float64 `yaml:"arr_multiple_p75"`
	TractionBar    string  `yaml:"traction_bar"`
}

// VentureBenchmark carries one vertical's benchmark rows across the three
// modeled fundraising stages, used by the venture valuation engine's
// Berkus/Scorecard/RFS/ARR-multiple methods.
type VentureBenchmark struct {
	Stages map[string]VentureStageBenchmark `yaml:"stages"`
}

// Stage returns the vertical's benchmark row for a stage, or the zero value
// and false if that vertical carries no data for the stage (e.g. a
// milestone/asset-based vertical with no ARR multiple band).
func (v VentureBenchmark) Stage(stage string) (VentureStageBenchmark, bool) {
	s, ok := v.Stages[stage]
	return s, ok
}

// VCStageBenchmark is one vertical's exit-multiple and valuation comps at a
// single fundraising stage, consulted by the VC fund-seat return engine's
// 3-scenario model and quick screen. MedianPostMoney is in USD millions.
type VCStageBenchmark struct {
	ExitMultipleBear  float64 `yaml:"exit_multiple_bear"`
	ExitMultipleBase  float64 `yaml:"exit_multiple_base"`
	ExitMultipleBull  float64 `yaml:"exit_multiple_bull"`
	MedianPostMoney   float64 `yaml:"median_post_money"`
	MedianARRMultiple float64 `yaml:"median_arr_multiple"`
}

// VCVerticalBenchmark carries one vertical's VC-stage benchmark rows.
type VCVerticalBenchmark struct {
	Stages map[string]VCStageBenchmark `yaml:"stages"`
}

// defaultIndustry is the Manufacturing row used as the fallback for any
// industry key absent from a loaded table, matching the original engine's
// `benchmarks.get(key, benchmarks["Manufacturing"])` behavior.
var defaultIndustry = IndustryBenchmark{
	EVToEBITDA:               MultipleRange{Low: 6, Median: 9, High: 13},
	EVToRevenue:              MultipleRange{Low: 1, Median: 2, High: 3.5},
	TypicalEBITDAMargin:      0.15,
	TypicalGrossMargin:       0.45,
	TypicalSGAPctRevenue:     0.20,
	TypicalWorkingCapitalPct: 0.10,
	TypicalCapexPctRevenue:   0.03,
	TypicalDAPctRevenue:      0.04,
	TypicalRevenueGrowth:     0.05,
	TypicalDebtCapacityTurns: 4.0,
}

// Default returns the built-in benchmark table, used when no override file
// is configured. It covers the eight industries in the deal data model
// plus a conservative venture default.
func Default() *Table {
	t := &Table{
		Industries: map[string]IndustryBenchmark{
			"manufacturing":     defaultIndustry,
			"technology":        {EVToEBITDA: MultipleRange{Low: 10, Median: 16, High: 24}, EVToRevenue: MultipleRange{Low: 3, Median: 8, High: 20}, TypicalEBITDAMargin: 0.22, TypicalGrossMargin: 0.70, TypicalSGAPctRevenue: 0.35, TypicalWorkingCapitalPct: 0.05, TypicalCapexPctRevenue: 0.04, TypicalDAPctRevenue: 0.05, TypicalRevenueGrowth: 0.15, TypicalDebtCapacityTurns: 3.0},
			"healthcare":        {EVToEBITDA: MultipleRange{Low: 8, Median: 12, High: 18}, EVToRevenue: MultipleRange{Low: 2, Median: 4, High: 8}, TypicalEBITDAMargin: 0.18, TypicalGrossMargin: 0.55, TypicalSGAPctRevenue: 0.25, TypicalWorkingCapitalPct: 0.08, TypicalCapexPctRevenue: 0.05, TypicalDAPctRevenue: 0.05, TypicalRevenueGrowth: 0.08, TypicalDebtCapacityTurns: 4.5},
			"financial_services": {EVToEBITDA: MultipleRange{Low: 7, Median: 10, High: 14}, EVToRevenue: MultipleRange{Low: 2, Median: 3.5, High: 6}, TypicalEBITDAMargin: 0.30, TypicalGrossMargin: 0.60, TypicalSGAPctRevenue: 0.20, TypicalWorkingCapitalPct: 0.02, TypicalCapexPctRevenue: 0.02, TypicalDAPctRevenue: 0.03, TypicalRevenueGrowth: 0.06, TypicalDebtCapacityTurns: 5.0},
			"defense":           {EVToEBITDA: MultipleRange{Low: 9, Median: 13, High: 18}, EVToRevenue: MultipleRange{Low: 2, Median: 4, High: 9}, TypicalEBITDAMargin: 0.14, TypicalGrossMargin: 0.35, TypicalSGAPctRevenue: 0.15, TypicalWorkingCapitalPct: 0.12, TypicalCapexPctRevenue: 0.03, TypicalDAPctRevenue: 0.04, TypicalRevenueGrowth: 0.07, TypicalDebtCapacityTurns: 4.0},
			"energy":            {EVToEBITDA: MultipleRange{Low: 5, Median: 7, High: 10}, EVToRevenue: MultipleRange{Low: 1, Median: 2, High: 4}, TypicalEBITDAMargin: 0.25, TypicalGrossMargin: 0.40, TypicalSGAPctRevenue: 0.12, TypicalWorkingCapitalPct: 0.10, TypicalCapexPctRevenue: 0.10, TypicalDAPctRevenue: 0.08, TypicalRevenueGrowth: 0.04, TypicalDebtCapacityTurns: 3.5},
			"retail":            {EVToEBITDA: MultipleRange{Low: 5, Median: 8, High: 11}, EVToRevenue: MultipleRange{Low: 0.5, Median: 1, High: 2}, TypicalEBITDAMargin: 0.10, TypicalGrossMargin: 0.35, TypicalSGAPctRevenue: 0.22, TypicalWorkingCapitalPct: 0.08, TypicalCapexPctRevenue: 0.03, TypicalDAPctRevenue: 0.03, TypicalRevenueGrowth: 0.04, TypicalDebtCapacityTurns: 3.0},
			"other":             defaultIndustry,
		},
		Ventures: map[string]VentureBenchmark{
			"default": {Stages: map[string]VentureStageBenchmark{
				"pre_seed":  {ValuationP25: 3.0, ValuationP50: 4.5, ValuationP75: 7.0, ValuationP95: 12.0, TractionBar: "Working prototype, technical co-founder, and at least one design partner."},
				"seed":      {ValuationP25: 7.0, ValuationP50: 10.0, ValuationP75: 16.0, ValuationP95: 28.0, ARRMultipleP25: 5, ARRMultipleP50: 8, ARRMultipleP75: 12, TractionBar: "$100K+ ARR, 10%+ MoM growth, and NRR at or above 100%."},
				"series_a":  {ValuationP25: 18.0, ValuationP50: 30.0, ValuationP75: 48.0, ValuationP95: 80.0, ARRMultipleP25: 6, ARRMultipleP50: 10, ARRMultipleP75: 16, TractionBar: "$1M+ ARR, 15%+ MoM growth, NRR at or above 110%, and 70%+ gross margin."},
			}},
			"ai_ml_infrastructure": {Stages: map[string]VentureStageBenchmark{
				"pre_seed": {ValuationP25: 5.0, ValuationP50: 8.0, ValuationP75: 14.0, ValuationP95: 25.0, TractionBar: "Technical team with published research or a working model, plus a clear compute cost model."},
				"seed":     {ValuationP25: 12.0, ValuationP50: 18.0, ValuationP75: 30.0, ValuationP95: 55.0, ARRMultipleP25: 8, ARRMultipleP50: 14, ARRMultipleP75: 22, TractionBar: "Design partners converting to paid contracts and a defensible data or infra moat."},
				"series_a": {ValuationP25: 35.0, ValuationP50: 60.0, ValuationP75: 100.0, ValuationP95: 180.0, ARRMultipleP25: 10, ARRMultipleP50: 16, ARRMultipleP75: 26, TractionBar: "$2M+ ARR with enterprise logos and demonstrated unit economics net of compute cost."},
			}},
			"defense_tech": {Stages: map[string]VentureStageBenchmark{
				"pre_seed": {ValuationP25: 6.0, ValuationP50: 10.0, ValuationP75: 16.0, ValuationP95: 28.0, TractionBar: "Cleared or clearable founding team and an identified program of record pathway."},
				"seed":     {ValuationP25: 14.0, ValuationP50: 20.0, ValuationP75: 32.0, ValuationP95: 55.0, TractionBar: "SBIR/STTR awards or a signed pilot with a DoD or allied customer."},
				"series_a": {ValuationP25: 30.0, ValuationP50: 50.0, ValuationP75: 85.0, ValuationP95: 150.0, TractionBar: "Program of record or multi-year contract backlog with a clear path to production units."},
			}},
			"fintech": {Stages: map[string]VentureStageBenchmark{
				"pre_seed": {ValuationP25: 3.5, ValuationP50: 5.0, ValuationP75: 8.0, ValuationP95: 14.0, TractionBar: "Regulatory pathway identified and a working prototype with at least one pilot partner."},
				"seed":     {ValuationP25: 8.0, ValuationP50: 12.0, ValuationP75: 19.0, ValuationP95: 32.0, ARRMultipleP25: 4, ARRMultipleP50: 7, ARRMultipleP75: 11, TractionBar: "Licensed or partnered compliance path, $100K+ ARR, and low customer concentration."},
				"series_a": {ValuationP25: 20.0, ValuationP50: 32.0, ValuationP75: 52.0, ValuationP95: 90.0, ARRMultipleP25: 5, ARRMultipleP50: 8, ARRMultipleP75: 13, TractionBar: "$1.5M+ ARR, demonstrated fraud/risk controls, and a clean regulatory record."},
			}},
			"b2b_saas": {Stages: map[string]VentureStageBenchmark{
				"pre_seed": {ValuationP25: 3.0, ValuationP50: 4.5, ValuationP75: 7.0, ValuationP95: 12.0, TractionBar: "MVP live with at least one design partner and a clear ICP."},
				"seed":     {ValuationP25: 6.5, ValuationP50: 9.5, ValuationP75: 15.0, ValuationP95: 26.0, ARRMultipleP25: 5, ARRMultipleP50: 8, ARRMultipleP75: 12, TractionBar: "$150K+ ARR, 10%+ MoM growth, NRR at or above 100%."},
				"series_a": {ValuationP25: 16.0, ValuationP50: 26.0, ValuationP75: 42.0, ValuationP95: 70.0, ARRMultipleP25: 6, ARRMultipleP50: 10, ARRMultipleP75: 15, TractionBar: "$1.2M+ ARR, NRR at or above 110%, and a repeatable sales motion."},
			}},
		},
		RegionalPremiums: map[string]float64{
			"bay_area":      1.25,
			"new_york":      1.10,
			"boston":        1.05,
			"seattle":       1.05,
			"austin":        1.00,
			"los_angeles":   1.05,
			"chicago":       0.90,
			"other_us":      0.85,
			"international": 0.80,
		},
		// MarketWideMedians values are USD millions, same scale as the venture
		// stage and VC-stage benchmark tables above.
		MarketWideMedians: map[string]float64{
			"pre_seed": 4.5,
			"seed":     10.0,
			"series_a": 30.0,
		},
		DownRoundPct: 0.18,
		ScorecardWeights: map[string]float64{
			"management_team":             0.30,
			"market_size":                 0.25,
			"product_technology":          0.15,
			"competitive_environment":     0.10,
			"marketing_sales_channels":    0.10,
			"additional_financing_needed": 0.05,
			"other_factors":               0.05,
		},
		RiskStepUSDMillions: 0.25,
		VCVerticals: map[string]VCVerticalBenchmark{
			"default": {Stages: map[string]VCStageBenchmark{
				"pre_seed": {ExitMultipleBear: 2, ExitMultipleBase: 5, ExitMultipleBull: 12, MedianPostMoney: 4.5},
				"seed":     {ExitMultipleBear: 2, ExitMultipleBase: 5, ExitMultipleBull: 11, MedianPostMoney: 10.0, MedianARRMultiple: 8},
				"series_a": {ExitMultipleBear: 2, ExitMultipleBase: 4.5, ExitMultipleBull: 10, MedianPostMoney: 30.0, MedianARRMultiple: 10},
				"series_b": {ExitMultipleBear: 2, ExitMultipleBase: 4, ExitMultipleBull: 9, MedianPostMoney: 70.0, MedianARRMultiple: 9},
				"series_c": {ExitMultipleBear: 1.8, ExitMultipleBase: 3.5, ExitMultipleBull: 8, MedianPostMoney: 150.0, MedianARRMultiple: 8},
				"growth":   {ExitMultipleBear: 1.5, ExitMultipleBase: 3, ExitMultipleBull: 6, MedianPostMoney: 300.0, MedianARRMultiple: 7},
			}},
			"ai_ml_infrastructure": {Stages: map[string]VCStageBenchmark{
				"pre_seed": {ExitMultipleBear: 3, ExitMultipleBase: 7, ExitMultipleBull: 18, MedianPostMoney: 8.0},
				"seed":     {ExitMultipleBear: 3, ExitMultipleBase: 7, ExitMultipleBull: 16, MedianPostMoney: 18.0, MedianARRMultiple: 14},
				"series_a": {ExitMultipleBear: 2.5, ExitMultipleBase: 6, ExitMultipleBull: 14, MedianPostMoney: 60.0, MedianARRMultiple: 16},
			}},
			"fintech": {Stages: map[string]VCStageBenchmark{
				"pre_seed": {ExitMultipleBear: 2, ExitMultipleBase: 4.5, ExitMultipleBull: 10, MedianPostMoney: 5.0},
				"seed":     {ExitMultipleBear: 2, ExitMultipleBase: 4.5, ExitMultipleBull: 9, MedianPostMoney: 12.0, MedianARRMultiple: 7},
				"series_a": {ExitMultipleBear: 1.8, ExitMultipleBase: 4, ExitMultipleBull: 8, MedianPostMoney: 32.0, MedianARRMultiple: 8},
			}},
			"b2b_saas": {Stages: map[string]VCStageBenchmark{
				"pre_seed": {ExitMultipleBear: 2, ExitMultipleBase: 5, ExitMultipleBull: 12, MedianPostMoney: 4.5},
				"seed":     {ExitMultipleBear: 2, ExitMultipleBase: 5, ExitMultipleBull: 11, MedianPostMoney: 9.5, MedianARRMultiple: 8},
				"series_a": {ExitMultipleBear: 2, ExitMultipleBase: 4.5, ExitMultipleBull: 10, MedianPostMoney: 26.0, MedianARRMultiple: 10},
			}},
			"defense_tech": {Stages: map[string]VCStageBenchmark{
				"pre_seed": {ExitMultipleBear: 1.8, ExitMultipleBase: 4, ExitMultipleBull: 9, MedianPostMoney: 10.0},
				"seed":     {ExitMultipleBear: 1.8, ExitMultipleBase: 4, ExitMultipleBull: 8, MedianPostMoney: 20.0},
				"series_a": {ExitMultipleBear: 1.6, ExitMultipleBase: 3.5, ExitMultipleBull: 7, MedianPostMoney: 50.0},
			}},
		},
	}
	return t
}

// Load reads a YAML benchmark document from path, falling back to Default()'s
// Industries, Ventures and VCVerticals tables when the document omits them.
// The other fields (regional premiums, market-wide medians, scorecard
// weights and the scalar constants) are taken from the document as is and
// stay empty or zero when it omits them.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: reading %s: %w", path, err)
	}
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("bench: parsing %s: %w", path, err)
	}
	if t.Industries == nil {
		t.Industries = Default().Industries
	}
	if t.Ventures == nil {
		t.Ventures = Default().Ventures
	}
	if t.VCVerticals == nil {
		t.VCVerticals = Default().VCVerticals
	}
	return &t, nil
}

// LoadOverride applies an Hjson-formatted override document on top of an
// existing table, for hand-maintained benchmark tweaks that don't warrant a
// full YAML rewrite. Only industries/verticals present in the override are
// replaced; everything else in base is left untouched.
func LoadOverride(base *Table, hjsonPath string) (*Table, error) {
	raw, err := os.ReadFile(hjsonPath)
	if err != nil {
		return nil, fmt.Errorf("bench: reading override %s: %w", hjsonPath, err)
	}
	var decoded map[string]interface{}
	if err := hjson.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("bench: parsing hjson override %s: %w", hjsonPath, err)
	}

	// Re-marshal the decoded generic map through YAML's own decoder so the
	// override merges through the same typed path as a primary document,
	// rather than hand-walking the map[string]interface{} tree.
	remarshaled, err := yaml.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("bench: normalizing override %s: %w", hjsonPath, err)
	}
	var override Table
	if err := yaml.Unmarshal(remarshaled, &override); err != nil {
		return nil, fmt.Errorf("bench: re-decoding override %s: %w", hjsonPath, err)
	}

	merged := *base
	merged.Industries = make(map[string]IndustryBenchmark, len(base.Industries))
	for k, v := range base.Industries {
		merged.Industries[k] = v
	}
	for k, v := range override.Industries {
		merged.Industries[k] = v
	}
	merged.Ventures = make(map[string]VentureBenchmark, len(base.Ventures))
	for k, v := range base.Ventures {
		merged.Ventures[k] = v
	}
	for k, v := range override.Ventures {
		merged.Ventures[k] = v
	}
	merged.VCVerticals = make(map[string]VCVerticalBenchmark, len(base.VCVerticals))
	for k, v := range base.VCVerticals {
		merged.VCVerticals[k] = v
	}
	for k, v := range override.VCVerticals {
		merged.VCVerticals[k] = v
	}
	return &merged, nil
}

// Industry looks up an industry's benchmark row, falling back to the
// Manufacturing row for unknown keys — missing-benchmark handling stays a
// silent default plus caller-visible note, per the engine's error policy.
func (t *Table) Industry(key string) (IndustryBenchmark, bool) {
	if b, ok := t.Industries[key]; ok {
		return b, true
	}
	return t.Industries["manufacturing"], false
}

// Venture looks up a venture vertical's benchmark row, falling back to the
// "default" row for unknown verticals.
func (t *Table) Venture(key string) (VentureBenchmark, bool) {
	if b, ok := t.Ventures[key]; ok {
		return b, true
	}
	return t.Ventures["default"], false
}

// RegionalPremium returns the Berkus/Scorecard baseline multiplier for a
// geography, defaulting to 1.0 (no adjustment) for unknown keys.
func (t *Table) RegionalPremium(geography string) float64 {
	if p, ok := t.RegionalPremiums[geography]; ok {
		return p
	}
	return 1.0
}

// MarketMedian returns the market-wide pre-money median for a stage,
// regardless of vertical — the fallback baseline when a vertical carries no
// benchmark row of its own for that stage.
func (t *Table) MarketMedian(stage string) float64 {
	return t.MarketWideMedians[stage]
}

// VCStage returns the vertical's VC exit-multiple benchmark row for a stage,
// falling back to the "default" vertical's row for unknown verticals or
// stages the vertical carries no data for. The bool is false whenever the
// "default" vertical's row was substituted.
func (t *Table) VCStage(vertical, stage string) (VCStageBenchmark, bool) {
	v, verticalFound := t.VCVerticals[vertical]
	if !verticalFound {
		v = t.VCVerticals["default"]
	}
	s, ok := v.Stages[stage]
	if ok {
		return s, verticalFound
	}
	return t.VCVerticals["default"].Stages[stage], false
}

// TransactionFeeTiers scales advisory/banker fees by deal size: smaller
// deals carry a higher percentage fee.
var TransactionFeeTiers = []struct {
	Ceiling float64
	Rate    float64
}{
	{50_000_000, 0.030},
	{500_000_000, 0.020},
	{0, 0.015}, // Ceiling 0 marks the open-ended top tier.
}

// TransactionFeePct returns the typical fee percentage for a deal of the
// given size.
func TransactionFeePct(dealSize float64) float64 {
	for _, tier := range TransactionFeeTiers {
		if tier.Ceiling == 0 || dealSize < tier.Ceiling {
			return tier.Rate
		}
	}
	return 0.015
}

const (
	middleMarketRate = 0.08
	largeCapRate     = 0.065
	largeCapFloor    = 250_000_000
)

// BlendedInterestRate returns the default acquisition debt interest rate
// for a deal of the given size, used when no explicit debt tranches are
// supplied.
func BlendedInterestRate(dealSize float64) float64 {
	if dealSize < largeCapFloor {
		return middleMarketRate
	}
	return largeCapRate
}
