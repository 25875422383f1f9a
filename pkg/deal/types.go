// Package deal implements the deterministic M&A accretion/dilution core:
// purchase price allocation, the circularity solver, the pro-forma
// projector, the returns engine, the sensitivity engine, the risk
// analyzer, and the scorecard/verdict synthesis.
//
// The package is a pure, single-threaded transform: DealInput -> DealOutput.
// Nothing here blocks on I/O, retains process-wide state, or mutates a
// shared benchmark table. Hosts own configuration and persistence.
package deal

import (
	"fmt"
	"math"
)

// AcqGrowthRate is the fixed annual revenue growth applied to the
// acquirer standalone projection. The acquirer side of a deal is treated
// as a known quantity; only the target and synergies carry input-driven
// growth assumptions.
const AcqGrowthRate = 0.03

// StructureTolerance is the allowed slack on cash+stock+debt = 1.0.
const StructureTolerance = 1e-3

// Industry tags the deal for benchmark lookup. Unknown industries fall
// back to Manufacturing per the error-handling policy (missing benchmark).
type Industry string

const (
	IndustryManufacturing     Industry = "manufacturing"
	IndustryTechnology        Industry = "technology"
	IndustryHealthcare        Industry = "healthcare"
	IndustryFinancialServices Industry = "financial_services"
	IndustryDefense           Industry = "defense"
	IndustryEnergy            Industry = "energy"
	IndustryRetail            Industry = "retail"
	IndustryOther             Industry = "other"
)

// AmortizationType selects how a debt tranche's mandatory principal is
// scheduled across its term.
type AmortizationType string

const (
	AmortizationStraightLine AmortizationType = "straight_line"
	AmortizationInterestOnly AmortizationType = "interest_only"
	AmortizationBullet       AmortizationType = "bullet"
)

// DebtTranche is one layer of acquisition financing.
type DebtTranche struct {
	Name          string           `json:"name"`
	Amount        float64          `json:"amount"`         // principal at close, > 0
	InterestRate  float64          `json:"interest_rate"`   // annual decimal, in (0, 1]
	TermYears     int              `json:"term_years"`      // 1-30
	Amortization  AmortizationType `json:"amortization_type"`
}

func (t DebtTranche) validate(idx int) error {
	if t.Amount <= 0 {
		return fmt.Errorf("debt tranche %d (%s): amount must be > 0, got %v", idx, t.Name, t.Amount)
	}
	if t.InterestRate <= 0 || t.InterestRate > 1 {
		return fmt.Errorf("debt tranche %d (%s): interest rate must be in (0, 1], got %v", idx, t.Name, t.InterestRate)
	}
	if t.TermYears < 1 || t.TermYears > 30 {
		return fmt.Errorf("debt tranche %d (%s): term years must be in [1, 30], got %d", idx, t.Name, t.TermYears)
	}
	switch t.Amortization {
	case AmortizationStraightLine, AmortizationInterestOnly, AmortizationBullet:
	default:
		return fmt.Errorf("debt tranche %d (%s): unknown amortization type %q", idx, t.Name, t.Amortization)
	}
	return nil
}

// SynergyItem is one line of cost or revenue synergy with a linear
// phase-in schedule.
type SynergyItem struct {
	Category      string  `json:"category"`
	AnnualAmount  float64 `json:"annual_amount"`   // > 0, run-rate once fully phased in
	PhaseInYears  int     `json:"phase_in_years"`  // 1-7
	CostToAchieve float64 `json:"cost_to_achieve"` // one-time
}

// RealizedValue returns the year-t realized synergy, linearly phased in.
func (s SynergyItem) RealizedValue(year int) float64 {
	if s.PhaseInYears <= 0 {
		return s.AnnualAmount
	}
	frac := float64(year) / float64(s.PhaseInYears)
	if frac > 1 {
		frac = 1
	}
	return s.AnnualAmount * frac
}

func (s SynergyItem) validate(idx int, kind string) error {
	if s.AnnualAmount <= 0 {
		return fmt.Errorf("%s synergy %d (%s): annual amount must be > 0", kind, idx, s.Category)
	}
	if s.PhaseInYears < 1 || s.PhaseInYears > 7 {
		return fmt.Errorf("%s synergy %d (%s): phase-in years must be in [1, 7], got %d", kind, idx, s.Category, s.PhaseInYears)
	}
	return nil
}

// Synergies groups the two synergy kinds the projector sums separately
// for SG&A (cost) and revenue (top-line) treatment.
type Synergies struct {
	CostSynergies    []SynergyItem `json:"cost_synergies"`
	RevenueSynergies []SynergyItem `json:"revenue_synergies"`
}

// TotalAnnual returns the full run-rate (un-phased) total across both
// synergy lists, used as the sensitivity engine's scaling base.
func (s Synergies) TotalAnnual() float64 {
	var total float64
	for _, item := range s.CostSynergies {
		total += item.AnnualAmount
	}
	for _, item := range s.RevenueSynergies {
		total += item.AnnualAmount
	}
	return total
}

// PurchasePriceAllocationInput captures the step-up and intangible
// assumptions an analyst supplies for the PPA; see pkg/deal/ppa.go for
// the resulting goodwill/DTL computation.
type PurchasePriceAllocationInput struct {
	AssetWriteup           float64 `json:"asset_writeup"`             // >= 0
	AssetWriteupUsefulLife float64 `json:"asset_writeup_useful_life"` // years, > 0 if writeup > 0
	IdentifiableIntangibles float64 `json:"identifiable_intangibles"`  // >= 0
	IntangibleUsefulLife    float64 `json:"intangible_useful_life"`    // years, > 0 if intangibles > 0
}

func (p PurchasePriceAllocationInput) validate() error {
	if p.AssetWriteup < 0 {
		return fmt.Errorf("ppa: asset writeup must be >= 0")
	}
	if p.IdentifiableIntangibles < 0 {
		return fmt.Errorf("ppa: identifiable intangibles must be >= 0")
	}
	if p.AssetWriteup > 0 && p.AssetWriteupUsefulLife <= 0 {
		return fmt.Errorf("ppa: asset writeup useful life must be > 0 when writeup > 0")
	}
	if p.IdentifiableIntangibles > 0 && p.IntangibleUsefulLife <= 0 {
		return fmt.Errorf("ppa: intangible useful life must be > 0 when intangibles > 0")
	}
	return nil
}

// DealStructure is the sources-side financing mix. CashPct + StockPct +
// DebtPct must sum to 1.0 within StructureTolerance.
type DealStructure struct {
	CashPct             float64       `json:"cash_percentage"`
	StockPct            float64       `json:"stock_percentage"`
	DebtPct             float64       `json:"debt_percentage"`
	DebtTranches        []DebtTranche `json:"debt_tranches"`
	TransactionFeesPct  float64       `json:"transaction_fees_pct"`
	AdvisoryFees        float64       `json:"advisory_fees"`
}

func (s DealStructure) validate() error {
	sum := s.CashPct + s.StockPct + s.DebtPct
	if math.Abs(sum-1.0) > StructureTolerance {
		return fmt.Errorf("deal structure: cash+stock+debt must sum to 1.0 (+/- %.0e), got %v", StructureTolerance, sum)
	}
	if s.CashPct < 0 || s.StockPct < 0 || s.DebtPct < 0 {
		return fmt.Errorf("deal structure: percentages must be non-negative")
	}
	for i, t := range s.DebtTranches {
		if err := t.validate(i); err != nil {
			return err
		}
	}
	return nil
}

// CompanyProfile is the shared shape of acquirer and target financials.
// Money is in dollars; rates/percentages are decimals.
type CompanyProfile struct {
	Name              string   `json:"name"`
	Revenue           float64  `json:"revenue"`            // > 0
	EBITDA            float64  `json:"ebitda"`
	NetIncome         float64  `json:"net_income"`
	TotalDebt         float64  `json:"total_debt"`
	CashOnHand        float64  `json:"cash_on_hand"`
	WorkingCapital    float64  `json:"working_capital"`
	SharesOutstanding float64  `json:"shares_outstanding"` // > 0
	SharePrice        float64  `json:"share_price"`        // > 0
	TaxRate           float64  `json:"tax_rate"`            // [0, 1]
	DA                float64  `json:"depreciation_amortization"`
	Capex             float64  `json:"capex"`
	Industry          Industry `json:"industry"`
}

// EBITDAMargin is the company's EBITDA / revenue.
func (c CompanyProfile) EBITDAMargin() float64 {
	if c.Revenue == 0 {
		return 0
	}
	return c.EBITDA / c.Revenue
}

// MarketCap returns shares outstanding times share price.
func (c CompanyProfile) MarketCap() float64 {
	return c.SharesOutstanding * c.SharePrice
}

// EPS returns standalone net income per share.
func (c CompanyProfile) EPS() float64 {
	if c.SharesOutstanding == 0 {
		return 0
	}
	return c.NetIncome / c.SharesOutstanding
}

func (c CompanyProfile) validate(label string) error {
	if c.Revenue <= 0 {
		return fmt.Errorf("%s: revenue must be > 0", label)
	}
	if c.SharesOutstanding <= 0 {
		return fmt.Errorf("%s: shares outstanding must be > 0", label)
	}
	if c.SharePrice <= 0 {
		return fmt.Errorf("%s: share price must be > 0", label)
	}
	if c.TaxRate < 0 || c.TaxRate > 1 {
		return fmt.Errorf("%s: tax rate must be in [0, 1], got %v", label, c.TaxRate)
	}
	return nil
}

// AcquirerProfile is the acquiring company. Its revenue grows at the
// fixed AcqGrowthRate in projections; it carries no separate growth field.
type AcquirerProfile struct {
	CompanyProfile
}

// TargetProfile is the acquisition target.
type TargetProfile struct {
	CompanyProfile
	AcquisitionPrice float64 `json:"acquisition_price"` // enterprise value paid
	RevenueGrowth    float64 `json:"revenue_growth"`    // annual decimal
}

func (t TargetProfile) validate() error {
	if err := t.CompanyProfile.validate("target"); err != nil {
		return err
	}
	if t.AcquisitionPrice <= 0 {
		return fmt.Errorf("target: acquisition price must be > 0")
	}
	return nil
}

// DefensePositioningInput is the optional defense-sector profile
// referenced by spec.md's data model and the yellow-band widening rule
// in the scorecard verdict.
type DefensePositioningInput struct {
	ClearanceLevel   string   `json:"clearance_level"`
	Backlog          float64  `json:"backlog"`           // dollars
	NTMRevenue       float64  `json:"ntm_revenue"`        // next-twelve-months revenue, for coverage
	Certifications   []string `json:"certifications"`
	ContractVehicles []string `json:"contract_vehicles"`
}

// BacklogCoverage is backlog divided by next-twelve-months revenue.
func (d DefensePositioningInput) BacklogCoverage() float64 {
	if d.NTMRevenue <= 0 {
		return 0
	}
	return d.Backlog / d.NTMRevenue
}

// Mode is an informational tag distinguishing a quick screen from a deep
// model; it does not alter engine behavior.
type Mode string

const (
	ModeQuick Mode = "quick"
	ModeDeep  Mode = "deep"
)

// DealInput is the complete, validated input to RunDeal/ProjectFull.
// Once constructed via NewDealInput it is treated as immutable; the
// sensitivity engine clones it rather than mutating it in place.
type DealInput struct {
	Acquirer        AcquirerProfile          `json:"acquirer"`
	Target          TargetProfile            `json:"target"`
	Structure       DealStructure            `json:"structure"`
	PPA             PurchasePriceAllocationInput `json:"ppa"`
	Synergies       Synergies                `json:"synergies"`
	ProjectionYears int                      `json:"projection_years"` // [3, 10]
	Mode            Mode                     `json:"mode"`
	Defense         *DefensePositioningInput `json:"defense,omitempty"`
}

// NewDealInput validates d and returns a *DealInput ready for RunDeal, or
// a descriptive error if any invariant from spec.md §3/§6 is violated.
// Validation failures never reach the core computation.
func NewDealInput(d DealInput) (*DealInput, error) {
	if err := d.Acquirer.CompanyProfile.validate("acquirer"); err != nil {
		return nil, err
	}
	if err := d.Target.validate(); err != nil {
		return nil, err
	}
	if err := d.Structure.validate(); err != nil {
		return nil, err
	}
	if err := d.PPA.validate(); err != nil {
		return nil, err
	}
	for i, s := range d.Synergies.CostSynergies {
		if err := s.validate(i, "cost"); err != nil {
			return nil, err
		}
	}
	for i, s := range d.Synergies.RevenueSynergies {
		if err := s.validate(i, "revenue"); err != nil {
			return nil, err
		}
	}
	if d.ProjectionYears < 3 || d.ProjectionYears > 10 {
		return nil, fmt.Errorf("deal input: projection_years must be in [3, 10], got %d", d.ProjectionYears)
	}
	if d.Mode == "" {
		d.Mode = ModeDeep
	}
	cp := d
	return &cp, nil
}

// clone returns a deep copy of d for sensitivity perturbation. Slices and
// the optional defense pointer are copied explicitly so the original
// input is never aliased by a modified cell.
func (d DealInput) clone() DealInput {
	cp := d
	cp.Structure.DebtTranches = append([]DebtTranche(nil), d.Structure.DebtTranches...)
	cp.Synergies.CostSynergies = append([]SynergyItem(nil), d.Synergies.CostSynergies...)
	cp.Synergies.RevenueSynergies = append([]SynergyItem(nil), d.Synergies.RevenueSynergies...)
	if d.Defense != nil {
		defCopy := *d.Defense
		defCopy.Certifications = append([]string(nil), d.Defense.Certifications...)
		defCopy.ContractVehicles = append([]string(nil), d.Defense.ContractVehicles...)
		cp.Defense = &defCopy
	}
	return cp
}
