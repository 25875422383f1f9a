package vcfund

import "testing"

func TestComputeOwnershipMath_EntryPctMatchesCheckOverPostMoney(t *testing.T) {
	d := baseDealInput()
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	want := d.CheckSize / d.PostMoneyValuation
	if om.EntryOwnershipPct != want {
		t.Errorf("EntryOwnershipPct = %v, want %v", om.EntryOwnershipPct, want)
	}
}

func TestComputeOwnershipMath_PreSeedWalksFullDilutionSequence(t *testing.T) {
	d := baseDealInput()
	d.Stage = StagePreSeed
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	if len(om.DilutionStack) != 5 {
		t.Fatalf("expected 5 rounds of dilution (seed..ipo), got %d", len(om.DilutionStack))
	}
	if om.DilutionStack[0].Round != "Seed" {
		t.Errorf("expected first projected round to be Seed, got %q", om.DilutionStack[0].Round)
	}
}

func TestComputeOwnershipMath_SeriesCHasOnlyIPORoundRemaining(t *testing.T) {
	d := baseDealInput()
	d.Stage = StageSeriesC
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	if len(om.DilutionStack) != 1 || om.DilutionStack[0].Round != "IPO" {
		t.Fatalf("expected only an IPO round remaining from series C, got %+v", om.DilutionStack)
	}
}

func TestComputeOwnershipMath_GrowthStageHasNoProjectedDilution(t *testing.T) {
	d := baseDealInput()
	d.Stage = StageGrowth
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	if len(om.DilutionStack) != 0 {
		t.Errorf("expected no projected dilution rounds past growth stage, got %+v", om.DilutionStack)
	}
	if om.ExitOwnershipPct != om.EntryOwnershipPct {
		t.Errorf("expected exit ownership to equal entry ownership with no further dilution")
	}
}

func TestComputeOwnershipMath_ExitOwnershipMonotonicallyShrinks(t *testing.T) {
	d := baseDealInput()
	d.Stage = StagePreSeed
	d.Dilution = DefaultDilutionAssumptions()
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	prev := om.EntryOwnershipPct
	for _, step := range om.DilutionStack {
		if step.OwnershipAfter >= prev {
			t.Errorf("expected ownership to shrink at each round, got %v then %v", prev, step.OwnershipAfter)
		}
		prev = step.OwnershipAfter
	}
}

func TestComputeOwnershipMath_FundReturnerThresholdsScaleWithTargetMultiple(t *testing.T) {
	d := baseDealInput()
	d.Stage = StageSeriesB
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	if om.FundReturner3xExit <= om.FundReturner1xExit {
		t.Errorf("expected the 3x fund-returner exit to exceed the 1x exit: 1x=%v 3x=%v", om.FundReturner1xExit, om.FundReturner3xExit)
	}
	if om.FundReturner5xExit <= om.FundReturner3xExit {
		t.Errorf("expected the 5x fund-returner exit to exceed the 3x exit")
	}
}

func TestComputeOwnershipMath_RequiredARRMultiplesNilWithoutARR(t *testing.T) {
	d := baseDealInput()
	d.ARR = 0
	f, _ := NewFundProfile(baseFundProfile())
	om := computeOwnershipMath(d, *f)
	if om.RequiredARRMultipleFor1xFund != nil {
		t.Errorf("expected nil required ARR multiple without ARR data")
	}
}
