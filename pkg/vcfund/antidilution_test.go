package vcfund

import "testing"

func TestRunAntiDilution_NoneLeavesPriceUnadjusted(t *testing.T) {
	in := AntiDilutionInput{
		Type: AntiDilutionNone, OriginalPrice: 10, InvestorShares: 100_000,
		OriginalTotalShares: 1_000_000, DownRoundPrice: 5, NewSharesIssued: 200_000,
	}
	out := runAntiDilution(in)
	if out.AdjustedPrice != 10 {
		t.Errorf("expected unadjusted price with no anti-dilution protection, got %v", out.AdjustedPrice)
	}
	if out.AdditionalShares != 0 {
		t.Errorf("expected no additional shares, got %v", out.AdditionalShares)
	}
}

func TestRunAntiDilution_FullRatchetResetsToDownRoundPrice(t *testing.T) {
	in := AntiDilutionInput{
		Type: AntiDilutionFullRatchet, OriginalPrice: 10, InvestorShares: 100_000,
		OriginalTotalShares: 1_000_000, DownRoundPrice: 5, NewSharesIssued: 200_000,
	}
	out := runAntiDilution(in)
	if out.AdjustedPrice != 5 {
		t.Errorf("expected full ratchet to reset conversion price to the down round price, got %v", out.AdjustedPrice)
	}
	if out.AdditionalShares <= 0 {
		t.Errorf("expected additional shares to be issued under full ratchet, got %v", out.AdditionalShares)
	}
}

func TestRunAntiDilution_BroadBasedWAGivesFewerSharesThanFullRatchet(t *testing.T) {
	base := AntiDilutionInput{
		OriginalPrice: 10, InvestorShares: 100_000,
		OriginalTotalShares: 1_000_000, DownRoundPrice: 5, NewSharesIssued: 200_000,
	}
	fullRatchet := base
	fullRatchet.Type = AntiDilutionFullRatchet
	broadBased := base
	broadBased.Type = AntiDilutionBroadBasedWA

	outFull := runAntiDilution(fullRatchet)
	outBroad := runAntiDilution(broadBased)

	if outBroad.AdditionalShares >= outFull.AdditionalShares {
		t.Errorf("expected broad-based weighted average to issue fewer shares than full ratchet: broad=%v full=%v",
			outBroad.AdditionalShares, outFull.AdditionalShares)
	}
}

func TestRunAntiDilution_ValueTransferredScalesWithAdditionalShares(t *testing.T) {
	in := AntiDilutionInput{
		Type: AntiDilutionFullRatchet, OriginalPrice: 10, InvestorShares: 100_000,
		OriginalTotalShares: 1_000_000, DownRoundPrice: 5, NewSharesIssued: 200_000,
	}
	out := runAntiDilution(in)
	want := out.AdditionalShares * in.DownRoundPrice
	if out.ValueTransferred != want {
		t.Errorf("ValueTransferred = %v, want %v", out.ValueTransferred, want)
	}
}
