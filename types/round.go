package types

import (
	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/config/params"
	"github.com/verdictlabs/verdict-go/math"
)

// RoundResult is the resolved aggregate of one dispute round, read from the
// authoritative program's per-subject history. It is append-only on chain;
// this client only ever reads it (the claimed counters are incremented by
// the program at claim time).
type RoundResult struct {
	Round           uint64
	Outcome         Outcome
	TotalStake      uint64 // Sum of all challenger stakes.
	BondAtRisk      uint64 // Defender bond placed at risk this round.
	SafeBond        uint64 // Defender bond never at risk, always returned.
	TotalVoteWeight uint64 // Sum of voting power cast by jurors.
	WinnerPool      uint64
	JurorPool       uint64

	DefenderCount      uint32
	ChallengerCount    uint32
	JurorCount         uint32
	DefendersClaimed   uint32
	ChallengersClaimed uint32
	JurorsClaimed      uint32
}

// CheckDistribution verifies the resolution-time pool invariant:
// winnerPool + jurorPool + platformFee == totalStake + bondAtRisk, where the
// fee is a fixed percentage subtracted once from the combined pot.
func (r *RoundResult) CheckDistribution() error {
	if r.Outcome == Unresolved {
		return nil
	}
	cfg := params.VerdictConfig()
	pot, err := math.Add64(r.TotalStake, r.BondAtRisk)
	if err != nil {
		return errors.Wrap(err, "could not compute round pot")
	}
	fee, err := math.MulDiv64(pot, cfg.PlatformFeePercent, cfg.OneHundredPercent)
	if err != nil {
		return errors.Wrap(err, "could not compute platform fee")
	}
	pools, err := math.Add64(r.WinnerPool, r.JurorPool)
	if err != nil {
		return errors.Wrap(err, "could not sum distribution pools")
	}
	distributed, err := math.Add64(pools, fee)
	if err != nil {
		return errors.Wrap(err, "could not sum distribution total")
	}
	if distributed != pot {
		return errors.Errorf("distribution mismatch: pools %d + fee %d != pot %d", pools, fee, pot)
	}
	return nil
}

// Resolved reports whether the round has reached a terminal outcome.
func (r *RoundResult) Resolved() bool {
	return r.Outcome != Unresolved
}
