// Package settlement recomputes, bit for bit, the reward and refund
// economics the on-chain program applies when a dispute round resolves. The
// three per-role calculators are pure functions over a resolved RoundResult
// and the caller's own participant record; they never mutate state and may
// run with unbounded parallelism. A zero pool or weight total is a
// legitimate degenerate round and yields a zero share, never a fault.
// Arithmetic overflow, by contrast, is surfaced as a hard error since it
// indicates corrupted input or a schema mismatch.
package settlement

import (
	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/config/params"
	"github.com/verdictlabs/verdict-go/math"
	"github.com/verdictlabs/verdict-go/types"
)

// JurorRewardBreakdown itemizes a juror's claim and the inputs that
// produced it.
type JurorRewardBreakdown struct {
	PoolShare       uint64
	VotingPower     uint64
	TotalVoteWeight uint64
	JurorPool       uint64
	Total           uint64
}

// JurorReward computes a juror's claimable share of the juror pool,
// proportional to voting power regardless of outcome. A round in which no
// votes were cast pays nothing.
func JurorReward(res *types.RoundResult, rec *types.JurorRecord) (*JurorRewardBreakdown, error) {
	b := &JurorRewardBreakdown{
		VotingPower:     rec.VotingPower,
		TotalVoteWeight: res.TotalVoteWeight,
		JurorPool:       res.JurorPool,
	}
	if res.TotalVoteWeight == 0 {
		return b, nil
	}
	share, err := math.MulDiv64(res.JurorPool, rec.VotingPower, res.TotalVoteWeight)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute juror pool share")
	}
	b.PoolShare = share
	b.Total = share
	return b, nil
}

// ChallengerRewardBreakdown itemizes a challenger's claim and the inputs
// that produced it.
type ChallengerRewardBreakdown struct {
	WinnerPoolShare uint64 // Paid when the challenger side prevails.
	StakeRefund     uint64 // Paid when the round closes without quorum.
	Stake           uint64
	TotalStake      uint64
	WinnerPool      uint64
	Outcome         types.Outcome
	Total           uint64
}

// ChallengerReward computes a challenger's claim for the round outcome:
// a proportional winner-pool share when the challenger side wins, a 99%
// stake refund when the round sees no participation, and nothing when the
// defender wins (the stake was forfeited into the winner pool).
func ChallengerReward(res *types.RoundResult, rec *types.ChallengerRecord) (*ChallengerRewardBreakdown, error) {
	cfg := params.VerdictConfig()
	b := &ChallengerRewardBreakdown{
		Stake:      rec.Stake,
		TotalStake: res.TotalStake,
		WinnerPool: res.WinnerPool,
		Outcome:    res.Outcome,
	}
	switch res.Outcome {
	case types.ChallengerWins:
		if res.TotalStake == 0 {
			return b, nil
		}
		share, err := math.MulDiv64(res.WinnerPool, rec.Stake, res.TotalStake)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute winner pool share")
		}
		b.WinnerPoolShare = share
		b.Total = share
	case types.NoParticipation:
		refund, err := math.MulDiv64(rec.Stake, cfg.RefundNumerator, cfg.RefundDenominator)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute stake refund")
		}
		b.StakeRefund = refund
		b.Total = refund
	case types.DefenderWins, types.Unresolved:
		// Nothing to claim.
	}
	return b, nil
}

// DefenderRewardBreakdown itemizes a defender's claim and the inputs that
// produced it.
type DefenderRewardBreakdown struct {
	SafeBondShare   uint64 // Returned regardless of outcome.
	WinnerPoolShare uint64 // Paid on DefenderWins and NoParticipation.
	AtRiskRefund    uint64 // 99% of the at-risk contribution on NoParticipation.
	Bond            uint64
	BondAtRisk      uint64
	SafeBond        uint64
	WinnerPool      uint64
	Outcome         types.Outcome
	Total           uint64
}

// DefenderReward computes a defender's claim: the proportional slice of the
// safe bond in every outcome, plus a winner-pool share when the defender
// side prevails or the round closes without quorum, plus a 99% refund of the
// at-risk contribution in the no-quorum case.
func DefenderReward(res *types.RoundResult, rec *types.DefenderRecord) (*DefenderRewardBreakdown, error) {
	cfg := params.VerdictConfig()
	b := &DefenderRewardBreakdown{
		Bond:       rec.Bond,
		BondAtRisk: res.BondAtRisk,
		SafeBond:   res.SafeBond,
		WinnerPool: res.WinnerPool,
		Outcome:    res.Outcome,
	}
	if res.BondAtRisk == 0 {
		// Degenerate round with no defender bond at risk distributes nothing.
		return b, nil
	}
	safeShare, err := math.MulDiv64(res.SafeBond, rec.Bond, res.BondAtRisk)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute safe bond share")
	}
	b.SafeBondShare = safeShare

	if res.Outcome == types.DefenderWins || res.Outcome == types.NoParticipation {
		winnerShare, err := math.MulDiv64(res.WinnerPool, rec.Bond, res.BondAtRisk)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute winner pool share")
		}
		b.WinnerPoolShare = winnerShare
	}
	if res.Outcome == types.NoParticipation {
		atRiskShare, err := math.MulDiv64(res.BondAtRisk, rec.Bond, res.BondAtRisk)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute at-risk share")
		}
		refund, err := math.MulDiv64(atRiskShare, cfg.RefundNumerator, cfg.RefundDenominator)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute at-risk refund")
		}
		b.AtRiskRefund = refund
	}

	total, err := math.Add64(b.SafeBondShare, b.WinnerPoolShare)
	if err != nil {
		return nil, errors.Wrap(err, "could not sum defender claim")
	}
	total, err = math.Add64(total, b.AtRiskRefund)
	if err != nil {
		return nil, errors.Wrap(err, "could not sum defender claim")
	}
	b.Total = total
	return b, nil
}
