package settlement

import "github.com/verdictlabs/verdict-go/types"

// The claimability predicates below are advisory for the client UI; the
// authoritative program re-checks every condition at claim time.

// IsChallengerRewardClaimable reports whether a challenger has an unclaimed
// payout for the round outcome. Challengers only have one on a win or a
// no-quorum refund.
func IsChallengerRewardClaimable(rec *types.ChallengerRecord, outcome types.Outcome) bool {
	if rec.RewardClaimed {
		return false
	}
	return outcome == types.ChallengerWins || outcome == types.NoParticipation
}

// IsDefenderRewardClaimable reports whether a defender has an unclaimed
// payout. The safe bond share is returned in every outcome, so any unclaimed
// record is claimable.
func IsDefenderRewardClaimable(rec *types.DefenderRecord) bool {
	return !rec.RewardClaimed
}

// IsJurorRewardClaimable reports whether a juror has an unclaimed payout.
func IsJurorRewardClaimable(rec *types.JurorRecord) bool {
	return !rec.RewardClaimed
}
