package types

// DefenderRecord is one defender's contribution to a round. Immutable after
// creation except RewardClaimed, which transitions false to true exactly
// once when the program pays the claim out.
type DefenderRecord struct {
	Owner         Address
	Round         uint64
	Bond          uint64 // Contribution to the round's at-risk bond.
	RewardClaimed bool
}

// ChallengerRecord is one challenger's staked position in a round.
type ChallengerRecord struct {
	Owner         Address
	Round         uint64
	Stake         uint64
	RewardClaimed bool
}

// JurorRecord is one juror's vote allocation in a round. VotingPower is
// computed by the program from the staked amount and the juror's reputation
// when the vote is cast.
type JurorRecord struct {
	Owner         Address
	Round         uint64
	Stake         uint64 // Stake allocated to the vote.
	VotingPower   uint64
	Choice        VoteChoice
	Unlocked      bool
	RewardClaimed bool
}

// ReputationScore is a participant's historical reputation, a scaled
// percentage in [0, OneHundredPercent]. Only the authoritative program
// mutates it; this client treats it as a read-only input to the bond
// formula.
type ReputationScore struct {
	Owner Address
	Score uint64
}
