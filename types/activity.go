package types

// EventType names a program-emitted event or, for inferred entries, the
// instruction the transaction most likely executed.
type EventType string

// Event types across both schema generations. V1 names carry the
// round-indexed model, V2 the dispute-sequence model.
const (
	// Shared.
	EventBondPosted    EventType = "BondPosted"
	EventVoteCast      EventType = "VoteCast"
	EventRewardClaimed EventType = "RewardClaimed"

	// V1 (round-indexed).
	EventRoundOpened     EventType = "RoundOpened"
	EventChallengeStaked EventType = "ChallengeStaked"
	EventRoundResolved   EventType = "RoundResolved"

	// V2 (dispute-sequence).
	EventDisputeOpened     EventType = "DisputeOpened"
	EventStakePlaced       EventType = "StakePlaced"
	EventDisputeResolved   EventType = "DisputeResolved"
	EventReputationUpdated EventType = "ReputationUpdated"

	// Fallback classification when no structured payload decoded.
	EventUnknown EventType = "Unknown"
)

// ActivityEntry is one row of the reconstructed user-facing history. It is
// derived fresh on every reconciliation pass and never persisted; the chain
// remains the sole source of truth.
type ActivityEntry struct {
	Signature string
	Slot      uint64
	BlockTime int64

	Type    EventType
	Dispute Address // Zero when not determinable.
	Record  Address // Zero when not determinable.
	Subject Address // Zero when not determinable.

	Amount       uint64 // Event-reported amount, zero for inferred entries without one.
	BalanceDelta int64  // Net lamport delta for the queried owner in this transaction.
	Success      bool
	Confidence   Confidence
}
