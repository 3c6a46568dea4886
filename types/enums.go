package types

import "github.com/pkg/errors"

// Outcome is the resolution outcome of a dispute round.
type Outcome uint8

// Round resolution outcomes. The numeric values match the on-chain enum
// encoding and must not be reordered.
const (
	Unresolved Outcome = iota
	ChallengerWins
	DefenderWins
	NoParticipation
)

// OutcomeFromByte converts the on-chain enum byte into an Outcome.
func OutcomeFromByte(b byte) (Outcome, error) {
	if b > byte(NoParticipation) {
		return Unresolved, errors.Errorf("unknown outcome value %d", b)
	}
	return Outcome(b), nil
}

func (o Outcome) String() string {
	switch o {
	case Unresolved:
		return "Unresolved"
	case ChallengerWins:
		return "ChallengerWins"
	case DefenderWins:
		return "DefenderWins"
	case NoParticipation:
		return "NoParticipation"
	default:
		return "unknown"
	}
}

// Role identifies which side a participant record belongs to.
type Role uint8

// Participant roles.
const (
	RoleDefender Role = iota
	RoleChallenger
	RoleJuror
)

func (r Role) String() string {
	switch r {
	case RoleDefender:
		return "Defender"
	case RoleChallenger:
		return "Challenger"
	case RoleJuror:
		return "Juror"
	default:
		return "unknown"
	}
}

// VoteChoice is a juror's cast vote.
type VoteChoice uint8

// Vote choices.
const (
	VoteAbstain VoteChoice = iota
	VoteForChallenger
	VoteForDefender
)

func (v VoteChoice) String() string {
	switch v {
	case VoteAbstain:
		return "Abstain"
	case VoteForChallenger:
		return "ForChallenger"
	case VoteForDefender:
		return "ForDefender"
	default:
		return "unknown"
	}
}

// DisputeStatus is the lifecycle state of a dispute.
type DisputeStatus uint8

// Dispute lifecycle states.
const (
	DisputeOpen DisputeStatus = iota
	DisputeVoting
	DisputeResolved
	DisputeClosed
)

func (s DisputeStatus) String() string {
	switch s {
	case DisputeOpen:
		return "Open"
	case DisputeVoting:
		return "Voting"
	case DisputeResolved:
		return "Resolved"
	case DisputeClosed:
		return "Closed"
	default:
		return "unknown"
	}
}

// Schema identifies which generation of the on-chain account and event
// layouts a payload was written with. Two incompatible generations exist:
// the earlier round-indexed model and the later dispute-sequence model. The
// schema is carried alongside raw bytes and dispatches version-specific
// decode tables.
type Schema uint8

// Known schema generations.
const (
	SchemaV1 Schema = iota + 1 // Round-indexed model.
	SchemaV2                   // Dispute-sequence model.
)

// SchemaFromString parses a schema tag such as "v1" or "v2".
func SchemaFromString(s string) (Schema, error) {
	switch s {
	case "v1":
		return SchemaV1, nil
	case "v2":
		return SchemaV2, nil
	default:
		return 0, errors.Errorf("unknown schema %q", s)
	}
}

func (s Schema) String() string {
	switch s {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	default:
		return "unknown"
	}
}

// Confidence grades how an activity entry was derived. Structured event
// decoding is authoritative; positional inference from the account list is
// best-effort and flagged so a UI can present it accordingly.
type Confidence uint8

// Confidence grades.
const (
	ConfidenceDecoded Confidence = iota
	ConfidenceInferred
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceDecoded:
		return "decoded"
	case ConfidenceInferred:
		return "inferred"
	default:
		return "unknown"
	}
}
