package layout

import (
	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/encoding/discriminator"
	"github.com/verdictlabs/verdict-go/types"
)

// Event is a decoded program event payload.
type Event interface {
	// Type names the event.
	Type() types.EventType

	decode(d *Decoder) error
	encode(e *Encoder)
}

// DisputeOpenedEvent is emitted by the dispute-sequence model when a
// challenger opens a dispute against a subject.
type DisputeOpenedEvent struct {
	Dispute    types.Address
	Subject    types.Address
	Challenger types.Address
	DisputeSeq uint64
	Stake      uint64
	Timestamp  int64
	Reason     string
}

func (*DisputeOpenedEvent) Type() types.EventType { return types.EventDisputeOpened }

func (ev *DisputeOpenedEvent) decode(d *Decoder) (err error) {
	if ev.Dispute, err = d.Address(); err != nil {
		return err
	}
	if ev.Subject, err = d.Address(); err != nil {
		return err
	}
	if ev.Challenger, err = d.Address(); err != nil {
		return err
	}
	if ev.DisputeSeq, err = d.Uint64(); err != nil {
		return err
	}
	if ev.Stake, err = d.Uint64(); err != nil {
		return err
	}
	if ev.Timestamp, err = d.Int64(); err != nil {
		return err
	}
	ev.Reason, err = d.String()
	return err
}

func (ev *DisputeOpenedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Dispute)
	e.PutAddress(ev.Subject)
	e.PutAddress(ev.Challenger)
	e.PutUint64(ev.DisputeSeq)
	e.PutUint64(ev.Stake)
	e.PutInt64(ev.Timestamp)
	e.PutString(ev.Reason)
}

// StakePlacedEvent is emitted when a challenger adds stake to an open
// dispute.
type StakePlacedEvent struct {
	Dispute    types.Address
	Record     types.Address
	Challenger types.Address
	DisputeSeq uint64
	Amount     uint64
	TotalStake uint64
}

func (*StakePlacedEvent) Type() types.EventType { return types.EventStakePlaced }

func (ev *StakePlacedEvent) decode(d *Decoder) (err error) {
	if ev.Dispute, err = d.Address(); err != nil {
		return err
	}
	if ev.Record, err = d.Address(); err != nil {
		return err
	}
	if ev.Challenger, err = d.Address(); err != nil {
		return err
	}
	if ev.DisputeSeq, err = d.Uint64(); err != nil {
		return err
	}
	if ev.Amount, err = d.Uint64(); err != nil {
		return err
	}
	ev.TotalStake, err = d.Uint64()
	return err
}

func (ev *StakePlacedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Dispute)
	e.PutAddress(ev.Record)
	e.PutAddress(ev.Challenger)
	e.PutUint64(ev.DisputeSeq)
	e.PutUint64(ev.Amount)
	e.PutUint64(ev.TotalStake)
}

// BondPostedEvent is emitted when a defender posts bond behind a subject.
// The layout is unchanged between schema generations.
type BondPostedEvent struct {
	Subject  types.Address
	Record   types.Address
	Defender types.Address
	Amount   uint64
}

func (*BondPostedEvent) Type() types.EventType { return types.EventBondPosted }

func (ev *BondPostedEvent) decode(d *Decoder) (err error) {
	if ev.Subject, err = d.Address(); err != nil {
		return err
	}
	if ev.Record, err = d.Address(); err != nil {
		return err
	}
	if ev.Defender, err = d.Address(); err != nil {
		return err
	}
	ev.Amount, err = d.Uint64()
	return err
}

func (ev *BondPostedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Subject)
	e.PutAddress(ev.Record)
	e.PutAddress(ev.Defender)
	e.PutUint64(ev.Amount)
}

// VoteCastEvent is emitted when a juror casts a vote. The layout is
// unchanged between schema generations.
type VoteCastEvent struct {
	Dispute     types.Address
	Record      types.Address
	Juror       types.Address
	Choice      types.VoteChoice
	VotingPower uint64
}

func (*VoteCastEvent) Type() types.EventType { return types.EventVoteCast }

func (ev *VoteCastEvent) decode(d *Decoder) (err error) {
	if ev.Dispute, err = d.Address(); err != nil {
		return err
	}
	if ev.Record, err = d.Address(); err != nil {
		return err
	}
	if ev.Juror, err = d.Address(); err != nil {
		return err
	}
	choice, err := d.Uint8()
	if err != nil {
		return err
	}
	if choice > uint8(types.VoteForDefender) {
		return errors.Wrapf(ErrUndecodable, "invalid vote choice %d", choice)
	}
	ev.Choice = types.VoteChoice(choice)
	ev.VotingPower, err = d.Uint64()
	return err
}

func (ev *VoteCastEvent) encode(e *Encoder) {
	e.PutAddress(ev.Dispute)
	e.PutAddress(ev.Record)
	e.PutAddress(ev.Juror)
	e.PutUint8(uint8(ev.Choice))
	e.PutUint64(ev.VotingPower)
}

// DisputeResolvedEvent is emitted by the dispute-sequence model when a
// round resolves, carrying the aggregate totals a claim is computed from.
type DisputeResolvedEvent struct {
	Dispute         types.Address
	Subject         types.Address
	DisputeSeq      uint64
	Outcome         types.Outcome
	TotalStake      uint64
	BondAtRisk      uint64
	SafeBond        uint64
	TotalVoteWeight uint64
	WinnerPool      uint64
	JurorPool       uint64
}

func (*DisputeResolvedEvent) Type() types.EventType { return types.EventDisputeResolved }

func (ev *DisputeResolvedEvent) decode(d *Decoder) (err error) {
	if ev.Dispute, err = d.Address(); err != nil {
		return err
	}
	if ev.Subject, err = d.Address(); err != nil {
		return err
	}
	if ev.DisputeSeq, err = d.Uint64(); err != nil {
		return err
	}
	rawOutcome, err := d.Uint8()
	if err != nil {
		return err
	}
	if ev.Outcome, err = types.OutcomeFromByte(rawOutcome); err != nil {
		return errors.Wrap(ErrUndecodable, err.Error())
	}
	if ev.TotalStake, err = d.Uint64(); err != nil {
		return err
	}
	if ev.BondAtRisk, err = d.Uint64(); err != nil {
		return err
	}
	if ev.SafeBond, err = d.Uint64(); err != nil {
		return err
	}
	if ev.TotalVoteWeight, err = d.Uint64(); err != nil {
		return err
	}
	if ev.WinnerPool, err = d.Uint64(); err != nil {
		return err
	}
	ev.JurorPool, err = d.Uint64()
	return err
}

func (ev *DisputeResolvedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Dispute)
	e.PutAddress(ev.Subject)
	e.PutUint64(ev.DisputeSeq)
	e.PutUint8(uint8(ev.Outcome))
	e.PutUint64(ev.TotalStake)
	e.PutUint64(ev.BondAtRisk)
	e.PutUint64(ev.SafeBond)
	e.PutUint64(ev.TotalVoteWeight)
	e.PutUint64(ev.WinnerPool)
	e.PutUint64(ev.JurorPool)
}

// RewardClaimedEvent is emitted when a participant claims a settled reward.
// The layout is unchanged between schema generations.
type RewardClaimedEvent struct {
	Dispute types.Address
	Record  types.Address
	Claimer types.Address
	Role    types.Role
	Amount  uint64
}

func (*RewardClaimedEvent) Type() types.EventType { return types.EventRewardClaimed }

func (ev *RewardClaimedEvent) decode(d *Decoder) (err error) {
	if ev.Dispute, err = d.Address(); err != nil {
		return err
	}
	if ev.Record, err = d.Address(); err != nil {
		return err
	}
	if ev.Claimer, err = d.Address(); err != nil {
		return err
	}
	role, err := d.Uint8()
	if err != nil {
		return err
	}
	if role > uint8(types.RoleJuror) {
		return errors.Wrapf(ErrUndecodable, "invalid role %d", role)
	}
	ev.Role = types.Role(role)
	ev.Amount, err = d.Uint64()
	return err
}

func (ev *RewardClaimedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Dispute)
	e.PutAddress(ev.Record)
	e.PutAddress(ev.Claimer)
	e.PutUint8(uint8(ev.Role))
	e.PutUint64(ev.Amount)
}

// ReputationUpdatedEvent is emitted by the dispute-sequence model after
// resolution applies the reputation deltas.
type ReputationUpdatedEvent struct {
	Owner    types.Address
	OldScore uint64
	NewScore uint64
}

func (*ReputationUpdatedEvent) Type() types.EventType { return types.EventReputationUpdated }

func (ev *ReputationUpdatedEvent) decode(d *Decoder) (err error) {
	if ev.Owner, err = d.Address(); err != nil {
		return err
	}
	if ev.OldScore, err = d.Uint64(); err != nil {
		return err
	}
	ev.NewScore, err = d.Uint64()
	return err
}

func (ev *ReputationUpdatedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Owner)
	e.PutUint64(ev.OldScore)
	e.PutUint64(ev.NewScore)
}

// RoundOpenedEvent is the round-indexed model's dispute opening event.
type RoundOpenedEvent struct {
	Subject    types.Address
	Challenger types.Address
	Round      uint64
	Stake      uint64
}

func (*RoundOpenedEvent) Type() types.EventType { return types.EventRoundOpened }

func (ev *RoundOpenedEvent) decode(d *Decoder) (err error) {
	if ev.Subject, err = d.Address(); err != nil {
		return err
	}
	if ev.Challenger, err = d.Address(); err != nil {
		return err
	}
	if ev.Round, err = d.Uint64(); err != nil {
		return err
	}
	ev.Stake, err = d.Uint64()
	return err
}

func (ev *RoundOpenedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Subject)
	e.PutAddress(ev.Challenger)
	e.PutUint64(ev.Round)
	e.PutUint64(ev.Stake)
}

// ChallengeStakedEvent is the round-indexed model's stake event.
type ChallengeStakedEvent struct {
	Subject    types.Address
	Record     types.Address
	Challenger types.Address
	Round      uint64
	Amount     uint64
	TotalStake uint64
}

func (*ChallengeStakedEvent) Type() types.EventType { return types.EventChallengeStaked }

func (ev *ChallengeStakedEvent) decode(d *Decoder) (err error) {
	if ev.Subject, err = d.Address(); err != nil {
		return err
	}
	if ev.Record, err = d.Address(); err != nil {
		return err
	}
	if ev.Challenger, err = d.Address(); err != nil {
		return err
	}
	if ev.Round, err = d.Uint64(); err != nil {
		return err
	}
	if ev.Amount, err = d.Uint64(); err != nil {
		return err
	}
	ev.TotalStake, err = d.Uint64()
	return err
}

func (ev *ChallengeStakedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Subject)
	e.PutAddress(ev.Record)
	e.PutAddress(ev.Challenger)
	e.PutUint64(ev.Round)
	e.PutUint64(ev.Amount)
	e.PutUint64(ev.TotalStake)
}

// RoundResolvedEvent is the round-indexed model's resolution event. It
// predates the safe bond split and juror weighting, so it carries a smaller
// field set than DisputeResolvedEvent.
type RoundResolvedEvent struct {
	Subject    types.Address
	Round      uint64
	Outcome    types.Outcome
	TotalStake uint64
	BondAtRisk uint64
	WinnerPool uint64
	JurorPool  uint64
}

func (*RoundResolvedEvent) Type() types.EventType { return types.EventRoundResolved }

func (ev *RoundResolvedEvent) decode(d *Decoder) (err error) {
	if ev.Subject, err = d.Address(); err != nil {
		return err
	}
	if ev.Round, err = d.Uint64(); err != nil {
		return err
	}
	rawOutcome, err := d.Uint8()
	if err != nil {
		return err
	}
	if ev.Outcome, err = types.OutcomeFromByte(rawOutcome); err != nil {
		return errors.Wrap(ErrUndecodable, err.Error())
	}
	if ev.TotalStake, err = d.Uint64(); err != nil {
		return err
	}
	if ev.BondAtRisk, err = d.Uint64(); err != nil {
		return err
	}
	if ev.WinnerPool, err = d.Uint64(); err != nil {
		return err
	}
	ev.JurorPool, err = d.Uint64()
	return err
}

func (ev *RoundResolvedEvent) encode(e *Encoder) {
	e.PutAddress(ev.Subject)
	e.PutUint64(ev.Round)
	e.PutUint8(uint8(ev.Outcome))
	e.PutUint64(ev.TotalStake)
	e.PutUint64(ev.BondAtRisk)
	e.PutUint64(ev.WinnerPool)
	e.PutUint64(ev.JurorPool)
}

// newEvent returns the zero value for a schema generation's event name.
func newEvent(schema types.Schema, name types.EventType) (Event, error) {
	switch name {
	case types.EventBondPosted:
		return &BondPostedEvent{}, nil
	case types.EventVoteCast:
		return &VoteCastEvent{}, nil
	case types.EventRewardClaimed:
		return &RewardClaimedEvent{}, nil
	}
	switch schema {
	case types.SchemaV1:
		switch name {
		case types.EventRoundOpened:
			return &RoundOpenedEvent{}, nil
		case types.EventChallengeStaked:
			return &ChallengeStakedEvent{}, nil
		case types.EventRoundResolved:
			return &RoundResolvedEvent{}, nil
		}
	case types.SchemaV2:
		switch name {
		case types.EventDisputeOpened:
			return &DisputeOpenedEvent{}, nil
		case types.EventStakePlaced:
			return &StakePlacedEvent{}, nil
		case types.EventDisputeResolved:
			return &DisputeResolvedEvent{}, nil
		case types.EventReputationUpdated:
			return &ReputationUpdatedEvent{}, nil
		}
	}
	return nil, errors.Wrapf(ErrUndecodable, "no %s event %q", schema, name)
}

// DecodeEvent decodes a discriminator-prefixed payload through the schema
// generation's table. It fails soft with ErrUndecodable for unknown
// signatures and malformed payloads.
func DecodeEvent(schema types.Schema, payload []byte) (Event, error) {
	name, ok := discriminator.ForSchema(schema).Match(payload)
	if !ok {
		return nil, errors.Wrap(ErrUndecodable, "no known discriminator matches")
	}
	ev, err := newEvent(schema, name)
	if err != nil {
		return nil, err
	}
	if err := ev.decode(NewDecoder(payload[discriminator.Length:])); err != nil {
		return nil, errors.Wrapf(err, "could not decode %s payload", name)
	}
	return ev, nil
}

// EncodeEvent produces the discriminator-prefixed wire form of an event.
func EncodeEvent(schema types.Schema, ev Event) ([]byte, error) {
	d, ok := discriminator.ForSchema(schema).Lookup(ev.Type())
	if !ok {
		return nil, errors.Errorf("schema %s does not define event %q", schema, ev.Type())
	}
	e := NewEncoder()
	e.buf = append(e.buf, d[:]...)
	ev.encode(e)
	return e.Bytes(), nil
}
