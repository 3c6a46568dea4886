package activity

import (
	"encoding/base64"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/verdictlabs/verdict-go/config/params"
	"github.com/verdictlabs/verdict-go/encoding/layout"
	"github.com/verdictlabs/verdict-go/types"
)

const (
	programDataPrefix = "Program data: "
	programLogPrefix  = "Program log: "
	instructionPrefix = "Program log: Instruction: "
)

// instructionEvents maps the instruction names the program writes to its
// log to the event each schema generation would have emitted for it. Used
// only by the heuristic fallback.
var instructionEvents = map[string]map[types.Schema]types.EventType{
	"OpenDispute":    {types.SchemaV1: types.EventRoundOpened, types.SchemaV2: types.EventDisputeOpened},
	"PlaceStake":     {types.SchemaV1: types.EventChallengeStaked, types.SchemaV2: types.EventStakePlaced},
	"PostBond":       {types.SchemaV1: types.EventBondPosted, types.SchemaV2: types.EventBondPosted},
	"CastVote":       {types.SchemaV1: types.EventVoteCast, types.SchemaV2: types.EventVoteCast},
	"ResolveDispute": {types.SchemaV1: types.EventRoundResolved, types.SchemaV2: types.EventDisputeResolved},
	"ClaimReward":    {types.SchemaV1: types.EventRewardClaimed, types.SchemaV2: types.EventRewardClaimed},
}

// outcomeDiagnostics maps human-readable resolution diagnostics, as printed
// by both program generations, to the resolution event type.
var outcomeDiagnostics = []string{
	"challenger wins",
	"defender wins",
	"quorum not reached",
	"no participation",
}

// Reconcile produces the activity entries of a single transaction for the
// queried owner. It is a pure function over the transaction's log lines,
// account list, and balance snapshots, and is safe for unbounded parallel
// use.
//
// Structured program data lines are decoded through the schema's
// discriminator table; a line that matches no known signature or violates
// the schema width is skipped and the scan continues. A transaction without
// any structured event falls back to heuristic inference, flagged
// ConfidenceInferred.
func Reconcile(tx *TransactionDetail, owner types.Address, schema types.Schema) []types.ActivityEntry {
	reconciledTxCount.Inc()
	success := txSucceeded(tx)
	delta := ownerBalanceDelta(tx, owner)

	var entries []types.ActivityEntry
	for _, line := range tx.LogMessages {
		encoded, ok := strings.CutPrefix(line, programDataPrefix)
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			undecodableLogCount.Inc()
			log.WithField("signature", tx.Signature).WithError(err).Debug("Skipping malformed program data line")
			continue
		}
		ev, err := layout.DecodeEvent(schema, raw)
		if err != nil {
			undecodableLogCount.Inc()
			log.WithField("signature", tx.Signature).WithError(err).Debug("Skipping undecodable program data line")
			continue
		}
		entries = append(entries, entryFromEvent(ev))
	}

	if len(entries) == 0 {
		entries = append(entries, inferEntry(tx, schema))
		inferredEntryCount.Inc()
	}

	for i := range entries {
		entries[i].Signature = tx.Signature
		entries[i].Slot = tx.Slot
		entries[i].BlockTime = tx.BlockTime
		entries[i].BalanceDelta = delta
		entries[i].Success = success
	}
	return entries
}

// entryFromEvent projects a decoded event onto an activity entry.
func entryFromEvent(ev layout.Event) types.ActivityEntry {
	entry := types.ActivityEntry{Type: ev.Type(), Confidence: types.ConfidenceDecoded}
	switch e := ev.(type) {
	case *layout.DisputeOpenedEvent:
		entry.Dispute = e.Dispute
		entry.Subject = e.Subject
		entry.Amount = e.Stake
	case *layout.StakePlacedEvent:
		entry.Dispute = e.Dispute
		entry.Record = e.Record
		entry.Amount = e.Amount
	case *layout.BondPostedEvent:
		entry.Subject = e.Subject
		entry.Record = e.Record
		entry.Amount = e.Amount
	case *layout.VoteCastEvent:
		entry.Dispute = e.Dispute
		entry.Record = e.Record
		entry.Amount = e.VotingPower
	case *layout.DisputeResolvedEvent:
		entry.Dispute = e.Dispute
		entry.Subject = e.Subject
	case *layout.RewardClaimedEvent:
		entry.Dispute = e.Dispute
		entry.Record = e.Record
		entry.Amount = e.Amount
	case *layout.ReputationUpdatedEvent:
		entry.Amount = e.NewScore
	case *layout.RoundOpenedEvent:
		entry.Subject = e.Subject
		entry.Amount = e.Stake
	case *layout.ChallengeStakedEvent:
		entry.Subject = e.Subject
		entry.Record = e.Record
		entry.Amount = e.Amount
	case *layout.RoundResolvedEvent:
		entry.Subject = e.Subject
	}
	return entry
}

// inferEntry builds a best-effort entry for a transaction without any
// structured event: the type comes from instruction names or outcome
// diagnostics in the log, and the dispute, record, and subject addresses
// from the documented positional account layout. This is inherently lower
// confidence than structured decoding and is flagged as such.
func inferEntry(tx *TransactionDetail, schema types.Schema) types.ActivityEntry {
	entry := types.ActivityEntry{
		Type:       classifyLogs(tx.LogMessages, schema),
		Confidence: types.ConfidenceInferred,
	}
	cfg := params.VerdictConfig()
	if len(tx.AccountKeys) > cfg.SubjectAccountIndex {
		entry.Dispute = tx.AccountKeys[cfg.DisputeAccountIndex]
		entry.Record = tx.AccountKeys[cfg.RecordAccountIndex]
		entry.Subject = tx.AccountKeys[cfg.SubjectAccountIndex]
	} else {
		log.WithFields(logrus.Fields{
			"signature": tx.Signature,
			"accounts":  len(tx.AccountKeys),
		}).Warn("Account list too short for positional role inference")
	}
	return entry
}

// classifyLogs determines the most likely event type from human-readable
// log lines, in two passes: explicit instruction names first, then outcome
// diagnostics.
func classifyLogs(lines []string, schema types.Schema) types.EventType {
	for _, line := range lines {
		name, ok := strings.CutPrefix(line, instructionPrefix)
		if !ok {
			continue
		}
		if bySchema, known := instructionEvents[strings.TrimSpace(name)]; known {
			return bySchema[schema]
		}
	}
	resolved := instructionEvents["ResolveDispute"][schema]
	for _, line := range lines {
		msg, ok := strings.CutPrefix(line, programLogPrefix)
		if !ok {
			continue
		}
		lower := strings.ToLower(msg)
		for _, diag := range outcomeDiagnostics {
			if strings.Contains(lower, diag) {
				return resolved
			}
		}
	}
	return types.EventUnknown
}

// ownerBalanceDelta computes the owner's net balance change from the pre
// and post snapshots aligned to the account list. Owners absent from the
// list have a zero delta.
func ownerBalanceDelta(tx *TransactionDetail, owner types.Address) int64 {
	for i, key := range tx.AccountKeys {
		if key != owner {
			continue
		}
		if i >= len(tx.PreBalances) || i >= len(tx.PostBalances) {
			return 0
		}
		return int64(tx.PostBalances[i]) - int64(tx.PreBalances[i])
	}
	return 0
}

func txSucceeded(tx *TransactionDetail) bool {
	if tx.Failed {
		return false
	}
	for _, line := range tx.LogMessages {
		if strings.Contains(line, " failed: ") {
			return false
		}
	}
	return true
}
