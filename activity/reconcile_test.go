package activity

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdictlabs/verdict-go/encoding/layout"
	"github.com/verdictlabs/verdict-go/types"
)

func addr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func dataLine(t *testing.T, schema types.Schema, ev layout.Event) string {
	t.Helper()
	raw, err := layout.EncodeEvent(schema, ev)
	require.NoError(t, err)
	return programDataPrefix + base64.StdEncoding.EncodeToString(raw)
}

func TestReconcile_StructuredEvent(t *testing.T) {
	owner := addr(3)
	tx := &TransactionDetail{
		Signature: "sig-1",
		Slot:      900,
		BlockTime: 1717000000,
		LogMessages: []string{
			"Program VrdQJ83kyPvrMw9hiAhrLCAa6ykGTSngFFTZnqUZbMe2 invoke [1]",
			"Program log: Instruction: PlaceStake",
			dataLine(t, types.SchemaV2, &layout.StakePlacedEvent{
				Dispute:    addr(1),
				Record:     addr(2),
				Challenger: owner,
				DisputeSeq: 4,
				Amount:     250,
				TotalStake: 1000,
			}),
			"Program VrdQJ83kyPvrMw9hiAhrLCAa6ykGTSngFFTZnqUZbMe2 success",
		},
		AccountKeys:  []types.Address{owner, addr(9), addr(1), addr(2), addr(8)},
		PreBalances:  []uint64{1_000_000, 5, 5, 5, 5},
		PostBalances: []uint64{749_000, 5, 5, 5, 5},
	}

	entries := Reconcile(tx, owner, types.SchemaV2)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, types.EventStakePlaced, e.Type)
	assert.Equal(t, types.ConfidenceDecoded, e.Confidence)
	assert.Equal(t, addr(1), e.Dispute)
	assert.Equal(t, addr(2), e.Record)
	assert.Equal(t, uint64(250), e.Amount)
	assert.Equal(t, int64(-251_000), e.BalanceDelta)
	assert.Equal(t, "sig-1", e.Signature)
	assert.Equal(t, uint64(900), e.Slot)
	assert.Equal(t, true, e.Success)
}

func TestReconcile_UnknownDiscriminatorDoesNotAbortScan(t *testing.T) {
	owner := addr(5)
	foreign := base64.StdEncoding.EncodeToString([]byte("foreignprogrampayload"))
	tx := &TransactionDetail{
		Signature: "sig-2",
		LogMessages: []string{
			programDataPrefix + foreign,
			programDataPrefix + "%%%not-base64%%%",
			dataLine(t, types.SchemaV2, &layout.RewardClaimedEvent{
				Dispute: addr(1),
				Record:  addr(2),
				Claimer: owner,
				Role:    types.RoleJuror,
				Amount:  95,
			}),
		},
	}
	entries := Reconcile(tx, owner, types.SchemaV2)
	require.Len(t, entries, 1)
	assert.Equal(t, types.EventRewardClaimed, entries[0].Type)
	assert.Equal(t, uint64(95), entries[0].Amount)
	assert.Equal(t, types.ConfidenceDecoded, entries[0].Confidence)
}

func TestReconcile_FallbackFromInstructionLog(t *testing.T) {
	owner := addr(7)
	tx := &TransactionDetail{
		Signature: "sig-3",
		Slot:      901,
		LogMessages: []string{
			"Program VrdC7k2yUysLPCXgQ6nhnVzkqtp4xW5c9jBBTQKdVoz1 invoke [1]",
			"Program log: Instruction: CastVote",
			"Program VrdC7k2yUysLPCXgQ6nhnVzkqtp4xW5c9jBBTQKdVoz1 success",
		},
		AccountKeys:  []types.Address{owner, addr(10), addr(11), addr(12), addr(13)},
		PreBalances:  []uint64{100, 0, 0, 0, 0},
		PostBalances: []uint64{90, 0, 0, 0, 0},
	}
	entries := Reconcile(tx, owner, types.SchemaV1)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, types.EventVoteCast, e.Type)
	assert.Equal(t, types.ConfidenceInferred, e.Confidence)
	assert.Equal(t, addr(11), e.Dispute)
	assert.Equal(t, addr(12), e.Record)
	assert.Equal(t, addr(13), e.Subject)
	assert.Equal(t, int64(-10), e.BalanceDelta)
}

func TestReconcile_FallbackFromOutcomeDiagnostic(t *testing.T) {
	tx := &TransactionDetail{
		Signature: "sig-4",
		LogMessages: []string{
			"Program log: Round 3 closed: Challenger wins by weighted majority",
		},
		AccountKeys: []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)},
	}

	entries := Reconcile(tx, addr(1), types.SchemaV2)
	require.Len(t, entries, 1)
	assert.Equal(t, types.EventDisputeResolved, entries[0].Type)
	assert.Equal(t, types.ConfidenceInferred, entries[0].Confidence)

	entries = Reconcile(tx, addr(1), types.SchemaV1)
	require.Len(t, entries, 1)
	assert.Equal(t, types.EventRoundResolved, entries[0].Type)
}

func TestReconcile_AmbiguousInferenceStillSurfaced(t *testing.T) {
	// Too few accounts for positional roles and no classifiable log line:
	// the entry is still produced, with zero addresses and unknown type.
	tx := &TransactionDetail{
		Signature:   "sig-5",
		LogMessages: []string{"Program log: upgrade authority checkpoint"},
		AccountKeys: []types.Address{addr(1)},
	}
	entries := Reconcile(tx, addr(1), types.SchemaV2)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, types.EventUnknown, e.Type)
	assert.Equal(t, types.ConfidenceInferred, e.Confidence)
	assert.Equal(t, true, e.Dispute.IsZero())
	assert.Equal(t, true, e.Subject.IsZero())
}

func TestReconcile_FailureFlag(t *testing.T) {
	owner := addr(2)
	tx := &TransactionDetail{
		Signature: "sig-6",
		LogMessages: []string{
			"Program log: Instruction: ClaimReward",
			"Program VrdQJ83kyPvrMw9hiAhrLCAa6ykGTSngFFTZnqUZbMe2 failed: custom program error: 0x1771",
		},
		AccountKeys: []types.Address{owner, addr(1), addr(3), addr(4), addr(5)},
	}
	entries := Reconcile(tx, owner, types.SchemaV2)
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].Success)
	assert.Equal(t, types.EventRewardClaimed, entries[0].Type)

	tx.Failed = true
	tx.LogMessages = tx.LogMessages[:1]
	entries = Reconcile(tx, owner, types.SchemaV2)
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].Success)
}

func TestReconcile_OwnerAbsentHasZeroDelta(t *testing.T) {
	tx := &TransactionDetail{
		Signature:    "sig-7",
		LogMessages:  []string{"Program log: Instruction: PostBond"},
		AccountKeys:  []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)},
		PreBalances:  []uint64{10, 10, 10, 10, 10},
		PostBalances: []uint64{0, 20, 10, 10, 10},
	}
	entries := Reconcile(tx, addr(99), types.SchemaV2)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].BalanceDelta)
}
