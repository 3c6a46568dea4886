package activity

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdictlabs/verdict-go/types"
)

// mockProvider serves a fixed newest-first history from memory.
type mockProvider struct {
	history  []SignatureInfo
	details  map[string]*TransactionDetail
	pageErr  error
	txErrFor string
}

func (m *mockProvider) Signatures(_ context.Context, _ types.Address, before string, limit int) ([]SignatureInfo, error) {
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	start := 0
	if before != "" {
		for i, si := range m.history {
			if si.Signature == before {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(m.history) {
		end = len(m.history)
	}
	return m.history[start:end], nil
}

func (m *mockProvider) Transaction(_ context.Context, signature string) (*TransactionDetail, error) {
	if signature == m.txErrFor {
		return nil, errors.New("node went away")
	}
	tx, ok := m.details[signature]
	if !ok {
		return nil, errors.Errorf("unknown signature %s", signature)
	}
	return tx, nil
}

// newMockHistory builds n transactions at descending slots, each producing
// one inferred entry.
func newMockHistory(n int) *mockProvider {
	m := &mockProvider{details: make(map[string]*TransactionDetail)}
	for i := 0; i < n; i++ {
		sig := fmt.Sprintf("sig-%03d", i)
		slot := uint64(1000 - i)
		m.history = append(m.history, SignatureInfo{Signature: sig, Slot: slot})
		m.details[sig] = &TransactionDetail{
			Signature:   sig,
			Slot:        slot,
			LogMessages: []string{"Program log: Instruction: CastVote"},
			AccountKeys: []types.Address{addr(1), addr(2), addr(3), addr(4), addr(5)},
		}
	}
	return m
}

func TestHistory_OrderedAndBounded(t *testing.T) {
	m := newMockHistory(10)
	svc := NewService(m, types.SchemaV2)

	entries, cursor, err := svc.History(context.Background(), addr(1), HistoryQuery{Limit: 4})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "sig-003", cursor)
	for i := 1; i < len(entries); i++ {
		require.GreaterOrEqual(t, entries[i-1].Slot, entries[i].Slot, "history must be slot-descending")
	}
}

func TestHistory_CursorRestarts(t *testing.T) {
	m := newMockHistory(7)
	svc := NewService(m, types.SchemaV2)
	ctx := context.Background()

	first, cursor, err := svc.History(ctx, addr(1), HistoryQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotEqual(t, "", cursor)

	rest, cursor, err := svc.History(ctx, addr(1), HistoryQuery{Before: cursor, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rest, 4)
	assert.Equal(t, "", cursor, "exhausted history returns an empty cursor")

	sigs := make(map[string]bool)
	for _, e := range append(first, rest...) {
		require.Equal(t, false, sigs[e.Signature], "signature %s duplicated across pages", e.Signature)
		sigs[e.Signature] = true
	}
	require.Len(t, sigs, 7)
}

func TestHistory_ExhaustedShortHistory(t *testing.T) {
	m := newMockHistory(2)
	svc := NewService(m, types.SchemaV2)
	entries, cursor, err := svc.History(context.Background(), addr(1), HistoryQuery{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "", cursor)
}

func TestHistory_PageErrorPropagates(t *testing.T) {
	m := newMockHistory(3)
	m.pageErr = errors.New("rpc unavailable")
	svc := NewService(m, types.SchemaV2)
	_, _, err := svc.History(context.Background(), addr(1), HistoryQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch signature page")
}

func TestHistory_TransactionErrorFailsWithoutPartialMerge(t *testing.T) {
	m := newMockHistory(5)
	m.txErrFor = "sig-002"
	svc := NewService(m, types.SchemaV2)
	entries, _, err := svc.History(context.Background(), addr(1), HistoryQuery{Limit: 5})
	require.Error(t, err)
	assert.Nil(t, entries)
}

func TestHistory_DefaultLimit(t *testing.T) {
	m := newMockHistory(60)
	svc := NewService(m, types.SchemaV2)
	entries, cursor, err := svc.History(context.Background(), addr(1), HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, entries, DefaultHistoryLimit)
	assert.NotEqual(t, "", cursor)
}
