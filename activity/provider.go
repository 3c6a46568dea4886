// Package activity reconstructs a user-facing activity history for the
// Verdict arbitration ledger by decoding raw transaction logs, without a
// persistent indexer. Structured event payloads are decoded through the
// discriminator tables; transactions without one fall back to heuristic
// inference from diagnostic log lines and the documented account layout,
// flagged at lower confidence. The engine never mutates authoritative
// state; every pass recomputes the projection from chain data.
package activity

import (
	"context"

	"github.com/verdictlabs/verdict-go/types"
)

// SignatureInfo is one row of an owner's signature history page, newest
// first.
type SignatureInfo struct {
	Signature string
	Slot      uint64
	BlockTime int64
	Failed    bool
}

// TransactionDetail is the raw per-transaction material the engine consumes:
// ordered log lines, the account-address list in on-chain order, and pre and
// post balance arrays aligned to that list.
type TransactionDetail struct {
	Signature    string
	Slot         uint64
	BlockTime    int64
	LogMessages  []string
	AccountKeys  []types.Address
	PreBalances  []uint64
	PostBalances []uint64
	Failed       bool
}

// Provider supplies paginated transaction history. Each page fetch is a
// single request that succeeds or fails independently; implementations live
// in the rpc package and in test doubles.
type Provider interface {
	// Signatures returns up to limit signatures for the owner, newest first,
	// starting strictly after the opaque before cursor (empty means the tip).
	Signatures(ctx context.Context, owner types.Address, before string, limit int) ([]SignatureInfo, error)
	// Transaction returns the raw detail of one confirmed transaction.
	Transaction(ctx context.Context, signature string) (*TransactionDetail, error)
}
