// Package discriminator maintains the static tables mapping program event
// and instruction names to their fixed-length byte signatures. A signature
// is the first 8 bytes of a SHA-256 over a namespaced name, computed once at
// table construction so matching at decode time is a plain byte comparison
// with no hashing dependency.
//
// The tables are process-wide, read-only, and lazily initialized once per
// schema generation; they are shared by reference and never mutated after
// construction.
package discriminator

import (
	"bytes"
	"crypto/sha256"
	"sync"

	"github.com/verdictlabs/verdict-go/encoding/bytesutil"
	"github.com/verdictlabs/verdict-go/types"
)

// Length is the byte length of a discriminator signature.
const Length = 8

// Discriminator is the fixed-length byte signature identifying which event
// or instruction a binary payload represents.
type Discriminator [Length]byte

// Event derives the signature of a program event name.
func Event(name types.EventType) Discriminator {
	h := sha256.Sum256([]byte("event:" + string(name)))
	return bytesutil.ToBytes8(h[:Length])
}

// Instruction derives the signature of a program instruction name. The
// instruction namespace keeps builders and the log classifier on the same
// byte signatures; this engine only reads events but exports the helper for
// the instruction-building layer.
func Instruction(name string) Discriminator {
	h := sha256.Sum256([]byte("global:" + name))
	return bytesutil.ToBytes8(h[:Length])
}

// Table is an immutable mapping of a schema generation's event names to
// their signatures. Match precedence follows declaration order.
type Table struct {
	order  []types.EventType
	byName map[types.EventType]Discriminator
}

// v1Events lists the round-indexed model's events in match precedence order.
var v1Events = []types.EventType{
	types.EventRoundOpened,
	types.EventChallengeStaked,
	types.EventBondPosted,
	types.EventVoteCast,
	types.EventRoundResolved,
	types.EventRewardClaimed,
}

// v2Events lists the dispute-sequence model's events in match precedence
// order.
var v2Events = []types.EventType{
	types.EventDisputeOpened,
	types.EventStakePlaced,
	types.EventBondPosted,
	types.EventVoteCast,
	types.EventDisputeResolved,
	types.EventRewardClaimed,
	types.EventReputationUpdated,
}

var (
	v1Once  sync.Once
	v1Table *Table
	v2Once  sync.Once
	v2Table *Table
)

// ForSchema returns the shared, immutable discriminator table of a schema
// generation. Unknown schemas return an empty table that matches nothing.
func ForSchema(s types.Schema) *Table {
	switch s {
	case types.SchemaV1:
		v1Once.Do(func() {
			v1Table = newTable(v1Events)
		})
		return v1Table
	case types.SchemaV2:
		v2Once.Do(func() {
			v2Table = newTable(v2Events)
		})
		return v2Table
	default:
		return &Table{byName: map[types.EventType]Discriminator{}}
	}
}

func newTable(events []types.EventType) *Table {
	t := &Table{
		order:  events,
		byName: make(map[types.EventType]Discriminator, len(events)),
	}
	for _, name := range events {
		t.byName[name] = Event(name)
	}
	return t
}

// Lookup returns the signature of an event name.
func (t *Table) Lookup(name types.EventType) (Discriminator, bool) {
	d, ok := t.byName[name]
	return d, ok
}

// Match scans the table in precedence order for the signature prefixing the
// payload; the first match wins. It reports no match for payloads shorter
// than a signature.
func (t *Table) Match(payload []byte) (types.EventType, bool) {
	if len(payload) < Length {
		return types.EventUnknown, false
	}
	for _, name := range t.order {
		d := t.byName[name]
		if bytes.Equal(payload[:Length], d[:]) {
			return name, true
		}
	}
	return types.EventUnknown, false
}

// Events returns the table's event names in match precedence order.
func (t *Table) Events() []types.EventType {
	out := make([]types.EventType, len(t.order))
	copy(out, t.order)
	return out
}
