package activity

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/types"
)

const (
	// DefaultHistoryLimit bounds a history query that does not supply one.
	DefaultHistoryLimit = 50
	// signaturePageSize is the page size requested from the provider.
	signaturePageSize = 100
	// fetchWorkers bounds concurrent transaction fetches within one page.
	fetchWorkers = 8
)

// HistoryQuery parameterizes one history pass. Before is an opaque cursor
// from a previous call (empty starts at the tip); Limit bounds the number of
// entries returned.
type HistoryQuery struct {
	Before string
	Limit  int
}

// Service merges paginated signature history into an ordered, de-duplicated
// activity projection. It holds no mutable state besides the injected
// provider and is safe for concurrent use.
type Service struct {
	provider Provider
	schema   types.Schema
}

// NewService returns a reconciliation service reading through the given
// provider with the given schema generation's decode tables.
func NewService(provider Provider, schema types.Schema) *Service {
	return &Service{provider: provider, schema: schema}
}

// History returns the owner's activity entries ordered by (slot,
// transaction position) descending, together with a cursor that resumes the
// scan where this call stopped. The returned cursor is empty once the
// history is exhausted.
//
// Scanning stops as soon as the limit is satisfied; the full history is
// never fetched up front. Entries belonging to one transaction are never
// split across calls, so a call may return slightly more entries than the
// limit when the last transaction emitted several.
func (s *Service) History(ctx context.Context, owner types.Address, q HistoryQuery) ([]types.ActivityEntry, string, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var out []types.ActivityEntry
	seen := make(map[string]bool)
	before := q.Before
	nextCursor := ""

	for len(out) < limit {
		page, err := s.provider.Signatures(ctx, owner, before, signaturePageSize)
		if err != nil {
			return nil, "", errors.Wrap(err, "could not fetch signature page")
		}
		if len(page) == 0 {
			// Cursor exhausted.
			nextCursor = ""
			break
		}

		fresh := make([]SignatureInfo, 0, len(page))
		for _, si := range page {
			if seen[si.Signature] {
				continue
			}
			seen[si.Signature] = true
			fresh = append(fresh, si)
		}

		details, err := s.fetchPage(ctx, fresh)
		if err != nil {
			return nil, "", err
		}
		for _, tx := range details {
			out = append(out, Reconcile(tx, owner, s.schema)...)
			nextCursor = tx.Signature
			if len(out) >= limit {
				break
			}
		}

		before = page[len(page)-1].Signature
		if len(out) < limit && len(page) < signaturePageSize {
			// Short page: the provider has nothing older.
			nextCursor = ""
			break
		}
	}

	// Fetches run in parallel, so chain order is restored here rather than
	// relied on from completion order. The stable sort keeps the provider's
	// newest-first position order within a slot.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot > out[j].Slot
	})
	return out, nextCursor, nil
}

// fetchPage retrieves the transaction details of one signature page with
// bounded parallelism, preserving page order in the result. Any single
// failed fetch fails the page so partial results are never merged.
func (s *Service) fetchPage(ctx context.Context, sigs []SignatureInfo) ([]*TransactionDetail, error) {
	details := make([]*TransactionDetail, len(sigs))
	fetchErrs := make([]error, len(sigs))
	sem := make(chan struct{}, fetchWorkers)
	var wg sync.WaitGroup
	for i := range sigs {
		wg.Add(1)
		go func(i int, signature string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			tx, err := s.provider.Transaction(ctx, signature)
			if err != nil {
				fetchErrs[i] = err
				return
			}
			details[i] = tx
		}(i, sigs[i].Signature)
	}
	wg.Wait()
	for i, err := range fetchErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "could not fetch transaction %s", sigs[i].Signature)
		}
	}
	return details, nil
}
