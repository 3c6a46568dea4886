package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdictlabs/verdict-go/types"
)

func testAddr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func newTestServer(t *testing.T, hits *int64, result string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":%s}`, result)
	}))
}

func TestNewClient_HostParsing(t *testing.T) {
	c, err := NewClient("localhost:8899")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", c.NodeURL())

	c, err = NewClient("https://rpc.verdict.example")
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.verdict.example", c.NodeURL())

	_, err = NewClient("not a host")
	require.ErrorIs(t, err, ErrMalformedHostname)
}

func TestSignatures(t *testing.T) {
	srv := newTestServer(t, nil, `[
		{"signature":"sig-a","slot":1002,"blockTime":1717000300,"err":null},
		{"signature":"sig-b","slot":1001,"blockTime":1717000200,"err":{"InstructionError":[0,"Custom"]}}
	]`)
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	sigs, err := c.Signatures(context.Background(), testAddr(1), "", 10)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.Equal(t, "sig-a", sigs[0].Signature)
	assert.Equal(t, uint64(1002), sigs[0].Slot)
	assert.Equal(t, false, sigs[0].Failed)
	assert.Equal(t, true, sigs[1].Failed)
}

func TestTransaction_MemoizesResult(t *testing.T) {
	owner := testAddr(7)
	var hits int64
	srv := newTestServer(t, &hits, fmt.Sprintf(`{
		"slot": 900,
		"blockTime": 1717000100,
		"meta": {
			"err": null,
			"logMessages": ["Program log: Instruction: PostBond"],
			"preBalances": [100, 0],
			"postBalances": [40, 60]
		},
		"transaction": {"message": {"accountKeys": [%q, %q]}}
	}`, owner.String(), testAddr(9).String()))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	tx, err := c.Transaction(context.Background(), "sig-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(900), tx.Slot)
	assert.Equal(t, []types.Address{owner, testAddr(9)}, tx.AccountKeys)
	assert.Equal(t, []uint64{100, 0}, tx.PreBalances)
	assert.Equal(t, false, tx.Failed)

	// Second fetch is served from the cache.
	_, err = c.Transaction(context.Background(), "sig-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestCall_RPCErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid params"}}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	_, err = c.Signatures(context.Background(), testAddr(1), "", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid params")
}

func TestCall_Non200Surfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream busy", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	_, err = c.Signatures(context.Background(), testAddr(1), "", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestTransaction_MalformedAccountKey(t *testing.T) {
	srv := newTestServer(t, nil, `{
		"slot": 1,
		"meta": {"err": null, "logMessages": [], "preBalances": [], "postBalances": []},
		"transaction": {"message": {"accountKeys": ["tooshort"]}}
	}`)
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	_, err = c.Transaction(context.Background(), "sig-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed account key")
}
