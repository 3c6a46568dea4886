// Package rpc implements the transaction-history provider over the node's
// JSON-RPC HTTP endpoint. It is thin read-only plumbing: the reconciliation
// engine in the activity package consumes it through the Provider interface
// and never depends on this package directly.
package rpc

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/activity"
	"github.com/verdictlabs/verdict-go/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ activity.Provider = (*Client)(nil)

// ErrMalformedHostname is returned when a host cannot be parsed as a URL or
// a host:port pair.
var ErrMalformedHostname = errors.New("hostname must include port, separated by one colon, like example.com:3500")

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute
)

// Client is a wrapper object around the HTTP client speaking JSON-RPC 2.0
// to a ledger node. Confirmed transactions are immutable, so their fetched
// details are memoized in a TTL cache.
type Client struct {
	hc       *http.Client
	endpoint *url.URL
	cache    *gocache.Cache
	nextID   uint64
}

// ClientOpt is a functional option for the Client type.
type ClientOpt func(*Client)

// WithTimeout sets the .Timeout attribute of the wrapped http.Client.
func WithTimeout(timeout time.Duration) ClientOpt {
	return func(c *Client) {
		c.hc.Timeout = timeout
	}
}

// WithCustomTransport replaces the underlying http's transport with a
// custom one.
func WithCustomTransport(t http.RoundTripper) ClientOpt {
	return func(c *Client) {
		c.hc.Transport = t
	}
}

// WithCacheTTL sets how long fetched transaction details are memoized.
func WithCacheTTL(ttl time.Duration) ClientOpt {
	return func(c *Client) {
		c.cache = gocache.New(ttl, 2*ttl)
	}
}

// NewClient constructs a new client with the provided options (ex
// WithTimeout). `host` is the base host + port used to construct request
// urls. This value can be a URL string, or NewClient will assume an http
// endpoint if just `host:port` is used.
func NewClient(host string, opts ...ClientOpt) (*Client, error) {
	u, err := urlForHost(host)
	if err != nil {
		return nil, err
	}
	c := &Client{
		hc:       &http.Client{Timeout: defaultTimeout},
		endpoint: u,
		cache:    gocache.New(defaultCacheTTL, 2*defaultCacheTTL),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func urlForHost(h string) (*url.URL, error) {
	// try to parse as url (being permissive)
	u, err := url.Parse(h)
	if err == nil && u.Host != "" {
		return u, nil
	}
	// try to parse as host:port
	host, port, err := net.SplitHostPort(h)
	if err != nil {
		return nil, ErrMalformedHostname
	}
	return &url.URL{Host: net.JoinHostPort(host, port), Scheme: "http"}, nil
}

// NodeURL returns a human-readable string representation of the ledger node
// base url.
func (c *Client) NodeURL() string {
	return c.endpoint.String()
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *rpcError           `json:"error"`
}

// call performs one JSON-RPC request and unmarshals the result into out.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(&rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrap(err, "could not marshal rpc request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not build rpc request")
	}
	req.Header.Set("Content-Type", "application/json")
	r, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "could not reach %s", c.NodeURL())
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			log.WithError(closeErr).Debug("Could not close response body")
		}
	}()
	if r.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(r.Body, 1024))
		return errors.Errorf("rpc endpoint returned status %d: %s", r.StatusCode, string(b))
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "could not read rpc response")
	}
	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return errors.Wrap(err, "could not unmarshal rpc response")
	}
	if resp.Error != nil {
		return errors.Errorf("rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return errors.Wrapf(err, "could not unmarshal %s result", method)
	}
	return nil
}

type signatureResult struct {
	Signature string      `json:"signature"`
	Slot      uint64      `json:"slot"`
	BlockTime int64       `json:"blockTime"`
	Err       interface{} `json:"err"`
}

type signaturesOpts struct {
	Before string `json:"before,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Signatures returns up to limit signatures involving the owner account,
// newest first, starting strictly after the before cursor.
func (c *Client) Signatures(ctx context.Context, owner types.Address, before string, limit int) ([]activity.SignatureInfo, error) {
	var results []signatureResult
	params := []interface{}{owner.String(), signaturesOpts{Before: before, Limit: limit}}
	if err := c.call(ctx, "getSignaturesForAddress", params, &results); err != nil {
		return nil, err
	}
	out := make([]activity.SignatureInfo, 0, len(results))
	for _, r := range results {
		out = append(out, activity.SignatureInfo{
			Signature: r.Signature,
			Slot:      r.Slot,
			BlockTime: r.BlockTime,
			Failed:    r.Err != nil,
		})
	}
	return out, nil
}

type transactionResult struct {
	Slot      uint64 `json:"slot"`
	BlockTime int64  `json:"blockTime"`
	Meta      struct {
		Err          interface{} `json:"err"`
		LogMessages  []string    `json:"logMessages"`
		PreBalances  []uint64    `json:"preBalances"`
		PostBalances []uint64    `json:"postBalances"`
	} `json:"meta"`
	Transaction struct {
		Message struct {
			AccountKeys []string `json:"accountKeys"`
		} `json:"message"`
	} `json:"transaction"`
}

type transactionOpts struct {
	Encoding                       string `json:"encoding"`
	MaxSupportedTransactionVersion int    `json:"maxSupportedTransactionVersion"`
}

// Transaction returns the raw detail of one confirmed transaction,
// memoizing the result since confirmed transactions never change.
func (c *Client) Transaction(ctx context.Context, signature string) (*activity.TransactionDetail, error) {
	if cached, ok := c.cache.Get(signature); ok {
		return cached.(*activity.TransactionDetail), nil
	}
	var result transactionResult
	params := []interface{}{signature, transactionOpts{Encoding: "json"}}
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, err
	}
	keys := make([]types.Address, 0, len(result.Transaction.Message.AccountKeys))
	for _, k := range result.Transaction.Message.AccountKeys {
		addr, err := types.AddressFromString(k)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %s has malformed account key", signature)
		}
		keys = append(keys, addr)
	}
	detail := &activity.TransactionDetail{
		Signature:    signature,
		Slot:         result.Slot,
		BlockTime:    result.BlockTime,
		LogMessages:  result.Meta.LogMessages,
		AccountKeys:  keys,
		PreBalances:  result.Meta.PreBalances,
		PostBalances: result.Meta.PostBalances,
		Failed:       result.Meta.Err != nil,
	}
	c.cache.SetDefault(signature, detail)
	return detail, nil
}
