// Package xmlrpc implements ports.Caller over XML-RPC, the protocol fldigi
// exposes on its control port (default http://127.0.0.1:7362/RPC2).
package xmlrpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// DefaultTimeout bounds connection setup and the wait for response headers.
const DefaultTimeout = 10 * time.Second

// Caller implements ports.Caller using github.com/kolo/xmlrpc.
type Caller struct {
	client *xmlrpc.Client
	url    string
}

// NewTransport returns an HTTP transport suitable for a single local peer:
// bounded dial and header timeouts, one idle connection kept alive.
func NewTransport(timeout time.Duration) *http.Transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		ResponseHeaderTimeout: timeout,
		MaxIdleConnsPerHost:   1,
	}
}

// NewCaller creates a caller for the XML-RPC endpoint at url.
// A nil transport uses NewTransport(DefaultTimeout).
func NewCaller(url string, transport http.RoundTripper) (*Caller, error) {
	if transport == nil {
		transport = NewTransport(DefaultTimeout)
	}
	client, err := xmlrpc.NewClient(url, transport)
	if err != nil {
		return nil, fmt.Errorf("xmlrpc client: %w", err)
	}
	return &Caller{client: client, url: url}, nil
}

// Call invokes method with params and returns the decoded reply.
// Integers decode to int64, strings to string and base64 to []byte.
// The underlying client has no notion of context; cancellation is only
// checked before the request is sent.
func (c *Caller) Call(ctx context.Context, method string, params []interface{}) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var args interface{}
	if len(params) > 0 {
		args = params
	}

	var reply interface{}
	if err := c.client.Call(method, args, &reply); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return reply, nil
}

// Close releases idle connections.
func (c *Caller) Close() error {
	return c.client.Close()
}

// URL returns the endpoint this caller talks to.
func (c *Caller) URL() string { return c.url }
