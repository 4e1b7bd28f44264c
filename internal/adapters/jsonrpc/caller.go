// Package jsonrpc implements ports.Caller over JSON-RPC 2.0 on HTTP, for
// deployments that front fldigi with a JSON-RPC bridge.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/tlf-contrib/fldigilink/internal/ports"
)

// Byte buffers have no native JSON type. A bridge that returns base64 data
// wraps it as {"base64": "..."}; plain strings stay strings.
const base64Key = "base64"

// Caller implements ports.Caller using gorilla/rpc json2 encoding.
type Caller struct {
	client ports.HTTPClient
	url    string
}

// NewCaller creates a JSON-RPC caller posting to url.
func NewCaller(client ports.HTTPClient, url string) *Caller {
	return &Caller{client: client, url: url}
}

// Call posts one JSON-RPC request and decodes the result.
// JSON numbers with an integral value come back as int64 so they match the
// XML-RPC transport.
func (c *Caller) Call(ctx context.Context, method string, params []interface{}) (interface{}, error) {
	if params == nil {
		params = []interface{}{}
	}
	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var reply interface{}
	if err := json2.DecodeClientResponse(resp.Body, &reply); err != nil {
		if errors.Is(err, json2.ErrNullResult) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return normalize(reply)
}

// Close is a no-op; connections belong to the HTTP client.
func (c *Caller) Close() error { return nil }

func normalize(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if x == math.Trunc(x) && x >= math.MinInt64 && x < 1<<63 {
			return int64(x), nil
		}
		return x, nil
	case map[string]interface{}:
		enc, ok := x[base64Key].(string)
		if !ok || len(x) != 1 {
			return x, nil
		}
		b, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("decode base64 result: %w", err)
		}
		return b, nil
	default:
		return v, nil
	}
}

// drainAndClose lets the transport reuse the connection.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
