package ports

import (
	"context"
	"net/http"
)

// Caller performs remote procedure calls against the modem program.
//
// Params hold only int and string values, in call order. The returned
// value is the decoded result in its native Go form: int64 (or int/int32)
// for integers, string for strings, []byte for base64 buffers and nil when
// the method returns nothing. Any other type is passed through untouched
// and rejected by the query engine.
//
// Implementations need not be safe for concurrent use; the engine
// serializes all calls.
type Caller interface {
	Call(ctx context.Context, method string, params []interface{}) (interface{}, error)

	// Close releases the underlying connection resources.
	Close() error
}

// HTTPClient posts encoded requests for the HTTP-based transports.
// *http.Client satisfies it; tests swap in an httptest-backed client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
