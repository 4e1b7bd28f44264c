package fldigi

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tlf-contrib/fldigilink/internal/adapters/jsonrpc"
	"github.com/tlf-contrib/fldigilink/internal/adapters/xmlrpc"
	"github.com/tlf-contrib/fldigilink/internal/ports"
)

// Transport names.
const (
	TransportXMLRPC  = "xmlrpc"  // fldigi's native protocol
	TransportJSONRPC = "jsonrpc" // JSON-RPC 2.0 over HTTP
)

// DefaultTransport is used when no transport is configured.
const DefaultTransport = TransportXMLRPC

type dialOptions struct {
	timeout    time.Duration
	httpClient ports.HTTPClient
}

type dialFunc func(address string, o dialOptions) (ports.Caller, error)

var (
	transportsMu sync.RWMutex
	transports   = map[string]dialFunc{
		TransportXMLRPC:  dialXMLRPC,
		TransportJSONRPC: dialJSONRPC,
	}
)

// RegisterTransport makes a custom transport available by name.
// Registering an existing name replaces it.
func RegisterTransport(name string, dial func(address string, timeout time.Duration) (ports.Caller, error)) {
	transportsMu.Lock()
	defer transportsMu.Unlock()
	transports[name] = func(address string, o dialOptions) (ports.Caller, error) {
		return dial(address, o.timeout)
	}
}

// AvailableTransports returns the registered transport names, sorted.
func AvailableTransports() []string {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	names := make([]string, 0, len(transports))
	for name := range transports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTransport checks if a transport is available.
func HasTransport(name string) bool {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	_, ok := transports[name]
	return ok
}

func dial(name, address string, o dialOptions) (ports.Caller, error) {
	transportsMu.RLock()
	fn, ok := transports[name]
	transportsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown transport: %s", name)
	}
	return fn(address, o)
}

func dialXMLRPC(address string, o dialOptions) (ports.Caller, error) {
	return xmlrpc.NewCaller(address, xmlrpc.NewTransport(o.timeout))
}

func dialJSONRPC(address string, o dialOptions) (ports.Caller, error) {
	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}
	return jsonrpc.NewCaller(client, address), nil
}
