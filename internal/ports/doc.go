// Package ports defines the interfaces that connect the fldigi bridge core
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Caller]: performs one remote procedure call on the wire
//   - [RigSource]: supplies the current rig mode and rig-control flag
//   - [HTTPClient]: HTTP request abstraction used by the transports
//
// The core (pkg/fldigi) depends only on these interfaces. Adapters under
// internal/adapters implement them with XML-RPC, JSON-RPC and a settable
// in-memory rig state.
package ports
