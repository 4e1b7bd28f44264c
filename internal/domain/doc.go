// Package domain contains the value types shared by the fldigi bridge.
//
// It has no dependencies on transports, logging or configuration.
//
// # Types
//
//   - [Argument]: a tagged call argument, integer or text
//   - [Result]: a tagged query result, integer, text or byte buffer
//   - [RigMode] and [RigContext]: the read-only rig state consulted by the
//     carrier corrector
//
// The sentinel errors in errors.go form the complete failure taxonomy of a
// remote query.
package domain
