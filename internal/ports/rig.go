package ports

import "github.com/tlf-contrib/fldigilink/internal/domain"

// RigSource exposes the rig state owned by the rig control library.
// The bridge only reads it.
type RigSource interface {
	Rig() domain.RigContext
}
