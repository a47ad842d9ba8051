// Package document contains the host documents an application can be mounted into
package document

import (
	"github.com/will-rowe/appshell/src/presentation"
)

// MountPoint is an element of the host document that a component tree can be attached to
type MountPoint interface {
	ID() string

	// Replace swaps the element's content for the supplied markup
	Replace(markup string) error
}

// Document is a host document: a set of addressable elements plus the global style and script registries
type Document interface {
	presentation.Sink

	// Lookup finds the element with the given id
	Lookup(id string) (MountPoint, bool)
}
