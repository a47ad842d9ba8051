// Package app contains the root component contract and the Application, which is the live, mounted component tree
package app

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/will-rowe/appshell/src/document"
)

var (
	// ErrAlreadyMounted is returned on every mount attempt after the first successful one
	ErrAlreadyMounted = errors.New("application is already mounted")

	// ErrMountPointNotFound is returned when the host document has no element with the target id
	ErrMountPointNotFound = errors.New("attachment point not found in host document")
)

// Component is a root component definition, it knows how to render its tree as markup
type Component interface {
	Render() (string, error)
}

// State is the lifecycle state of an Application
type State int

const (
	// Unmounted is the state of a newly constructed Application
	Unmounted State = iota
	// Mounted is reached once, when the rendered tree has been attached to the host document
	Mounted
)

func (s State) String() string {
	if s == Mounted {
		return "mounted"
	}
	return "unmounted"
}

// Application binds a root component definition to an attachment point
type Application struct {
	mu        sync.Mutex
	root      Component
	target    string
	state     State
	mountedAt time.Time
}

// New is the Application constructor
func New(root Component, target string) *Application {
	return &Application{
		root:   root,
		target: target,
	}
}

// Target returns the id of the attachment point
func (Application *Application) Target() string {
	return Application.target
}

// Root returns the component definition the application was built from
func (Application *Application) Root() Component {
	return Application.root
}

// State returns the current lifecycle state
func (Application *Application) State() State {
	Application.mu.Lock()
	defer Application.mu.Unlock()
	return Application.state
}

// MountedAt returns when the application was mounted, or the zero time
func (Application *Application) MountedAt() time.Time {
	Application.mu.Lock()
	defer Application.mu.Unlock()
	return Application.mountedAt
}

// Mount renders the root component and replaces the content of the attachment point with it.
// It moves the application from Unmounted to Mounted and can only succeed once; any failure leaves it Unmounted.
func (Application *Application) Mount(doc document.Document) error {
	Application.mu.Lock()
	defer Application.mu.Unlock()
	if Application.state == Mounted {
		return errors.Wrapf(ErrAlreadyMounted, "#%v", Application.target)
	}
	if Application.root == nil {
		return errors.New("application has no root component")
	}
	mp, ok := doc.Lookup(Application.target)
	if !ok {
		return errors.Wrapf(ErrMountPointNotFound, "#%v", Application.target)
	}
	markup, err := Application.root.Render()
	if err != nil {
		return errors.Wrap(err, "could not render root component")
	}
	if err := mp.Replace(markup); err != nil {
		return errors.Wrapf(err, "could not mount at #%v", Application.target)
	}
	Application.state = Mounted
	Application.mountedAt = time.Now()
	return nil
}
