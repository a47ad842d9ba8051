// Package bootstrap runs the one-shot startup sequence of the application shell:
// register the presentation assets, resolve the root component, build the application and mount it.
package bootstrap

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/will-rowe/appshell/src/app"
	"github.com/will-rowe/appshell/src/assets"
	"github.com/will-rowe/appshell/src/document"
	"github.com/will-rowe/appshell/src/presentation"
)

// ErrAlreadyStarted is returned when Start is called more than once on a Bootstrapper
var ErrAlreadyStarted = errors.New("bootstrapper has already run")

// Bootstrapper holds everything the startup sequence reads
type Bootstrapper struct {
	Presentation *presentation.Context
	Document     document.Document
	Registry     *app.Registry
	Bundles      []assets.Bundle
	Root         string
	MountID      string
	Logger       zerolog.Logger

	started    bool
	app        *app.Application
	registered []string
	failures   []string
}

// New is the Bootstrapper constructor, it gives the bootstrapper its own presentation context
func New(doc document.Document, registry *app.Registry, bundles []assets.Bundle, root, mountID string, logger zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{
		Presentation: presentation.NewContext(),
		Document:     doc,
		Registry:     registry,
		Bundles:      bundles,
		Root:         root,
		MountID:      mountID,
		Logger:       logger,
	}
}

// Start runs the startup sequence. It can only be called once.
//
// Bundles are registered in order; a bundle that fails to register is logged and skipped.
// Failing to resolve the root component stops the sequence before anything is mounted.
// A missing attachment point is reported as app.ErrMountPointNotFound, after the assets have been registered.
func (Bootstrapper *Bootstrapper) Start() (*app.Application, error) {
	if Bootstrapper.started {
		return nil, ErrAlreadyStarted
	}
	Bootstrapper.started = true
	if Bootstrapper.Document == nil {
		return nil, errors.New("no host document to bootstrap into")
	}
	if Bootstrapper.Registry == nil {
		return nil, errors.Wrap(app.ErrComponentNotFound, "no component registry")
	}
	if Bootstrapper.Presentation == nil {
		Bootstrapper.Presentation = presentation.NewContext()
	}
	logger := Bootstrapper.Logger.With().Str("mount", Bootstrapper.MountID).Str("root", Bootstrapper.Root).Logger()

	// the host document applies each bundle as it enters the presentation context
	Bootstrapper.Presentation.Attach(Bootstrapper.Document)
	for _, bundle := range Bootstrapper.Bundles {
		if err := Bootstrapper.Presentation.RegisterAsset(bundle); err != nil {
			logger.Warn().Err(err).Str("bundle", bundle.Name).Msg("could not register bundle")
			Bootstrapper.failures = append(Bootstrapper.failures, bundle.Name)
			continue
		}
		logger.Debug().Str("bundle", bundle.Name).Stringer("kind", bundle.Kind).Int("bytes", len(bundle.Content)).Msg("registered bundle")
		Bootstrapper.registered = append(Bootstrapper.registered, bundle.Name)
	}

	root, err := Bootstrapper.Registry.Resolve(Bootstrapper.Root)
	if err != nil {
		logger.Error().Err(err).Msg("could not resolve root component")
		return nil, err
	}

	Bootstrapper.app = app.New(root, Bootstrapper.MountID)
	if err := Bootstrapper.app.Mount(Bootstrapper.Document); err != nil {
		logger.Error().Err(err).Msg("could not mount application")
		return Bootstrapper.app, err
	}
	logger.Info().Int("bundles", len(Bootstrapper.registered)).Msg("application mounted")
	return Bootstrapper.app, nil
}

// Application returns the application built by Start, if it got that far
func (Bootstrapper *Bootstrapper) Application() *app.Application {
	return Bootstrapper.app
}
