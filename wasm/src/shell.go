//go:build js && wasm
// +build js,wasm

// Package shell runs the bootstrap sequence inside the browser
package shell

import (
	"fmt"
	"os"
	"syscall/js"

	"github.com/rs/zerolog"
	"github.com/segmentio/objconv/json"
	"github.com/will-rowe/appshell/src/app"
	"github.com/will-rowe/appshell/src/assets"
	"github.com/will-rowe/appshell/src/bootstrap"
	"github.com/will-rowe/appshell/src/config"
	"github.com/will-rowe/appshell/src/document"
	"github.com/will-rowe/appshell/src/logging"
	"github.com/will-rowe/appshell/src/ui"
	"github.com/will-rowe/appshell/src/version"
)

// Shell is the browser side of appshell
type Shell struct {
	bootstrapper *bootstrap.Bootstrapper
	logger       zerolog.Logger

	reportCb   js.Func
	shutdownCb js.Func

	done chan struct{}
}

// New returns a new instance of Shell
func New() *Shell {
	return &Shell{
		logger: logging.NewConsole(os.Stdout, false),
		done:   make(chan struct{}),
	}
}

// Start mounts the application, exposes the callbacks and waits for the close signal to be sent from the browser.
func (s *Shell) Start() error {
	bundles, err := assets.Defaults()
	if err != nil {
		return err
	}
	registry := app.NewRegistry()
	ui.Import(registry, js.Global().Get("document").Get("title").String(), fmt.Sprintf("appshell %v (wasm)", version.VERSION))
	s.bootstrapper = bootstrap.New(document.NewDOMDocument(), registry, bundles, config.DefaultRoot, config.DefaultMountID, s.logger)
	if _, err := s.bootstrapper.Start(); err != nil {
		return err
	}

	// the call back for reporting on the bootstrap run
	s.setupReportCb()
	js.Global().Set("appshellReport", s.reportCb)

	// the call back for shutting down the app
	s.setupShutdownCb()
	js.Global().Set("appshellShutdown", s.shutdownCb)

	<-s.done
	s.logger.Info().Msg("shutting down appshell")
	s.reportCb.Release()
	s.shutdownCb.Release()
	return nil
}

// setupReportCb returns the bootstrap report as a JSON string
func (s *Shell) setupReportCb() {
	s.reportCb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		b, err := json.Marshal(s.bootstrapper.Report())
		if err != nil {
			s.logger.Error().Err(err).Msg("could not encode the report")
			return nil
		}
		return string(b)
	})
}

// setupShutdownCb
func (s *Shell) setupShutdownCb() {
	s.shutdownCb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		go func() { s.done <- struct{}{} }()
		return nil
	})
}
