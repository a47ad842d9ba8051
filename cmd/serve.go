// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/objconv/json"
	"github.com/spf13/cobra"
	"github.com/will-rowe/appshell/src/assets"
	"github.com/will-rowe/appshell/src/bootstrap"
	"github.com/will-rowe/appshell/src/misc"
	"github.com/will-rowe/appshell/src/version"
)

// the command line arguments
var (
	addr     *string // listen address
	wasmFile *string // compiled browser build of the application
	wasmExec *string // the wasm_exec.js shipped with the Go distribution
)

// serveCmd is used by cobra
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mounted application over HTTP",
	Long: `Bootstrap the application once into the host document and serve the result,
along with the asset bundles and, optionally, the browser build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Flags().Changed("addr"))
	},
}

// init the command line arguments
func init() {
	addr = serveCmd.Flags().StringP("addr", "a", "", "address to listen on (default: $PORT, the config's addr, or :3000)")
	wasmFile = serveCmd.Flags().String("wasm", "", "browser build to serve at /app.wasm")
	wasmExec = serveCmd.Flags().String("wasmExec", "", "wasm_exec.js to serve alongside the browser build")
	RootCmd.AddCommand(serveCmd)
}

// runServe is the main function for the serve sub-command
func runServe(addrSet bool) error {
	logger, stop, err := startLogging()
	defer stop()
	if err != nil {
		return err
	}
	logger.Info().Str("version", version.VERSION).Msg("starting the serve subcommand")

	listenAddr := settings.Addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	if addrSet {
		listenAddr = *addr
	}
	if err := checkWasm(*wasmFile, *wasmExec); err != nil {
		return err
	}

	host, err := loadHost(*wasmFile != "")
	if err != nil {
		return err
	}
	doc, b, err := renderHost(bytes.NewReader(host), logger)
	if err != nil {
		return err
	}
	var page bytes.Buffer
	if err := doc.Render(&page); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           newRouter(page.Bytes(), b, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	errs := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", listenAddr).Msg("listening")
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "server stopped")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
	}
	logger.Info().Msg("finished")
	return nil
}

// newRouter serves the mounted page, the registered bundles and the optional browser build
func newRouter(page []byte, b *bootstrap.Bootstrapper, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		body, err := json.Marshal(b.Report())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})
	r.Get("/assets/{name}", func(w http.ResponseWriter, req *http.Request) {
		bundle, ok := b.Presentation.Lookup(chi.URLParam(req, "name"))
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", contentType(bundle))
		w.Write(bundle.Content)
	})
	if *wasmFile != "" {
		r.Get("/app.wasm", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/wasm")
			http.ServeFile(w, req, *wasmFile)
		})
		r.Get("/wasm_exec.js", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, *wasmExec)
		})
	}
	return r
}

// checkWasm makes sure the browser build and its loader are given together, and both exist
func checkWasm(wasm, exec string) error {
	if (wasm == "") != (exec == "") {
		return errors.New("--wasm and --wasmExec need to be set together")
	}
	for _, f := range []string{wasm, exec} {
		if f != "" {
			if err := misc.CheckFile(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// contentType picks a MIME type from the bundle name, falling back on its kind
func contentType(bundle assets.Bundle) string {
	if t := mime.TypeByExtension(filepath.Ext(bundle.Name)); t != "" {
		return t
	}
	if bundle.Kind == assets.Script {
		return "text/javascript; charset=utf-8"
	}
	return "text/css; charset=utf-8"
}

// requestLogger logs each request once it has been served
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Msg("request")
		})
	}
}
