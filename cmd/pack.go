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
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/mholt/archiver"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/will-rowe/appshell/src/misc"
	"github.com/will-rowe/appshell/src/version"
)

// the command line arguments
var (
	archiveFile *string // the site archive to create
	packWasm    *string // browser build to include in the archive
	packExec    *string // the wasm_exec.js that loads the browser build
)

// packCmd is used by cobra
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Package the mounted application as a static site archive",
	Long: `Mount the application into the host document and archive the result, together with
the asset bundles, as a static site (zip, tar, tar.gz, ... picked from the archive's extension).`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPack()
	},
}

// init the command line arguments
func init() {
	archiveFile = packCmd.Flags().StringP("out", "o", "", "archive to create - required")
	packWasm = packCmd.Flags().String("wasm", "", "browser build to include as app.wasm")
	packExec = packCmd.Flags().String("wasmExec", "", "wasm_exec.js to include alongside the browser build")
	packCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(packCmd)
}

// runPack is the main function for the pack sub-command
func runPack() error {
	logger, stop, err := startLogging()
	defer stop()
	if err != nil {
		return err
	}
	logger.Info().Str("version", version.VERSION).Msg("starting the pack subcommand")
	if err := checkWasm(*packWasm, *packExec); err != nil {
		return err
	}

	host, err := loadHost(*packWasm != "")
	if err != nil {
		return err
	}
	doc, b, err := renderHost(bytes.NewReader(host), logger)
	if err != nil {
		return err
	}

	// stage the site
	staging, err := ioutil.TempDir("", "appshell-pack-")
	if err != nil {
		return errors.Wrap(err, "could not create a staging directory")
	}
	defer os.RemoveAll(staging)
	var page bytes.Buffer
	if err := doc.Render(&page); err != nil {
		return err
	}
	sources := []string{filepath.Join(staging, "index.html"), filepath.Join(staging, "assets")}
	if err := ioutil.WriteFile(sources[0], page.Bytes(), 0644); err != nil {
		return err
	}
	if err := misc.CheckDir(sources[1], true); err != nil {
		return err
	}
	for _, bundle := range append(b.Presentation.Styles(), b.Presentation.Scripts()...) {
		if err := ioutil.WriteFile(filepath.Join(sources[1], bundle.Name), bundle.Content, 0644); err != nil {
			return errors.Wrapf(err, "could not stage bundle %q", bundle.Name)
		}
		logger.Debug().Str("bundle", bundle.Name).Msg("staged bundle")
	}
	if *packWasm != "" {
		for name, src := range map[string]string{"app.wasm": *packWasm, "wasm_exec.js": *packExec} {
			data, err := ioutil.ReadFile(src)
			if err != nil {
				return err
			}
			dest := filepath.Join(staging, name)
			if err := ioutil.WriteFile(dest, data, 0644); err != nil {
				return errors.Wrapf(err, "could not stage %v", name)
			}
			sources = append(sources, dest)
			logger.Debug().Str("file", name).Msg("staged browser build")
		}
	}

	// archiver refuses to overwrite
	if _, err := os.Stat(*archiveFile); err == nil {
		logger.Warn().Str("archive", *archiveFile).Msg("replacing existing archive")
		if err := os.Remove(*archiveFile); err != nil {
			return err
		}
	}
	if err := archiver.Archive(sources, *archiveFile); err != nil {
		return errors.Wrap(err, "could not create the site archive")
	}
	logger.Info().Str("archive", *archiveFile).Int("files", len(sources)).Msg("finished")
	return nil
}
