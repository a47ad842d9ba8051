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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/will-rowe/appshell/src/misc"
	"github.com/will-rowe/appshell/src/version"
)

// the command line arguments
var (
	outFile    *string // where to write the mounted document
	reportFile *string // where to write the msgpack bootstrap report
)

// renderCmd is used by cobra
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Mount the application into a host document",
	Long: `Register the asset bundles into a host HTML document, mount the root component
at the attachment point and write the resulting document out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender()
	},
}

// init the command line arguments
func init() {
	outFile = renderCmd.Flags().StringP("out", "o", "", "write the mounted document here instead of STDOUT")
	reportFile = renderCmd.Flags().String("report", "", "write a msgpack report of the bootstrap run here")
	RootCmd.AddCommand(renderCmd)
}

// runRender is the main function for the render sub-command
func runRender() error {
	logger, stop, err := startLogging()
	defer stop()
	if err != nil {
		return err
	}
	logger.Info().Str("version", version.VERSION).Msg("starting the render subcommand")

	host, err := loadHost(false)
	if err != nil {
		return err
	}
	doc, b, err := renderHost(bytes.NewReader(host), logger)
	if b != nil && *reportFile != "" {
		if dumpErr := b.Report().Dump(*reportFile); dumpErr != nil {
			logger.Error().Err(dumpErr).Msg("could not save the bootstrap report")
		} else {
			logger.Info().Str("report", *reportFile).Msg("saved the bootstrap report")
		}
	}
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outFile != "" {
		fh, err := os.Create(*outFile)
		if err != nil {
			return errors.Wrap(err, "could not create the output file")
		}
		defer fh.Close()
		out = fh
	}
	if err := doc.Render(out); err != nil {
		return errors.Wrap(err, "could not write the mounted document")
	}
	logger.Info().Msg("finished")
	return nil
}

// loadHost returns the configured host document, or the blank page (which loads the browser build if wasm is set)
func loadHost(wasm bool) ([]byte, error) {
	if settings.Host == "" {
		return blankHost(settings.Title, settings.MountID, wasm)
	}
	return readHost(settings.Host)
}

// readHost loads a host document from disk
func readHost(path string) ([]byte, error) {
	if err := misc.CheckFile(path); err != nil {
		return nil, err
	}
	if err := misc.CheckExt(path, []string{"html", "htm"}); err != nil {
		return nil, err
	}
	return ioutil.ReadFile(path)
}
