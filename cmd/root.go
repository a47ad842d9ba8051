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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/will-rowe/appshell/src/app"
	"github.com/will-rowe/appshell/src/assets"
	"github.com/will-rowe/appshell/src/bootstrap"
	"github.com/will-rowe/appshell/src/config"
	"github.com/will-rowe/appshell/src/document"
	"github.com/will-rowe/appshell/src/logging"
	"github.com/will-rowe/appshell/src/misc"
	"github.com/will-rowe/appshell/src/ui"
	"github.com/will-rowe/appshell/src/version"
)

// the persistent command line arguments
var (
	cfgFile   *string // TOML config file
	manifest  *string // JSON manifest listing the asset bundles, the embedded bundles are used if empty
	hostFile  *string // host document to mount into
	mountID   *string // id of the attachment point in the host document
	rootName  *string // name of the root component definition
	logFile   *string // log to file instead of stderr
	verbose   *bool   // debug logging
	profiling *bool   // write a CPU profile for the run
	settings  config.Config
)

// RootCmd is the base command, the sub-commands attach themselves to it
var RootCmd = &cobra.Command{
	Use:   "appshell",
	Short: "Bootstrap, serve and package the application shell",
	Long: `appshell registers the presentation assets of the application shell,
builds the root component and mounts it at the attachment point of a host document.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	cfgFile = RootCmd.PersistentFlags().String("config", "", "TOML config file")
	manifest = RootCmd.PersistentFlags().StringP("manifest", "m", "", "JSON manifest of the asset bundles (default: the embedded bundles)")
	hostFile = RootCmd.PersistentFlags().String("host", "", "host HTML document (default: the config's host, or a blank page)")
	mountID = RootCmd.PersistentFlags().String("mount", config.DefaultMountID, "id of the attachment point in the host document")
	rootName = RootCmd.PersistentFlags().String("root", config.DefaultRoot, "root component to mount")
	logFile = RootCmd.PersistentFlags().String("log", "", "filename for log file, default = stderr")
	verbose = RootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug logging")
	profiling = RootCmd.PersistentFlags().Bool("profiling", false, "create the files needed to profile appshell using the go tool pprof")
}

// Main runs the command line and returns the exit code
func Main() int {
	if err := RootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	os.Exit(Main())
}

// loadSettings merges the config file and any flags that were set on the command line
func loadSettings(cmd *cobra.Command, args []string) error {
	settings = config.Default()
	if *cfgFile != "" {
		var err error
		if settings, err = config.Load(*cfgFile); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("manifest") {
		settings.Manifest = *manifest
	}
	if flags.Changed("host") {
		settings.Host = *hostFile
	}
	if flags.Changed("mount") {
		settings.MountID = *mountID
	}
	if flags.Changed("root") {
		settings.Root = *rootName
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	return misc.CheckRequiredFlags(flags)
}

// startLogging returns the run's logger and a func to close everything down at the end of the run
func startLogging() (zerolog.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closers := []func(){}
	stop := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	if *logFile != "" {
		logFH, err := misc.StartLogging(*logFile)
		if err != nil {
			return zerolog.Nop(), stop, errors.Wrap(err, "could not open the log file")
		}
		out = logFH
		closers = append(closers, func() { logFH.Close() })
	}
	if *profiling {
		p := profile.Start(profile.ProfilePath("./"), profile.Quiet)
		closers = append(closers, p.Stop)
	}
	return logging.New(out, *verbose), stop, nil
}

// loadBundles returns the bundles listed in the configured manifest, or the embedded ones
func loadBundles() ([]assets.Bundle, error) {
	if settings.Manifest == "" {
		return assets.Defaults()
	}
	if err := misc.CheckFile(settings.Manifest); err != nil {
		return nil, err
	}
	return assets.LoadManifest(settings.Manifest)
}

// renderHost bootstraps the application into a host document and returns the document along with the run report
func renderHost(host io.Reader, logger zerolog.Logger) (*document.HTMLDocument, *bootstrap.Bootstrapper, error) {
	doc, err := document.Parse(host)
	if err != nil {
		return nil, nil, err
	}
	bundles, err := loadBundles()
	if err != nil {
		return nil, nil, err
	}
	registry := app.NewRegistry()
	ui.Import(registry, settings.Title, fmt.Sprintf("appshell %v", version.VERSION))
	b := bootstrap.New(doc, registry, bundles, settings.Root, settings.MountID, logger)
	if _, err := b.Start(); err != nil {
		return doc, b, errors.Wrap(err, "bootstrap failed")
	}
	return doc, b, nil
}
