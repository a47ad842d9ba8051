// Package misc has the helpers shared by the appshell sub-commands
package misc

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StartLogging opens (or creates) a log file for appending
func StartLogging(logFile string) (*os.File, error) {
	logPath := strings.Split(logFile, "/")
	joinedLogPath := strings.Join(logPath[:len(logPath)-1], "/")
	if len(logPath) > 1 {
		if _, err := os.Stat(joinedLogPath); os.IsNotExist(err) {
			if err := os.MkdirAll(joinedLogPath, 0755); err != nil {
				return nil, errors.Wrap(err, "can't create the log directory")
			}
		}
	}
	return os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
}

// CheckRequiredFlags returns an error if a flag marked required by cobra has not been set
func CheckRequiredFlags(flags *pflag.FlagSet) error {
	flagName := ""
	flags.VisitAll(func(flag *pflag.Flag) {
		requiredAnnotation := flag.Annotations[cobra.BashCompOneRequiredFlag]
		if len(requiredAnnotation) == 0 {
			return
		}
		if requiredAnnotation[0] == "true" && !flag.Changed && flagName == "" {
			flagName = flag.Name
		}
	})
	if flagName != "" {
		return errors.Errorf("required flag `%v` has not been set", flagName)
	}
	return nil
}

// CheckFile makes sure a file exists and is not empty
func CheckFile(file string) error {
	fi, err := os.Stat(file)
	if err != nil {
		return errors.Wrapf(err, "can't access %v", file)
	}
	if fi.IsDir() {
		return errors.Errorf("%v is a directory", file)
	}
	if fi.Size() == 0 {
		return errors.Errorf("%v is empty", file)
	}
	return nil
}

// CheckExt makes sure a file has one of the listed extensions
func CheckExt(file string, exts []string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	for _, allowed := range exts {
		if ext == allowed {
			return nil
		}
	}
	return errors.Errorf("%v has an unsupported extension (expected one of: %v)", file, strings.Join(exts, ", "))
}

// CheckDir makes sure a directory exists, creating it if asked to
func CheckDir(dir string, create bool) error {
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) && create {
		return os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return errors.Wrapf(err, "can't access %v", dir)
	}
	if !fi.IsDir() {
		return errors.Errorf("%v is not a directory", dir)
	}
	return nil
}
