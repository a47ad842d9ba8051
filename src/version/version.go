// Package version records the appshell release
package version

// VERSION is the current appshell version
const VERSION = "0.2.0"
