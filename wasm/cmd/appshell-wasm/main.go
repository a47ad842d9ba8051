//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"os"

	shell "github.com/will-rowe/appshell/wasm/src"
)

// The app entry point, build with GOOS=js GOARCH=wasm and serve it with `appshell serve --wasm`
func main() {
	if err := shell.New().Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
