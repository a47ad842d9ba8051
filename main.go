package main

import "github.com/will-rowe/appshell/cmd"

func main() {
	cmd.Execute()
}
