// Package main is the entry point for the twinpick CLI.
package main

import "twinpick.dev/pkg/twinpick/cmd"

func main() {
	cmd.Execute()
}
