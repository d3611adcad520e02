// Package main is the entry point for the sub-assistant CLI.
package main

import (
	"os"

	"github.com/lcalmvr/sub-assistant-sub001/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
