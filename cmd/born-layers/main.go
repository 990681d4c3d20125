// Package main provides the born-layers CLI: it runs PReLU forward and
// backward scenarios described in YAML and reports the hardware targets
// available on this machine.
package main

import (
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
