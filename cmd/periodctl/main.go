// Package main is the entry point for the periodctl CLI tool.
package main

import (
	"os"

	"github.com/warp/period-engine/cmd/periodctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
