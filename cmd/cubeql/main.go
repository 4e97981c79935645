// Package main provides the cubeql command-line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/cubeql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
