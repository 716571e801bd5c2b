// Package main is the entry point for the fee-wizard CLI.
package main

import (
	"os"

	"fee-wizard/cmd/fee-wizard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
