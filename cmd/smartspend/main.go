// Package main is the entry point for the smartspend CLI.
package main

import (
	"os"

	"smartspend/cmd/smartspend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
