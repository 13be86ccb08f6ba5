// Package main is the entry point for the import-rewrite CLI.
package main

import (
	"os"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
