// Package main provides the CLI entrypoint for crud-generator.
//
// crud-generator reads the root aggregate of a data-access package and
// generates, per entity:
//   - a transfer model
//   - a create form page and a list page
//   - an HTTP controller with list and add endpoints
//
// plus one mapping registration file covering every entity.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
