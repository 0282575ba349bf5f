// Package main provides the CLI entrypoint for builder-generator.
//
// builder-generator is a compile-time codegen tool that:
//   - Parses Go packages (AST + go/types) to find builder-annotated structs
//   - Classifies each field as required, optional, or defaulted
//   - Synthesizes a constructor, an init struct, and fluent setters
//   - Writes the members next to the original declaration
package main

import (
	"os"

	"builder-generator/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
