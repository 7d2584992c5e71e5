// Package main provides the dnd command, which rolls each dice expression
// given on the command line and prints its results.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dnd: %v\n", err)
		os.Exit(1)
	}
}
