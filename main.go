// Package main is the entry point of the wyre packet analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/wyrelab/wyre/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
