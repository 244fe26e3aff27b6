// Package main is the entry point for the duet editor.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultRootOptions()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
