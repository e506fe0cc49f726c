// ABOUTME: Entry point for proptrack CLI
// ABOUTME: Terminal client for the PropTrack property-management platform

package main

import (
	"fmt"
	"os"

	"github.com/vitoteks-art/property-rental-platform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
