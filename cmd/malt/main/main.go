package main

import (
	"fmt"
	"os"

	"github.com/maltpkg/malt/cmd/malt"
)

func main() {
	rootCmd := malt.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
