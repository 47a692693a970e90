// Package main is the entry point for property-service.
package main

import (
	"context"
	"fmt"
	"os"

	"property-service/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
