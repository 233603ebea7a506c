// Package main provides the safeinfer CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/born-ml/safeinfer/internal/cli"
)

func main() {
	if err := cli.NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
