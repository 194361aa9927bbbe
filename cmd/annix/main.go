package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/annix/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}
}
