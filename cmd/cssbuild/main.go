// Package main is the entry point for the cssbuild CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/cssbuild/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
