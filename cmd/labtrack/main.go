// Package main is the entry point for the labtrack CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// --file is resolved before the container exists, so it is picked out
	// of the raw arguments rather than declared as a cobra flag.
	storePath, args := extractFileFlag(os.Args[1:])

	var container *app.Container
	if storePath != "" {
		container, err = app.NewWithStorePath(cwd, storePath)
	} else {
		container, err = app.New(cwd)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// extractFileFlag removes --file/--file=<path> from args and returns the
// path, if any.
func extractFileFlag(args []string) (string, []string) {
	var path string
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--file" && i+1 < len(args):
			path = args[i+1]
			i++
		case strings.HasPrefix(arg, "--file="):
			path = strings.TrimPrefix(arg, "--file=")
		default:
			rest = append(rest, arg)
		}
	}
	return path, rest
}
