package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
)

var commands = []string{"up", "down", "status", "version", "create"}

type options struct {
	command string
	name    string
	dir     string
}

// parseOptions reads the command line. dir defaults to the configured
// migrations directory.
func parseOptions(args []string, defaultDir string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.command, "command", "up", "Migration command: up, down, status, version, create")
	fs.StringVar(&opts.name, "name", "", "Name for 'create' command")
	fs.StringVar(&opts.dir, "dir", defaultDir, "Directory holding the SQL migrations")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if !slices.Contains(commands, opts.command) {
		return opts, fmt.Errorf("unknown command %q, use one of %v", opts.command, commands)
	}
	if opts.command == "create" && opts.name == "" {
		return opts, errors.New("name is required for 'create' command")
	}
	return opts, nil
}
