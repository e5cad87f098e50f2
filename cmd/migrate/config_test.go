package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil, "db/migrations", io.Discard)
	require.NoError(t, err)

	assert.Equal(t, options{command: "up", dir: "db/migrations"}, opts)
}

func TestParseOptions_DirOverride(t *testing.T) {
	opts, err := parseOptions([]string{"-command", "status", "-dir", "/custom/migrations"}, "db/migrations", io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "status", opts.command)
	assert.Equal(t, "/custom/migrations", opts.dir)
}

func TestParseOptions_Rejects(t *testing.T) {
	tests := map[string][]string{
		"unknown command":     {"-command", "redo-all"},
		"create without name": {"-command", "create"},
		"unknown flag":        {"-verbose"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseOptions(args, "db/migrations", io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestParseOptions_Create(t *testing.T) {
	opts, err := parseOptions([]string{"-command", "create", "-name", "add_reader_email"}, "db/migrations", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "add_reader_email", opts.name)
}
