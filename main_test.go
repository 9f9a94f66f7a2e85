package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("returns error for an unknown flag", func(t *testing.T) {
		err := run([]string{"playgroundctl", "--nope"}, nil)
		require.Error(t, err)
	})

	t.Run("returns error for a missing config file", func(t *testing.T) {
		err := run([]string{"playgroundctl", "--config", "/nonexistent/playground.toml", "/data/photos"}, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "read config")
	})
}
