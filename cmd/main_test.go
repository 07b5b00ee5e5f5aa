package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xlemi/vocalnote/internal/config"
)

func TestToneCommand(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "vocalnote.log")
	rootCmd.SetArgs([]string{
		"tone",
		"--freq", "440",
		"--ticks", "3",
		"--sample-rate", "48000",
		"--window", "2400",
		"--tick", "1ms",
		"--log-file", logFile,
	})
	require.NoError(t, rootCmd.Execute())

	out, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "analyzing tone")
	assert.Contains(t, string(out), "n=3")
	assert.NotContains(t, string(out), "n=4")
}

func TestInvalidConfigFailsFast(t *testing.T) {
	rootCmd.SetArgs([]string{"tone", "--sample-rate", "48000", "--window", "10", "--ticks", "1"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, config.ErrWindowSize)
}
