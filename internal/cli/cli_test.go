package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Git-i/gpu-gems/internal/app"
)

func TestParse(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{
		"-g", "base.hcl",
		"--graph", "passes/",
		"--log-level", "DEBUG",
		"--output", "json",
		"--frames", "3",
		"--swapchain", "1920x1080",
		"--inspector-url", "http://localhost:3000",
		"extra.hcl",
	}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, []string{"base.hcl", "passes/", "extra.hcl"}, cfg.GraphPaths)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, app.OutputJSON, cfg.Output)
	assert.Equal(t, 3, cfg.Frames)
	assert.Equal(t, uint32(1920), cfg.SwapchainWidth)
	assert.Equal(t, uint32(1080), cfg.SwapchainHeight)
	assert.Equal(t, "http://localhost:3000", cfg.InspectorURL)
	assert.Equal(t, "/", cfg.InspectorNamespace)
	assert.Empty(t, out.String())
}

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := Parse([]string{"frame.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, app.OutputText, cfg.Output)
	assert.Equal(t, 1, cfg.Frames)
	assert.Zero(t, cfg.SwapchainWidth)
}

func TestParse_ShouldExit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {}} {
		var out bytes.Buffer
		cfg, exit, err := Parse(args, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown flag", []string{"--nope"}, "flag provided but not defined"},
		{"bad output", []string{"--output", "svg", "a.hcl"}, `invalid output "svg"`},
		{"bad level", []string{"--log-level", "loud", "a.hcl"}, `invalid log level "loud"`},
		{"bad format", []string{"--log-format", "xml", "a.hcl"}, `invalid log format "xml"`},
		{"negative frames", []string{"--frames", "-2", "a.hcl"}, "frames must not be negative"},
		{"swapchain separator", []string{"--swapchain", "1920", "a.hcl"}, "expected WIDTHxHEIGHT"},
		{"swapchain zero", []string{"--swapchain", "0x10", "a.hcl"}, "invalid swapchain width"},
		{"swapchain height", []string{"--swapchain", "10xtall", "a.hcl"}, "invalid swapchain height"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
