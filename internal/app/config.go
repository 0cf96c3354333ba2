package app

import (
	"errors"
	"fmt"
)

// Plan output formats.
const (
	OutputText    = "text"
	OutputJSON    = "json"
	OutputDOT     = "dot"
	OutputMermaid = "mermaid"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPaths []string // hcl files or directories

	LogFormat string
	LogLevel  string

	// Output selects how the compiled plan is printed.
	Output string
	// Frames is the number of frames executed after compiling. Zero only
	// compiles.
	Frames int

	// SwapchainWidth and SwapchainHeight override the description's
	// swapchain block when both are set.
	SwapchainWidth  uint32
	SwapchainHeight uint32

	// InspectorURL enables publishing to a socket.io inspector.
	InspectorURL       string
	InspectorNamespace string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("GraphPaths is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	switch cfg.Output {
	case OutputText, OutputJSON, OutputDOT, OutputMermaid:
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text', 'json', 'dot' or 'mermaid'", cfg.Output)
	}
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if (cfg.SwapchainWidth == 0) != (cfg.SwapchainHeight == 0) {
		return nil, errors.New("swapchain width and height must be set together")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}
