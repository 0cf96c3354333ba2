package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Git-i/gpu-gems/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList collects a repeatable path flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("framegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
framegraph - Compiles and runs declarative render-pass graphs.

Usage:
  framegraph [options] [GRAPH_PATH...]

Arguments:
  GRAPH_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var paths pathList
	flagSet.Var(&paths, "graph", "Path to a graph file or directory. May be repeated.")
	flagSet.Var(&paths, "g", "Path to a graph file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", app.OutputText, "Plan output format. Options: 'text', 'json', 'dot', 'mermaid'.")
	framesFlag := flagSet.Int("frames", 1, "Number of frames to execute after compiling. 0 only compiles.")
	swapchainFlag := flagSet.String("swapchain", "", "Override the swapchain extent, as WIDTHxHEIGHT.")
	inspectorURLFlag := flagSet.String("inspector-url", "", "Publish plans and frame reports to a socket.io server.")
	inspectorNSFlag := flagSet.String("inspector-namespace", "/", "Socket.io namespace used with -inspector-url.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths = append(paths, flagSet.Args()...)
	slog.Debug("Graph paths determined.", "paths", []string(paths))

	if len(paths) == 0 {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	width, height, err := parseExtent(*swapchainFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(app.Config{
		GraphPaths:         paths,
		LogFormat:          strings.ToLower(*logFormatFlag),
		LogLevel:           strings.ToLower(*logLevelFlag),
		Output:             strings.ToLower(*outputFlag),
		Frames:             *framesFlag,
		SwapchainWidth:     width,
		SwapchainHeight:    height,
		InspectorURL:       *inspectorURLFlag,
		InspectorNamespace: *inspectorNSFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseExtent reads "WIDTHxHEIGHT". An empty string is no override.
func parseExtent(s string) (uint32, uint32, error) {
	if s == "" {
		return 0, 0, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid swapchain %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseUint(w, 10, 32)
	if err != nil || width == 0 {
		return 0, 0, fmt.Errorf("invalid swapchain width %q: must be a positive integer", w)
	}
	height, err := strconv.ParseUint(h, 10, 32)
	if err != nil || height == 0 {
		return 0, 0, fmt.Errorf("invalid swapchain height %q: must be a positive integer", h)
	}
	return uint32(width), uint32(height), nil
}
