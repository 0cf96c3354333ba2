package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/Git-i/gpu-gems/internal/commands"
	"github.com/Git-i/gpu-gems/internal/config"
	"github.com/Git-i/gpu-gems/internal/ctxlog"
	"github.com/Git-i/gpu-gems/internal/handlers"
	"github.com/Git-i/gpu-gems/internal/inspector"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    config.Loader
	handlers  *handlers.Handlers
	device    gpucontext.DeviceProvider
	publisher inspector.Publisher
}

// Option customizes an App.
type Option func(*App)

// WithLogWriter sends logs to w instead of the output writer.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// WithHandlers replaces the built-in pass handlers.
func WithHandlers(h *handlers.Handlers) Option {
	return func(a *App) { a.handlers = h }
}

// WithDevice replaces the headless device.
func WithDevice(d gpucontext.DeviceProvider) Option {
	return func(a *App) { a.device = d }
}

// WithPublisher uses p instead of dialing the configured inspector.
func WithPublisher(p inspector.Publisher) Option {
	return func(a *App) { a.publisher = p }
}

// NewApp is the constructor for the main application. It only wires
// dependencies; Run does the loading, compiling and executing.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:   outW,
		logW:   outW,
		config: cfg,
		loader: loader,
		device: HeadlessDevice{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.handlers == nil {
		a.handlers = handlers.NewWithBuiltins()
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")
	return a
}

// Run loads the descriptions, compiles the graph, prints the plan and
// executes the configured number of frames.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.GraphPaths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.")

	graph, err := BuildGraph(ctx, model, a.handlers, a.device, BuildOptions{
		SwapchainWidth:  a.config.SwapchainWidth,
		SwapchainHeight: a.config.SwapchainHeight,
	})
	if err != nil {
		return fmt.Errorf("failed to build render graph: %w", err)
	}

	if err := graph.Compile(ctx); err != nil {
		return fmt.Errorf("failed to compile render graph: %w", err)
	}
	plan, _ := graph.Plan()

	if err := writePlan(a.outW, plan, a.config.Output); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	publisher, err := a.openPublisher(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			a.logger.Warn("Failed to close inspector.", "error", err)
		}
	}()
	if err := publisher.PublishPlan(ctx, plan); err != nil {
		a.logger.Warn("Failed to publish plan.", "error", err)
	}

	if a.config.Frames == 0 {
		a.logger.Debug("No frames requested, execution not required.")
		return nil
	}

	a.logger.Info("🚀 Executing frames...", "frames", a.config.Frames)
	rec := commands.NewRecorder()
	for frame := range a.config.Frames {
		before := rec.Len()
		rec.BeginFrame(frame)
		start := time.Now()
		execErr := graph.Execute(ctx, rec)

		report := inspector.FrameReport{
			Frame:    frame,
			Passes:   plan.Order(),
			Commands: rec.Len() - before,
			Duration: time.Since(start),
			Err:      execErr,
		}
		if err := publisher.PublishFrame(ctx, report); err != nil {
			a.logger.Warn("Failed to publish frame.", "frame", frame, "error", err)
		}
		if execErr != nil {
			return fmt.Errorf("frame %d failed: %w", frame, execErr)
		}
	}
	a.logger.Info("🏁 Execution finished.", "commands", rec.Len())

	if a.config.Output == OutputText {
		fmt.Fprintln(a.outW, "\nCommands:")
		if _, err := rec.WriteTo(a.outW); err != nil {
			return fmt.Errorf("failed to write command log: %w", err)
		}
	}
	return nil
}

func (a *App) openPublisher(ctx context.Context) (inspector.Publisher, error) {
	if a.publisher != nil {
		return a.publisher, nil
	}
	if a.config.InspectorURL == "" {
		return inspector.Nop{}, nil
	}
	p, err := inspector.Dial(ctx, inspector.Options{
		URL:       a.config.InspectorURL,
		Namespace: a.config.InspectorNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to inspector: %w", err)
	}
	return p, nil
}
