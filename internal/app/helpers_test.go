package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Git-i/gpu-gems/internal/config"
	"github.com/Git-i/gpu-gems/internal/inspector"
	"github.com/Git-i/gpu-gems/rendergraph"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// staticLoader returns a fixed model, or err.
type staticLoader struct {
	model *config.Model
	err   error
}

func (l staticLoader) Load(context.Context, ...string) (*config.Model, error) {
	return l.model, l.err
}

// capturePublisher records everything published to it.
type capturePublisher struct {
	plans  []*rendergraph.Plan
	frames []inspector.FrameReport
	closed bool
}

func (p *capturePublisher) PublishPlan(_ context.Context, plan *rendergraph.Plan) error {
	p.plans = append(p.plans, plan)
	return nil
}

func (p *capturePublisher) PublishFrame(_ context.Context, r inspector.FrameReport) error {
	p.frames = append(p.frames, r)
	return nil
}

func (p *capturePublisher) Close() error {
	p.closed = true
	return nil
}

// writeGraph writes content to a .hcl file in a fresh temporary directory.
func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// SetupAppTest creates a new app instance with debug logs captured apart
// from the output.
func SetupAppTest(t *testing.T, cfg Config, loader config.Loader, opts ...Option) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	opts = append([]Option{WithLogWriter(logs)}, opts...)
	testApp := NewApp(out, appConfig, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("FRAMEGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs
}
