package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Git-i/gpu-gems/internal/commands"
	"github.com/Git-i/gpu-gems/rendergraph"
)

func TestHandlers_Registry(t *testing.T) {
	h := NewWithBuiltins()
	assert.Equal(t, []string{Clear, Noop, Trace}, h.Names())

	fn, err := h.Get(Trace)
	require.NoError(t, err)
	require.NotNil(t, fn)

	_, err = h.Get("raytrace")
	var unknown *UnknownHandlerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "raytrace", unknown.Name)
	assert.Contains(t, err.Error(), "registered: [clear noop trace]")

	assert.Panics(t, func() { h.RegisterHandler(Noop, noop) })
	assert.Panics(t, func() { h.RegisterHandler("nil", nil) })
}

// runPass compiles a two-resource pass using handler and executes it once.
func runPass(t *testing.T, handler string, commandsValue any) error {
	t.Helper()
	h := NewWithBuiltins()
	g := rendergraph.New(nil)
	require.NoError(t, g.CreateBuffer(rendergraph.BufferInfo{Name: "params", Size: 16}))
	p, err := g.AddPass("blur")
	require.NoError(t, err)
	require.NoError(t, p.BufferInput(rendergraph.Existing("params")))
	require.NoError(t, p.ColorOutput(rendergraph.NewTexture(rendergraph.DefaultTextureInfo("blurred"))))
	fn, err := h.Get(handler)
	require.NoError(t, err)
	p.SetCallback(fn)
	require.NoError(t, g.Compile(t.Context()))
	return g.Execute(t.Context(), commandsValue)
}

func ops(rec *commands.Recorder) []commands.Op {
	var out []commands.Op
	for _, c := range rec.Commands() {
		out = append(out, c.Op)
	}
	return out
}

func TestTrace(t *testing.T) {
	rec := commands.NewRecorder()
	require.NoError(t, runPass(t, Trace, rec))
	assert.Equal(t, []commands.Op{commands.OpBeginPass, commands.OpRead, commands.OpWrite, commands.OpEndPass}, ops(rec))

	cmds := rec.Commands()
	assert.Equal(t, "params", cmds[1].Binding.Resource)
	assert.Equal(t, "blurred", cmds[2].Binding.Resource)
}

func TestClear(t *testing.T) {
	rec := commands.NewRecorder()
	require.NoError(t, runPass(t, Clear, rec))
	assert.Equal(t, []commands.Op{
		commands.OpBeginPass, commands.OpRead, commands.OpClear, commands.OpWrite, commands.OpEndPass,
	}, ops(rec))
}

func TestTrace_RequiresRecorder(t *testing.T) {
	err := runPass(t, Trace, "not a recorder")
	var failed rendergraph.PassFailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, err.Error(), "needs a *commands.Recorder, got string")

	require.NoError(t, runPass(t, Noop, nil))
}
