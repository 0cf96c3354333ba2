package rendergraph

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPass(t *testing.T) {
	g := New(nil)

	p, err := g.AddPass("gbuffer")
	require.NoError(t, err)
	assert.Equal(t, PassID(0), p.ID())
	assert.Equal(t, "gbuffer", p.Name())

	_, err = g.AddPass("gbuffer")
	var redundant RedundantPassError
	require.ErrorAs(t, err, &redundant)
	assert.Equal(t, "gbuffer", redundant.Name)

	again, err := g.Pass("gbuffer")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), again.ID())

	_, err = g.Pass("lighting")
	var missing NonExistentPassError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "lighting", missing.Name)

	assert.Equal(t, []string{"gbuffer"}, g.Passes())
}

func TestDeclare_Existing(t *testing.T) {
	t.Run("missing resource leaves lists unchanged", func(t *testing.T) {
		g := New(nil)
		require.NoError(t, g.CreateTexture(DefaultTextureInfo("albedo")))
		p, err := g.AddPass("lighting")
		require.NoError(t, err)
		require.NoError(t, p.ColorInput(Existing("albedo")))

		for _, declare := range []func(AttachmentInfo) error{p.ColorInput, p.ColorOutput, p.BufferInput, p.BufferOutput} {
			err = declare(Existing("normals"))
			var missing NonExistentResourceError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "normals", missing.Name)
		}

		info, err := g.PassInfo("lighting")
		require.NoError(t, err)
		assert.Equal(t, []string{"albedo"}, info.InputImages)
		assert.Empty(t, info.OutputImages)
		assert.Empty(t, info.InputBuffers)
		assert.Empty(t, info.OutputBuffers)
	})

	t.Run("resource of the other kind does not resolve", func(t *testing.T) {
		g := New(nil)
		require.NoError(t, g.CreateBuffer(BufferInfo{Name: "lights", Size: 256}))
		p, err := g.AddPass("lighting")
		require.NoError(t, err)

		err = p.ColorInput(Existing("lights"))
		var missing NonExistentResourceError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, KindImage, missing.Kind)
		assert.EqualError(t, err, `image "lights" does not exist`)

		require.NoError(t, p.BufferInput(Existing("lights")))
	})

	t.Run("duplicate declaration is recorded once", func(t *testing.T) {
		g := New(nil)
		require.NoError(t, g.CreateTexture(DefaultTextureInfo("albedo")))
		p, err := g.AddPass("lighting")
		require.NoError(t, err)

		require.NoError(t, p.ColorInput(Existing("albedo")))
		require.NoError(t, p.ColorInput(Existing("albedo")))
		require.NoError(t, g.DeclareInput(p.ID(), KindImage, Existing("albedo")))

		info, err := g.PassInfo("lighting")
		require.NoError(t, err)
		assert.Equal(t, []string{"albedo"}, info.InputImages)
	})

	t.Run("same resource may be read and written", func(t *testing.T) {
		g := New(nil)
		require.NoError(t, g.CreateBuffer(BufferInfo{Name: "particles", Size: 1024}))
		p, err := g.AddPass("simulate")
		require.NoError(t, err)

		require.NoError(t, p.BufferInput(Existing("particles")))
		require.NoError(t, p.BufferOutput(Existing("particles")))

		info, err := g.PassInfo("simulate")
		require.NoError(t, err)
		assert.Equal(t, []string{"particles"}, info.InputBuffers)
		assert.Equal(t, []string{"particles"}, info.OutputBuffers)
	})
}

func TestDeclare_New(t *testing.T) {
	t.Run("creates the resource", func(t *testing.T) {
		g := New(nil)
		p, err := g.AddPass("gbuffer")
		require.NoError(t, err)

		info := TextureInfo{Name: "albedo", Size: SwapchainRelative(1, 1), Format: gputypes.TextureFormatRGBA8Unorm}
		require.NoError(t, p.ColorOutput(NewTexture(info)))
		require.NoError(t, p.BufferOutput(NewBuffer(BufferInfo{Name: "visibility", Size: 512})))

		r, ok := g.Resource("albedo")
		require.True(t, ok)
		assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, r.Format)
		assert.False(t, r.External)
		assert.True(t, g.Exists("visibility"))

		pi, err := g.PassInfo("gbuffer")
		require.NoError(t, err)
		assert.Equal(t, []string{"albedo"}, pi.OutputImages)
		assert.Equal(t, []string{"visibility"}, pi.OutputBuffers)
	})

	t.Run("forwards redundant resource", func(t *testing.T) {
		g := New(nil)
		require.NoError(t, g.CreateTexture(DefaultTextureInfo("albedo")))
		p, err := g.AddPass("gbuffer")
		require.NoError(t, err)

		err = p.ColorOutput(NewTexture(DefaultTextureInfo("albedo")))
		var redundant RedundantResourceError
		require.ErrorAs(t, err, &redundant)

		pi, err := g.PassInfo("gbuffer")
		require.NoError(t, err)
		assert.Empty(t, pi.OutputImages)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		g := New(nil)
		p, err := g.AddPass("gbuffer")
		require.NoError(t, err)

		err = p.BufferOutput(NewTexture(DefaultTextureInfo("albedo")))
		var mismatch KindMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, KindBuffer, mismatch.Want)
		assert.Equal(t, KindImage, mismatch.Got)
		assert.False(t, g.Exists("albedo"))
	})
}

func TestAttachmentInfo(t *testing.T) {
	assert.Equal(t, "a", Existing("a").Name())
	assert.False(t, Existing("a").IsNew())
	assert.True(t, NewTexture(DefaultTextureInfo("b")).IsNew())
	assert.True(t, NewBuffer(BufferInfo{Name: "c"}).IsNew())
	assert.Equal(t, "c", NewBuffer(BufferInfo{Name: "c"}).Name())
}

func TestDeclare_UnknownPassID(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.CreateTexture(DefaultTextureInfo("albedo")))

	var missing NonExistentPassError
	require.ErrorAs(t, g.DeclareInput(3, KindImage, Existing("albedo")), &missing)
	require.ErrorAs(t, g.SetCallback(-1, nil), &missing)
}

func TestStaleTracking(t *testing.T) {
	g := New(nil)
	assert.False(t, g.Stale())

	require.NoError(t, g.CreateTexture(DefaultTextureInfo("albedo")))
	assert.True(t, g.Stale())

	p, err := g.AddPass("gbuffer")
	require.NoError(t, err)
	require.NoError(t, p.ColorOutput(Existing("albedo")))
	require.NoError(t, g.Compile(t.Context()))
	assert.False(t, g.Stale())

	// Idempotent declarations and callbacks do not invalidate the plan.
	require.NoError(t, p.ColorOutput(Existing("albedo")))
	p.SetCallback(func(*RecordContext) error { return nil })
	assert.False(t, g.Stale())

	g.Resize(DefaultSwapchainWidth, DefaultSwapchainHeight)
	assert.False(t, g.Stale())
	g.Resize(1920, 1080)
	assert.True(t, g.Stale())
}
