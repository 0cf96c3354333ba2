package app

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
)

func TestHeadlessDevice(t *testing.T) {
	var provider gpucontext.DeviceProvider = HeadlessDevice{}

	assert.Nil(t, provider.Device())
	assert.Nil(t, provider.Queue())
	assert.Nil(t, provider.Adapter())
	assert.Equal(t, gpucontext.AdapterInfo{Name: "headless", Type: gpucontext.AdapterTypeUnknown}, provider.AdapterInfo())
	assert.Equal(t, gputypes.TextureFormatBGRA8Unorm, provider.SurfaceFormat())

	provider = HeadlessDevice{Format: gputypes.TextureFormatRGBA8Unorm}
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, provider.SurfaceFormat())
}
