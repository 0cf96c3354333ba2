package app

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// HeadlessDevice is a device capability without a GPU behind it. The graph
// only stores the device; the surface format fills in external textures that
// leave their format out.
type HeadlessDevice struct {
	Format gputypes.TextureFormat
}

var _ gpucontext.DeviceProvider = HeadlessDevice{}

func (HeadlessDevice) Device() gpucontext.Device   { return nil }
func (HeadlessDevice) Queue() gpucontext.Queue     { return nil }
func (HeadlessDevice) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter; there is no GPU to describe.
func (HeadlessDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "headless", Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns Format, or BGRA8Unorm when Format is undefined.
func (d HeadlessDevice) SurfaceFormat() gputypes.TextureFormat {
	if d.Format == gputypes.TextureFormatUndefined {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return d.Format
}
