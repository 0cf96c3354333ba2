package rendergraph

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Default reference extent used until Resize or WithSwapchainExtent says otherwise.
const (
	DefaultSwapchainWidth  = 1280
	DefaultSwapchainHeight = 720
)

// Graph is a frame graph: a registry of logical resources, a registry of
// passes declaring how they use those resources, and the last compiled plan.
//
// A Graph is owned by one goroutine. Declaration, Compile and Execute must not
// be called concurrently.
type Graph struct {
	// device parameterizes later physical allocation; the graph never calls it.
	device gpucontext.DeviceProvider
	// extent is the reference size for swapchain-relative textures.
	extent gputypes.Extent3D

	resources     []*resource
	resourceIndex map[string]ResourceID

	passes    []*pass
	passIndex map[string]PassID

	// plan is the last successfully compiled plan, or nil.
	plan *Plan
	// stale is set whenever declarations change after the last compile.
	stale bool
	// executing is set while Execute runs pass callbacks.
	executing bool
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithSwapchainExtent sets the initial reference extent for swapchain-relative sizes.
func WithSwapchainExtent(width, height uint32) Option {
	return func(g *Graph) {
		g.extent = gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	}
}

// New creates an empty graph bound to a device capability. The device may be
// nil for headless use; the graph only stores it.
func New(device gpucontext.DeviceProvider, opts ...Option) *Graph {
	g := &Graph{
		device:        device,
		extent:        gputypes.Extent3D{Width: DefaultSwapchainWidth, Height: DefaultSwapchainHeight, DepthOrArrayLayers: 1},
		resourceIndex: make(map[string]ResourceID),
		passIndex:     make(map[string]PassID),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Device returns the device capability the graph was created with.
func (g *Graph) Device() gpucontext.DeviceProvider {
	return g.device
}

// SwapchainExtent returns the current reference extent.
func (g *Graph) SwapchainExtent() gputypes.Extent3D {
	return g.extent
}

// Resize updates the reference extent after a swapchain resize. The graph
// becomes stale; swapchain-relative sizes are re-resolved by the next Compile.
func (g *Graph) Resize(width, height uint32) {
	next := gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	if next == g.extent {
		return
	}
	g.extent = next
	g.stale = true
}

// Plan returns the last successfully compiled plan.
func (g *Graph) Plan() (*Plan, bool) {
	return g.plan, g.plan != nil
}

// Compiled reports whether at least one Compile has succeeded.
func (g *Graph) Compiled() bool {
	return g.plan != nil
}

// Stale reports whether declarations or the reference extent changed since
// the last successful Compile. A graph that was never compiled is stale once
// anything has been declared.
func (g *Graph) Stale() bool {
	return g.stale
}
