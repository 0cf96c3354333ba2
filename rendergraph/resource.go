package rendergraph

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

// ResourceKind distinguishes images from buffers.
type ResourceKind uint8

const (
	KindImage ResourceKind = iota
	KindBuffer
)

func (k ResourceKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("ResourceKind(%d)", uint8(k))
	}
}

// SizeMode selects how an AttachmentSize is interpreted.
type SizeMode uint8

const (
	// SizeAbsolute is a fixed width and height in pixels.
	SizeAbsolute SizeMode = iota
	// SizeSwapchainRelative scales the graph's reference swapchain extent.
	SizeSwapchainRelative
)

// AttachmentSize is the declared size of a texture. Build one with Absolute or
// SwapchainRelative.
type AttachmentSize struct {
	Mode   SizeMode
	Width  uint32
	Height uint32
	ScaleX float32
	ScaleY float32
}

// Absolute returns a fixed-size descriptor.
func Absolute(width, height uint32) AttachmentSize {
	return AttachmentSize{Mode: SizeAbsolute, Width: width, Height: height}
}

// SwapchainRelative returns a descriptor scaled from the swapchain extent.
func SwapchainRelative(scaleX, scaleY float32) AttachmentSize {
	return AttachmentSize{Mode: SizeSwapchainRelative, ScaleX: scaleX, ScaleY: scaleY}
}

// DefaultAttachmentSize is a full-resolution swapchain-relative size.
func DefaultAttachmentSize() AttachmentSize {
	return SwapchainRelative(1, 1)
}

// normalized clears the fields the mode does not use, so two descriptors
// compare equal exactly when they describe the same size.
func (s AttachmentSize) normalized() AttachmentSize {
	if s.Mode == SizeSwapchainRelative {
		return SwapchainRelative(s.ScaleX, s.ScaleY)
	}
	return Absolute(s.Width, s.Height)
}

// Equal reports whether both descriptors declare the same size.
func (s AttachmentSize) Equal(o AttachmentSize) bool {
	return s.normalized() == o.normalized()
}

// Resolve turns the descriptor into absolute dimensions. Relative sizes are
// rounded to the nearest pixel and never resolve below 1x1.
func (s AttachmentSize) Resolve(ref gputypes.Extent3D) gputypes.Extent3D {
	if s.Mode != SizeSwapchainRelative {
		return gputypes.Extent3D{Width: s.Width, Height: s.Height, DepthOrArrayLayers: 1}
	}
	return gputypes.Extent3D{
		Width:              scaleDim(ref.Width, s.ScaleX),
		Height:             scaleDim(ref.Height, s.ScaleY),
		DepthOrArrayLayers: 1,
	}
}

func scaleDim(ref uint32, scale float32) uint32 {
	v := math.Round(float64(ref) * float64(scale))
	if v < 1 {
		return 1
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func (s AttachmentSize) String() string {
	if s.Mode == SizeSwapchainRelative {
		return fmt.Sprintf("swapchain_relative(%g, %g)", s.ScaleX, s.ScaleY)
	}
	return fmt.Sprintf("absolute(%d, %d)", s.Width, s.Height)
}

// TextureInfo is the creation info for a texture.
type TextureInfo struct {
	Name   string
	Size   AttachmentSize
	Format gputypes.TextureFormat
}

// DefaultTextureInfo returns a full-resolution, format-less texture info.
func DefaultTextureInfo(name string) TextureInfo {
	return TextureInfo{Name: name, Size: DefaultAttachmentSize(), Format: gputypes.TextureFormatUndefined}
}

// BufferInfo is the creation info for a buffer.
type BufferInfo struct {
	Name string
	Size uint64
}

// ResourceID identifies a resource by declaration order.
type ResourceID int

// Resource is a read-only snapshot of a logical resource.
type Resource struct {
	ID   ResourceID
	Name string
	Kind ResourceKind

	// Size and Format are set for images.
	Size   AttachmentSize
	Format gputypes.TextureFormat

	// ByteSize is set for buffers.
	ByteSize uint64

	// External resources wrap backing supplied from outside the graph and
	// never alias.
	External bool
	// Handle is the bound physical resource of an external resource, or nil.
	Handle any
}

// Aliasable reports whether two resources could share physical backing given
// disjoint lifetimes: same kind, identical declared layout, neither external.
func Aliasable(a, b Resource) bool {
	if a.External || b.External || a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindBuffer {
		return a.ByteSize == b.ByteSize
	}
	return a.Format == b.Format && a.Size.Equal(b.Size)
}

// resource is the registry entry behind Resource.
type resource struct {
	name     string
	kind     ResourceKind
	size     AttachmentSize
	format   gputypes.TextureFormat
	byteSize uint64
	external bool
	handle   any
}

func (r *resource) snapshot(id ResourceID) Resource {
	return Resource{
		ID:       id,
		Name:     r.name,
		Kind:     r.kind,
		Size:     r.size,
		Format:   r.format,
		ByteSize: r.byteSize,
		External: r.external,
		Handle:   r.handle,
	}
}

// CreateTexture registers a new internal texture.
func (g *Graph) CreateTexture(info TextureInfo) error {
	_, err := g.addResource(&resource{name: info.Name, kind: KindImage, size: info.Size.normalized(), format: info.Format})
	return err
}

// CreateBuffer registers a new internal buffer.
func (g *Graph) CreateBuffer(info BufferInfo) error {
	_, err := g.addResource(&resource{name: info.Name, kind: KindBuffer, byteSize: info.Size})
	return err
}

// ImportTexture registers an external texture, such as a presentable image,
// bound to handle.
func (g *Graph) ImportTexture(info TextureInfo, handle any) error {
	_, err := g.addResource(&resource{
		name:     info.Name,
		kind:     KindImage,
		size:     info.Size.normalized(),
		format:   info.Format,
		external: true,
		handle:   handle,
	})
	return err
}

// ImportBuffer registers an external buffer bound to handle.
func (g *Graph) ImportBuffer(info BufferInfo, handle any) error {
	_, err := g.addResource(&resource{name: info.Name, kind: KindBuffer, byteSize: info.Size, external: true, handle: handle})
	return err
}

// BindExternal replaces the handle of an external resource, e.g. with the
// swapchain image acquired for the next frame. It must not be called from a
// pass callback.
func (g *Graph) BindExternal(name string, handle any) error {
	if g.executing {
		return ExecutionInProgressError{}
	}
	id, ok := g.resourceIndex[name]
	if !ok || !g.resources[id].external {
		return NonExistentResourceError{Name: name, Kind: g.kindOf(name)}
	}
	g.resources[id].handle = handle
	return nil
}

// Resource returns a snapshot of the named resource.
func (g *Graph) Resource(name string) (Resource, bool) {
	id, ok := g.resourceIndex[name]
	if !ok {
		return Resource{}, false
	}
	return g.resources[id].snapshot(id), true
}

// Exists reports whether a resource with the given name is registered.
func (g *Graph) Exists(name string) bool {
	_, ok := g.resourceIndex[name]
	return ok
}

// Resources returns snapshots of every resource in declaration order.
func (g *Graph) Resources() []Resource {
	out := make([]Resource, len(g.resources))
	for i, r := range g.resources {
		out[i] = r.snapshot(ResourceID(i))
	}
	return out
}

func (g *Graph) addResource(r *resource) (ResourceID, error) {
	if _, exists := g.resourceIndex[r.name]; exists {
		return 0, RedundantResourceError{Name: r.name}
	}
	id := ResourceID(len(g.resources))
	g.resources = append(g.resources, r)
	g.resourceIndex[r.name] = id
	g.stale = true
	return id, nil
}

// lookup resolves a resource of the given kind by name.
func (g *Graph) lookup(name string, kind ResourceKind) (ResourceID, error) {
	id, ok := g.resourceIndex[name]
	if !ok || g.resources[id].kind != kind {
		return 0, NonExistentResourceError{Name: name, Kind: kind}
	}
	return id, nil
}

// kindOf is used for error messages only; unknown names report as images.
func (g *Graph) kindOf(name string) ResourceKind {
	if id, ok := g.resourceIndex[name]; ok {
		return g.resources[id].kind
	}
	return KindImage
}
