package config

// Attachment kinds used by Attachment.Kind.
const (
	KindImage  = "image"
	KindBuffer = "buffer"
)

// Model is the unified, format-agnostic representation of one frame graph.
// Slices keep declaration order, which the graph uses for tie-breaks.
type Model struct {
	// Swapchain is nil when no description sets a reference extent.
	Swapchain *Swapchain
	Textures  []*Texture
	Buffers   []*Buffer
	Passes    []*Pass
}

// Swapchain is the reference extent for swapchain-relative sizes.
type Swapchain struct {
	Width  uint32
	Height uint32
}

// Size is a texture size: fixed pixels, or a scale of the swapchain extent
// when Relative is set.
type Size struct {
	Relative bool
	Width    uint32
	Height   uint32
	ScaleX   float32
	ScaleY   float32
}

// Texture is a `texture` block, or the creation part of an image attachment.
type Texture struct {
	Name string
	// Size is nil when the description leaves it out.
	Size *Size
	// Format is a WebGPU format name; empty means undefined, or the surface
	// format for external textures.
	Format   string
	External bool
}

// Buffer is a `buffer` block, or the creation part of a buffer attachment.
type Buffer struct {
	Name     string
	Size     uint64
	External bool
}

// Pass is a `pass` block.
type Pass struct {
	Name string
	// Handler names the registered callback that records the pass.
	Handler string
	Inputs  []*Attachment
	Outputs []*Attachment
}

// Attachment is one `input` or `output` block of a pass. Exactly one of
// Texture and Buffer is set when the attachment creates its resource.
type Attachment struct {
	Kind    string
	Name    string
	Texture *Texture
	Buffer  *Buffer
}

// IsNew reports whether the attachment creates its resource.
func (a *Attachment) IsNew() bool {
	return a.Texture != nil || a.Buffer != nil
}

// Merge appends other's declarations to m. A swapchain in other replaces m's.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Swapchain != nil {
		m.Swapchain = other.Swapchain
	}
	m.Textures = append(m.Textures, other.Textures...)
	m.Buffers = append(m.Buffers, other.Buffers...)
	m.Passes = append(m.Passes, other.Passes...)
}
