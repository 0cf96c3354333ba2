package rendergraph

import (
	"fmt"
	"slices"
)

// PassID identifies a pass by declaration order.
type PassID int

// Callback records a pass's GPU work. It runs once per Execute, in compiled
// order, and must not declare resources or passes on the graph.
type Callback func(rc *RecordContext) error

func noopCallback(*RecordContext) error { return nil }

// pass is the registry entry for one render pass. It refers to resources by
// ID only and holds no reference to the graph.
type pass struct {
	name string

	inputImages   []ResourceID
	outputImages  []ResourceID
	inputBuffers  []ResourceID
	outputBuffers []ResourceID

	callback Callback

	// dependencies is derived by Compile.
	dependencies []PassID
}

func (p *pass) list(kind ResourceKind, output bool) *[]ResourceID {
	switch {
	case kind == KindImage && !output:
		return &p.inputImages
	case kind == KindImage:
		return &p.outputImages
	case !output:
		return &p.inputBuffers
	default:
		return &p.outputBuffers
	}
}

func (p *pass) inputs() []ResourceID {
	return append(slices.Clone(p.inputImages), p.inputBuffers...)
}

func (p *pass) outputs() []ResourceID {
	return append(slices.Clone(p.outputImages), p.outputBuffers...)
}

// AttachmentInfo describes a resource used by a pass: either a reference to
// an existing resource or the creation info of a new one.
type AttachmentInfo struct {
	name    string
	texture *TextureInfo
	buffer  *BufferInfo
}

// Existing references a resource that must already be registered.
func Existing(name string) AttachmentInfo {
	return AttachmentInfo{name: name}
}

// NewTexture creates the texture as part of the declaration.
func NewTexture(info TextureInfo) AttachmentInfo {
	return AttachmentInfo{name: info.Name, texture: &info}
}

// NewBuffer creates the buffer as part of the declaration.
func NewBuffer(info BufferInfo) AttachmentInfo {
	return AttachmentInfo{name: info.Name, buffer: &info}
}

// Name returns the referenced or created resource name.
func (a AttachmentInfo) Name() string { return a.name }

// IsNew reports whether the declaration creates its resource.
func (a AttachmentInfo) IsNew() bool { return a.texture != nil || a.buffer != nil }

// KindMismatchError means a declaration's kind disagrees with the kind of the
// resource it creates.
type KindMismatchError struct {
	Name string
	Want ResourceKind
	Got  ResourceKind
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("resource %q is declared as %s but created as %s", e.Name, e.Want, e.Got)
}

// PassBuilder is a short-lived handle for declaring one pass's resource
// usage. It forwards every call to the graph by pass ID.
type PassBuilder struct {
	g  *Graph
	id PassID
}

// ID returns the pass ID.
func (b *PassBuilder) ID() PassID { return b.id }

// Name returns the pass name.
func (b *PassBuilder) Name() string { return b.g.passes[b.id].name }

// Input declares a resource the pass reads.
func (b *PassBuilder) Input(kind ResourceKind, info AttachmentInfo) error {
	return b.g.DeclareInput(b.id, kind, info)
}

// Output declares a resource the pass writes.
func (b *PassBuilder) Output(kind ResourceKind, info AttachmentInfo) error {
	return b.g.DeclareOutput(b.id, kind, info)
}

// ColorInput declares an image input.
func (b *PassBuilder) ColorInput(info AttachmentInfo) error {
	return b.Input(KindImage, info)
}

// ColorOutput declares an image output.
func (b *PassBuilder) ColorOutput(info AttachmentInfo) error {
	return b.Output(KindImage, info)
}

// BufferInput declares a buffer input.
func (b *PassBuilder) BufferInput(info AttachmentInfo) error {
	return b.Input(KindBuffer, info)
}

// BufferOutput declares a buffer output.
func (b *PassBuilder) BufferOutput(info AttachmentInfo) error {
	return b.Output(KindBuffer, info)
}

// SetCallback replaces the pass's recording callback.
func (b *PassBuilder) SetCallback(fn Callback) {
	// The ID came from the graph, so this cannot fail.
	_ = b.g.SetCallback(b.id, fn)
}

// AddPass registers an empty pass with a no-op callback.
func (g *Graph) AddPass(name string) (*PassBuilder, error) {
	if _, exists := g.passIndex[name]; exists {
		return nil, RedundantPassError{Name: name}
	}
	id := PassID(len(g.passes))
	g.passes = append(g.passes, &pass{name: name, callback: noopCallback})
	g.passIndex[name] = id
	g.stale = true
	return &PassBuilder{g: g, id: id}, nil
}

// Pass returns a builder for an already registered pass.
func (g *Graph) Pass(name string) (*PassBuilder, error) {
	id, ok := g.passIndex[name]
	if !ok {
		return nil, NonExistentPassError{Name: name}
	}
	return &PassBuilder{g: g, id: id}, nil
}

// DeclareInput records pass id as a consumer of the resource in info.
func (g *Graph) DeclareInput(id PassID, kind ResourceKind, info AttachmentInfo) error {
	return g.declare(id, kind, info, false)
}

// DeclareOutput records pass id as a producer of the resource in info.
func (g *Graph) DeclareOutput(id PassID, kind ResourceKind, info AttachmentInfo) error {
	return g.declare(id, kind, info, true)
}

// SetCallback replaces the recording callback of pass id. A nil callback
// restores the no-op default.
func (g *Graph) SetCallback(id PassID, fn Callback) error {
	p, err := g.passByID(id)
	if err != nil {
		return err
	}
	if fn == nil {
		fn = noopCallback
	}
	p.callback = fn
	return nil
}

func (g *Graph) declare(id PassID, kind ResourceKind, info AttachmentInfo, output bool) error {
	p, err := g.passByID(id)
	if err != nil {
		return err
	}

	var rid ResourceID
	switch {
	case info.texture != nil:
		if kind != KindImage {
			return KindMismatchError{Name: info.name, Want: kind, Got: KindImage}
		}
		rid, err = g.addResource(&resource{name: info.name, kind: KindImage, size: info.texture.Size.normalized(), format: info.texture.Format})
	case info.buffer != nil:
		if kind != KindBuffer {
			return KindMismatchError{Name: info.name, Want: kind, Got: KindBuffer}
		}
		rid, err = g.addResource(&resource{name: info.name, kind: KindBuffer, byteSize: info.buffer.Size})
	default:
		rid, err = g.lookup(info.name, kind)
	}
	if err != nil {
		return err
	}

	list := p.list(kind, output)
	if slices.Contains(*list, rid) {
		return nil
	}
	*list = append(*list, rid)
	g.stale = true
	return nil
}

func (g *Graph) passByID(id PassID) (*pass, error) {
	if id < 0 || int(id) >= len(g.passes) {
		return nil, NonExistentPassError{Name: fmt.Sprintf("#%d", id)}
	}
	return g.passes[id], nil
}

// PassInfo is a read-only view of one pass's declarations.
type PassInfo struct {
	ID            PassID
	Name          string
	InputImages   []string
	OutputImages  []string
	InputBuffers  []string
	OutputBuffers []string
	// Dependencies are the passes this pass runs after, as derived by the
	// last successful Compile.
	Dependencies []string
}

// PassInfo returns the declarations of the named pass.
func (g *Graph) PassInfo(name string) (PassInfo, error) {
	id, ok := g.passIndex[name]
	if !ok {
		return PassInfo{}, NonExistentPassError{Name: name}
	}
	p := g.passes[id]
	deps := make([]string, len(p.dependencies))
	for i, d := range p.dependencies {
		deps[i] = g.passes[d].name
	}
	return PassInfo{
		ID:            id,
		Name:          p.name,
		InputImages:   g.resourceNames(p.inputImages),
		OutputImages:  g.resourceNames(p.outputImages),
		InputBuffers:  g.resourceNames(p.inputBuffers),
		OutputBuffers: g.resourceNames(p.outputBuffers),
		Dependencies:  deps,
	}, nil
}

// Passes returns all pass names in declaration order.
func (g *Graph) Passes() []string {
	names := make([]string, len(g.passes))
	for i, p := range g.passes {
		names[i] = p.name
	}
	return names
}

func (g *Graph) resourceNames(ids []ResourceID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.resources[id].name
	}
	return names
}
