package rendergraph

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
)

// SlotID identifies a physical slot in a compiled plan.
type SlotID int

// NoSlot marks a resource no scheduled pass touches.
const NoSlot SlotID = -1

// Window is a resource's lifetime as inclusive positions in the compiled order.
type Window struct {
	First int
	Last  int
}

// Edge is a derived pass dependency: To runs after From.
type Edge struct {
	From string
	To   string
}

// Placement is the aliasing decision for one logical resource.
type Placement struct {
	Resource string
	Kind     ResourceKind
	// Window is meaningless when Unused is set.
	Window Window
	Unused bool
	Slot   SlotID
	// AliasOf names the resource whose backing this one shares, or is empty
	// when the resource is the first occupant of its slot.
	AliasOf  string
	External bool

	Size     AttachmentSize
	Extent   gputypes.Extent3D
	Format   gputypes.TextureFormat
	ByteSize uint64
}

// Slot describes one physical allocation hint. Every resource in Resources
// has the same layout and a disjoint lifetime.
type Slot struct {
	ID       SlotID
	Kind     ResourceKind
	External bool
	Size     AttachmentSize
	Extent   gputypes.Extent3D
	Format   gputypes.TextureFormat
	ByteSize uint64
	// Resources lists the occupants in order of first use.
	Resources []string
}

// step is one scheduled pass with its declarations frozen at compile time.
type step struct {
	pass    PassID
	inputs  []ResourceID
	outputs []ResourceID
}

// Plan is the result of a successful Compile. It is immutable except for
// slot handles bound through Graph.BindSlot.
type Plan struct {
	extent     gputypes.Extent3D
	steps      []step
	order      []string
	edges      []Edge
	placements []Placement // indexed by ResourceID
	byName     map[string]int
	slots      []Slot
	handles    []any // indexed by SlotID
}

// Order returns pass names in execution order.
func (p *Plan) Order() []string {
	return slices.Clone(p.order)
}

// Edges returns the derived pass dependencies ordered by declaration index.
func (p *Plan) Edges() []Edge {
	return slices.Clone(p.edges)
}

// Placements returns the aliasing decision for every resource known at
// compile time, in declaration order.
func (p *Plan) Placements() []Placement {
	return slices.Clone(p.placements)
}

// Placement returns the aliasing decision for one resource.
func (p *Plan) Placement(name string) (Placement, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Placement{}, false
	}
	return p.placements[i], true
}

// Slots returns the physical slots in slot order.
func (p *Plan) Slots() []Slot {
	out := make([]Slot, len(p.slots))
	for i, s := range p.slots {
		s.Resources = slices.Clone(s.Resources)
		out[i] = s
	}
	return out
}

// Extent returns the reference swapchain extent the plan was resolved with.
func (p *Plan) Extent() gputypes.Extent3D {
	return p.extent
}

// SlotHandle returns the backing bound to an internal slot, or nil.
func (p *Plan) SlotHandle(id SlotID) any {
	if id < 0 || int(id) >= len(p.handles) {
		return nil
	}
	return p.handles[id]
}

// InvalidSlotError means a slot ID is out of range or names an external slot,
// whose backing is bound through BindExternal instead.
type InvalidSlotError struct {
	Slot SlotID
}

func (e InvalidSlotError) Error() string {
	return fmt.Sprintf("slot %d cannot be bound", e.Slot)
}

// ExecutionInProgressError means a binding was attempted from inside a pass
// callback.
type ExecutionInProgressError struct{}

func (ExecutionInProgressError) Error() string {
	return "render graph is executing"
}

// BindSlot attaches an allocator-supplied backing to an internal slot of the
// current plan. Bindings last until the next successful Compile.
func (g *Graph) BindSlot(id SlotID, handle any) error {
	if g.executing {
		return ExecutionInProgressError{}
	}
	if g.plan == nil {
		return NotCompiledError{}
	}
	if id < 0 || int(id) >= len(g.plan.slots) || g.plan.slots[id].External {
		return InvalidSlotError{Slot: id}
	}
	g.plan.handles[id] = handle
	return nil
}
