package rendergraph

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Git-i/gpu-gems/internal/ctxlog"
)

// Binding is the physical backing a pass sees for one declared resource.
type Binding struct {
	Resource string
	Kind     ResourceKind
	Slot     SlotID
	External bool
	Extent   gputypes.Extent3D
	Format   gputypes.TextureFormat
	ByteSize uint64
	// Handle is the slot's allocator handle for internal resources and the
	// bound handle for external ones. It is nil until something binds it.
	Handle any
}

// RecordContext is handed to a pass callback. It is only valid for the
// duration of the callback.
type RecordContext struct {
	ctx      context.Context
	pass     string
	commands any
	inputs   []Binding
	outputs  []Binding
}

// Context returns the context Execute was called with.
func (rc *RecordContext) Context() context.Context { return rc.ctx }

// Pass returns the name of the pass being recorded.
func (rc *RecordContext) Pass() string { return rc.pass }

// Commands returns the command-recording value passed to Execute. The graph
// never inspects it.
func (rc *RecordContext) Commands() any { return rc.commands }

// Inputs returns the bindings of the pass's inputs, images first.
func (rc *RecordContext) Inputs() []Binding { return append([]Binding(nil), rc.inputs...) }

// Outputs returns the bindings of the pass's outputs, images first.
func (rc *RecordContext) Outputs() []Binding { return append([]Binding(nil), rc.outputs...) }

// Image returns the binding of a declared image.
func (rc *RecordContext) Image(name string) (Binding, error) {
	return rc.find(name, KindImage)
}

// Buffer returns the binding of a declared buffer.
func (rc *RecordContext) Buffer(name string) (Binding, error) {
	return rc.find(name, KindBuffer)
}

func (rc *RecordContext) find(name string, kind ResourceKind) (Binding, error) {
	for _, list := range [][]Binding{rc.outputs, rc.inputs} {
		for _, b := range list {
			if b.Resource == name && b.Kind == kind {
				return b, nil
			}
		}
	}
	return Binding{}, NonExistentResourceError{Name: name, Kind: kind}
}

// Execute runs every pass of the last compiled plan once, in compiled order,
// handing each callback its resolved bindings and the commands value. A stale
// graph executes its last good plan. The first callback error ends the frame.
func (g *Graph) Execute(ctx context.Context, commands any) error {
	if g.executing {
		return ExecutionInProgressError{}
	}
	if g.plan == nil {
		return NotCompiledError{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := ctxlog.FromContext(ctx).With("component", "rendergraph")
	if g.stale {
		logger.Warn("Executing a stale render graph; recompile to apply pending changes.")
	}

	g.executing = true
	defer func() { g.executing = false }()

	plan := g.plan
	for pos, s := range plan.steps {
		p := g.passes[s.pass]
		rc := &RecordContext{
			ctx:      ctx,
			pass:     p.name,
			commands: commands,
			inputs:   g.bindings(plan, s.inputs),
			outputs:  g.bindings(plan, s.outputs),
		}
		logger.Debug("Recording pass.", "position", pos, "pass", p.name)
		if err := p.callback(rc); err != nil {
			logger.Error("Pass callback failed.", "pass", p.name, "error", err)
			return PassFailedError{Pass: p.name, Err: err}
		}
	}
	logger.Debug("Frame recorded.", "passes", len(plan.steps))
	return nil
}

func (g *Graph) bindings(plan *Plan, ids []ResourceID) []Binding {
	out := make([]Binding, len(ids))
	for i, rid := range ids {
		pl := plan.placements[rid]
		b := Binding{
			Resource: pl.Resource,
			Kind:     pl.Kind,
			Slot:     pl.Slot,
			External: pl.External,
			Extent:   pl.Extent,
			Format:   pl.Format,
			ByteSize: pl.ByteSize,
		}
		if pl.External {
			b.Handle = g.resources[rid].handle
		} else {
			b.Handle = plan.SlotHandle(pl.Slot)
		}
		out[i] = b
	}
	return out
}

// String is for debugging.
func (b Binding) String() string {
	if b.Kind == KindBuffer {
		return fmt.Sprintf("%s %q slot=%d bytes=%d", b.Kind, b.Resource, b.Slot, b.ByteSize)
	}
	return fmt.Sprintf("%s %q slot=%d %dx%d %s", b.Kind, b.Resource, b.Slot, b.Extent.Width, b.Extent.Height, FormatName(b.Format))
}
