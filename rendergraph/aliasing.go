package rendergraph

import (
	"cmp"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/Git-i/gpu-gems/internal/alias"
)

// aliasKey groups resources with identical declared layout. Two resources may
// share a slot only if their keys are equal.
type aliasKey struct {
	kind     ResourceKind
	size     AttachmentSize
	format   gputypes.TextureFormat
	byteSize uint64
}

func keyOf(r *resource) aliasKey {
	if r.kind == KindBuffer {
		return aliasKey{kind: KindBuffer, byteSize: r.byteSize}
	}
	return aliasKey{kind: KindImage, size: r.size.normalized(), format: r.format}
}

// lifetimes returns, for every resource, the window between its first and
// last use in the compiled steps. used[i] is false for resources no step
// touches.
func lifetimes(steps []step, n int) (windows []Window, used []bool) {
	windows = make([]Window, n)
	used = make([]bool, n)
	touch := func(rid ResourceID, pos int) {
		if !used[rid] {
			used[rid] = true
			windows[rid] = Window{First: pos, Last: pos}
			return
		}
		windows[rid].Last = pos
	}
	for pos, s := range steps {
		for _, rid := range s.outputs {
			touch(rid, pos)
		}
		for _, rid := range s.inputs {
			touch(rid, pos)
		}
	}
	return windows, used
}

// assignSlots computes the placement of every resource and the slots they
// occupy. Resources are placed in order of window start, then declaration.
func (g *Graph) assignSlots(steps []step) ([]Placement, []Slot) {
	windows, used := lifetimes(steps, len(g.resources))

	var reqs []alias.Request[aliasKey]
	var reqIDs []ResourceID
	for id, r := range g.resources {
		if !used[id] {
			continue
		}
		reqs = append(reqs, alias.Request[aliasKey]{
			Key:       keyOf(r),
			Window:    alias.Window{First: windows[id].First, Last: windows[id].Last},
			Exclusive: r.external,
		})
		reqIDs = append(reqIDs, ResourceID(id))
	}
	assigned := alias.Assign(reqs)

	placements := make([]Placement, len(g.resources))
	for id, r := range g.resources {
		placements[id] = Placement{
			Resource: r.name,
			Kind:     r.kind,
			Unused:   true,
			Slot:     NoSlot,
			External: r.external,
			Size:     r.size,
			Format:   r.format,
			ByteSize: r.byteSize,
		}
		if r.kind == KindImage {
			placements[id].Extent = r.size.Resolve(g.extent)
		}
	}

	slots := make([]Slot, alias.Count(assigned))
	// Walk in placement order so each slot lists occupants by first use.
	for _, i := range placementOrder(reqs) {
		id := reqIDs[i]
		sid := SlotID(assigned[i])
		p := &placements[id]
		p.Unused = false
		p.Window = windows[id]
		p.Slot = sid

		s := &slots[sid]
		if len(s.Resources) == 0 {
			*s = Slot{
				ID:       sid,
				Kind:     p.Kind,
				External: p.External,
				Size:     p.Size,
				Extent:   p.Extent,
				Format:   p.Format,
				ByteSize: p.ByteSize,
			}
		} else {
			p.AliasOf = s.Resources[0]
		}
		s.Resources = append(s.Resources, p.Resource)
	}
	return placements, slots
}

// placementOrder returns request indices sorted by window start, keeping
// declaration order among equal starts.
func placementOrder(reqs []alias.Request[aliasKey]) []int {
	order := make([]int, len(reqs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(reqs[a].Window.First, reqs[b].Window.First)
	})
	return order
}
