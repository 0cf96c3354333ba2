package alias

import (
	"cmp"
	"slices"
)

// Window is an inclusive range of positions in execution order.
type Window struct {
	First int
	Last  int
}

// Overlaps reports whether the two windows share at least one position.
func (w Window) Overlaps(o Window) bool {
	return w.First <= o.Last && o.First <= w.Last
}

// Request asks for a slot for one logical resource.
type Request[K comparable] struct {
	// Key groups requests that may share a slot; only equal keys alias.
	Key K
	// Window is the lifetime of the resource.
	Window Window
	// Exclusive requests never share their slot.
	Exclusive bool
}

// slot tracks the occupancy of one physical slot during assignment.
type slot[K comparable] struct {
	key       K
	exclusive bool
	// freeAfter is the Last position of the most recent occupant.
	freeAfter int
}

// Assign returns, for each request, the slot number it was given. Slot numbers
// start at zero and are allocated in placement order.
func Assign[K comparable](reqs []Request[K]) []int {
	order := make([]int, len(reqs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(reqs[a].Window.First, reqs[b].Window.First)
	})

	assigned := make([]int, len(reqs))
	var slots []slot[K]
	for _, i := range order {
		req := reqs[i]
		best := -1
		if !req.Exclusive {
			best = pickExpired(slots, req)
		}
		if best < 0 {
			slots = append(slots, slot[K]{key: req.Key, exclusive: req.Exclusive, freeAfter: req.Window.Last})
			assigned[i] = len(slots) - 1
			continue
		}
		slots[best].freeAfter = req.Window.Last
		assigned[i] = best
	}
	return assigned
}

// pickExpired returns the compatible slot whose occupant finished most
// recently before req starts, or -1. Ties go to the lowest slot number.
func pickExpired[K comparable](slots []slot[K], req Request[K]) int {
	best := -1
	for id, s := range slots {
		if s.exclusive || s.key != req.Key || s.freeAfter >= req.Window.First {
			continue
		}
		if best < 0 || s.freeAfter > slots[best].freeAfter {
			best = id
		}
	}
	return best
}

// Count returns the number of distinct slots in an assignment.
func Count(assigned []int) int {
	n := 0
	for _, s := range assigned {
		n = max(n, s+1)
	}
	return n
}
