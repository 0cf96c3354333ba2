package dag

import (
	"container/heap"
	"fmt"
	"strconv"
	"strings"
)

// CycleError means the graph has no topological order. Nodes lists one cycle
// in edge direction and repeats its first node at the end, e.g. [1 3 1].
type CycleError struct {
	Nodes []int
}

func (e *CycleError) Error() string {
	if len(e.Nodes) == 0 {
		return "cycle detected"
	}
	parts := make([]string, len(e.Nodes))
	for i, n := range e.Nodes {
		parts[i] = strconv.Itoa(n)
	}
	return "cycle detected: " + strings.Join(parts, " -> ")
}

// TopologicalSort orders all nodes so that every node comes after the nodes it
// depends on. It uses Kahn's algorithm and, whenever several nodes are ready at
// once, emits the lowest-numbered one first, so identical graphs always produce
// identical orders.
func (g *Graph) TopologicalSort() ([]int, error) {
	indegree := make([]int, len(g.nodes))
	ready := &minHeap{}
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
		if indegree[id] == 0 {
			heap.Push(ready, id)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(int)
		order = append(order, id)
		for _, next := range g.nodes[id].dependents {
			indegree[next]--
			if indegree[next] == 0 {
				heap.Push(ready, next)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, &CycleError{Nodes: g.findCycle(indegree)}
	}
	return order, nil
}

// findCycle extracts one concrete cycle from the nodes Kahn's algorithm could
// not release. Every such node still has a remaining predecessor, so walking
// predecessors from any of them must revisit a node.
func (g *Graph) findCycle(indegree []int) []int {
	start := -1
	for id, d := range indegree {
		if d > 0 {
			start = id
			break
		}
	}
	if start < 0 {
		return nil
	}

	seenAt := make(map[int]int)
	var walk []int
	cur := start
	for {
		if pos, seen := seenAt[cur]; seen {
			walk = walk[pos:]
			break
		}
		seenAt[cur] = len(walk)
		walk = append(walk, cur)

		next := -1
		for _, dep := range g.nodes[cur].deps {
			if indegree[dep] > 0 {
				next = dep
				break
			}
		}
		if next < 0 {
			// Unreachable for a consistent indegree table.
			panic(fmt.Sprintf("dag: node %d is blocked without a blocked predecessor", cur))
		}
		cur = next
	}

	// walk follows predecessors; reverse it to follow edges, starting from
	// the lowest-numbered node of the cycle.
	lowest := 0
	for i, id := range walk {
		if id < walk[lowest] {
			lowest = i
		}
	}
	cycle := make([]int, 0, len(walk)+1)
	for i := 0; i < len(walk); i++ {
		cycle = append(cycle, walk[(lowest-i+len(walk))%len(walk)])
	}
	return append(cycle, cycle[0])
}

// minHeap is a container/heap of node numbers, smallest first.
type minHeap []int

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
