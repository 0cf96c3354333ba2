package dag

import (
	"fmt"
	"slices"
)

// New creates a graph with n nodes and no edges.
func New(n int) *Graph {
	return &Graph{
		nodes: make([]node, n),
	}
}

// AddEdge creates a directed edge from the `from` node to the `to` node.
// This signifies that `to` has a dependency on `from`. Adding an edge that
// already exists is a no-op. An error is returned if either node does not
// exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(from, to int) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %d -> %d", from, from)
	}
	if !g.valid(from) {
		return fmt.Errorf("source node not found: %d", from)
	}
	if !g.valid(to) {
		return fmt.Errorf("destination node not found: %d", to)
	}

	g.nodes[to].deps = insertSorted(g.nodes[to].deps, from)
	g.nodes[from].dependents = insertSorted(g.nodes[from].dependents, to)
	return nil
}

// Dependencies returns the nodes the given node depends on, in ascending order.
func (g *Graph) Dependencies(id int) ([]int, error) {
	if !g.valid(id) {
		return nil, fmt.Errorf("node not found: %d", id)
	}
	return slices.Clone(g.nodes[id].deps), nil
}

// Edges returns every edge ordered by (From, To).
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for from, n := range g.nodes {
		for _, to := range n.dependents {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.nodes)
}

// insertSorted adds v to the sorted slice s unless it is already present.
func insertSorted(s []int, v int) []int {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s
	}
	return slices.Insert(s, i, v)
}
