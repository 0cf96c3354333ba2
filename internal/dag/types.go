package dag

// Graph is a directed graph over nodes 0..n-1, where n was passed to New. An
// edge from -> to means "to depends on from". Graph is not safe for
// concurrent use.
type Graph struct {
	// nodes is indexed by node number.
	nodes []node
}

// node holds both directions of adjacency. Both slices are kept sorted and
// free of duplicates.
type node struct {
	// deps holds the nodes this node depends on (predecessors).
	deps []int
	// dependents holds the nodes that depend on this node (successors).
	dependents []int
}

// Edge is a single dependency: To runs after From.
type Edge struct {
	From int
	To   int
}
