package rendergraph

import (
	"fmt"
	"strconv"

	"github.com/Git-i/gpu-gems/internal/dag"
)

// validate checks that every declared resource still resolves to a resource
// of the kind it was declared as. Declarations are checked when they are made,
// so a failure here means a pass list no longer matches the registry.
func (g *Graph) validate() error {
	for _, p := range g.passes {
		for _, kind := range []ResourceKind{KindImage, KindBuffer} {
			for _, output := range []bool{false, true} {
				for _, rid := range *p.list(kind, output) {
					if int(rid) >= 0 && int(rid) < len(g.resources) && g.resources[rid].kind == kind {
						continue
					}
					name := "#" + strconv.Itoa(int(rid))
					if int(rid) >= 0 && int(rid) < len(g.resources) {
						name = g.resources[rid].name
					}
					return fmt.Errorf("pass %q: %w", p.name, NonExistentResourceError{Name: name, Kind: kind})
				}
			}
		}
	}
	return nil
}

// buildDependencies derives the pass dependency graph. B depends on A when A
// writes a resource B reads, or when both write it and A was declared first.
// Passes that share no resource are never connected.
func (g *Graph) buildDependencies() (*dag.Graph, error) {
	producers := make([][]PassID, len(g.resources))
	consumers := make([][]PassID, len(g.resources))
	for id, p := range g.passes {
		for _, rid := range p.outputs() {
			producers[rid] = append(producers[rid], PassID(id))
		}
		for _, rid := range p.inputs() {
			consumers[rid] = append(consumers[rid], PassID(id))
		}
	}

	d := dag.New(len(g.passes))
	for rid := range g.resources {
		writers := producers[rid]
		for i, w := range writers {
			for _, r := range consumers[rid] {
				if r == w {
					continue
				}
				if err := d.AddEdge(int(w), int(r)); err != nil {
					return nil, err
				}
			}
			// writers is in declaration order.
			for _, later := range writers[i+1:] {
				if err := d.AddEdge(int(w), int(later)); err != nil {
					return nil, err
				}
			}
		}
	}
	return d, nil
}
