package rendergraph

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Git-i/gpu-gems/internal/ctxlog"
	"github.com/Git-i/gpu-gems/internal/dag"
)

// Compile validates the declarations, orders the passes, analyses resource
// lifetimes and stores the resulting plan. On failure the previous plan, if
// any, stays in place and the graph stays stale. Compiling unchanged
// declarations yields an equal plan.
func (g *Graph) Compile(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "rendergraph")
	if g.executing {
		return ExecutionInProgressError{}
	}
	logger.Debug("Compiling render graph.", "passes", len(g.passes), "resources", len(g.resources))

	if err := g.validate(); err != nil {
		return fmt.Errorf("validating passes: %w", err)
	}

	deps, err := g.buildDependencies()
	if err != nil {
		return fmt.Errorf("building dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "edges", len(deps.Edges()))

	sorted, err := deps.TopologicalSort()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return CyclicDependencyError{Path: g.passNames(cycle.Nodes)}
		}
		return fmt.Errorf("ordering passes: %w", err)
	}

	steps := make([]step, len(sorted))
	order := make([]string, len(sorted))
	for pos, id := range sorted {
		p := g.passes[id]
		steps[pos] = step{pass: PassID(id), inputs: p.inputs(), outputs: p.outputs()}
		order[pos] = p.name
		logger.Debug("Scheduled pass.", "position", pos, "pass", p.name)
	}

	placements, slots := g.assignSlots(steps)

	byName := make(map[string]int, len(placements))
	for i, pl := range placements {
		byName[pl.Resource] = i
	}

	edges := make([]Edge, 0)
	for _, e := range deps.Edges() {
		edges = append(edges, Edge{From: g.passes[e.From].name, To: g.passes[e.To].name})
	}

	// Nothing below can fail, so the graph is only mutated from here on.
	for id, p := range g.passes {
		ds, _ := deps.Dependencies(id)
		p.dependencies = p.dependencies[:0]
		for _, d := range ds {
			p.dependencies = append(p.dependencies, PassID(d))
		}
	}
	g.plan = &Plan{
		extent:     g.extent,
		steps:      steps,
		order:      order,
		edges:      edges,
		placements: placements,
		byName:     byName,
		slots:      slots,
		handles:    make([]any, len(slots)),
	}
	g.stale = false

	logger.Info("Render graph compiled.",
		"passes", len(order),
		"resources", len(placements),
		"slots", len(slots),
		"aliased", countAliased(placements),
	)
	return nil
}

func (g *Graph) passNames(ids []int) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.passes[id].name
	}
	return names
}

func countAliased(placements []Placement) int {
	return len(slices.DeleteFunc(slices.Clone(placements), func(p Placement) bool {
		return p.AliasOf == ""
	}))
}
