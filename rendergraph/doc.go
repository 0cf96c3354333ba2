// Package rendergraph is a frame graph: renderers declare named passes and
// the textures and buffers each pass reads and writes, and the graph derives
// an execution order and a physical-slot assignment that lets resources with
// disjoint lifetimes share backing memory.
//
// The life of a graph has three phases:
//
//	g := rendergraph.New(device)
//	_ = g.ImportTexture(rendergraph.TextureInfo{Name: "backbuffer", ...}, nil)
//	gbuf, _ := g.AddPass("gbuffer")
//	_ = gbuf.ColorOutput(rendergraph.NewTexture(rendergraph.DefaultTextureInfo("albedo")))
//	...
//	if err := g.Compile(ctx); err != nil { ... }
//	for each frame {
//		_ = g.BindExternal("backbuffer", acquired)
//		if err := g.Execute(ctx, cmd); err != nil { ... }
//	}
//
// Declarations and Resize mark the graph stale; Execute keeps running the last
// successfully compiled plan until Compile is called again. The graph never
// allocates GPU memory: Plan.Slots is an allocation hint, and the allocator
// hands its backing back through Graph.BindSlot.
package rendergraph
