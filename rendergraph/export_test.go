package rendergraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportPlan(t *testing.T) *Plan {
	t.Helper()
	g := New(nil, WithSwapchainExtent(800, 600))
	require.NoError(t, g.CreateBuffer(BufferInfo{Name: "lights", Size: 128}))
	require.NoError(t, g.CreateTexture(DefaultTextureInfo("unused")))
	buildPipeline(t, g, []passDecl{
		{name: "gbuffer", outputs: []string{"albedo"}},
		{name: `say "hi"`, inputs: []string{"albedo"}},
	})
	p, err := g.Pass("gbuffer")
	require.NoError(t, err)
	require.NoError(t, p.BufferInput(Existing("lights")))
	return compiledPlan(t, g)
}

func TestPlan_DOT(t *testing.T) {
	want := "digraph rendergraph {\n" +
		"  rankdir=LR;\n" +
		"  p0 [label=\"gbuffer\\n#0\"];\n" +
		"  p1 [label=\"say \\\"hi\\\"\\n#1\"];\n" +
		"  p0 -> p1;\n" +
		"}\n"
	assert.Equal(t, want, exportPlan(t).DOT())
}

func TestPlan_Mermaid(t *testing.T) {
	want := "graph LR\n" +
		"    p0[\"gbuffer<br/>#0\"]\n" +
		"    p1[\"say #quot;hi#quot;<br/>#1\"]\n" +
		"    p0 --> p1\n"
	assert.Equal(t, want, exportPlan(t).Mermaid())
}

func TestPlan_EscapesLabels(t *testing.T) {
	g := New(nil)
	buildPipeline(t, g, []passDecl{
		{name: `blur\`, outputs: []string{"a"}},
		{name: "tone\nmap \"aces\"", inputs: []string{"a"}},
	})
	plan := compiledPlan(t, g)

	dot := plan.DOT()
	assert.Contains(t, dot, `p0 [label="blur\\\n#0"];`)
	assert.Contains(t, dot, `p1 [label="tone\nmap \"aces\"\n#1"];`)
	assert.NotContains(t, dot, "tone\nmap")

	mermaid := plan.Mermaid()
	assert.Contains(t, mermaid, `p0["blur\<br/>#0"]`)
	assert.Contains(t, mermaid, `p1["tone<br/>map #quot;aces#quot;<br/>#1"]`)
}

func TestPlan_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(exportPlan(t))
	require.NoError(t, err)

	var decoded struct {
		Extent struct {
			Width  uint32 `json:"width"`
			Height uint32 `json:"height"`
		} `json:"extent"`
		Order      []string            `json:"order"`
		Edges      []map[string]string `json:"edges"`
		Placements []map[string]any    `json:"placements"`
		Slots      []map[string]any    `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, uint32(800), decoded.Extent.Width)
	assert.Equal(t, []string{"gbuffer", `say "hi"`}, decoded.Order)
	assert.Equal(t, []map[string]string{{"from": "gbuffer", "to": `say "hi"`}}, decoded.Edges)
	require.Len(t, decoded.Placements, 3)

	lights := decoded.Placements[0]
	assert.Equal(t, "lights", lights["resource"])
	assert.Equal(t, "buffer", lights["kind"])
	assert.EqualValues(t, 128, lights["byteSize"])
	assert.Equal(t, []any{0.0, 0.0}, lights["window"])

	unused := decoded.Placements[1]
	assert.Equal(t, true, unused["unused"])
	assert.EqualValues(t, -1, unused["slot"])
	assert.NotContains(t, unused, "window")

	albedo := decoded.Placements[2]
	assert.Equal(t, "swapchain_relative(1, 1)", albedo["size"])
	assert.Equal(t, "undefined", albedo["format"])
	assert.Equal(t, map[string]any{"width": 800.0, "height": 600.0}, albedo["extent"])

	assert.Len(t, decoded.Slots, 2)
}
