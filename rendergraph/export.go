package rendergraph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DOT exports the pass order and dependencies as Graphviz DOT text. Nodes
// appear in compiled order and are labelled with their position.
func (p *Plan) DOT() string {
	var b strings.Builder
	b.WriteString("digraph rendergraph {\n")
	b.WriteString("  rankdir=LR;\n")

	aliases := make(map[string]string, len(p.order))
	for i, name := range p.order {
		alias := fmt.Sprintf("p%d", i)
		aliases[name] = alias
		b.WriteString(fmt.Sprintf("  %s [label=\"%s\\n#%d\"];\n", alias, escapeDOT(name), i))
	}
	for _, e := range p.edges {
		from, okFrom := aliases[e.From]
		to, okTo := aliases[e.To]
		if !okFrom || !okTo {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s -> %s;\n", from, to))
	}
	b.WriteString("}\n")
	return b.String()
}

// Mermaid exports the pass order and dependencies as Mermaid graph text.
func (p *Plan) Mermaid() string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	aliases := make(map[string]string, len(p.order))
	for i, name := range p.order {
		alias := fmt.Sprintf("p%d", i)
		aliases[name] = alias
		b.WriteString(fmt.Sprintf("    %s[\"%s<br/>#%d\"]\n", alias, escapeMermaid(name), i))
	}
	for _, e := range p.edges {
		from, okFrom := aliases[e.From]
		to, okTo := aliases[e.To]
		if !okFrom || !okTo {
			continue
		}
		b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
	}
	return b.String()
}

// dotEscaper makes a name safe inside a quoted DOT label. The replacer works
// in one pass, so the backslashes it inserts are never escaped again.
var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func escapeDOT(s string) string {
	return dotEscaper.Replace(s)
}

var mermaidEscaper = strings.NewReplacer(
	`"`, "#quot;",
	"\r\n", "<br/>",
	"\n", "<br/>",
	"\r", "<br/>",
)

func escapeMermaid(s string) string {
	return mermaidEscaper.Replace(s)
}

type extentJSON struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type edgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type placementJSON struct {
	Resource string      `json:"resource"`
	Kind     string      `json:"kind"`
	Unused   bool        `json:"unused,omitempty"`
	Window   *[2]int     `json:"window,omitempty"`
	Slot     SlotID      `json:"slot"`
	AliasOf  string      `json:"aliasOf,omitempty"`
	External bool        `json:"external,omitempty"`
	Size     string      `json:"size,omitempty"`
	Extent   *extentJSON `json:"extent,omitempty"`
	Format   string      `json:"format,omitempty"`
	ByteSize uint64      `json:"byteSize,omitempty"`
}

type slotJSON struct {
	ID        SlotID   `json:"id"`
	Kind      string   `json:"kind"`
	External  bool     `json:"external,omitempty"`
	Resources []string `json:"resources"`
}

type planJSON struct {
	Extent     extentJSON      `json:"extent"`
	Order      []string        `json:"order"`
	Edges      []edgeJSON      `json:"edges"`
	Placements []placementJSON `json:"placements"`
	Slots      []slotJSON      `json:"slots"`
}

// MarshalJSON encodes the plan for tooling and the inspector.
func (p *Plan) MarshalJSON() ([]byte, error) {
	out := planJSON{
		Extent:     extentJSON{Width: p.extent.Width, Height: p.extent.Height},
		Order:      p.Order(),
		Edges:      make([]edgeJSON, len(p.edges)),
		Placements: make([]placementJSON, len(p.placements)),
		Slots:      make([]slotJSON, len(p.slots)),
	}
	for i, e := range p.edges {
		out.Edges[i] = edgeJSON{From: e.From, To: e.To}
	}
	for i, pl := range p.placements {
		j := placementJSON{
			Resource: pl.Resource,
			Kind:     pl.Kind.String(),
			Unused:   pl.Unused,
			Slot:     pl.Slot,
			AliasOf:  pl.AliasOf,
			External: pl.External,
		}
		if !pl.Unused {
			j.Window = &[2]int{pl.Window.First, pl.Window.Last}
		}
		if pl.Kind == KindImage {
			j.Size = pl.Size.String()
			j.Extent = &extentJSON{Width: pl.Extent.Width, Height: pl.Extent.Height}
			j.Format = FormatName(pl.Format)
		} else {
			j.ByteSize = pl.ByteSize
		}
		out.Placements[i] = j
	}
	for i, s := range p.slots {
		out.Slots[i] = slotJSON{ID: s.ID, Kind: s.Kind.String(), External: s.External, Resources: s.Resources}
	}
	return json.Marshal(out)
}
