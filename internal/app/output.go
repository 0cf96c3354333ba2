package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Git-i/gpu-gems/rendergraph"
)

// writePlan prints plan in the given output format.
func writePlan(w io.Writer, plan *rendergraph.Plan, format string) error {
	switch format {
	case OutputJSON:
		raw, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", raw)
		return err
	case OutputDOT:
		_, err := io.WriteString(w, plan.DOT())
		return err
	case OutputMermaid:
		_, err := io.WriteString(w, plan.Mermaid())
		return err
	default:
		return writePlanText(w, plan)
	}
}

func writePlanText(w io.Writer, plan *rendergraph.Plan) error {
	ext := plan.Extent()
	order := plan.Order()
	placements := plan.Placements()
	fmt.Fprintf(w, "Render graph: %d passes, %d resources, %d slots (swapchain %dx%d)\n",
		len(order), len(placements), len(plan.Slots()), ext.Width, ext.Height)

	fmt.Fprintln(w, "\nExecution order:")
	for i, name := range order {
		fmt.Fprintf(w, "  %2d  %s\n", i, name)
	}

	fmt.Fprintln(w, "\nResources:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tKIND\tLAYOUT\tWINDOW\tSLOT\tALIASES")
	for _, p := range placements {
		layout := fmt.Sprintf("%d bytes", p.ByteSize)
		if p.Kind == rendergraph.KindImage {
			layout = fmt.Sprintf("%dx%d %s", p.Extent.Width, p.Extent.Height, rendergraph.FormatName(p.Format))
		}
		window, slot := "unused", "-"
		if !p.Unused {
			window = fmt.Sprintf("[%d,%d]", p.Window.First, p.Window.Last)
			slot = fmt.Sprintf("%d", p.Slot)
		}
		if p.External {
			slot += " (external)"
		}
		alias := p.AliasOf
		if alias == "" {
			alias = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", p.Resource, p.Kind, layout, window, slot, alias)
	}
	return tw.Flush()
}
