package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentguard/agentgraph/layout"
	"github.com/agentguard/agentgraph/ledger"
	"github.com/agentguard/agentgraph/viz"
)

var (
	exportFormat string
	exportOut    string
	exportWidth  float64
	exportHeight float64
)

var exportCmd = &cobra.Command{
	Use:   "export AGENT_ID",
	Short: "Export an agent's knowledge graph as dot, mermaid or svg",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agentID := args[0]

		l, err := ledger.Open(ledgerPath)
		if err != nil {
			return err
		}
		defer l.Close()

		data, err := l.AgentGraph(agentID)
		if err != nil {
			return err
		}

		var out string
		switch exportFormat {
		case "dot":
			out, err = (&viz.DotGenerator{}).Generate(agentID, data)
		case "mermaid":
			out, err = (&viz.MermaidGenerator{}).Generate(agentID, data)
		case "svg":
			out, err = exportSVG(agentID, data)
		default:
			return fmt.Errorf("unknown format %q (want dot, mermaid or svg)", exportFormat)
		}
		if err != nil {
			return err
		}

		if exportOut == "" || exportOut == "-" {
			fmt.Print(out)
			return nil
		}
		return os.WriteFile(exportOut, []byte(out), 0644)
	},
}

// exportSVG settles the layout simulation and renders one static frame with
// no hover or selection active.
func exportSVG(agentID string, data *viz.AgentGraphData) (string, error) {
	canvas := viz.NewSVGCanvas(exportWidth, exportHeight)
	if data.Empty() {
		canvas.Text(exportWidth/2, exportHeight/2, 14, "#94a3b8",
			fmt.Sprintf("No activity recorded for %s", agentID))
		return canvas.String(), nil
	}

	var adapter viz.Adapter
	working := adapter.Working(data)

	sim := layout.NewForceSim()
	sim.Start(working, exportWidth, exportHeight)
	layout.Settle(sim)

	viz.DrawStarfield(canvas, exportWidth, exportHeight, nil)
	for _, e := range working.Edges {
		viz.DrawLink(canvas, working, e, nil)
	}
	for _, n := range working.Nodes {
		viz.DrawNode(canvas, n, viz.GlyphState{Scale: 1})
	}
	return canvas.String(), nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "t", "dot", "Output format: dot, mermaid or svg")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "-", "Output file, - for stdout")
	exportCmd.Flags().Float64Var(&exportWidth, "width", 1024, "SVG width in pixels")
	exportCmd.Flags().Float64Var(&exportHeight, "height", 768, "SVG height in pixels")
	rootCmd.AddCommand(exportCmd)
}
