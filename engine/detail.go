package engine

import (
	"fmt"

	"github.com/agentguard/agentgraph/viz"
)

// --- Detail Panel ---

// DetailField is one labeled value in the detail panel.
type DetailField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Detail is the content of the panel shown for the selected node. It is a
// pure function of the node, so it carries no interaction state of its own.
type Detail struct {
	Title  string        `json:"title"`
	Kind   viz.NodeKind  `json:"kind"`
	Fields []DetailField `json:"fields"`
}

// DetailFor builds the panel content for a node.
func DetailFor(n *viz.GraphNode) *Detail {
	if n == nil {
		return nil
	}
	d := &Detail{Title: n.DisplayLabel(), Kind: n.Type}
	switch n.Type {
	case viz.NodeAgent:
		registered := "unregistered"
		if n.IsRegistered {
			registered = "registered"
		}
		d.Fields = append(d.Fields,
			DetailField{Name: "Status", Value: registered},
			DetailField{Name: "Agent ID", Value: n.AgentID},
		)
		if n.TotalEvents > 0 {
			d.Fields = append(d.Fields,
				DetailField{Name: "Events", Value: fmt.Sprintf("%d", n.TotalEvents)},
				DetailField{Name: "Avg risk", Value: fmt.Sprintf("%.2f", n.AvgRisk)},
			)
		}
	case viz.NodeSession:
		d.Fields = append(d.Fields,
			DetailField{Name: "Session ID", Value: n.SessionID},
			DetailField{Name: "Started", Value: n.Timestamp},
		)
	case viz.NodeTool:
		d.Fields = append(d.Fields,
			DetailField{Name: "Last decision", Value: n.Decision},
		)
	case viz.NodePattern:
		d.Fields = append(d.Fields,
			DetailField{Name: "Description", Value: viz.DescribePattern(n.Indicator)},
		)
	default:
		d.Fields = append(d.Fields,
			DetailField{Name: "ID", Value: n.ID},
		)
	}
	return d
}
