// package viz defines the data model, styling rules and drawing primitives
// for rendering an agent's knowledge graph.
package viz

// --- Common Data Structures ---

// NodeKind classifies a graph node. The set is closed: unknown kinds are
// still rendered, with neutral styling.
type NodeKind string

const (
	NodeAgent   NodeKind = "agent"
	NodeSession NodeKind = "session"
	NodeTool    NodeKind = "tool"
	NodePattern NodeKind = "pattern"
)

// EdgeKind classifies a graph edge.
type EdgeKind string

const (
	EdgeHadSession       EdgeKind = "had_session"
	EdgeUsedTool         EdgeKind = "used_tool"
	EdgeExhibitedPattern EdgeKind = "exhibited_pattern"
)

// GraphNode is a vertex in the agent knowledge graph. X and Y are written
// exclusively by the layout simulation; everything else treats them as
// read-only.
type GraphNode struct {
	ID    string   `json:"id"`
	Type  NodeKind `json:"type"`
	Label string   `json:"label,omitempty"`

	// Kind-specific attributes, populated depending on Type.
	AgentID      string  `json:"agent_id,omitempty"`
	SessionID    string  `json:"session_id,omitempty"`
	Timestamp    string  `json:"timestamp,omitempty"`
	Decision     string  `json:"decision,omitempty"`
	Indicator    string  `json:"indicator,omitempty"`
	IsRegistered bool    `json:"is_registered,omitempty"`
	TotalEvents  int     `json:"total_events,omitempty"`
	AvgRisk      float64 `json:"avg_risk,omitempty"`

	X float64 `json:"-"`
	Y float64 `json:"-"`
}

// DisplayLabel returns the node's label, falling back to its id.
func (n *GraphNode) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// GraphEdge is a directed relationship between two nodes. Source and Target
// start out as node id strings; the layout simulation may rewrite them in
// place to *GraphNode references, so consumers must go through EndpointID
// rather than type-asserting directly.
type GraphEdge struct {
	Source any      `json:"source"`
	Target any      `json:"target"`
	Type   EdgeKind `json:"type"`

	// Optional annotations carried over from the event that produced the edge.
	Decision  string  `json:"decision,omitempty"`
	RiskScore float64 `json:"risk_score,omitempty"`
}

// AgentGraphData is the top-level graph payload for one agent.
type AgentGraphData struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
}

// --- Interfaces ---

// Canvas is the drawing surface the renderers paint onto. Implementations
// record draw commands (for tests) or emit SVG.
type Canvas interface {
	// Clear fills the whole surface with a solid color.
	Clear(color string)
	// FillCircle draws a filled circle, optionally stroked.
	FillCircle(x, y, r float64, fill, stroke string, strokeWidth float64)
	// GradientCircle draws a circle filled with a radial gradient fading
	// from inner at the center to outer at the rim.
	GradientCircle(x, y, r float64, inner, outer string)
	// Line draws a straight segment.
	Line(x1, y1, x2, y2 float64, color string, width float64)
	// RoundedRect draws a filled rounded rectangle.
	RoundedRect(x, y, w, h, radius float64, fill string)
	// Text draws a horizontally centered string at the given baseline.
	Text(x, y float64, size float64, color, s string)
}

// StaticDiagramGenerator produces a textual diagram (DOT, Mermaid, ...) from
// a graph dataset.
type StaticDiagramGenerator interface {
	Generate(title string, data *AgentGraphData) (string, error)
}
