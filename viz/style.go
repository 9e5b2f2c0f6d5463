package viz

// --- Node and Link Styling ---

// NodeStyle is the fixed visual encoding for a node kind.
type NodeStyle struct {
	Color  string
	Radius float64
}

var nodeStyles = map[NodeKind]NodeStyle{
	NodeAgent:   {Color: "#6366f1", Radius: 22},
	NodeSession: {Color: "#38bdf8", Radius: 14},
	NodeTool:    {Color: "#22c55e", Radius: 10},
	NodePattern: {Color: "#ef4444", Radius: 10},
}

// unknownNodeStyle styles kinds outside the closed set; they render rather
// than fail.
var unknownNodeStyle = NodeStyle{Color: "#64748b", Radius: 10}

// StyleForNode returns the color/radius encoding for a node kind.
func StyleForNode(kind NodeKind) NodeStyle {
	if s, ok := nodeStyles[kind]; ok {
		return s
	}
	return unknownNodeStyle
}

var edgeColors = map[EdgeKind]string{
	EdgeHadSession:       "#475569",
	EdgeUsedTool:         "#6366f1",
	EdgeExhibitedPattern: "#ef4444",
}

const edgeColorFallback = "#475569"

// Colors used when neighborhood highlighting dims an element.
const (
	dimmedNodeColor   = "#1e293b"
	inactiveEdgeColor = "#0f172a"
)

// LinkStyle is the computed stroke for one edge in one frame.
type LinkStyle struct {
	Color string
	Width float64
}

// StyleForLink computes an edge's stroke as a function of the current
// highlight state. connected is the ConnectedIDs result (nil when no node is
// hovered).
func StyleForLink(e *GraphEdge, connected map[string]bool) LinkStyle {
	base, ok := edgeColors[e.Type]
	if !ok {
		base = edgeColorFallback
	}
	if connected == nil {
		return LinkStyle{Color: base, Width: 1.5}
	}
	if EdgeActive(connected, e) {
		return LinkStyle{Color: base, Width: 2.5}
	}
	// Near-invisible against the dark background.
	return LinkStyle{Color: inactiveEdgeColor, Width: 0.5}
}
