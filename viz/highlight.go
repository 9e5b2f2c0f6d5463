package viz

// --- Neighborhood Highlighting ---

// EndpointID normalizes an edge endpoint to a node id. The layout simulation
// rewrites endpoints from id strings to node references once it resolves
// them, so both shapes must be accepted. Unresolvable endpoints yield "".
func EndpointID(ep any) string {
	switch v := ep.(type) {
	case string:
		return v
	case *GraphNode:
		if v != nil {
			return v.ID
		}
	case GraphNode:
		return v.ID
	}
	return ""
}

// ConnectedIDs computes the neighborhood of the hovered node: the hovered id
// plus every node one edge away from it. A "" hovered id means nothing is
// hovered and returns nil, which switches all styling back to normal.
// An edge whose endpoint doesn't resolve to a node in the dataset is treated
// as unresolved and contributes nothing.
func ConnectedIDs(hoveredID string, data *AgentGraphData) map[string]bool {
	if hoveredID == "" {
		return nil
	}
	present := make(map[string]bool, len(data.Nodes))
	for _, n := range data.Nodes {
		present[n.ID] = true
	}
	connected := map[string]bool{hoveredID: true}
	for _, e := range data.Edges {
		src := EndpointID(e.Source)
		tgt := EndpointID(e.Target)
		if !present[src] || !present[tgt] {
			continue
		}
		if src == hoveredID {
			connected[tgt] = true
		} else if tgt == hoveredID {
			connected[src] = true
		}
	}
	return connected
}

// EdgeActive reports whether an edge should be drawn at full strength. With
// no highlighting active every edge is. Otherwise both endpoints must be in
// the connected set; a single connected endpoint still dims the edge.
func EdgeActive(connected map[string]bool, e *GraphEdge) bool {
	if connected == nil {
		return true
	}
	src := EndpointID(e.Source)
	tgt := EndpointID(e.Target)
	if src == "" || tgt == "" {
		return false
	}
	return connected[src] && connected[tgt]
}
