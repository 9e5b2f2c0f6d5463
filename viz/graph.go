package viz

// --- Working-Copy Adapter ---

// Adapter produces the renderer's working copy of a dataset. The layout
// simulation mutates node positions in place, so the caller's data is
// shallow-cloned first. Re-deriving from the same input reference returns
// the same working copy, which keeps the simulation from restarting on
// unrelated refreshes.
type Adapter struct {
	last    *AgentGraphData
	working *AgentGraphData
}

// Working returns the working copy for data, cloning only when the input
// reference changes. A nil dataset yields an empty working copy.
func (a *Adapter) Working(data *AgentGraphData) *AgentGraphData {
	if data == nil {
		a.last = nil
		a.working = &AgentGraphData{}
		return a.working
	}
	if data == a.last && a.working != nil {
		return a.working
	}
	w := &AgentGraphData{
		Nodes: make([]*GraphNode, 0, len(data.Nodes)),
		Edges: make([]*GraphEdge, 0, len(data.Edges)),
	}
	for _, n := range data.Nodes {
		c := *n
		w.Nodes = append(w.Nodes, &c)
	}
	for _, e := range data.Edges {
		c := *e
		w.Edges = append(w.Edges, &c)
	}
	a.last = data
	a.working = w
	return w
}

// NodeByID looks up a node in the dataset.
func (d *AgentGraphData) NodeByID(id string) *GraphNode {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Empty reports whether the dataset has no nodes.
func (d *AgentGraphData) Empty() bool {
	return d == nil || len(d.Nodes) == 0
}

// --- Pattern Indicator Descriptions ---

// patternDescriptions maps behavior-pattern indicator keys to the text shown
// in the detail panel. Keys come from the intent analyzer and the policy
// engine's rule types.
var patternDescriptions = map[string]string{
	"prompt_injection": "Instructions embedded in untrusted content attempted to redirect the agent.",
	"external_exfil":   "Data was sent, or nearly sent, to an external destination outside the session's goal.",
	"credential_path":  "A tool call touched credential material or a secrets path.",
	"goal_drift":       "The agent's actions diverged from its registered goal.",
	"session_limit":    "The session exceeded a configured action or rate limit.",
	"analyzer_error":   "The intent analyzer failed; the action was scored conservatively.",
}

// DescribePattern returns the human-readable description for a pattern
// indicator key, with a generic fallback for unrecognized keys.
func DescribePattern(indicator string) string {
	if d, ok := patternDescriptions[indicator]; ok {
		return d
	}
	return "Anomalous behavior pattern detected during this agent's sessions."
}
