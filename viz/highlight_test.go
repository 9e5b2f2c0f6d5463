package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func starGraph() *AgentGraphData {
	return &AgentGraphData{
		Nodes: []*GraphNode{
			{ID: "agent:a1", Type: NodeAgent},
			{ID: "session:s1", Type: NodeSession},
			{ID: "session:s2", Type: NodeSession},
			{ID: "session:s3", Type: NodeSession},
		},
		Edges: []*GraphEdge{
			{Source: "agent:a1", Target: "session:s1", Type: EdgeHadSession},
			{Source: "agent:a1", Target: "session:s2", Type: EdgeHadSession},
			{Source: "agent:a1", Target: "session:s3", Type: EdgeHadSession},
		},
	}
}

func TestConnectedIDsStarTopology(t *testing.T) {
	data := starGraph()

	connected := ConnectedIDs("agent:a1", data)
	assert.Len(t, connected, 4, "hovering the hub should include it plus all three sessions")
	for _, id := range []string{"agent:a1", "session:s1", "session:s2", "session:s3"} {
		assert.True(t, connected[id], "expected %s in the neighborhood", id)
	}

	connected = ConnectedIDs("session:s2", data)
	assert.Len(t, connected, 2, "hovering a leaf should include the leaf and the hub only")
	assert.True(t, connected["session:s2"])
	assert.True(t, connected["agent:a1"])
	assert.False(t, connected["session:s1"], "sibling sessions are two hops away")
}

func TestConnectedIDsNoHover(t *testing.T) {
	assert.Nil(t, ConnectedIDs("", starGraph()), "no hover means no highlight set")
}

func TestConnectedIDsResolvedEndpoints(t *testing.T) {
	// The layout simulation rewrites endpoints to node references in place;
	// the neighborhood must come out the same either way.
	data := starGraph()
	for _, e := range data.Edges {
		e.Source = data.NodeByID(e.Source.(string))
		e.Target = data.NodeByID(e.Target.(string))
	}
	connected := ConnectedIDs("agent:a1", data)
	assert.Len(t, connected, 4)
}

func TestConnectedIDsDanglingEdge(t *testing.T) {
	data := starGraph()
	data.Edges = append(data.Edges,
		&GraphEdge{Source: "agent:a1", Target: "session:ghost", Type: EdgeHadSession},
		&GraphEdge{Source: "agent:a1", Target: nil, Type: EdgeHadSession},
	)

	connected := ConnectedIDs("agent:a1", data)
	assert.Len(t, connected, 4, "edges without a backing node contribute nothing")
	assert.False(t, connected["session:ghost"])
}

func TestEndpointID(t *testing.T) {
	n := &GraphNode{ID: "tool:grep"}
	assert.Equal(t, "tool:grep", EndpointID("tool:grep"))
	assert.Equal(t, "tool:grep", EndpointID(n))
	assert.Equal(t, "tool:grep", EndpointID(*n))
	assert.Equal(t, "", EndpointID(nil))
	assert.Equal(t, "", EndpointID(42))
	assert.Equal(t, "", EndpointID((*GraphNode)(nil)))
}

func TestEdgeActive(t *testing.T) {
	e := &GraphEdge{Source: "a", Target: "b", Type: EdgeUsedTool}

	assert.True(t, EdgeActive(nil, e), "every edge is active with highlighting off")
	assert.True(t, EdgeActive(map[string]bool{"a": true, "b": true}, e))
	assert.False(t, EdgeActive(map[string]bool{"a": true}, e),
		"one connected endpoint must not light up the edge")
	assert.False(t, EdgeActive(map[string]bool{}, e))

	dangling := &GraphEdge{Source: "a", Target: nil, Type: EdgeUsedTool}
	assert.False(t, EdgeActive(map[string]bool{"a": true}, dangling))
}
