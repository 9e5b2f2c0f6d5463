package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentguard/agentgraph/viz"
)

func testGraph() *viz.AgentGraphData {
	return &viz.AgentGraphData{
		Nodes: []*viz.GraphNode{
			{ID: "agent:a1", Type: viz.NodeAgent},
			{ID: "session:s1", Type: viz.NodeSession},
			{ID: "session:s2", Type: viz.NodeSession},
			{ID: "tool:grep", Type: viz.NodeTool},
		},
		Edges: []*viz.GraphEdge{
			{Source: "agent:a1", Target: "session:s1", Type: viz.EdgeHadSession},
			{Source: "agent:a1", Target: "session:s2", Type: viz.EdgeHadSession},
			{Source: "session:s1", Target: "tool:grep", Type: viz.EdgeUsedTool},
		},
	}
}

func TestForceSimAssignsPositions(t *testing.T) {
	data := testGraph()
	sim := NewForceSim()
	sim.Start(data, 800, 500)

	for _, n := range data.Nodes {
		assert.NotZero(t, n.X, "every node gets an initial position")
	}

	assert.True(t, sim.Tick())
	positions := sim.Positions()
	require.Len(t, positions, 4)
	byID := map[string]Position{}
	for _, p := range positions {
		byID[p.ID] = p
	}
	assert.Contains(t, byID, "agent:a1")
}

func TestForceSimResolvesEndpoints(t *testing.T) {
	data := testGraph()
	data.Edges = append(data.Edges,
		&viz.GraphEdge{Source: "session:s2", Target: "tool:missing", Type: viz.EdgeUsedTool})
	sim := NewForceSim()
	sim.Start(data, 800, 500)

	_, resolved := data.Edges[0].Source.(*viz.GraphNode)
	assert.True(t, resolved, "resolvable endpoints are rewritten to node references")

	_, stillString := data.Edges[3].Target.(string)
	assert.True(t, stillString, "dangling endpoints are left as ids")
}

func TestForceSimCoolsDown(t *testing.T) {
	data := testGraph()
	sim := NewForceSim()
	sim.Start(data, 800, 500)

	ticks := 0
	for sim.Tick() {
		ticks++
		require.LessOrEqual(t, ticks, maxTicks, "the simulation must terminate")
	}
	assert.Greater(t, ticks, 0)
	assert.False(t, sim.Tick(), "a cooled-down simulation stays stopped")

	// Positions freeze after cooldown.
	before := sim.Positions()
	sim.Tick()
	after := sim.Positions()
	assert.Equal(t, before, after)
}

func TestForceSimPositionsAreSnapshots(t *testing.T) {
	data := testGraph()
	sim := NewForceSim()
	sim.Start(data, 800, 500)

	snapshot := sim.Positions()
	snapshot[0].X = -9999
	assert.NotEqual(t, -9999.0, data.Nodes[0].X, "mutating a snapshot must not touch the simulation")
}

func TestForceSimResizeRecenters(t *testing.T) {
	data := testGraph()
	sim := NewForceSim()
	sim.Start(data, 800, 500)

	xBefore := data.Nodes[0].X
	yBefore := data.Nodes[0].Y
	sim.Resize(1920, 1080)
	assert.InDelta(t, xBefore+560, data.Nodes[0].X, 1e-9)
	assert.InDelta(t, yBefore+290, data.Nodes[0].Y, 1e-9)
}

func TestSettle(t *testing.T) {
	data := testGraph()
	sim := NewForceSim()
	sim.Start(data, 800, 500)
	Settle(sim)
	assert.False(t, sim.Tick())
}
