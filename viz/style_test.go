package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleForNode(t *testing.T) {
	assert.Equal(t, NodeStyle{Color: "#6366f1", Radius: 22}, StyleForNode(NodeAgent))
	assert.Equal(t, NodeStyle{Color: "#38bdf8", Radius: 14}, StyleForNode(NodeSession))
	assert.Equal(t, NodeStyle{Color: "#22c55e", Radius: 10}, StyleForNode(NodeTool))
	assert.Equal(t, NodeStyle{Color: "#ef4444", Radius: 10}, StyleForNode(NodePattern))

	unknown := StyleForNode(NodeKind("mystery"))
	assert.Equal(t, "#64748b", unknown.Color, "unknown kinds get the neutral gray")
	assert.Equal(t, 10.0, unknown.Radius)
}

func TestStyleForLinkNoHover(t *testing.T) {
	cases := map[EdgeKind]string{
		EdgeHadSession:       "#475569",
		EdgeUsedTool:         "#6366f1",
		EdgeExhibitedPattern: "#ef4444",
		EdgeKind("mystery"):  "#475569",
	}
	for kind, want := range cases {
		style := StyleForLink(&GraphEdge{Source: "a", Target: "b", Type: kind}, nil)
		assert.Equal(t, want, style.Color, "base color for %s", kind)
		assert.Equal(t, 1.5, style.Width, "resting width for %s", kind)
	}
}

func TestStyleForLinkHighlighted(t *testing.T) {
	e := &GraphEdge{Source: "a", Target: "b", Type: EdgeUsedTool}

	active := StyleForLink(e, map[string]bool{"a": true, "b": true})
	assert.Equal(t, "#6366f1", active.Color)
	assert.Equal(t, 2.5, active.Width, "active edges get the thick stroke")

	inactive := StyleForLink(e, map[string]bool{"a": true})
	assert.Equal(t, "#0f172a", inactive.Color, "inactive edges fade into the background")
	assert.Equal(t, 0.5, inactive.Width)
}
