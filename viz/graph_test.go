package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterClonesDataset(t *testing.T) {
	source := starGraph()
	var adapter Adapter

	working := adapter.Working(source)
	require.Len(t, working.Nodes, len(source.Nodes))
	require.Len(t, working.Edges, len(source.Edges))

	// Layout writes positions into the working copy; the caller's nodes
	// must stay untouched.
	working.Nodes[0].X = 123
	working.Nodes[0].Y = 456
	assert.Zero(t, source.Nodes[0].X, "position writes must not leak into the source")
	assert.Zero(t, source.Nodes[0].Y)

	working.Edges[0].Source = working.Nodes[0]
	assert.Equal(t, "agent:a1", source.Edges[0].Source, "endpoint rewrites must not leak either")
}

func TestAdapterMemoizesOnReference(t *testing.T) {
	source := starGraph()
	var adapter Adapter

	first := adapter.Working(source)
	second := adapter.Working(source)
	assert.Same(t, first, second, "same input reference must not restart the working copy")

	replacement := starGraph()
	third := adapter.Working(replacement)
	assert.NotSame(t, first, third, "a new dataset reference replaces the working copy")
}

func TestAdapterNilDataset(t *testing.T) {
	var adapter Adapter
	working := adapter.Working(nil)
	require.NotNil(t, working)
	assert.True(t, working.Empty())
}

func TestDescribePattern(t *testing.T) {
	assert.Contains(t, DescribePattern("prompt_injection"), "untrusted content")
	assert.Contains(t, DescribePattern("external_exfil"), "external destination")
	generic := DescribePattern("never_seen_before")
	assert.NotEmpty(t, generic, "unknown indicators still get a description")
	assert.NotContains(t, generic, "never_seen_before")
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "morning", (&GraphNode{ID: "session:s1", Label: "morning"}).DisplayLabel())
	assert.Equal(t, "session:s1", (&GraphNode{ID: "session:s1"}).DisplayLabel())
}
