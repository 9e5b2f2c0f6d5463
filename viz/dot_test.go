package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotGenerator(t *testing.T) {
	data := starGraph()
	out, err := (&DotGenerator{}).Generate("a1", data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "digraph \"a1\""))
	assert.Contains(t, out, `"agent:a1" -> "session:s1" [label="had_session"]`)
	assert.Contains(t, out, "#6366f1", "agent nodes carry the kind color")
}

func TestDotGeneratorSkipsUnresolvedEdges(t *testing.T) {
	data := starGraph()
	data.Edges = append(data.Edges, &GraphEdge{Source: nil, Target: "session:s1", Type: EdgeHadSession})
	out, err := (&DotGenerator{}).Generate("a1", data)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "->"))
}

func TestMermaidGenerator(t *testing.T) {
	data := starGraph()
	out, err := (&MermaidGenerator{}).Generate("a1", data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "graph TD;"))
	assert.NotContains(t, out, "agent:a1", "colons would break mermaid identifiers")
	assert.Contains(t, out, "agent_a1")
	assert.Contains(t, out, `-- "had_session" -->`)
}
