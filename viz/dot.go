package viz

import (
	"bytes"
	"fmt"
	"strings"
)

// --- DOT Generator ---

type DotGenerator struct{}

var _ StaticDiagramGenerator = (*DotGenerator)(nil)

func (g *DotGenerator) Generate(title string, data *AgentGraphData) (string, error) {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("digraph \"%s\" {\n", title))
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(fmt.Sprintf("  label=\"Knowledge Graph: %s\";\n", title))
	b.WriteString("  bgcolor=\"#020617\";\n")
	b.WriteString("  node [style=filled, fontcolor=white];\n")

	for _, node := range data.Nodes {
		style := StyleForNode(node.Type)
		b.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\\n(%s)\", fillcolor=\"%s\"];\n",
			node.ID, node.DisplayLabel(), node.Type, style.Color))
	}

	for _, edge := range data.Edges {
		src, tgt := EndpointID(edge.Source), EndpointID(edge.Target)
		if src == "" || tgt == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n", src, tgt, edge.Type))
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// --- Mermaid Generator ---

type MermaidGenerator struct{}

var _ StaticDiagramGenerator = (*MermaidGenerator)(nil)

func (g *MermaidGenerator) Generate(title string, data *AgentGraphData) (string, error) {
	var b bytes.Buffer
	b.WriteString("graph TD;\n")
	b.WriteString(fmt.Sprintf("  subgraph %s\n", mermaidID(title)))

	for _, node := range data.Nodes {
		b.WriteString(fmt.Sprintf("    %s[\"%s (%s)\"];\n",
			mermaidID(node.ID), node.DisplayLabel(), node.Type))
	}

	for _, edge := range data.Edges {
		src, tgt := EndpointID(edge.Source), EndpointID(edge.Target)
		if src == "" || tgt == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s;\n",
			mermaidID(src), edge.Type, mermaidID(tgt)))
	}
	b.WriteString("  end\n")
	return b.String(), nil
}

// mermaidID strips characters that break mermaid identifiers. Node ids use a
// "kind:name" scheme, so at minimum the colon has to go.
func mermaidID(id string) string {
	replacer := strings.NewReplacer(":", "_", " ", "_", "\"", "", "[", "", "]", "")
	return replacer.Replace(id)
}
