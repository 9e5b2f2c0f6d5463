package viz

import "math"

// --- Node Glyph Rendering ---

const (
	glowRestingFactor = 2.2
	glowHoveredFactor = 2.8

	labelMaxChars   = 26
	labelFontBase   = 12.0
	labelFontFloor  = 3.0
	hitRadiusMargin = 6.0
)

// GlyphState carries the per-frame inputs for drawing one node.
type GlyphState struct {
	Hovered bool
	Dimmed  bool
	// Scale is the current zoom factor. Radii and font sizes are divided by
	// it so glyphs keep a constant on-screen size across zoom levels.
	Scale float64
}

// DrawNode paints a single node glyph: glow, circle, then label. Dimmed
// nodes get a flat dark circle and no glow or label. The node's position is
// read but never written.
func DrawNode(c Canvas, n *GraphNode, st GlyphState) {
	scale := st.Scale
	if scale <= 0 {
		scale = 1
	}
	style := StyleForNode(n.Type)
	r := style.Radius / scale

	if !st.Dimmed {
		glow := r * glowRestingFactor
		if st.Hovered {
			glow = r * glowHoveredFactor
		}
		c.GradientCircle(n.X, n.Y, glow, style.Color+"44", style.Color+"00")
	}

	fill := style.Color + "33"
	stroke := style.Color
	if st.Dimmed {
		fill = dimmedNodeColor
		stroke = dimmedNodeColor
	}
	strokeWidth := 1.5 / scale
	if st.Hovered {
		strokeWidth = 2.5 / scale
	}
	c.FillCircle(n.X, n.Y, r, fill, stroke, strokeWidth)

	if st.Dimmed {
		return
	}

	label := truncateLabel(n.DisplayLabel())
	fontSize := math.Max(labelFontBase/scale, labelFontFloor)
	textY := n.Y + r + fontSize + 2/scale

	// Contrast pill behind the text. Without text metrics the width is
	// estimated from the glyph count.
	pillW := float64(len([]rune(label)))*fontSize*0.6 + fontSize
	pillH := fontSize * 1.4
	c.RoundedRect(n.X-pillW/2, textY-fontSize*1.1, pillW, pillH, fontSize*0.3, "#0f172acc")

	textColor := "#cbd5e1"
	if st.Hovered {
		textColor = "#ffffff"
	}
	c.Text(n.X, textY, fontSize, textColor, label)
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= labelMaxChars {
		return s
	}
	return string(runes[:labelMaxChars])
}

// HitRadius is the invisible pointer target radius for a node: the drawn
// radius plus a fixed margin so small nodes stay easy to hover. It is only
// used for input routing, never painted.
func HitRadius(kind NodeKind, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return (StyleForNode(kind).Radius + hitRadiusMargin) / scale
}

// NodeAt returns the node whose hit area contains (x, y), or nil. When hit
// areas overlap the last node in draw order wins, matching what is visually
// on top.
func NodeAt(nodes []*GraphNode, x, y, scale float64) *GraphNode {
	var hit *GraphNode
	for _, n := range nodes {
		hr := HitRadius(n.Type, scale)
		if math.Hypot(n.X-x, n.Y-y) <= hr {
			hit = n
		}
	}
	return hit
}

// DrawLink paints one edge as a straight segment using the styling computed
// for the current highlight state. Unresolved endpoints are skipped.
func DrawLink(c Canvas, data *AgentGraphData, e *GraphEdge, connected map[string]bool) {
	src := data.NodeByID(EndpointID(e.Source))
	tgt := data.NodeByID(EndpointID(e.Target))
	if src == nil || tgt == nil {
		return
	}
	style := StyleForLink(e, connected)
	c.Line(src.X, src.Y, tgt.X, tgt.Y, style.Color, style.Width)
}
