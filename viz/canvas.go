package viz

import (
	"bytes"
	"fmt"
	"html"
	"strings"
)

// --- Canvas Implementations ---

// Op records one draw command, used by tests and debugging tools to assert
// on rendered output without rasterizing anything.
type Op struct {
	Kind   string // "clear", "circle", "gradient", "line", "rect", "text"
	X, Y   float64
	X2, Y2 float64
	R      float64
	W, H   float64
	Width  float64
	Size   float64
	Color  string
	Color2 string
	Text   string
}

// OpRecorder is a Canvas that captures draw commands in order.
type OpRecorder struct {
	Ops []Op
}

var _ Canvas = (*OpRecorder)(nil)

func (r *OpRecorder) Clear(color string) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: color})
}

func (r *OpRecorder) FillCircle(x, y, radius float64, fill, stroke string, strokeWidth float64) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, R: radius, Color: fill, Color2: stroke, Width: strokeWidth})
}

func (r *OpRecorder) GradientCircle(x, y, radius float64, inner, outer string) {
	r.Ops = append(r.Ops, Op{Kind: "gradient", X: x, Y: y, R: radius, Color: inner, Color2: outer})
}

func (r *OpRecorder) Line(x1, y1, x2, y2 float64, color string, width float64) {
	r.Ops = append(r.Ops, Op{Kind: "line", X: x1, Y: y1, X2: x2, Y2: y2, Color: color, Width: width})
}

func (r *OpRecorder) RoundedRect(x, y, w, h, radius float64, fill string) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, R: radius, Color: fill})
}

func (r *OpRecorder) Text(x, y float64, size float64, color, s string) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Size: size, Color: color, Text: s})
}

// OfKind returns the recorded ops of one kind, in draw order.
func (r *OpRecorder) OfKind(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// SVGCanvas is a Canvas that accumulates an SVG document.
type SVGCanvas struct {
	width, height float64
	body          bytes.Buffer
	defs          bytes.Buffer
	gradients     int
}

var _ Canvas = (*SVGCanvas)(nil)

// NewSVGCanvas creates an SVG drawing surface of the given pixel dimensions.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	return &SVGCanvas{width: width, height: height}
}

func (c *SVGCanvas) Clear(color string) {
	c.body.Reset()
	c.defs.Reset()
	c.gradients = 0
	c.body.WriteString(fmt.Sprintf("  <rect x=\"0\" y=\"0\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\" />\n",
		c.width, c.height, fillColor(color)))
}

func (c *SVGCanvas) FillCircle(x, y, radius float64, fill, stroke string, strokeWidth float64) {
	attrs := fmt.Sprintf("cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"", x, y, radius, fillColor(fill))
	if stroke != "" && strokeWidth > 0 {
		attrs += fmt.Sprintf(" stroke=\"%s\" stroke-width=\"%.2f\"", fillColor(stroke), strokeWidth)
	}
	c.body.WriteString("  <circle " + attrs + " />\n")
}

func (c *SVGCanvas) GradientCircle(x, y, radius float64, inner, outer string) {
	c.gradients++
	id := fmt.Sprintf("glow%d", c.gradients)
	c.defs.WriteString(fmt.Sprintf("    <radialGradient id=\"%s\">\n", id))
	c.defs.WriteString(fmt.Sprintf("      <stop offset=\"0%%\" stop-color=\"%s\" />\n", fillColor(inner)))
	c.defs.WriteString(fmt.Sprintf("      <stop offset=\"100%%\" stop-color=\"%s\" />\n", fillColor(outer)))
	c.defs.WriteString("    </radialGradient>\n")
	c.body.WriteString(fmt.Sprintf("  <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"url(#%s)\" />\n",
		x, y, radius, id))
}

func (c *SVGCanvas) Line(x1, y1, x2, y2 float64, color string, width float64) {
	c.body.WriteString(fmt.Sprintf("  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"%.2f\" />\n",
		x1, y1, x2, y2, fillColor(color), width))
}

func (c *SVGCanvas) RoundedRect(x, y, w, h, radius float64, fill string) {
	c.body.WriteString(fmt.Sprintf("  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"%.2f\" fill=\"%s\" />\n",
		x, y, w, h, radius, fillColor(fill)))
}

func (c *SVGCanvas) Text(x, y float64, size float64, color, s string) {
	c.body.WriteString(fmt.Sprintf("  <text x=\"%.2f\" y=\"%.2f\" font-family=\"sans-serif\" font-size=\"%.2f\" fill=\"%s\" text-anchor=\"middle\">%s</text>\n",
		x, y, size, fillColor(color), html.EscapeString(s)))
}

// String assembles the final SVG document.
func (c *SVGCanvas) String() string {
	var svg bytes.Buffer
	svg.WriteString(fmt.Sprintf("<svg width=\"%.0f\" height=\"%.0f\" viewBox=\"0 0 %.0f %.0f\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		c.width, c.height, c.width, c.height))
	if c.defs.Len() > 0 {
		svg.WriteString("  <defs>\n")
		svg.Write(c.defs.Bytes())
		svg.WriteString("  </defs>\n")
	}
	svg.Write(c.body.Bytes())
	svg.WriteString("</svg>\n")
	return svg.String()
}

// fillColor converts 8-digit hex colors (#rrggbbaa) to an rgba() expression,
// since bare hex-with-alpha support is uneven across SVG renderers.
func fillColor(color string) string {
	if !strings.HasPrefix(color, "#") || len(color) != 9 {
		return color
	}
	var r, g, b, a int
	if _, err := fmt.Sscanf(color[1:], "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
		return color
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r, g, b, float64(a)/255)
}
