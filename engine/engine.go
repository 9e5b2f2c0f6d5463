// package engine owns the interactive state of the agent graph view: hover
// and selection, viewport lifecycle, and per-frame composition of the
// background, link and node layers.
package engine

import (
	"sync"

	"github.com/agentguard/agentgraph/layout"
	"github.com/agentguard/agentgraph/viz"
)

// PlaceholderMessage is shown instead of the canvas when a dataset has no
// nodes. The layout simulation is not started in that case.
const PlaceholderMessage = "No activity recorded for this agent yet"

// Engine drives one interactive graph view. All methods are safe for
// concurrent use; state transitions are serialized, matching the
// one-event-at-a-time model of the surface it renders for.
type Engine struct {
	mu sync.Mutex

	adapter viz.Adapter
	source  *viz.AgentGraphData
	data    *viz.AgentGraphData

	sim        layout.Simulator
	simRunning bool

	vp        *Viewport
	hoveredID string
	selected  *viz.GraphNode

	zoom float64

	// Background layer bookkeeping: the starfield is regenerated when the
	// surface dimensions change and only then. Interaction never touches it.
	bgWidth  float64
	bgHeight float64
	bgDrawn  bool
}

// New creates an engine rendering at the given non-fullscreen height.
func New(sim layout.Simulator, baseHeight float64) *Engine {
	return &Engine{
		sim:  sim,
		vp:   NewViewport(baseHeight),
		zoom: 1,
	}
}

// SetData supplies a dataset. The engine works on a shallow clone so the
// layout simulation never mutates the caller's nodes. Passing the same
// reference again is a no-op; a new reference replaces the working copy,
// resets hover and selection, and restarts the simulation.
func (e *Engine) SetData(data *viz.AgentGraphData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if data == e.source && e.data != nil {
		return
	}
	e.source = data
	e.data = e.adapter.Working(data)
	e.hoveredID = ""
	e.selected = nil
	e.startSimLocked()
}

func (e *Engine) startSimLocked() {
	e.simRunning = false
	if e.sim == nil || e.data.Empty() {
		return
	}
	w, h := e.vp.Size()
	e.sim.Start(e.data, w, h)
	e.simRunning = true
}

// Tick advances the layout simulation one step and reports whether it is
// still warm. Safe to call on an idle or empty engine.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.simRunning {
		return false
	}
	if !e.sim.Tick() {
		e.simRunning = false
	}
	return e.simRunning
}

// Placeholder returns the empty-state message and whether it applies.
func (e *Engine) Placeholder() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.Empty() {
		return PlaceholderMessage, true
	}
	return "", false
}

// --- Pointer events ---

// PointerMove updates the hover state from a pointer position in graph
// coordinates. Highlighting derived from it is recomputed on the next read,
// so no frame can show a stale neighborhood.
func (e *Engine) PointerMove(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.Empty() {
		return
	}
	if n := viz.NodeAt(e.data.Nodes, x, y, e.zoom); n != nil {
		e.hoveredID = n.ID
	} else {
		e.hoveredID = ""
	}
}

// PointerLeave clears the hover state.
func (e *Engine) PointerLeave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hoveredID = ""
}

// Click toggles selection: clicking an unselected node opens its panel,
// clicking the selected node again dismisses it, clicking empty space does
// nothing. Hover state is never affected.
func (e *Engine) Click(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.Empty() {
		return
	}
	n := viz.NodeAt(e.data.Nodes, x, y, e.zoom)
	if n == nil {
		return
	}
	if e.selected != nil && e.selected.ID == n.ID {
		e.selected = nil
		return
	}
	e.selected = n
}

// CloseDetail dismisses the detail panel regardless of current selection.
func (e *Engine) CloseDetail() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = nil
}

// HoveredID returns the currently hovered node id, or "".
func (e *Engine) HoveredID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hoveredID
}

// Selected returns the node whose detail panel is open, or nil.
func (e *Engine) Selected() *viz.GraphNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Detail returns the panel content for the current selection, or nil.
func (e *Engine) Detail() *Detail {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DetailFor(e.selected)
}

// Connected returns the hovered node's neighborhood, nil when nothing is
// hovered.
func (e *Engine) Connected() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connectedLocked()
}

func (e *Engine) connectedLocked() map[string]bool {
	if e.hoveredID == "" {
		return nil
	}
	return viz.ConnectedIDs(e.hoveredID, e.data)
}

// SetZoom sets the zoom scale used for glyph sizing and hit-testing.
func (e *Engine) SetZoom(scale float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if scale > 0 {
		e.zoom = scale
	}
}

// --- Viewport events ---

// ObserveWidth feeds a container width measurement from the layout
// observer. While fullscreen the measurement is retained but the active
// dimensions stay the window's: fullscreen entry wins over a pending
// container measurement.
func (e *Engine) ObserveWidth(w float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vp.ObserveContainerWidth(w)
	if !e.vp.Fullscreen() {
		e.resizeLocked()
	}
}

// EnterFullscreen switches to full-window dimensions. The same engine keeps
// rendering, so hover, selection and simulation progress all survive.
func (e *Engine) EnterFullscreen(windowW, windowH float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vp.EnterFullscreen(windowW, windowH, func() {
		e.vp.ExitFullscreen()
		e.resizeLocked()
	})
	e.resizeLocked()
}

// ExitFullscreen reverts to container-relative sizing.
func (e *Engine) ExitFullscreen() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vp.ExitFullscreen()
	e.resizeLocked()
}

// WindowResize tracks the window while fullscreen is active.
func (e *Engine) WindowResize(w, h float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vp.WindowResize(w, h)
	if e.vp.Fullscreen() {
		e.resizeLocked()
	}
}

// KeyDown routes a keyboard event; Escape exits fullscreen while active.
func (e *Engine) KeyDown(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vp.KeyDown(key)
}

// Fullscreen reports whether the view is in fullscreen mode.
func (e *Engine) Fullscreen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vp.Fullscreen()
}

// Size returns the current drawing dimensions.
func (e *Engine) Size() (w, h float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vp.Size()
}

func (e *Engine) resizeLocked() {
	if e.simRunning {
		w, h := e.vp.Size()
		e.sim.Resize(w, h)
	}
}

// --- Frame composition ---

// DrawBackground paints the starfield if the surface dimensions changed
// since the last time it was painted, and reports whether it drew anything.
// Hover and selection changes never trigger a repaint.
func (e *Engine) DrawBackground(c viz.Canvas) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.Empty() {
		return false
	}
	w, h := e.vp.Size()
	if e.bgDrawn && w == e.bgWidth && h == e.bgHeight {
		return false
	}
	viz.DrawStarfield(c, w, h, nil)
	e.bgWidth, e.bgHeight = w, h
	e.bgDrawn = true
	return true
}

// DrawFrame paints the link and node layers for the current interaction
// state. Node positions are read as-is; the frame never writes back into
// the dataset. An empty dataset draws nothing (the placeholder applies).
func (e *Engine) DrawFrame(c viz.Canvas) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data.Empty() {
		return
	}
	connected := e.connectedLocked()

	for _, edge := range e.data.Edges {
		viz.DrawLink(c, e.data, edge, connected)
	}
	for _, n := range e.data.Nodes {
		viz.DrawNode(c, n, viz.GlyphState{
			Hovered: n.ID == e.hoveredID,
			Dimmed:  connected != nil && !connected[n.ID],
			Scale:   e.zoom,
		})
	}
}
