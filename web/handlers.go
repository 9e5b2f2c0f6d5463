package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/agentguard/agentgraph/ledger"
	"github.com/agentguard/agentgraph/viz"
)

// framesPerPoll is how many simulation ticks each frame request advances.
// The client polls frames while the layout is warm, so this sets the
// animation speed.
const framesPerPoll = 3

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// --- Pages ---

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	agents, err := a.Ledger.ListAgents()
	if err != nil {
		http.Error(w, "failed to list agents", http.StatusInternalServerError)
		return
	}
	stats, err := a.Ledger.Stats()
	if err != nil {
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "index.html", map[string]any{
		"Title":  "Monitored Agents",
		"Agents": agents,
		"Stats":  stats,
	})
}

func (a *App) handleAgentPage(w http.ResponseWriter, r *http.Request) {
	agentID := r.PathValue("id")
	data, err := a.Ledger.AgentGraph(agentID)
	if err != nil {
		http.Error(w, "failed to load agent graph", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "agent.html", map[string]any{
		"Title":      "Agent " + agentID,
		"AgentID":    agentID,
		"BaseHeight": a.Config.BaseHeight,
		"Empty":      data.Empty(),
	})
}

func (a *App) renderPage(w http.ResponseWriter, name string, data map[string]any) {
	templates, err := a.Templates.Loader.Load(name, "")
	if err != nil || len(templates) == 0 {
		slog.Error("template load failed", "template", name, "error", err)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := a.Templates.RenderHtmlTemplate(w, templates[0], "", data, nil); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// --- Data API ---

func (a *App) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := a.Ledger.ListAgents()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list agents")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": agents})
}

func (a *App) handleAgentGraph(w http.ResponseWriter, r *http.Request) {
	data, err := a.Ledger.AgentGraph(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build graph")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (a *App) handleRegisterAgent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Goal string `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := a.Ledger.RegisterAgent(r.PathValue("id"), body.Goal); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to register agent")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "registered"})
}

func (a *App) handleIngestEvent(w http.ResponseWriter, r *http.Request) {
	if !a.ingestLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "ingest rate exceeded")
		return
	}
	var event ledger.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event")
		return
	}
	if event.AgentID == "" || event.SessionID == "" || event.ToolName == "" {
		writeError(w, http.StatusBadRequest, "agent_id, session_id and tool_name are required")
		return
	}
	if err := a.Ledger.Append(event); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store event")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Ledger.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- View engine events ---

func (a *App) handlePointer(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}
	var body struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Leave bool    `json:"leave"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid pointer event")
		return
	}
	if body.Leave {
		v.eng.PointerLeave()
	} else {
		v.eng.PointerMove(body.X, body.Y)
	}
	writeJSON(w, http.StatusOK, map[string]any{"hovered": v.eng.HoveredID()})
}

func (a *App) handleClick(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}
	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid click event")
		return
	}
	v.eng.Click(body.X, body.Y)
	if d := v.eng.Detail(); d != nil {
		writeJSON(w, http.StatusOK, d)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleKey(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid key event")
		return
	}
	v.eng.KeyDown(body.Key)
	writeJSON(w, http.StatusOK, map[string]any{"fullscreen": v.eng.Fullscreen()})
}

// handleViewport applies one viewport transition: a container width
// measurement, a fullscreen toggle, or a window resize. Fullscreen messages
// are applied before any container measurement carried alongside them.
func (a *App) handleViewport(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}
	var body struct {
		Fullscreen     *bool    `json:"fullscreen,omitempty"`
		WindowWidth    float64  `json:"window_width,omitempty"`
		WindowHeight   float64  `json:"window_height,omitempty"`
		ContainerWidth *float64 `json:"container_width,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid viewport event")
		return
	}

	switch {
	case body.Fullscreen != nil && *body.Fullscreen:
		v.eng.EnterFullscreen(body.WindowWidth, body.WindowHeight)
	case body.Fullscreen != nil:
		v.eng.ExitFullscreen()
	case body.ContainerWidth != nil:
		v.eng.ObserveWidth(*body.ContainerWidth)
	case body.WindowWidth > 0 || body.WindowHeight > 0:
		v.eng.WindowResize(body.WindowWidth, body.WindowHeight)
	}

	width, height := v.eng.Size()
	writeJSON(w, http.StatusOK, map[string]any{
		"width":      width,
		"height":     height,
		"fullscreen": v.eng.Fullscreen(),
	})
}

// --- Frames ---

func (a *App) handleFrame(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}

	width, height := v.eng.Size()
	canvas := viz.NewSVGCanvas(width, height)

	if msg, empty := v.eng.Placeholder(); empty {
		canvas.Text(width/2, height/2, 14, "#94a3b8", msg)
	} else {
		for i := 0; i < framesPerPoll; i++ {
			if !v.eng.Tick() {
				break
			}
		}
		v.eng.DrawFrame(canvas)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, canvas.String())
}

func (a *App) handleBackground(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}

	width, height := v.eng.Size()
	canvas := viz.NewSVGCanvas(width, height)

	a.mu.Lock()
	if v.eng.DrawBackground(canvas) || v.bgSVG == "" {
		v.bgSVG = canvas.String()
	}
	svg := v.bgSVG
	a.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, svg)
}

func (a *App) handleDetail(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}
	if d := v.eng.Detail(); d != nil {
		writeJSON(w, http.StatusOK, d)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleCloseDetail(w http.ResponseWriter, r *http.Request) {
	v, err := a.viewerFor(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view unavailable")
		return
	}
	v.eng.CloseDetail()
	w.WriteHeader(http.StatusNoContent)
}
