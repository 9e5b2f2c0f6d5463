// package web serves the agent graph dashboard: templated pages, the JSON
// graph API, the event ingest endpoint, and the per-session view engines
// that turn pointer and viewport events into rendered frames.
package web

import (
	"net/http"
	"sync"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	gut "github.com/panyam/goutils/template"
	"github.com/panyam/templar"
	"golang.org/x/time/rate"

	"github.com/agentguard/agentgraph/engine"
	"github.com/agentguard/agentgraph/layout"
	"github.com/agentguard/agentgraph/ledger"
)

// viewer is one browser session's engine for one agent, plus its cached
// background layer. The engine survives fullscreen toggles and page polls;
// only a new dataset replaces it.
type viewer struct {
	eng   *engine.Engine
	bgSVG string
}

// App wires the handlers, templates, sessions and the ledger together.
type App struct {
	Config    Config
	Templates *templar.TemplateGroup
	Session   *scs.SessionManager
	Ledger    *ledger.Ledger

	ingestLimiter *rate.Limiter

	mu      sync.Mutex
	viewers map[string]*viewer
}

// NewApp creates the web application over an open ledger.
func NewApp(cfg Config, l *ledger.Ledger) *App {
	templates := templar.NewTemplateGroup()
	templates.Loader = (&templar.LoaderList{}).AddLoader(templar.NewFileSystemLoader(cfg.TemplatesDir))
	templates.AddFuncs(gut.DefaultFuncMap())

	session := scs.New()

	return &App{
		Config:        cfg,
		Templates:     templates,
		Session:       session,
		Ledger:        l,
		ingestLimiter: rate.NewLimiter(rate.Limit(cfg.IngestRate), cfg.IngestBurst),
		viewers:       make(map[string]*viewer),
	}
}

// Handler builds the full route table wrapped in session and logging
// middleware.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("GET /agents/{id}", a.handleAgentPage)

	// Data API, mirroring the monitoring backend's contract.
	mux.HandleFunc("GET /api/agents", a.handleListAgents)
	mux.HandleFunc("GET /api/agents/{id}/graph", a.handleAgentGraph)
	mux.HandleFunc("POST /api/agents/{id}/register", a.handleRegisterAgent)
	mux.HandleFunc("POST /api/events", a.handleIngestEvent)
	mux.HandleFunc("GET /api/stats", a.handleStats)

	// View engine events and frames.
	mux.HandleFunc("POST /view/{id}/pointer", a.handlePointer)
	mux.HandleFunc("POST /view/{id}/click", a.handleClick)
	mux.HandleFunc("POST /view/{id}/key", a.handleKey)
	mux.HandleFunc("POST /view/{id}/viewport", a.handleViewport)
	mux.HandleFunc("GET /view/{id}/frame.svg", a.handleFrame)
	mux.HandleFunc("GET /view/{id}/background.svg", a.handleBackground)
	mux.HandleFunc("GET /view/{id}/detail", a.handleDetail)
	mux.HandleFunc("DELETE /view/{id}/detail", a.handleCloseDetail)

	return LoggingMiddleware(a.Session.LoadAndSave(mux))
}

// viewerID identifies the browser session, creating it on first use.
func (a *App) viewerID(r *http.Request) string {
	id := a.Session.GetString(r.Context(), "viewer_id")
	if id == "" {
		id = uuid.NewString()
		a.Session.Put(r.Context(), "viewer_id", id)
	}
	return id
}

// viewerFor returns the session's engine for an agent, creating and feeding
// it on first access.
func (a *App) viewerFor(r *http.Request, agentID string) (*viewer, error) {
	key := a.viewerID(r) + "/" + agentID

	a.mu.Lock()
	v, ok := a.viewers[key]
	a.mu.Unlock()
	if ok {
		return v, nil
	}

	data, err := a.Ledger.AgentGraph(agentID)
	if err != nil {
		return nil, err
	}
	eng := engine.New(layout.NewForceSim(), a.Config.BaseHeight)
	eng.ObserveWidth(defaultContainerWidth)
	eng.SetData(data)

	v = &viewer{eng: eng}
	a.mu.Lock()
	a.viewers[key] = v
	a.mu.Unlock()
	return v, nil
}

// defaultContainerWidth stands in until the first real layout measurement
// arrives from the client.
const defaultContainerWidth = 800.0
