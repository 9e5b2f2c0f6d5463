package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/agentguard/agentgraph/viz"
)

// Ledger is a SQLite-backed event store. Use ":memory:" as the path for an
// ephemeral ledger.
type Ledger struct {
	db *sql.DB
}

// Open opens (and migrates) a ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) migrate() error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS events (
  event_id   TEXT PRIMARY KEY,
  agent_id   TEXT NOT NULL,
  session_id TEXT NOT NULL,
  tool_name  TEXT NOT NULL,
  decision   TEXT NOT NULL,
  risk_score REAL NOT NULL DEFAULT 0,
  reason     TEXT,
  indicators TEXT,
  timestamp  TEXT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_events_agent_id ON events(agent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id)`,
		`CREATE TABLE IF NOT EXISTS agents (
  agent_id   TEXT PRIMARY KEY,
  goal       TEXT,
  registered INTEGER NOT NULL DEFAULT 0
)`,
	}
	for _, stmt := range ddl {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating ledger schema: %w", err)
		}
	}
	return nil
}

// RegisterAgent records an agent's declared goal. Registration is what
// separates known agents from ones only observed through their events.
func (l *Ledger) RegisterAgent(agentID, goal string) error {
	_, err := l.db.Exec(
		`INSERT INTO agents (agent_id, goal, registered) VALUES (?, ?, 1)
		 ON CONFLICT(agent_id) DO UPDATE SET goal = excluded.goal, registered = 1`,
		agentID, goal)
	if err != nil {
		return fmt.Errorf("registering agent %s: %w", agentID, err)
	}
	return nil
}

// Append stores one event. A missing event id or timestamp is filled in.
func (l *Ledger) Append(e Event) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	indicators, err := json.Marshal(e.Indicators)
	if err != nil {
		return fmt.Errorf("encoding indicators: %w", err)
	}
	_, err = l.db.Exec(
		`INSERT INTO events (event_id, agent_id, session_id, tool_name, decision, risk_score, reason, indicators, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EventID, e.AgentID, e.SessionID, e.ToolName, string(e.Decision),
		e.RiskScore, e.Reason, string(indicators), e.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("appending event %s: %w", e.EventID, err)
	}
	return nil
}

// ListEvents returns events matching the filter, newest first.
func (l *Ledger) ListEvents(f Filter) ([]Event, error) {
	var conds []string
	var args []any
	if f.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.Decision != "" {
		conds = append(conds, "decision = ?")
		args = append(args, string(f.Decision))
	}
	if f.MinRisk > 0 {
		conds = append(conds, "risk_score >= ?")
		args = append(args, f.MinRisk)
	}
	if f.MaxRisk > 0 {
		conds = append(conds, "risk_score <= ?")
		args = append(args, f.MaxRisk)
	}
	if !f.Since.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, f.Since.UTC().Format(time.RFC3339Nano))
	}
	if !f.Until.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, f.Until.UTC().Format(time.RFC3339Nano))
	}

	query := "SELECT event_id, agent_id, session_id, tool_name, decision, risk_score, reason, indicators, timestamp FROM events"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, f.Offset)

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Timeline returns a session's events in chronological order.
func (l *Ledger) Timeline(sessionID string) ([]Event, error) {
	rows, err := l.db.Query(
		`SELECT event_id, agent_id, session_id, tool_name, decision, risk_score, reason, indicators, timestamp
		 FROM events WHERE session_id = ? ORDER BY timestamp ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading timeline for %s: %w", sessionID, err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var decision, indicators, ts string
		var reason sql.NullString
		if err := rows.Scan(&e.EventID, &e.AgentID, &e.SessionID, &e.ToolName,
			&decision, &e.RiskScore, &reason, &indicators, &ts); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Decision = Decision(decision)
		e.Reason = reason.String
		if indicators != "" {
			if err := json.Unmarshal([]byte(indicators), &e.Indicators); err != nil {
				return nil, fmt.Errorf("decoding indicators for %s: %w", e.EventID, err)
			}
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp for %s: %w", e.EventID, err)
		}
		e.Timestamp = parsed
		events = append(events, e)
	}
	return events, rows.Err()
}

// AgentProfile rolls up one agent's activity. Returns nil when the agent has
// neither a registration nor any events.
func (l *Ledger) AgentProfile(agentID string) (*AgentProfile, error) {
	p := &AgentProfile{AgentID: agentID}

	var goal sql.NullString
	var registered sql.NullInt64
	err := l.db.QueryRow(`SELECT goal, registered FROM agents WHERE agent_id = ?`, agentID).
		Scan(&goal, &registered)
	switch err {
	case nil:
		p.Goal = goal.String
		p.IsRegistered = registered.Int64 != 0
	case sql.ErrNoRows:
	default:
		return nil, fmt.Errorf("loading agent %s: %w", agentID, err)
	}

	var total int
	var avg sql.NullFloat64
	var first, last sql.NullString
	err = l.db.QueryRow(
		`SELECT COUNT(*), AVG(risk_score), MIN(timestamp), MAX(timestamp) FROM events WHERE agent_id = ?`,
		agentID).Scan(&total, &avg, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("profiling agent %s: %w", agentID, err)
	}
	p.TotalEvents = total
	p.AvgRisk = avg.Float64
	if first.Valid {
		p.FirstSeen, _ = time.Parse(time.RFC3339Nano, first.String)
	}
	if last.Valid {
		p.LastSeen, _ = time.Parse(time.RFC3339Nano, last.String)
	}

	if !p.IsRegistered && p.TotalEvents == 0 {
		return nil, nil
	}
	return p, nil
}

// ListAgents returns the ids of every agent with a registration or at least
// one event.
func (l *Ledger) ListAgents() ([]string, error) {
	rows, err := l.db.Query(
		`SELECT agent_id FROM agents UNION SELECT DISTINCT agent_id FROM events`)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, rows.Err()
}

// Stats computes the ledger-wide rollup.
func (l *Ledger) Stats() (*Stats, error) {
	s := &Stats{}
	var avg sql.NullFloat64
	err := l.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(decision = 'allow'), 0),
		        COALESCE(SUM(decision = 'block'), 0),
		        COALESCE(SUM(decision = 'review'), 0),
		        COUNT(DISTINCT session_id),
		        AVG(risk_score)
		 FROM events`).Scan(&s.TotalEvents, &s.AllowedEvents, &s.BlockedEvents,
		&s.ReviewedEvents, &s.ActiveSessions, &avg)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}
	s.AvgRiskScore = avg.Float64
	return s, nil
}

// AgentGraph builds the visualization dataset for one agent: the agent node
// fanning out to its sessions, the tools those sessions invoked, and the
// behavior patterns the tools exhibited. Sessions, tools and patterns are
// deduplicated; edges are appended per occurrence.
func (l *Ledger) AgentGraph(agentID string) (*viz.AgentGraphData, error) {
	events, err := l.agentEvents(agentID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return &viz.AgentGraphData{Nodes: []*viz.GraphNode{}, Edges: []*viz.GraphEdge{}}, nil
	}

	profile, err := l.AgentProfile(agentID)
	if err != nil {
		return nil, err
	}

	data := &viz.AgentGraphData{}
	agentNodeID := "agent:" + agentID
	agentNode := &viz.GraphNode{
		ID:      agentNodeID,
		Type:    viz.NodeAgent,
		Label:   agentID,
		AgentID: agentID,
	}
	if profile != nil {
		if profile.Goal != "" {
			agentNode.Label = truncate(profile.Goal, 40)
		}
		agentNode.IsRegistered = profile.IsRegistered
		agentNode.TotalEvents = profile.TotalEvents
		agentNode.AvgRisk = profile.AvgRisk
	}
	data.Nodes = append(data.Nodes, agentNode)

	sessionsSeen := map[string]bool{}
	toolNodes := map[string]*viz.GraphNode{}
	patternsSeen := map[string]bool{}

	for _, event := range events {
		sessionNodeID := "session:" + event.SessionID
		if !sessionsSeen[event.SessionID] {
			sessionsSeen[event.SessionID] = true
			data.Nodes = append(data.Nodes, &viz.GraphNode{
				ID:        sessionNodeID,
				Type:      viz.NodeSession,
				Label:     truncate(event.SessionID, 16),
				SessionID: event.SessionID,
				Timestamp: event.Timestamp.Format(time.RFC3339),
			})
			data.Edges = append(data.Edges, &viz.GraphEdge{
				Source: agentNodeID, Target: sessionNodeID, Type: viz.EdgeHadSession,
			})
		}

		toolNodeID := "tool:" + event.ToolName
		if tn, ok := toolNodes[event.ToolName]; !ok {
			toolNodes[event.ToolName] = &viz.GraphNode{
				ID:       toolNodeID,
				Type:     viz.NodeTool,
				Label:    event.ToolName,
				Decision: string(event.Decision),
			}
			data.Nodes = append(data.Nodes, toolNodes[event.ToolName])
		} else {
			// Later events win so the badge shows the last decision.
			tn.Decision = string(event.Decision)
		}
		data.Edges = append(data.Edges, &viz.GraphEdge{
			Source: sessionNodeID, Target: toolNodeID, Type: viz.EdgeUsedTool,
			Decision: string(event.Decision), RiskScore: event.RiskScore,
		})

		for _, indicator := range event.Indicators {
			patternNodeID := "pattern:" + indicator
			if !patternsSeen[indicator] {
				patternsSeen[indicator] = true
				data.Nodes = append(data.Nodes, &viz.GraphNode{
					ID:        patternNodeID,
					Type:      viz.NodePattern,
					Label:     titleCase(indicator),
					Indicator: indicator,
				})
			}
			data.Edges = append(data.Edges, &viz.GraphEdge{
				Source: toolNodeID, Target: patternNodeID, Type: viz.EdgeExhibitedPattern,
			})
		}
	}
	return data, nil
}

func (l *Ledger) agentEvents(agentID string) ([]Event, error) {
	rows, err := l.db.Query(
		`SELECT event_id, agent_id, session_id, tool_name, decision, risk_score, reason, indicators, timestamp
		 FROM events WHERE agent_id = ? ORDER BY timestamp ASC`, agentID)
	if err != nil {
		return nil, fmt.Errorf("loading events for agent %s: %w", agentID, err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// titleCase turns an indicator key like "prompt_injection" into "Prompt
// Injection" for display.
func titleCase(indicator string) string {
	words := strings.Split(indicator, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
