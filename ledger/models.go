// package ledger records intercepted agent tool-call events and derives the
// per-agent knowledge graph served to the visualization.
package ledger

import "time"

// Decision is the policy verdict attached to an intercepted action.
type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionBlock  Decision = "block"
	DecisionReview Decision = "review"
)

// Event is one intercepted tool call with its risk assessment.
type Event struct {
	EventID    string    `json:"event_id"`
	AgentID    string    `json:"agent_id"`
	SessionID  string    `json:"session_id"`
	ToolName   string    `json:"tool_name"`
	Decision   Decision  `json:"decision"`
	RiskScore  float64   `json:"risk_score"`
	Reason     string    `json:"reason,omitempty"`
	Indicators []string  `json:"indicators,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Filter narrows a ListEvents query. Zero values mean "no constraint".
type Filter struct {
	SessionID string
	Decision  Decision
	MinRisk   float64
	MaxRisk   float64
	Since     time.Time
	Until     time.Time
	Limit     int
	Offset    int
}

// AgentProfile is the rolled-up view of one agent's recorded activity.
type AgentProfile struct {
	AgentID      string    `json:"agent_id"`
	Goal         string    `json:"goal,omitempty"`
	IsRegistered bool      `json:"is_registered"`
	TotalEvents  int       `json:"total_events"`
	AvgRisk      float64   `json:"avg_risk"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
}

// Stats is the ledger-wide rollup.
type Stats struct {
	TotalEvents    int     `json:"total_events"`
	AllowedEvents  int     `json:"allowed_events"`
	BlockedEvents  int     `json:"blocked_events"`
	ReviewedEvents int     `json:"reviewed_events"`
	ActiveSessions int     `json:"active_sessions"`
	AvgRiskScore   float64 `json:"avg_risk_score"`
}
