package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentguard/agentgraph/ledger"
	"github.com/agentguard/agentgraph/viz"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *ledger.Ledger) {
	t.Helper()
	l, err := ledger.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	cfg := DefaultConfig()
	app := NewApp(cfg, l)
	server := httptest.NewServer(app.Handler())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}, l
}

func seedAgent(t *testing.T, l *ledger.Ledger) {
	t.Helper()
	require.NoError(t, l.RegisterAgent("a1", "Summarize reports"))
	for _, e := range []ledger.Event{
		{AgentID: "a1", SessionID: "s1", ToolName: "read_file", Decision: ledger.DecisionAllow, RiskScore: 0.1},
		{AgentID: "a1", SessionID: "s1", ToolName: "send_email", Decision: ledger.DecisionBlock, RiskScore: 0.9,
			Indicators: []string{"external_exfil"}},
	} {
		require.NoError(t, l.Append(e))
	}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAgentGraphEndpoint(t *testing.T) {
	server, client, l := newTestServer(t)
	seedAgent(t, l)

	resp, err := client.Get(server.URL + "/api/agents/a1/graph")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data viz.AgentGraphData
	decodeJSON(t, resp, &data)
	assert.Len(t, data.Nodes, 5, "agent, session, two tools, one pattern")
	assert.Len(t, data.Edges, 4)
	assert.NotNil(t, data.NodeByID("pattern:external_exfil"))
}

func TestIngestEndpoint(t *testing.T) {
	server, client, l := newTestServer(t)

	resp := postJSON(t, client, server.URL+"/api/events", ledger.Event{
		AgentID: "a1", SessionID: "s1", ToolName: "read_file",
		Decision: ledger.DecisionAllow, RiskScore: 0.1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	events, err := l.ListEvents(ledger.Filter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// Missing identity fields are rejected.
	resp = postJSON(t, client, server.URL+"/api/events", map[string]string{"tool_name": "x"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterAndStatsEndpoints(t *testing.T) {
	server, client, _ := newTestServer(t)

	resp := postJSON(t, client, server.URL+"/api/agents/a1/register", map[string]string{"goal": "Do the thing"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := client.Get(server.URL + "/api/stats")
	require.NoError(t, err)
	var stats ledger.Stats
	decodeJSON(t, resp, &stats)
	assert.Equal(t, 0, stats.TotalEvents)

	resp, err = client.Get(server.URL + "/api/agents")
	require.NoError(t, err)
	var agents struct {
		Agents []string `json:"agents"`
	}
	decodeJSON(t, resp, &agents)
	assert.Equal(t, []string{"a1"}, agents.Agents)
}

func TestViewInteractionFlow(t *testing.T) {
	server, client, l := newTestServer(t)
	seedAgent(t, l)
	base := server.URL + "/view/a1"

	// Report the container measurement, then fullscreen, in the order the
	// client would.
	resp := postJSON(t, client, base+"/viewport", map[string]any{"container_width": 800})
	var dims struct {
		Width      float64 `json:"width"`
		Height     float64 `json:"height"`
		Fullscreen bool    `json:"fullscreen"`
	}
	decodeJSON(t, resp, &dims)
	assert.Equal(t, 800.0, dims.Width)
	assert.Equal(t, 500.0, dims.Height)

	resp = postJSON(t, client, base+"/viewport", map[string]any{
		"fullscreen": true, "window_width": 1920, "window_height": 1080,
	})
	decodeJSON(t, resp, &dims)
	assert.True(t, dims.Fullscreen)
	assert.Equal(t, 1920.0, dims.Width)

	// Escape exits fullscreen.
	resp = postJSON(t, client, base+"/key", map[string]string{"key": "Escape"})
	var key struct {
		Fullscreen bool `json:"fullscreen"`
	}
	decodeJSON(t, resp, &key)
	assert.False(t, key.Fullscreen)

	// A frame renders as SVG.
	frameResp, err := client.Get(base + "/frame.svg")
	require.NoError(t, err)
	raw, err := io.ReadAll(frameResp.Body)
	frameResp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", frameResp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(raw), "<svg"))
	assert.Contains(t, string(raw), "<circle", "nodes are drawn")

	// No selection yet.
	detailResp, err := client.Get(base + "/detail")
	require.NoError(t, err)
	detailResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, detailResp.StatusCode)
}

func TestViewBackgroundCached(t *testing.T) {
	server, client, l := newTestServer(t)
	seedAgent(t, l)
	base := server.URL + "/view/a1"

	fetch := func() string {
		resp, err := client.Get(base + "/background.svg")
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		return string(raw)
	}

	first := fetch()
	assert.Contains(t, first, "<circle", "the starfield has stars")
	assert.Equal(t, first, fetch(), "unchanged dimensions reuse the same starfield")

	resp := postJSON(t, client, base+"/viewport", map[string]any{
		"fullscreen": true, "window_width": 1920, "window_height": 1080,
	})
	resp.Body.Close()
	assert.NotEqual(t, first, fetch(), "a dimension change regenerates the starfield")
}

func TestViewEmptyAgent(t *testing.T) {
	server, client, _ := newTestServer(t)

	resp, err := client.Get(server.URL + "/view/ghost/frame.svg")
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No activity recorded",
		"an empty dataset renders the placeholder message")
	assert.NotContains(t, string(raw), "<line")
}

func TestIngestRateLimit(t *testing.T) {
	l, err := ledger.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	cfg := DefaultConfig()
	cfg.IngestRate = 1
	cfg.IngestBurst = 2
	app := NewApp(cfg, l)
	server := httptest.NewServer(app.Handler())
	t.Cleanup(server.Close)

	client := server.Client()
	saw429 := false
	for i := 0; i < 10; i++ {
		resp := postJSON(t, client, server.URL+"/api/events", ledger.Event{
			AgentID: "a1", SessionID: fmt.Sprintf("s%d", i), ToolName: "t",
			Decision: ledger.DecisionAllow,
		})
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			saw429 = true
		}
	}
	assert.True(t, saw429, "the burst allowance runs out")
}
