package commands

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentguard/agentgraph/ledger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo scenario into the ledger",
	Long: `Seeds the ledger with a scripted scenario: a registered research agent
working normally, then drifting into credential access and an exfiltration
attempt that gets blocked. Handy for trying out the dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := ledger.Open(ledgerPath)
		if err != nil {
			return err
		}
		defer l.Close()

		if err := l.RegisterAgent("research-assistant", "Summarize quarterly sales reports"); err != nil {
			return err
		}

		base := time.Now().Add(-2 * time.Hour)
		events := []ledger.Event{
			{SessionID: "sess-morning", ToolName: "read_file", Decision: ledger.DecisionAllow, RiskScore: 0.1},
			{SessionID: "sess-morning", ToolName: "search_web", Decision: ledger.DecisionAllow, RiskScore: 0.15},
			{SessionID: "sess-morning", ToolName: "read_file", Decision: ledger.DecisionAllow, RiskScore: 0.1},
			{SessionID: "sess-afternoon", ToolName: "read_file", Decision: ledger.DecisionReview, RiskScore: 0.55,
				Reason:     "file path outside working set",
				Indicators: []string{"credential_path"}},
			{SessionID: "sess-afternoon", ToolName: "send_email", Decision: ledger.DecisionBlock, RiskScore: 0.92,
				Reason:     "outbound message to unknown recipient with attached secrets",
				Indicators: []string{"external_exfil", "goal_drift"}},
			{SessionID: "sess-afternoon", ToolName: "search_web", Decision: ledger.DecisionAllow, RiskScore: 0.2},
		}
		for i, e := range events {
			e.AgentID = "research-assistant"
			e.Timestamp = base.Add(time.Duration(i) * 10 * time.Minute)
			if err := l.Append(e); err != nil {
				return err
			}
		}

		color.Green("Seeded %d events for agent %q into %s", len(events), "research-assistant", ledgerPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
