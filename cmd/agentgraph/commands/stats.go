package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentguard/agentgraph/ledger"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger-wide activity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := ledger.Open(ledgerPath)
		if err != nil {
			return err
		}
		defer l.Close()

		stats, err := l.Stats()
		if err != nil {
			return err
		}
		agents, err := l.ListAgents()
		if err != nil {
			return err
		}

		fmt.Printf("Agents:          %d\n", len(agents))
		fmt.Printf("Total events:    %d\n", stats.TotalEvents)
		fmt.Printf("Active sessions: %d\n", stats.ActiveSessions)
		fmt.Printf("Allowed:         %s\n", color.GreenString("%d", stats.AllowedEvents))
		fmt.Printf("Reviewed:        %s\n", color.YellowString("%d", stats.ReviewedEvents))
		fmt.Printf("Blocked:         %s\n", color.RedString("%d", stats.BlockedEvents))
		fmt.Printf("Avg risk score:  %.2f\n", stats.AvgRiskScore)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
