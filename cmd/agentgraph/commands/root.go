package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ledgerPath string

var rootCmd = &cobra.Command{
	Use:   "agentgraph",
	Short: "agentgraph explores the knowledge graph of monitored agents",
	Long: `agentgraph records intercepted agent activity in a local ledger and
renders each agent's knowledge graph: its sessions, the tools it invoked,
and the behavior patterns it triggered.`,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultPath := os.Getenv("AGENTGRAPH_LEDGER_PATH")
	if defaultPath == "" {
		defaultPath = "agentgraph.db"
	}
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", defaultPath, "Path to the event ledger database")
}
