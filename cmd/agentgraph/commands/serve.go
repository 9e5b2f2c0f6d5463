package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentguard/agentgraph/ledger"
	"github.com/agentguard/agentgraph/web"
)

var (
	serveAddr   string
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agent graph dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := web.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Address = serveAddr
		}
		cfg.LedgerPath = ledgerPath

		l, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer l.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		color.Green("Serving agent graphs on %s (ledger: %s)", cfg.Address, cfg.LedgerPath)
		server := &web.Server{Address: cfg.Address, App: web.NewApp(cfg, l)}
		return server.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", os.Getenv("AGENTGRAPH_CONFIG"), "Optional YAML config file")
	rootCmd.AddCommand(serveCmd)
}
