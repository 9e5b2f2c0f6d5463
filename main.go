package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/agentguard/agentgraph/ledger"
	"github.com/agentguard/agentgraph/web"
)

var (
	addr       = flag.String("addr", "", "Address to serve the dashboard on (overrides config)")
	configPath = flag.String("config", os.Getenv("AGENTGRAPH_CONFIG"), "Optional YAML config file")
)

func main() {
	if os.Getenv("AGENTGRAPH_ENV") == "dev" {
		logger := slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		}))
		slog.SetDefault(logger)
	}
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env file")
	}

	flag.Parse()

	cfg, err := web.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if *addr != "" {
		cfg.Address = *addr
	}

	l, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		log.Fatal("Error opening ledger: ", err)
	}
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &web.Server{Address: cfg.Address, App: web.NewApp(cfg, l)}
	if err := server.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
