package web

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the serve-time options. Values come from an optional YAML
// file with env-var fallbacks; flags on the serve command override both.
type Config struct {
	Address      string  `yaml:"address"`
	LedgerPath   string  `yaml:"ledger_path"`
	TemplatesDir string  `yaml:"templates_dir"`
	BaseHeight   float64 `yaml:"base_height"`

	// IngestRate caps accepted events per second on the ingest endpoint;
	// IngestBurst is the short-term allowance.
	IngestRate  float64 `yaml:"ingest_rate"`
	IngestBurst int     `yaml:"ingest_burst"`
}

// DefaultConfig returns the built-in defaults, with env overrides applied.
func DefaultConfig() Config {
	cfg := Config{
		Address:      ":8080",
		LedgerPath:   "agentgraph.db",
		TemplatesDir: "./web/templates",
		BaseHeight:   500,
		IngestRate:   50,
		IngestBurst:  100,
	}
	if addr := os.Getenv("AGENTGRAPH_WEB_PORT"); addr != "" {
		cfg.Address = addr
	}
	if path := os.Getenv("AGENTGRAPH_LEDGER_PATH"); path != "" {
		cfg.LedgerPath = path
	}
	return cfg
}

// LoadConfig reads a YAML config file over the defaults. A missing path is
// not an error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
