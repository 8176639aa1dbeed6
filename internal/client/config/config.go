package config

import (
	"fmt"
	"time"
)

// DefaultInferenceURL is the hosted MRI classification endpoint.
const DefaultInferenceURL = "https://hirdeshds-ai-4-alzheimers.hf.space/predict"

// Config holds runtime settings for the MRI scan CLI.
//
// Fields:
//   - InferenceURL: full URL of the POST /predict endpoint.
//   - RequestTimeout: upper bound for one inference request.
//   - OnlineCheckInterval: how often the client probes endpoint reachability.
//   - ProfilePath: SQLite file holding accounts, session and reports.
//   - ExportDir: where exported report documents are written.
//   - MaxUploadSize: largest accepted image, in bytes.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	InferenceURL        string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	ProfilePath         string
	ExportDir           string
	MaxUploadSize       int64
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.InferenceURL = DefaultInferenceURL
	c.RequestTimeout = 60 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.ProfilePath = "profile.db"
	c.ExportDir = "reports"
	c.MaxUploadSize = 10 << 20
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env included), a JSON or TOML file (if given) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadSize)
	}
	return nil
}
