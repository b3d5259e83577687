package config

import (
	"time"

	"github.com/iley/goat/internal/parser"
)

const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultOutputFormat  = OutputSexpr
	DefaultWatchDebounce = 200 * time.Millisecond
)

const (
	OutputSexpr  = "sexpr"
	OutputSource = "source"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
