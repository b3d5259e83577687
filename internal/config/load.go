package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type format int

const (
	formatYAML format = iota
	formatTOML
)

func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	default:
		return formatYAML
	}
}

// Load reads the configuration file at path, applies defaults and GOAT_*
// environment overrides, and validates the result. An empty path yields the
// defaults with environment overrides.
//
// Files ending in .toml are read as TOML; anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := parse(data, detectFormat(path), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte, f format, cfg *Config) error {
	switch f {
	case formatTOML:
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// applyEnvOverrides reads variables named GOAT_SECTION_FIELD. Environment
// values take precedence over the file.
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("GOAT_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("GOAT_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
	if val := os.Getenv("GOAT_PARSER_MAX_DEPTH"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid GOAT_PARSER_MAX_DEPTH: %w", err)
		}
		cfg.Parser.MaxDepth = i
	}
	if val := os.Getenv("GOAT_PASSES"); val != "" {
		cfg.Passes = nil
		for _, name := range strings.Split(val, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Passes = append(cfg.Passes, name)
			}
		}
	}
	if val := os.Getenv("GOAT_OUTPUT_FORMAT"); val != "" {
		cfg.Output.Format = val
	}
	if val := os.Getenv("GOAT_OUTPUT_COLOR"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid GOAT_OUTPUT_COLOR: %w", err)
		}
		cfg.Output.Color = b
	}
	if val := os.Getenv("GOAT_WATCH_DEBOUNCE"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid GOAT_WATCH_DEBOUNCE: %w", err)
		}
		cfg.Watch.Debounce = d
	}
	return nil
}
