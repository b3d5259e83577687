// Package config loads goat settings from YAML or TOML files and the
// environment.
package config

import "time"

// Config is the complete goat configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" toml:"log"`
	Parser ParserConfig `yaml:"parser" toml:"parser"`
	// Passes names the tree passes run after building, in order.
	Passes []string     `yaml:"passes" toml:"passes"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Watch  WatchConfig  `yaml:"watch" toml:"watch"`
}

type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level" toml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format" toml:"format"`
}

type ParserConfig struct {
	// MaxDepth bounds expression nesting.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

type OutputConfig struct {
	// Format is "sexpr" for the tree notation or "source" for goat syntax.
	Format string `yaml:"format" toml:"format"`
	Color  bool   `yaml:"color" toml:"color"`
}

type WatchConfig struct {
	// Debounce is how long a file must stay quiet before it is recompiled.
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}
