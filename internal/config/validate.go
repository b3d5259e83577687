package config

import (
	"fmt"
	"strings"
)

// FieldError is a problem with one configuration field.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "parser.max_depth".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
	outputFormats = []string{OutputSexpr, OutputSource}
)

// Validate checks cfg and returns a ValidationError listing every problem,
// or nil. Pass names are checked when the pipeline is built.
func Validate(cfg *Config) error {
	var errs []FieldError

	if !oneOf(strings.ToLower(cfg.Log.Level), logLevels) {
		errs = append(errs, FieldError{"log.level", fmt.Sprintf("must be one of %v, got %q", logLevels, cfg.Log.Level)})
	}
	if !oneOf(cfg.Log.Format, logFormats) {
		errs = append(errs, FieldError{"log.format", fmt.Sprintf("must be one of %v, got %q", logFormats, cfg.Log.Format)})
	}
	if cfg.Parser.MaxDepth <= 0 {
		errs = append(errs, FieldError{"parser.max_depth", fmt.Sprintf("must be positive, got %d", cfg.Parser.MaxDepth)})
	}
	for i, name := range cfg.Passes {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, FieldError{fmt.Sprintf("passes[%d]", i), "must not be empty"})
		}
	}
	if !oneOf(cfg.Output.Format, outputFormats) {
		errs = append(errs, FieldError{"output.format", fmt.Sprintf("must be one of %v, got %q", outputFormats, cfg.Output.Format)})
	}
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{"watch.debounce", "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
