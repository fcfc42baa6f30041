package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdfoot/pkg/config"
)

// ValidationError is a problem with one configuration field.
type ValidationError struct {
	Field    string // dotted path, e.g. "style.bullet"
	Value    any
	Message  string
	FilePath string // config file holding the value, when known
}

// Error formats the error as "file: field: message", omitting unknown parts.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// choice is a string field limited to a fixed set of values.
type choice struct {
	field   string
	name    string
	value   func(*config.Config) string
	allowed []string
}

//nolint:gochecknoglobals // Read-only lookup table.
var choices = []choice{
	{"flavor", "flavor", func(c *config.Config) string { return string(c.Flavor) },
		[]string{string(config.FlavorCommonMark), string(config.FlavorGFM)}},
	{"style.bullet", "value", func(c *config.Config) string { return c.Style.Bullet }, []string{"*", "-", "+"}},
	{"style.fence", "value", func(c *config.Config) string { return c.Style.Fence }, []string{"`", "~"}},
	{"style.emphasis", "value", func(c *config.Config) string { return c.Style.Emphasis }, []string{"*", "_"}},
	{"backups.mode", "backup mode", func(c *config.Config) string { return c.Backups.Mode },
		[]string{config.BackupModeSidecar, config.BackupModeNone}},
}

// Validate checks a configuration for errors and warnings.
// Empty choice fields are accepted; they fall back to defaults downstream.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for _, c := range choices {
		if v := c.value(cfg); v != "" && !slices.Contains(c.allowed, v) {
			result.fail(c.field, v, "invalid %s %q; must be one of: %s", c.name, v, strings.Join(c.allowed, ", "))
		}
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	if cfg.Write && cfg.Check {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "check",
			Message: "--check and --write both set; files will not be written",
		})
	}

	return result
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
