package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfoot/pkg/config"
)

// envVarPrefix is the prefix for all mdfoot environment variables.
const envVarPrefix = "MDFOOT_"

// envBinding applies one MDFOOT_* variable to a config.
type envBinding struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envBindings is sorted by suffix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{"BACKUPS_ENABLED", "Enable backups when writing: true or false",
		boolSetter(func(c *config.Config) *bool { return &c.Backups.Enabled })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none",
		stringSetter(func(c *config.Config) *string { return &c.Backups.Mode })},
	{"FLAVOR", "Markdown flavor: commonmark or gfm",
		func(c *config.Config, v string) error { c.Flavor = config.Flavor(v); return nil }},
	{"FOOTNOTES_FIRST_LINE_BLANK", "Start definition content on its own line: true or false",
		boolSetter(func(c *config.Config) *bool { return &c.Footnotes.FirstLineBlank })},
	{"IGNORE", "Comma-separated list of ignore patterns",
		func(c *config.Config, v string) error { c.Ignore = splitList(v); return nil }},
	{"JOBS", "Number of parallel workers (0 = auto)",
		intSetter(func(c *config.Config) *int { return &c.Jobs })},
	{"NO_BACKUPS", "Disable backups: true or false",
		boolSetter(func(c *config.Config) *bool { return &c.NoBackups })},
	{"STYLE_BULLET", "Unordered list marker: *, - or +",
		stringSetter(func(c *config.Config) *string { return &c.Style.Bullet })},
	{"STYLE_EMPHASIS", "Emphasis marker: * or _",
		stringSetter(func(c *config.Config) *string { return &c.Style.Emphasis })},
	{"STYLE_FENCE", "Code fence character: ` or ~",
		stringSetter(func(c *config.Config) *string { return &c.Style.Fence })},
}

// LoadFromEnv applies MDFOOT_* environment variables to cfg.
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, binding := range envBindings {
		name := envVarPrefix + binding.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func stringSetter(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

func boolSetter(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = b
		return nil
	}
}

func intSetter(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*field(cfg) = n
		return nil
	}
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, len(envBindings))
	for i, binding := range envBindings {
		vars[i] = EnvVar{Name: envVarPrefix + binding.suffix, Description: binding.description}
	}
	return vars
}
