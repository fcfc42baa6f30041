// Package config defines core configuration types for mdfoot.
// These types are pure data structures with no dependency on the loader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// StyleConfig selects the markers written for constructs with several spellings.
type StyleConfig struct {
	// Bullet is the unordered list marker: "*", "-" or "+".
	Bullet string `json:"bullet" yaml:"bullet"`

	// Fence is the code fence character: "`" or "~".
	Fence string `json:"fence" yaml:"fence"`

	// Emphasis is the emphasis marker: "*" or "_".
	Emphasis string `json:"emphasis" yaml:"emphasis"`
}

// FootnotesConfig controls how footnote definitions are written.
type FootnotesConfig struct {
	// FirstLineBlank starts definition content on the line after "[^label]:".
	FirstLineBlank bool `json:"first_line_blank" yaml:"first_line_blank"`
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Mode    string `json:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// DumpFormat specifies the output format of the dump command.
type DumpFormat string

const (
	DumpFormatYAML  DumpFormat = "yaml"
	DumpFormatJSON  DumpFormat = "json"
	DumpFormatTable DumpFormat = "table"
)

// IsValid reports whether f is a known dump format.
func (f DumpFormat) IsValid() bool {
	switch f {
	case DumpFormatYAML, DumpFormatJSON, DumpFormatTable:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for mdfoot.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `json:"flavor" yaml:"flavor"`

	// Style selects list, fence and emphasis markers.
	Style StyleConfig `json:"style" yaml:"style"`

	// Footnotes controls footnote definition layout.
	Footnotes FootnotesConfig `json:"footnotes" yaml:"footnotes"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `json:"ignore" yaml:"ignore"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `json:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place instead of printing.
	Write bool `json:"-" yaml:"-"`

	// Check reports files whose formatting would change without writing them.
	Check bool `json:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `json:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `json:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorGFM,
		Style: StyleConfig{
			Bullet:   "*",
			Fence:    "`",
			Emphasis: "*",
		},
		Ignore: nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// BackupsEnabled reports whether a backup should be written before a file is
// replaced.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && c.Backups.Mode != BackupModeNone && !c.NoBackups
}
