package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// defaultIgnore lists the patterns suggested by generated templates.
var defaultIgnore = []string{"vendor/**", "node_modules/**", ".git/**"}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(NewConfig())
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: gfm

# Output style
# style:
#   bullet: "*"      # "*", "-" or "+"
#   fence: "` + "`" + `"       # "` + "`" + `" or "~"
#   emphasis: "*"    # "*" or "_"

# Footnote definitions
# footnotes:
#   first_line_blank: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes()
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(` - Full Template
#
# Every setting is listed with its default value.

# Markdown flavor: commonmark or gfm
flavor: gfm

# Markers used when writing lists, code fences and emphasis
style:
  bullet: "*"
  fence: "` + "`" + `"
  emphasis: "*"

# Footnote definitions
footnotes:
  # Start definition content on the line after "[^label]:"
  first_line_blank: false

# Backups written before a file is rewritten with --write
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"
`)

	return buf.Bytes()
}

// templateToJSON renders the persisted fields of cfg as indented JSON,
// with the usual ignore patterns filled in.
func templateToJSON(cfg *Config) ([]byte, error) {
	doc := cfg.Clone()
	if len(doc.Ignore) == 0 {
		doc.Ignore = defaultIgnore
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdfoot configuration
# See: https://github.com/yaklabco/mdfoot`
}
