// Package format ties the parser and the serializer together: it reformats
// Markdown documents and verifies that footnote syntax survives a round trip.
package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdfoot/pkg/config"
	"github.com/yaklabco/mdfoot/pkg/footnote"
	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/parser/goldmark"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

// ErrParseFailure indicates the document could not be parsed.
var ErrParseFailure = errors.New("parse failure")

// ErrSerializeFailure indicates the tree could not be written back as Markdown.
var ErrSerializeFailure = errors.New("serialize failure")

// Options selects the flavor and output style of a Formatter.
type Options struct {
	Flavor         string
	Style          serializer.Options
	FirstLineBlank bool
}

// DefaultOptions returns GFM with the serializer's default markers.
func DefaultOptions() Options {
	return Options{
		Flavor: goldmark.FlavorGFM,
		Style:  serializer.DefaultOptions(),
	}
}

// OptionsFromConfig converts a resolved configuration into Options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Flavor != "" {
		opts.Flavor = string(cfg.Flavor)
	}
	opts.Style = serializer.Options{
		Bullet:   firstByte(cfg.Style.Bullet),
		Fence:    firstByte(cfg.Style.Fence),
		Emphasis: firstByte(cfg.Style.Emphasis),
	}
	opts.FirstLineBlank = cfg.Footnotes.FirstLineBlank
	return opts
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}

// Formatter parses and re-serializes Markdown. It is safe for concurrent use.
type Formatter struct {
	parser     *goldmark.Parser
	serializer *serializer.Serializer
}

// New creates a Formatter. Zero style markers fall back to the defaults.
func New(opts Options) (*Formatter, error) {
	style := opts.Style
	defaults := serializer.DefaultOptions()
	if style.Bullet == 0 {
		style.Bullet = defaults.Bullet
	}
	if style.Fence == 0 {
		style.Fence = defaults.Fence
	}
	if style.Emphasis == 0 {
		style.Emphasis = defaults.Emphasis
	}
	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}

	var footnoteOpts []footnote.Option
	if opts.FirstLineBlank {
		footnoteOpts = append(footnoteOpts, footnote.WithFirstLineBlank())
	}

	return &Formatter{
		parser:     goldmark.New(opts.Flavor),
		serializer: serializer.New(style, footnote.ToMarkdown(footnoteOpts...)),
	}, nil
}

// Parse parses content into a snapshot.
func (f *Formatter) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	snapshot, err := f.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	return snapshot, nil
}

// Result is the outcome of formatting one document.
type Result struct {
	Path      string
	Original  []byte
	Formatted []byte

	// Definitions and References count the footnote nodes in the parsed tree.
	Definitions int
	References  int
}

// Changed reports whether formatting altered the content.
func (r *Result) Changed() bool {
	return string(r.Original) != string(r.Formatted)
}

// Format parses content and serializes the tree back to Markdown.
func (f *Formatter) Format(ctx context.Context, path string, content []byte) (*Result, error) {
	snapshot, err := f.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	out, err := f.serializer.Serialize(snapshot.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSerializeFailure, path, err)
	}

	return &Result{
		Path:        path,
		Original:    content,
		Formatted:   []byte(out),
		Definitions: len(mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteDefinition)),
		References:  len(mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteReference)),
	}, nil
}
