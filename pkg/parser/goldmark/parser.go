// Package goldmark parses Markdown with footnotes into an mdast tree using the
// goldmark library.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdfoot/pkg/footnote"
	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown into a FileSnapshot. Footnotes are recognized in every
// flavor. A Parser is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
	hooks  footnote.ParseExtension
}

// New returns a parser for flavor, "commonmark" or "gfm". Unknown flavors
// parse as commonmark.
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
		hooks:  footnote.FromMarkdown(),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse parses content into a snapshot whose tree carries positions and
// whose footnote nodes were built by the footnote hooks. The snapshot holds
// its own copy of content.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, bytes.Clone(content))
	doc := p.md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(parser.NewContext()))

	// goldmark cannot be interrupted, so check again before the tree is built.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root, err := newMapper(snapshot, p.hooks).mapDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("build tree for %s: %w", path, err)
	}
	snapshot.Root = root
	mdast.SetFile(root, snapshot)

	return snapshot, nil
}

func flavorOrDefault(flavor string) string {
	if flavor == FlavorGFM {
		return FlavorGFM
	}
	return FlavorCommonMark
}

// newGoldmarkInstance registers footnotes for every flavor and the GFM
// block and inline extensions for gfm. Linkify is never enabled, so bare
// URLs stay text.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	extensions := []goldmark.Extender{Footnotes}
	if flavor == FlavorGFM {
		extensions = append(extensions, extension.Table, extension.Strikethrough, extension.TaskList)
	}
	return goldmark.New(goldmark.WithExtensions(extensions...))
}
