package format

import (
	"context"
	"sort"

	"github.com/yaklabco/mdfoot/pkg/langdetect"
	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// Position is a serializable source point.
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// DumpNode describes one node of a footnote subtree.
type DumpNode struct {
	Kind       string    `json:"kind"                 yaml:"kind"`
	Identifier string    `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Label      string    `json:"label,omitempty"      yaml:"label,omitempty"`
	Start      *Position `json:"start,omitempty"      yaml:"start,omitempty"`
	End        *Position `json:"end,omitempty"        yaml:"end,omitempty"`
	Value      string    `json:"value,omitempty"      yaml:"value,omitempty"`

	// Language is the info string of a code block, or a detected language
	// when the block has none; Detected tells the two apart.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Detected bool   `json:"detected,omitempty" yaml:"detected,omitempty"`

	Children []DumpNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Dump lists the footnotes of a document.
type Dump struct {
	Path         string     `json:"path"                   yaml:"path"`
	Definitions  []DumpNode `json:"definitions"            yaml:"definitions"`
	References   []DumpNode `json:"references"             yaml:"references"`
	Undefined    []string   `json:"undefined,omitempty"    yaml:"undefined,omitempty"`
	Unreferenced []string   `json:"unreferenced,omitempty" yaml:"unreferenced,omitempty"`
}

// Dump parses content and describes its footnote definitions and references.
func (f *Formatter) Dump(ctx context.Context, path string, content []byte) (*Dump, error) {
	snapshot, err := f.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	return NewDump(snapshot), nil
}

// NewDump describes the footnotes of a parsed snapshot. Undefined lists
// referenced identifiers with no definition, Unreferenced the reverse.
func NewDump(snapshot *mdast.FileSnapshot) *Dump {
	dump := &Dump{
		Path:        snapshot.Path,
		Definitions: []DumpNode{},
		References:  []DumpNode{},
	}

	defined := make(map[string]bool)
	referenced := make(map[string]bool)

	for _, def := range mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteDefinition) {
		dump.Definitions = append(dump.Definitions, dumpNode(def))
		if attrs := def.Footnote(); attrs != nil {
			defined[attrs.Identifier] = true
		}
	}
	for _, ref := range mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteReference) {
		dump.References = append(dump.References, dumpNode(ref))
		if attrs := ref.Footnote(); attrs != nil {
			referenced[attrs.Identifier] = true
		}
	}

	dump.Undefined = missingFrom(referenced, defined)
	dump.Unreferenced = missingFrom(defined, referenced)

	return dump
}

func missingFrom(keys, set map[string]bool) []string {
	var out []string
	for key := range keys {
		if !set[key] {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func dumpNode(n *mdast.Node) DumpNode {
	node := DumpNode{Kind: n.Kind.String()}

	if attrs := n.Footnote(); attrs != nil {
		node.Identifier = attrs.Identifier
		node.Label = attrs.Label
	}
	if n.Position != nil {
		node.Start = toPosition(n.Position.Start)
		node.End = toPosition(n.Position.End)
	}

	switch n.Kind {
	case mdast.NodeText, mdast.NodeCodeSpan:
		node.Value = n.TextValue()
	case mdast.NodeCodeBlock:
		if n.Block != nil && n.Block.CodeBlock != nil {
			code := n.Block.CodeBlock
			node.Value = string(code.Value)
			node.Language = code.Info
			if node.Language == "" {
				if lang, ok := langdetect.Detect(code.Value); ok {
					node.Language = lang
					node.Detected = true
				}
			}
		}
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		node.Children = append(node.Children, dumpNode(child))
	}

	return node
}

func toPosition(p mdast.Point) *Position {
	return &Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}
