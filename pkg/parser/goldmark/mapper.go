package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdfoot/pkg/footnote"
	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

// ExtTable marks the raw node standing in for a GFM table.
const ExtTable = "table"

// mapper converts a goldmark AST into an mdast.Node tree.
// A mapper serves one parse pass.
type mapper struct {
	snapshot *mdast.FileSnapshot
	content  []byte
	builder  *mdast.TreeBuilder
	hooks    footnote.ParseExtension
}

// newMapper creates a mapper for the given snapshot.
func newMapper(snapshot *mdast.FileSnapshot, hooks footnote.ParseExtension) *mapper {
	return &mapper{
		snapshot: snapshot,
		content:  snapshot.Content,
		hooks:    hooks,
	}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) (*mdast.Node, error) {
	doc := mdast.NewDocument()
	m.builder = mdast.NewTreeBuilder(doc)

	if err := m.mapChildren(gmDoc); err != nil {
		return nil, err
	}

	if len(m.content) > 0 {
		doc.Position = m.snapshot.SpanOf(0, len(m.content))
	}
	return doc, nil
}

// mapChildren maps all children of a goldmark node into the current node.
func (m *mapper) mapChildren(gmParent ast.Node) error {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := m.mapNode(child); err != nil {
			return err
		}
	}
	return nil
}

// mapNode converts a single goldmark node and its descendants.
func (m *mapper) mapNode(gmNode ast.Node) error {
	switch gmn := gmNode.(type) {
	case *FootnoteDefinition:
		return m.mapFootnoteDefinition(gmn)

	case *FootnoteReference:
		return m.mapFootnoteReference(gmn)

	case *ast.Text:
		m.mapText(gmn)
		return nil

	case *ast.String:
		m.builder.Add(mdast.NewText(string(gmn.Value)))
		return nil

	case *ast.AutoLink:
		m.builder.Add(m.mapAutoLink(gmn))
		return nil
	}

	node, descend := m.newNode(gmNode)
	m.builder.Enter(node)
	if descend {
		if err := m.mapChildren(gmNode); err != nil {
			return err
		}
	}
	m.builder.Exit()
	m.closeSpan(node, gmNode)
	return nil
}

// newNode creates the mdast node for gmNode and reports whether its goldmark
// children should be mapped into it.
func (m *mapper) newNode(gmNode ast.Node) (*mdast.Node, bool) {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node := mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gmn.Level)
		return node, true

	case *ast.Paragraph, *ast.TextBlock:
		return mdast.NewNode(mdast.NodeParagraph), true

	case *ast.List:
		return m.mapList(gmn), true

	case *ast.ListItem:
		return mdast.NewNode(mdast.NodeListItem), true

	case *ast.Blockquote:
		return mdast.NewNode(mdast.NodeBlockquote), true

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn), false

	case *ast.CodeBlock:
		node := mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
			Indented: true,
			Value:    m.linesValue(gmn.Lines()),
		})
		return node, false

	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak), false

	case *ast.HTMLBlock:
		node := mdast.NewNode(mdast.NodeHTMLBlock)
		literal := m.linesValue(gmn.Lines())
		if gmn.HasClosure() {
			literal = append(literal, gmn.ClosureLine.Value(m.content)...)
		}
		node.Block = mdast.NewBlockAttrs()
		node.Block.Literal = literal
		return node, false

	case *ast.Emphasis:
		if gmn.Level == 2 {
			return mdast.NewNode(mdast.NodeStrong), true
		}
		return mdast.NewNode(mdast.NodeEmphasis), true

	case *ast.CodeSpan:
		node := mdast.NewNode(mdast.NodeCodeSpan)
		var value []byte
		for child := gmn.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				value = append(value, textNode.Value(m.content)...)
			}
		}
		node.Inline = mdast.NewInlineAttrs().WithText(value)
		return node, false

	case *ast.Link:
		node := mdast.NewNode(mdast.NodeLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		return node, true

	case *ast.Image:
		node := mdast.NewNode(mdast.NodeImage)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		return node, true

	case *ast.RawHTML:
		node := mdast.NewNode(mdast.NodeHTMLInline)
		var value []byte
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			value = append(value, seg.Value(m.content)...)
		}
		node.Inline = mdast.NewInlineAttrs().WithText(value)
		return node, false

	case *east.Strikethrough:
		node := mdast.NewNode(mdast.NodeEmphasis)
		node.Ext = map[string]any{serializer.ExtStrikethrough: true}
		return node, true

	case *east.TaskCheckBox:
		node := mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{serializer.ExtTaskCheckbox: gmn.IsChecked}
		return node, false

	case *east.Table:
		node := mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{ExtTable: true}
		return node, true

	default:
		return mdast.NewNode(mdast.NodeRaw), true
	}
}

// mapFootnoteDefinition fires the definition hooks around the body.
func (m *mapper) mapFootnoteDefinition(def *FootnoteDefinition) error {
	tok := footnote.Token{
		Kind:  footnote.TokenDefinition,
		Label: string(def.Label),
		Start: m.snapshot.PointAt(def.MarkerStart),
		End:   m.snapshot.PointAt(def.MarkerStop),
	}

	if err := m.hooks.Enter(m.builder, tok); err != nil {
		return err
	}
	if err := m.mapChildren(def); err != nil {
		return err
	}
	return m.hooks.Exit(m.builder, tok)
}

func (m *mapper) mapFootnoteReference(ref *FootnoteReference) error {
	tok := footnote.Token{
		Kind:  footnote.TokenReference,
		Label: string(ref.Label),
		Start: m.snapshot.PointAt(ref.Start),
		End:   m.snapshot.PointAt(ref.Stop),
	}

	if err := m.hooks.Enter(m.builder, tok); err != nil {
		return err
	}
	return m.hooks.Exit(m.builder, tok)
}

// mapText adds the text and, when the goldmark node ends a line, the break
// that follows it. Escapes and character references are resolved so the tree
// holds the literal characters.
func (m *mapper) mapText(textNode *ast.Text) {
	seg := textNode.Segment
	if value := textNode.Value(m.content); len(value) > 0 {
		if !textNode.IsRaw() {
			value = util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(value)))
		}
		node := mdast.NewText(string(value))
		node.Position = m.snapshot.SpanOf(seg.Start, seg.Stop)
		m.builder.Add(node)
	}

	switch {
	case textNode.HardLineBreak():
		m.builder.Add(mdast.NewNode(mdast.NodeHardBreak))
	case textNode.SoftLineBreak():
		m.builder.Add(mdast.NewNode(mdast.NodeSoftBreak))
	}
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if list.IsOrdered() {
		listAttrs.Delimiter = string(list.Marker)
	} else {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(listAttrs)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.content))
	}

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		Info:  info,
		Value: m.linesValue(codeBlock.Lines()),
	})
	return node
}

// mapAutoLink converts a goldmark AutoLink to a link with a text child.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(al.URL(m.content)),
		Autolink:    true,
	})
	mdast.AppendChild(node, mdast.NewText(string(al.Label(m.content))))
	return node
}

// linesValue concatenates the source of a block's line segments.
func (m *mapper) linesValue(lines *text.Segments) []byte {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.Bytes()
}

// closeSpan sets the position of a node that was just exited.
// Leaf blocks take their line segments; containers and inlines span their
// positioned children.
func (m *mapper) closeSpan(node *mdast.Node, gmNode ast.Node) {
	if node.Position != nil {
		return
	}

	if gmNode.Type() != ast.TypeInline && gmNode.Lines().Len() > 0 {
		lines := gmNode.Lines()
		node.Position = m.snapshot.SpanOf(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
	} else if first, last := firstPositioned(node), mdast.LastPositioned(node); first != nil && last != nil {
		node.Position = &mdast.Span{Start: first.Position.Start, End: last.Position.End}
	}

	// Tables are written back from source, so they span whole lines.
	if node.Position != nil && node.Kind == mdast.NodeRaw && node.Ext[ExtTable] == true {
		start, _ := m.snapshot.LineBounds(node.Position.Start.Offset)
		_, end := m.snapshot.LineBounds(node.Position.End.Offset)
		node.Position = m.snapshot.SpanOf(start, end)
	}
}

func firstPositioned(n *mdast.Node) *mdast.Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Position != nil {
			return child
		}
	}
	return nil
}
