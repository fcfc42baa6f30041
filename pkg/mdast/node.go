package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeFootnoteDefinition

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline
	NodeFootnoteReference

	// Fallback for unrecognized content.
	NodeRaw
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeDocument:           "Document",
	NodeParagraph:          "Paragraph",
	NodeHeading:            "Heading",
	NodeList:               "List",
	NodeListItem:           "ListItem",
	NodeBlockquote:         "Blockquote",
	NodeCodeBlock:          "CodeBlock",
	NodeThematicBreak:      "ThematicBreak",
	NodeHTMLBlock:          "HTMLBlock",
	NodeFootnoteDefinition: "FootnoteDefinition",
	NodeText:               "Text",
	NodeEmphasis:           "Emphasis",
	NodeStrong:             "Strong",
	NodeCodeSpan:           "CodeSpan",
	NodeLink:               "Link",
	NodeImage:              "Image",
	NodeSoftBreak:          "SoftBreak",
	NodeHardBreak:          "HardBreak",
	NodeHTMLInline:         "HTMLInline",
	NodeFootnoteReference:  "FootnoteReference",
	NodeRaw:                "Raw",
}

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position is the source extent of the node.
	// It is nil for nodes that were not produced by parsing.
	Position *Span

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	// Ext holds extension-specific attributes (e.g., GFM).
	Ext map[string]any
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeFootnoteDefinition:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink,
		NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline,
		NodeFootnoteReference:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Footnote returns the footnote attributes of a definition or reference.
// It returns nil for every other kind of node.
func (n *Node) Footnote() *FootnoteAttrs {
	switch n.Kind {
	case NodeFootnoteDefinition:
		if n.Block != nil {
			return n.Block.Footnote
		}
	case NodeFootnoteReference:
		if n.Inline != nil {
			return n.Inline.Footnote
		}
	}
	return nil
}

// TextValue returns the literal text of text-like nodes.
func (n *Node) TextValue() string {
	if n.Inline == nil {
		return ""
	}
	return string(n.Inline.Text)
}
