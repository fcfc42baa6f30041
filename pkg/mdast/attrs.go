package mdast

// BlockAttrs carries the block-level data of a node. Only the field
// matching the node's kind is set.
type BlockAttrs struct {
	HeadingLevel int             // NodeHeading, 1-6
	List         *ListAttrs      // NodeList
	CodeBlock    *CodeBlockAttrs // NodeCodeBlock
	Footnote     *FootnoteAttrs  // NodeFootnoteDefinition
	Literal      []byte          // NodeHTMLBlock
}

// InlineAttrs carries the inline-level data of a node.
type InlineAttrs struct {
	Text     []byte         // NodeText, NodeCodeSpan, NodeHTMLInline
	Link     *LinkAttrs     // NodeLink, NodeImage
	Footnote *FootnoteAttrs // NodeFootnoteReference
}

// FootnoteAttrs names a footnote definition or reference.
// An empty field means the value is absent.
type FootnoteAttrs struct {
	// Identifier is the normalized key shared by a definition and its references.
	Identifier string

	// Label is the text as written in the source, escapes resolved.
	Label string
}

// AssociationLabel returns Label, or Identifier when Label is absent.
func (a *FootnoteAttrs) AssociationLabel() string {
	if a == nil {
		return ""
	}
	if a.Label != "" {
		return a.Label
	}
	return a.Identifier
}

// ListAttrs describes a list as it appeared in the source.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string // "-", "+" or "*"; empty for ordered lists
	StartNumber  int
	Delimiter    string // "." or ")"
	Tight        bool
}

// CodeBlockAttrs describes a fenced or indented code block.
type CodeBlockAttrs struct {
	// Info is the fence info string. Always empty for indented blocks.
	Info string

	Indented bool

	// Value is the code without fences or indentation.
	Value []byte
}

// LinkAttrs describes a link or image. Reference-style links are resolved
// by the parser, so only the destination and title survive.
type LinkAttrs struct {
	Destination string
	Title       string
	Autolink    bool
}

func NewBlockAttrs() *BlockAttrs { return &BlockAttrs{} }

func NewInlineAttrs() *InlineAttrs { return &InlineAttrs{} }

func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

func (a *BlockAttrs) WithFootnote(attrs *FootnoteAttrs) *BlockAttrs {
	a.Footnote = attrs
	return a
}

func (a *InlineAttrs) WithFootnote(attrs *FootnoteAttrs) *InlineAttrs {
	a.Footnote = attrs
	return a
}

func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}
