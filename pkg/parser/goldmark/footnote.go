package goldmark

import (
	"fmt"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdfoot/pkg/footnote"
)

// Priorities relative to the built-in goldmark parsers. The inline parser runs
// after code spans and before links so "[^" is never taken as a link label.
const (
	footnoteBlockPriority  = 999
	footnoteInlinePriority = 101
)

// FootnoteDefinition is the goldmark node for "[^label]:" and its body.
type FootnoteDefinition struct {
	ast.BaseBlock

	// Label is the raw label source between "[^" and "]".
	Label []byte

	// MarkerStart and MarkerStop delimit "[^label]:" in the source.
	MarkerStart int
	MarkerStop  int
}

// KindFootnoteDefinition is the NodeKind of FootnoteDefinition.
var KindFootnoteDefinition = ast.NewNodeKind("MdfootFootnoteDefinition")

// Kind implements ast.Node.
func (n *FootnoteDefinition) Kind() ast.NodeKind {
	return KindFootnoteDefinition
}

// Dump implements ast.Node.
func (n *FootnoteDefinition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label":  string(n.Label),
		"Marker": strconv.Itoa(n.MarkerStart) + ".." + strconv.Itoa(n.MarkerStop),
	}, nil)
}

// FootnoteReference is the goldmark node for "[^label]".
type FootnoteReference struct {
	ast.BaseInline

	// Label is the raw label source between "[^" and "]".
	Label []byte

	// Start and Stop delimit "[^label]" in the source.
	Start int
	Stop  int
}

// KindFootnoteReference is the NodeKind of FootnoteReference.
var KindFootnoteReference = ast.NewNodeKind("MdfootFootnoteReference")

// Kind implements ast.Node.
func (n *FootnoteReference) Kind() ast.NodeKind {
	return KindFootnoteReference
}

// Dump implements ast.Node.
func (n *FootnoteReference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label": string(n.Label),
		"Span":  fmt.Sprintf("%d..%d", n.Start, n.Stop),
	}, nil)
}

type footnoteBlockParser struct{}

// NewFootnoteBlockParser returns a parser.BlockParser for footnote definitions.
//
//nolint:ireturn // goldmark registers parsers by interface
func NewFootnoteBlockParser() parser.BlockParser {
	return &footnoteBlockParser{}
}

func (b *footnoteBlockParser) Trigger() []byte {
	return []byte{'['}
}

func (b *footnoteBlockParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos+1 >= len(line) || line[pos] != '[' || line[pos+1] != '^' {
		return nil, parser.NoChildren
	}

	label, closes, ok := footnote.ScanLabel(line, pos+2)
	if !ok {
		return nil, parser.NoChildren
	}
	next := closes + 1
	if next >= len(line) || line[next] != ':' {
		return nil, parser.NoChildren
	}

	padding := segment.Padding
	node := &FootnoteDefinition{
		Label:       []byte(label),
		MarkerStart: segment.Start + pos - padding,
		MarkerStop:  segment.Start + next + 1 - padding,
	}

	advance := next + 1 - padding
	if advance >= len(line) {
		reader.Advance(advance)
		return node, parser.NoChildren
	}
	reader.AdvanceAndSetPadding(advance, padding)
	return node, parser.HasChildren
}

// Continue keeps the definition open for blank lines and lines indented by at
// least four columns. Anything else closes it; goldmark then tries the line as
// a lazy paragraph continuation.
func (b *footnoteBlockParser) Continue(_ ast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Continue | parser.HasChildren
	}
	childpos, padding := util.IndentPosition(line, reader.LineOffset(), 4)
	if childpos < 0 {
		return parser.Close
	}
	reader.AdvanceAndSetPadding(childpos, padding)
	return parser.Continue | parser.HasChildren
}

func (b *footnoteBlockParser) Close(ast.Node, text.Reader, parser.Context) {}

func (b *footnoteBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *footnoteBlockParser) CanAcceptIndentedLine() bool {
	return false
}

type footnoteInlineParser struct{}

// NewFootnoteInlineParser returns a parser.InlineParser for footnote references.
//
//nolint:ireturn // goldmark registers parsers by interface
func NewFootnoteInlineParser() parser.InlineParser {
	return &footnoteInlineParser{}
}

// Trigger includes '!' so that "![^a]" is not claimed by the image parser.
func (s *footnoteInlineParser) Trigger() []byte {
	return []byte{'!', '['}
}

func (s *footnoteInlineParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, segment := block.PeekLine()

	open := 0
	if len(line) > 0 && line[0] == '!' {
		open = 1
	}
	if open+1 >= len(line) || line[open] != '[' || line[open+1] != '^' {
		return nil
	}

	label, closes, ok := footnote.ScanLabel(line, open+2)
	if !ok {
		return nil
	}

	// The bang stays literal text; the reference is picked up on the next
	// trigger at '['.
	if open == 1 {
		block.Advance(1)
		return ast.NewTextSegment(text.NewSegment(segment.Start, segment.Start+1))
	}

	block.Advance(closes + 1)
	return &FootnoteReference{
		Label: []byte(label),
		Start: segment.Start,
		Stop:  segment.Start + closes + 1,
	}
}

type footnoteExtension struct{}

// Footnotes is a goldmark.Extender that recognizes footnote definitions and
// references.
//
//nolint:gochecknoglobals // stateless extender, same shape as goldmark's own
var Footnotes goldmark.Extender = &footnoteExtension{}

func (e *footnoteExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewFootnoteBlockParser(), footnoteBlockPriority),
		),
		parser.WithInlineParsers(
			util.Prioritized(NewFootnoteInlineParser(), footnoteInlinePriority),
		),
	)
}
