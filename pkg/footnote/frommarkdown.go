// Package footnote adds GFM footnotes to the mdast tree.
//
// FromMarkdown turns the footnote tokens emitted by the parser into
// FootnoteDefinition and FootnoteReference nodes. ToMarkdown writes those nodes
// back out and keeps ordinary text from being read as footnote syntax.
package footnote

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// ErrUnbalanced is returned when an exit token does not match the open node.
var ErrUnbalanced = errors.New("unbalanced footnote token")

// TokenKind is the closed set of footnote tokens.
type TokenKind uint8

const (
	// TokenDefinition spans "[^label]:" and, once exited, the definition body.
	TokenDefinition TokenKind = iota + 1

	// TokenReference spans "[^label]".
	TokenReference
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenDefinition:
		return "footnoteDefinition"
	case TokenReference:
		return "footnoteReference"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Token is a footnote construct recognized by the tokenizer.
type Token struct {
	Kind TokenKind

	// Label is the label as written between "[^" and "]", escapes included.
	Label string

	// Start and End delimit the marker: "[^label]:" for a definition,
	// "[^label]" for a reference.
	Start mdast.Point
	End   mdast.Point
}

// HookFunc reacts to a token entering or leaving.
type HookFunc func(builder *mdast.TreeBuilder, tok Token) error

// TokenHooks is the pair of callbacks for one token kind.
type TokenHooks struct {
	Enter HookFunc
	Exit  HookFunc
}

// ParseExtension maps footnote tokens to tree operations.
type ParseExtension struct {
	Definition TokenHooks
	Reference  TokenHooks
}

// Hooks returns the callbacks registered for kind.
func (e ParseExtension) Hooks(kind TokenKind) (TokenHooks, error) {
	switch kind {
	case TokenDefinition:
		return e.Definition, nil
	case TokenReference:
		return e.Reference, nil
	default:
		return TokenHooks{}, fmt.Errorf("footnote: unknown token kind %s", kind)
	}
}

// Enter runs the enter hook for tok.
func (e ParseExtension) Enter(builder *mdast.TreeBuilder, tok Token) error {
	hooks, err := e.Hooks(tok.Kind)
	if err != nil {
		return err
	}
	if hooks.Enter == nil {
		return nil
	}
	return hooks.Enter(builder, tok)
}

// Exit runs the exit hook for tok.
func (e ParseExtension) Exit(builder *mdast.TreeBuilder, tok Token) error {
	hooks, err := e.Hooks(tok.Kind)
	if err != nil {
		return err
	}
	if hooks.Exit == nil {
		return nil
	}
	return hooks.Exit(builder, tok)
}

// FromMarkdown returns the hooks that build footnote nodes.
func FromMarkdown() ParseExtension {
	return ParseExtension{
		Definition: TokenHooks{Enter: enterDefinition, Exit: exitDefinition},
		Reference:  TokenHooks{Enter: enterReference, Exit: exitReference},
	}
}

func enterDefinition(builder *mdast.TreeBuilder, tok Token) error {
	label := UnescapeLabel(tok.Label)
	node := mdast.NewFootnoteDefinition(Normalize(label), label)
	node.Position = &mdast.Span{Start: tok.Start, End: tok.End}
	builder.Enter(node)
	return nil
}

// exitDefinition closes the definition and stretches its end over the body.
func exitDefinition(builder *mdast.TreeBuilder, tok Token) error {
	node, err := exitKind(builder, mdast.NodeFootnoteDefinition, tok)
	if err != nil {
		return err
	}

	if last := mdast.LastPositioned(node); last != nil && last.Position.End.Offset > node.Position.End.Offset {
		node.Position.End = last.Position.End
	}
	return nil
}

func enterReference(builder *mdast.TreeBuilder, tok Token) error {
	label := UnescapeLabel(tok.Label)
	node := mdast.NewFootnoteReference(Normalize(label), label)
	node.Position = &mdast.Span{Start: tok.Start, End: tok.End}
	builder.Enter(node)
	return nil
}

func exitReference(builder *mdast.TreeBuilder, tok Token) error {
	_, err := exitKind(builder, mdast.NodeFootnoteReference, tok)
	return err
}

func exitKind(builder *mdast.TreeBuilder, kind mdast.NodeKind, tok Token) (*mdast.Node, error) {
	current := builder.Current()
	if current == nil || current.Kind != kind || builder.Depth() <= 1 {
		return nil, fmt.Errorf("%w: exit %s at %d:%d", ErrUnbalanced, tok.Kind, tok.Start.Line, tok.Start.Column)
	}
	return builder.Exit(), nil
}
