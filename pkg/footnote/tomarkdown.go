package footnote

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

// ErrMissingIdentifier is returned when a footnote node has neither a label nor
// an identifier.
var ErrMissingIdentifier = errors.New("footnote has no label or identifier")

// bodyIndent is the indentation of definition content after the first line.
const bodyIndent = "    "

// Option configures ToMarkdown.
type Option func(*writeConfig)

type writeConfig struct {
	firstLineBlank bool
}

// WithFirstLineBlank starts definition content on the line after "[^label]:"
// with every line indented, instead of on the marker line.
func WithFirstLineBlank() Option {
	return func(c *writeConfig) {
		c.firstLineBlank = true
	}
}

// ToMarkdown returns the serializer extension for footnote nodes.
func ToMarkdown(opts ...Option) serializer.Extension {
	cfg := writeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return serializer.Extension{
		Name: "footnote",
		Handlers: map[mdast.NodeKind]serializer.Handler{
			mdast.NodeFootnoteDefinition: cfg.definition,
			mdast.NodeFootnoteReference:  reference,
		},
		Escapes: EscapeRules(),
	}
}

func reference(_ *serializer.State, node *mdast.Node) (string, error) {
	label, err := writeLabel(node)
	if err != nil {
		return "", err
	}
	return "[^" + label + "]", nil
}

func (c writeConfig) definition(state *serializer.State, node *mdast.Node) (string, error) {
	label, err := writeLabel(node)
	if err != nil {
		return "", err
	}

	marker := "[^" + label + "]:"
	if !node.HasChildren() {
		return marker, nil
	}

	body, err := state.ContainerFlow(node)
	if err != nil {
		return "", err
	}

	if c.firstLineBlank {
		return marker + "\n" + serializer.IndentLines(body, indentAll), nil
	}
	return marker + " " + serializer.IndentLines(body, indentExceptFirst), nil
}

func indentAll(line string, _ int, blank bool) string {
	if blank {
		return line
	}
	return bodyIndent + line
}

func indentExceptFirst(line string, index int, blank bool) string {
	if index == 0 {
		return line
	}
	return indentAll(line, index, blank)
}

func writeLabel(node *mdast.Node) (string, error) {
	label := node.Footnote().AssociationLabel()
	if label == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingIdentifier, node.Kind)
	}
	return EscapeLabel(label), nil
}

// EscapeRules returns the rules that keep plain text from being read as a
// footnote. They all apply to '[' and are consulted in this order.
func EscapeRules() []serializer.EscapeRule {
	return []serializer.EscapeRule{
		{Name: "footnote-call", Char: '[', Match: footnoteCall},
		{Name: "inline-note", Char: '[', Match: inlineNote},
		{Name: "definition-like", Char: '[', Match: definitionLike},
	}
}

// footnoteCall matches "[^".
func footnoteCall(ctx serializer.EscapeContext, i int) bool {
	return i+1 < len(ctx.Text) && ctx.Text[i+1] == '^'
}

// inlineNote matches "^[".
func inlineNote(ctx serializer.EscapeContext, i int) bool {
	return i > 0 && ctx.Text[i-1] == '^'
}

// definitionLike matches "[label]:" at the start of a line.
func definitionLike(ctx serializer.EscapeContext, i int) bool {
	if !ctx.BeginsLine(i) {
		return false
	}
	end := serializer.ClosingBracket(ctx.Text, i)
	return end > 0 && end+1 < len(ctx.Text) && ctx.Text[end+1] == ':'
}
