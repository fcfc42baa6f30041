package serializer

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// State is the per-call view handed to handlers.
type State struct {
	serializer *Serializer
}

// Options returns the serializer options.
func (s *State) Options() Options {
	return s.serializer.opts
}

// Handle renders node with the handler registered for its kind.
func (s *State) Handle(node *mdast.Node) (string, error) {
	handler, ok := s.serializer.handlers[node.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNode, node.Kind)
	}
	return handler(s, node)
}

// ContainerFlow renders the block children of parent separated by blank lines.
// Items of a tight list are separated by a single newline.
func (s *State) ContainerFlow(parent *mdast.Node) (string, error) {
	var b strings.Builder

	for child := parent.FirstChild; child != nil; child = child.Next {
		out, err := s.Handle(child)
		if err != nil {
			return "", err
		}
		if child.Prev != nil {
			b.WriteString(between(child.Prev, child, parent))
		}
		b.WriteString(out)
	}

	return b.String(), nil
}

// ContainerPhrasing renders the inline children of parent back to back.
// Adjacent text children are escaped as one run, and each run sees the
// output around it so rules can look past node boundaries.
func (s *State) ContainerPhrasing(parent *mdast.Node) (string, error) {
	var parts []phrase
	for child := parent.FirstChild; child != nil; child = child.Next {
		if isPlainText(child) {
			if n := len(parts); n > 0 && parts[n-1].text {
				parts[n-1].value += child.TextValue()
				continue
			}
			parts = append(parts, phrase{text: true, value: child.TextValue()})
			continue
		}

		out, err := s.Handle(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, phrase{value: out})
	}

	var b strings.Builder
	for i, part := range parts {
		if !part.text {
			b.WriteString(part.value)
			continue
		}

		before := b.String()
		var after strings.Builder
		for _, next := range parts[i+1:] {
			after.WriteString(next.value)
		}

		ctx := EscapeContext{
			Text:        before + part.value + after.String(),
			AtLineStart: parent.IsBlock(),
		}
		b.WriteString(escapeRange(s.serializer.escapes, ctx, len(before), len(before)+len(part.value)))
	}

	return b.String(), nil
}

// phrase is one rendered inline child, or a run of unescaped text.
type phrase struct {
	text  bool
	value string
}

func isPlainText(node *mdast.Node) bool {
	if node.Kind != mdast.NodeText {
		return false
	}
	_, checkbox := node.Ext[ExtTaskCheckbox]
	return !checkbox
}

// between returns the separator written between two adjacent flow children.
func between(left, right, parent *mdast.Node) string {
	// Two adjacent lists would merge into one.
	if left.Kind == mdast.NodeList && right.Kind == mdast.NodeList {
		return "\n\n<!---->\n\n"
	}

	if parent.Kind == mdast.NodeList && isTight(parent) {
		return "\n"
	}

	return "\n\n"
}

func isTight(list *mdast.Node) bool {
	if list.Block == nil || list.Block.List == nil {
		return true
	}
	return list.Block.List.Tight
}

// LineMapper rewrites one line of a multi-line value.
// index is the 0-based line number and blank reports whether the line is empty.
type LineMapper func(line string, index int, blank bool) string

// IndentLines applies mapLine to every line of value and joins the results with
// newlines.
func IndentLines(value string, mapLine LineMapper) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = mapLine(line, i, line == "")
	}
	return strings.Join(lines, "\n")
}
