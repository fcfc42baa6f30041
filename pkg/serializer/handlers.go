package serializer

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// Ext keys for GFM constructs carried on generic node kinds.
const (
	// ExtStrikethrough marks an emphasis node written with tildes.
	ExtStrikethrough = "strikethrough"

	// ExtTaskCheckbox marks a text node standing in for a task list checkbox.
	// The value is true when the box is checked.
	ExtTaskCheckbox = "taskCheckbox"
)

func baseHandlers() map[mdast.NodeKind]Handler {
	return map[mdast.NodeKind]Handler{
		mdast.NodeDocument:      handleFlow,
		mdast.NodeParagraph:     handlePhrasing,
		mdast.NodeHeading:       handleHeading,
		mdast.NodeList:          handleFlow,
		mdast.NodeListItem:      handleListItem,
		mdast.NodeBlockquote:    handleBlockquote,
		mdast.NodeCodeBlock:     handleCodeBlock,
		mdast.NodeThematicBreak: handleThematicBreak,
		mdast.NodeHTMLBlock:     handleHTMLBlock,
		mdast.NodeText:          handleText,
		mdast.NodeEmphasis:      handleEmphasis,
		mdast.NodeStrong:        handleStrong,
		mdast.NodeCodeSpan:      handleCodeSpan,
		mdast.NodeLink:          handleLink,
		mdast.NodeImage:         handleImage,
		mdast.NodeSoftBreak:     handleSoftBreak,
		mdast.NodeHardBreak:     handleHardBreak,
		mdast.NodeHTMLInline:    handleHTMLInline,
		mdast.NodeRaw:           handleRaw,
	}
}

func handleFlow(state *State, node *mdast.Node) (string, error) {
	return state.ContainerFlow(node)
}

func handlePhrasing(state *State, node *mdast.Node) (string, error) {
	return state.ContainerPhrasing(node)
}

func handleHeading(state *State, node *mdast.Node) (string, error) {
	level := 1
	if node.Block != nil && node.Block.HeadingLevel > 0 {
		level = min(node.Block.HeadingLevel, 6)
	}

	content, err := state.ContainerPhrasing(node)
	if err != nil {
		return "", err
	}

	marker := strings.Repeat("#", level)
	if content == "" {
		return marker, nil
	}
	return marker + " " + content, nil
}

func handleListItem(state *State, node *mdast.Node) (string, error) {
	marker := listMarker(state, node)

	content, err := state.ContainerFlow(node)
	if err != nil {
		return "", err
	}
	if content == "" {
		return marker, nil
	}

	pad := strings.Repeat(" ", len(marker)+1)
	return marker + " " + IndentLines(content, func(line string, index int, blank bool) string {
		if index == 0 || blank {
			return line
		}
		return pad + line
	}), nil
}

func listMarker(state *State, item *mdast.Node) string {
	list := item.Parent
	if list == nil || list.Block == nil || list.Block.List == nil || !list.Block.List.Ordered {
		return string(state.Options().Bullet)
	}

	attrs := list.Block.List
	delimiter := attrs.Delimiter
	if delimiter == "" {
		delimiter = "."
	}

	number := attrs.StartNumber
	for sibling := item.Prev; sibling != nil; sibling = sibling.Prev {
		number++
	}
	return strconv.Itoa(number) + delimiter
}

func handleBlockquote(state *State, node *mdast.Node) (string, error) {
	content, err := state.ContainerFlow(node)
	if err != nil {
		return "", err
	}
	return IndentLines(content, func(line string, _ int, blank bool) string {
		if blank {
			return ">"
		}
		return "> " + line
	}), nil
}

func handleCodeBlock(state *State, node *mdast.Node) (string, error) {
	var value, info string
	if node.Block != nil && node.Block.CodeBlock != nil {
		value = string(node.Block.CodeBlock.Value)
		info = node.Block.CodeBlock.Info
	}
	value = strings.TrimSuffix(value, "\n")

	fenceChar := state.Options().Fence
	fence := strings.Repeat(string(fenceChar), max(3, longestRun(value, fenceChar)+1))

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(info)
	b.WriteByte('\n')
	if value != "" {
		b.WriteString(value)
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	return b.String(), nil
}

func handleThematicBreak(*State, *mdast.Node) (string, error) {
	return "***", nil
}

func handleHTMLBlock(_ *State, node *mdast.Node) (string, error) {
	if node.Block == nil {
		return "", nil
	}
	return strings.TrimRight(string(node.Block.Literal), "\n"), nil
}

func handleText(state *State, node *mdast.Node) (string, error) {
	if checked, ok := node.Ext[ExtTaskCheckbox].(bool); ok {
		if checked {
			return "[x] ", nil
		}
		return "[ ] ", nil
	}
	return state.Safe(node.TextValue(), beginsLine(node)), nil
}

// beginsLine reports whether an inline node is the first thing on its line.
func beginsLine(node *mdast.Node) bool {
	if node.Prev == nil {
		return node.Parent == nil || node.Parent.IsBlock()
	}
	return node.Prev.Kind == mdast.NodeSoftBreak || node.Prev.Kind == mdast.NodeHardBreak
}

func handleEmphasis(state *State, node *mdast.Node) (string, error) {
	content, err := state.ContainerPhrasing(node)
	if err != nil {
		return "", err
	}
	if _, ok := node.Ext[ExtStrikethrough]; ok {
		return "~~" + content + "~~", nil
	}
	marker := string(state.Options().Emphasis)
	return marker + content + marker, nil
}

func handleStrong(state *State, node *mdast.Node) (string, error) {
	content, err := state.ContainerPhrasing(node)
	if err != nil {
		return "", err
	}
	marker := strings.Repeat(string(state.Options().Emphasis), 2)
	return marker + content + marker, nil
}

func handleCodeSpan(_ *State, node *mdast.Node) (string, error) {
	value := node.TextValue()
	ticks := strings.Repeat("`", longestRun(value, '`')+1)
	if strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`") {
		value = " " + value + " "
	}
	return ticks + value + ticks, nil
}

func handleLink(state *State, node *mdast.Node) (string, error) {
	attrs := linkAttrs(node)
	if attrs.Autolink {
		return "<" + attrs.Destination + ">", nil
	}

	content, err := state.ContainerPhrasing(node)
	if err != nil {
		return "", err
	}
	return "[" + content + "](" + resource(attrs) + ")", nil
}

func handleImage(state *State, node *mdast.Node) (string, error) {
	alt, err := state.ContainerPhrasing(node)
	if err != nil {
		return "", err
	}
	return "![" + alt + "](" + resource(linkAttrs(node)) + ")", nil
}

func linkAttrs(node *mdast.Node) mdast.LinkAttrs {
	if node.Inline == nil || node.Inline.Link == nil {
		return mdast.LinkAttrs{}
	}
	return *node.Inline.Link
}

// resource writes the destination and optional title of an inline link.
func resource(attrs mdast.LinkAttrs) string {
	dest := attrs.Destination
	if dest == "" || strings.ContainsAny(dest, " \t\n()<>") {
		dest = "<" + strings.NewReplacer("<", "\\<", ">", "\\>").Replace(dest) + ">"
	}
	if attrs.Title == "" {
		return dest
	}
	title := strings.NewReplacer("\\", "\\\\", "\"", "\\\"").Replace(attrs.Title)
	return dest + " \"" + title + "\""
}

func handleSoftBreak(*State, *mdast.Node) (string, error) {
	return "\n", nil
}

func handleHardBreak(*State, *mdast.Node) (string, error) {
	return "\\\n", nil
}

func handleHTMLInline(_ *State, node *mdast.Node) (string, error) {
	return node.TextValue(), nil
}

// handleRaw writes constructs the tree does not model, such as tables, using
// their original source.
func handleRaw(state *State, node *mdast.Node) (string, error) {
	if source := node.Text(); source != nil {
		return strings.TrimRight(string(source), "\n"), nil
	}
	if node.FirstChild != nil && node.FirstChild.IsBlock() {
		return state.ContainerFlow(node)
	}
	return state.ContainerPhrasing(node)
}

// longestRun returns the length of the longest run of c in value.
func longestRun(value string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(value); i++ {
		if value[i] == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
