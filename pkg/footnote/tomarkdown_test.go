package footnote_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfoot/pkg/footnote"
	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

func serialize(t *testing.T, node *mdast.Node, opts ...footnote.Option) string {
	t.Helper()

	out, err := serializer.New(serializer.DefaultOptions(), footnote.ToMarkdown(opts...)).Serialize(node)
	require.NoError(t, err)
	return out
}

func paragraph(children ...*mdast.Node) *mdast.Node {
	para := mdast.NewNode(mdast.NodeParagraph)
	for _, child := range children {
		mdast.AppendChild(para, child)
	}
	return para
}

func definition(label string, children ...*mdast.Node) *mdast.Node {
	def := mdast.NewFootnoteDefinition("", label)
	for _, child := range children {
		mdast.AppendChild(def, child)
	}
	return def
}

func code(value string) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Value: []byte(value)})
	return node
}

func TestToMarkdown_Reference(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[^a]\n", serialize(t, mdast.NewFootnoteReference("", "a")))
	assert.Equal(t, "[^X\\]Y]\n", serialize(t, mdast.NewFootnoteReference("", "X]Y")))
	assert.Equal(t, "a[^b]c\n", serialize(t, paragraph(
		mdast.NewText("a"),
		mdast.NewFootnoteReference("", "b"),
		mdast.NewText("c"),
	)))
}

func TestToMarkdown_Definition(t *testing.T) {
	t.Parallel()

	emptyItemList := mdast.NewNode(mdast.NodeList)
	mdast.AppendChild(emptyItemList, mdast.NewNode(mdast.NodeListItem))

	tests := []struct {
		name string
		node *mdast.Node
		want string
	}{
		{"empty", definition("a"), "[^a]:\n"},
		{"escaped label", definition("X]Y"), "[^X\\]Y]:\n"},
		{"colon in label", definition("a:b"), "[^a:b]:\n"},
		{
			"paragraphs",
			definition("a", paragraph(mdast.NewText("b\nc")), paragraph(mdast.NewText("d"))),
			"[^a]: b\n    c\n\n    d\n",
		},
		{"code first", definition("a", code("b")), "[^a]: ```\n    b\n    ```\n"},
		{
			"paragraph then code",
			definition("a", paragraph(mdast.NewText("b")), code("c")),
			"[^a]: b\n\n    ```\n    c\n    ```\n",
		},
		{"empty list item", definition("a", emptyItemList), "[^a]: *\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, serialize(t, tt.node))
		})
	}
}

func TestToMarkdown_FirstLineBlank(t *testing.T) {
	t.Parallel()

	def := definition("a", paragraph(mdast.NewText("b\nc")), paragraph(mdast.NewText("d")))
	assert.Equal(t, "[^a]:\n    b\n    c\n\n    d\n", serialize(t, def, footnote.WithFirstLineBlank()))

	// Nothing to move to the next line.
	assert.Equal(t, "[^a]:\n", serialize(t, definition("a"), footnote.WithFirstLineBlank()))
}

func TestToMarkdown_IdentifierFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[^x]\n", serialize(t, mdast.NewFootnoteReference("x", "")))
	assert.Equal(t, "[^x]:\n", serialize(t, mdast.NewFootnoteDefinition("x", "")))
}

func TestToMarkdown_MissingIdentifier(t *testing.T) {
	t.Parallel()

	s := serializer.New(serializer.DefaultOptions(), footnote.ToMarkdown())

	_, err := s.Serialize(mdast.NewFootnoteReference("", ""))
	require.ErrorIs(t, err, footnote.ErrMissingIdentifier)

	_, err = s.Serialize(mdast.NewNode(mdast.NodeFootnoteDefinition))
	require.ErrorIs(t, err, footnote.ErrMissingIdentifier)
}

func TestToMarkdown_Escapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"inline note", "b^[a]", "b^\\[a]"},
		{"footnote call", "b[^a]", "b\\[^a]"},
		{"definition-like", "[a]: b", "\\[a]: b"},
		{"definition-like after indent", "  [a]: b", "  \\[a]: b"},
		{"definition-like on later line", "x\n[a]: b", "x\n\\[a]: b"},
		{"bracket mid line", "x [a]: b", "x [a]: b"},
		{"plain brackets", "[a] b", "[a] b"},
		{"one backslash for overlapping rules", "^[^a]", "^\\[^a]"},
		{"footnote definition text", "[^a]: b", "\\[^a]: b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want+"\n", serialize(t, paragraph(mdast.NewText(tt.text))))
		})
	}
}

func TestToMarkdown_EscapesAcrossTextNodes(t *testing.T) {
	t.Parallel()

	emphasis := func(value string) *mdast.Node {
		node := mdast.NewNode(mdast.NodeEmphasis)
		mdast.AppendChild(node, mdast.NewText(value))
		return node
	}

	tests := []struct {
		name     string
		children []*mdast.Node
		want     string
	}{
		{
			"definition-like split at bracket",
			[]*mdast.Node{mdast.NewText("[a"), mdast.NewText("]: b")},
			"\\[a]: b",
		},
		{
			"footnote call split after bracket",
			[]*mdast.Node{mdast.NewText("x "), mdast.NewText("["), mdast.NewText("^a]")},
			"x \\[^a]",
		},
		{
			"inline note split before bracket",
			[]*mdast.Node{mdast.NewText("b^"), mdast.NewText("[a]")},
			"b^\\[a]",
		},
		{
			"definition-like around emphasis",
			[]*mdast.Node{mdast.NewText("["), emphasis("a"), mdast.NewText("]: b")},
			"\\[*a*]: b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want+"\n", serialize(t, paragraph(tt.children...)))
		})
	}
}

func TestEscapeRules_Precedence(t *testing.T) {
	t.Parallel()

	rules := footnote.EscapeRules()
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		assert.Equal(t, byte('['), rule.Char)
		names = append(names, rule.Name)
	}
	assert.Equal(t, []string{"footnote-call", "inline-note", "definition-like"}, names)

	tests := []struct {
		text string
		at   int
		want string
	}{
		{"^[^a]", 1, "footnote-call"},
		{"^[a]", 1, "inline-note"},
		{"[a]:", 0, "definition-like"},
		{"[^a]:", 0, "footnote-call"},
	}

	for _, tt := range tests {
		rule := serializer.MatchingRule(rules, serializer.EscapeContext{Text: tt.text, AtLineStart: true}, tt.at)
		require.NotNil(t, rule, "text %q", tt.text)
		assert.Equal(t, tt.want, rule.Name, "text %q", tt.text)
	}
}

func TestToMarkdown_IndentationInvariant(t *testing.T) {
	t.Parallel()

	list := mdast.NewNode(mdast.NodeList)
	list.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{Tight: true})
	for _, text := range []string{"x", "y"} {
		item := mdast.NewNode(mdast.NodeListItem)
		mdast.AppendChild(item, paragraph(mdast.NewText(text)))
		mdast.AppendChild(list, item)
	}

	def := definition("a",
		paragraph(mdast.NewText("one\ntwo")),
		list,
		code("c\n\nd"),
	)

	out := strings.TrimSuffix(serialize(t, def), "\n")
	lines := strings.Split(out, "\n")
	require.True(t, strings.HasPrefix(lines[0], "[^a]: "))
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "    "), "line %q is not indented", line)
	}
}
