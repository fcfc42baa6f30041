package footnote_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfoot/pkg/footnote"
	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/parser/goldmark"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

func parse(t testing.TB, content string) *mdast.Node {
	t.Helper()

	snapshot, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "roundtrip.md", []byte(content))
	require.NoError(t, err)
	return snapshot.Root
}

// shape renders the parts of a tree that must survive a round trip.
// Adjacent text nodes are merged since the parser may split a run differently.
func shape(node *mdast.Node) string {
	var b strings.Builder
	var visit func(n *mdast.Node, depth int)
	visit = func(n *mdast.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Kind.String())
		if attrs := n.Footnote(); attrs != nil {
			fmt.Fprintf(&b, " id=%q", attrs.Identifier)
		}
		b.WriteByte('\n')

		for child := n.FirstChild; child != nil; child = child.Next {
			if child.Kind != mdast.NodeText {
				visit(child, depth+1)
				continue
			}
			run := child.TextValue()
			for child.Next != nil && child.Next.Kind == mdast.NodeText {
				child = child.Next
				run += child.TextValue()
			}
			fmt.Fprintf(&b, "%sText %q\n", strings.Repeat("  ", depth+1), run)
		}
	}
	visit(node, 0)
	return b.String()
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Call.[^a]",
		"![^a]",
		"a[^b]c",
		"[^a]: b\nc\n\n    d",
		"[^a]:\n    b",
		`[^X\]Y]: z`,
		"[^a:b]:",
		"[^a]: * x\n    * y",
		"[^a]: ```\n    b\n    ```",
		"Text[^1] and more[^Note].\n\n[^1]: First.\n\n    > quoted\n\n[^note]: Second.\n",
		`b\[^a] and b^\[a]`,
		`\[a]: b`,
		`x [^a\]`,
		`\[*a*]: b`,
		"# Title[^t]\n\n- item[^i]\n\n[^t]: On the title.\n[^i]: On the item.\n",
	}

	s := serializer.New(serializer.DefaultOptions(), footnote.ToMarkdown())
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			first := parse(t, input)
			out, err := s.Serialize(first)
			require.NoError(t, err)

			second := parse(t, out)
			assert.Equal(t, shape(first), shape(second), "serialized as %q", out)

			// A second pass is stable.
			again, err := s.Serialize(second)
			require.NoError(t, err)
			assert.Equal(t, out, again)
		})
	}
}

func TestRoundTrip_FirstLineBlank(t *testing.T) {
	t.Parallel()

	s := serializer.New(serializer.DefaultOptions(), footnote.ToMarkdown(footnote.WithFirstLineBlank()))

	first := parse(t, "[^a]: b\n\n    c")
	out, err := s.Serialize(first)
	require.NoError(t, err)
	assert.Equal(t, "[^a]:\n    b\n\n    c\n", out)
	assert.Equal(t, shape(first), shape(parse(t, out)))
}

func TestRoundTrip_EscapedTextHasNoFootnotes(t *testing.T) {
	t.Parallel()

	s := serializer.New(serializer.DefaultOptions(), footnote.ToMarkdown())
	for _, text := range []string{"b[^a]", "b^[a]", "[a]: b", "[^a]: b", "x\n[^y]: z", `\[^a]`} {
		para := mdast.NewNode(mdast.NodeParagraph)
		mdast.AppendChild(para, mdast.NewText(text))

		out, err := s.Serialize(para)
		require.NoError(t, err)

		assert.Nil(t, findFootnote(parse(t, out)), "%q serialized as %q", text, out)
	}
}

func findFootnote(root *mdast.Node) *mdast.Node {
	return mdast.FindFirst(root, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeFootnoteReference || n.Kind == mdast.NodeFootnoteDefinition
	})
}
