package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

func TestSafe_BaseRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"emphasis markers", "a*b_c", `a\*b\_c`},
		{"backslash", `a\b`, `a\\b`},
		{"code", "a`b", "a\\`b"},
		{"html", "<div>", `\<div>`},
		{"entity", "&amp; & x", `\&amp; & x`},
		{"heading at line start", "# a #", `\# a #`},
		{"indented heading", "   # a", `   \# a`},
		{"list markers", "- a", `\- a`},
		{"dash mid line", "a - b", "a - b"},
		{"ordered list", "1. a", `1\. a`},
		{"number mid line", "a 1. b", "a 1. b"},
		{"link shape", "[a](b)", `\[a](b)`},
		{"bracket without link shape", "[a] b", "[a] b"},
		{"footnote call left alone", "b[^a]", "b[^a]"},
	}

	s := serializer.New(serializer.DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.Serialize(paragraph(mdast.NewText(tt.text)))
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", got)
		})
	}
}

func TestSafe_NotAtLineStart(t *testing.T) {
	t.Parallel()

	emphasis := mdast.NewNode(mdast.NodeEmphasis)
	mdast.AppendChild(emphasis, mdast.NewText("x"))

	got, err := serializer.New(serializer.DefaultOptions()).Serialize(paragraph(emphasis, mdast.NewText("# not a heading")))
	require.NoError(t, err)
	assert.Equal(t, "*x*# not a heading\n", got)
}

func TestSafe_AdjacentTextNodes(t *testing.T) {
	t.Parallel()

	s := serializer.New(serializer.DefaultOptions())

	got, err := s.Serialize(paragraph(mdast.NewText("["), mdast.NewText("a](b)")))
	require.NoError(t, err)
	assert.Equal(t, "\\[a](b)\n", got)

	code := mdast.NewNode(mdast.NodeCodeSpan)
	code.Inline = mdast.NewInlineAttrs().WithText([]byte("x"))
	got, err = s.Serialize(paragraph(mdast.NewText("[a]"), code, mdast.NewText("(b)")))
	require.NoError(t, err)
	assert.Equal(t, "[a]`x`(b)\n", got)
}

func TestSafe_ExtensionRule(t *testing.T) {
	t.Parallel()

	ext := serializer.Extension{
		Name: "caret",
		Escapes: []serializer.EscapeRule{{
			Name: "caret",
			Char: '^',
			Match: func(serializer.EscapeContext, int) bool {
				return true
			},
		}},
	}

	s := serializer.New(serializer.DefaultOptions(), ext)
	got, err := s.Serialize(paragraph(mdast.NewText("a^b")))
	require.NoError(t, err)
	assert.Equal(t, "a\\^b\n", got)

	rules := s.EscapeRules()
	assert.Equal(t, "caret", rules[len(rules)-1].Name)
}

func TestEscapeContext_BeginsLine(t *testing.T) {
	t.Parallel()

	ctx := serializer.EscapeContext{Text: "ab\n   [x\n    [y", AtLineStart: false}

	assert.False(t, ctx.BeginsLine(0), "text not at line start")
	assert.True(t, ctx.BeginsLine(6), "three spaces of indentation")
	assert.False(t, ctx.BeginsLine(13), "four spaces is code indentation")

	ctx.AtLineStart = true
	assert.True(t, ctx.BeginsLine(0))
	assert.False(t, ctx.BeginsLine(1))
}

func TestMatchingRule(t *testing.T) {
	t.Parallel()

	rules := serializer.New(serializer.DefaultOptions()).EscapeRules()
	ctx := serializer.EscapeContext{Text: "a*b", AtLineStart: true}

	rule := serializer.MatchingRule(rules, ctx, 1)
	require.NotNil(t, rule)
	assert.Equal(t, "emphasis", rule.Name)
	assert.Nil(t, serializer.MatchingRule(rules, ctx, 0))
}

func TestClosingBracket(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, serializer.ClosingBracket("[a\\]]", 0))
	assert.Equal(t, -1, serializer.ClosingBracket("[a\nb]", 0))
	assert.Equal(t, -1, serializer.ClosingBracket("[a[b]", 0))
	assert.Equal(t, -1, serializer.ClosingBracket("[ab", 0))
}
