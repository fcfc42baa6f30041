package footnote_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfoot/pkg/footnote"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "a", "a"},
		{"case folded", "Note", "note"},
		{"whitespace collapsed", "  a \t\n b  ", "a b"},
		{"unicode fold", "STRASSE", "strasse"},
		{"punctuation kept", "X]Y", "x]y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, footnote.Normalize(tt.label))
		})
	}
}

func TestNormalize_SameIdentifierForSpellings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, footnote.Normalize("Note  A"), footnote.Normalize("note a"))
}

func TestUnescapeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"a", "a"},
		{`X\]Y`, "X]Y"},
		{`a\\b`, `a\b`},
		{`a\b`, `a\b`},
		{`a\`, `a\`},
		{`\[x\]`, "[x]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, footnote.UnescapeLabel(tt.raw), "raw %q", tt.raw)
	}
}

func TestEscapeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{"a", "a"},
		{"X]Y", `X\]Y`},
		{"a:b", "a:b"},
		{"[x]", `\[x\]`},
		{`a\b`, `a\b`},
		{`a\`, `a\\`},
		{`a\]`, `a\\\]`},
	}

	for _, tt := range tests {
		got := footnote.EscapeLabel(tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
		assert.Equal(t, tt.label, footnote.UnescapeLabel(got), "round trip of %q", tt.label)
	}
}

func TestScanLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		raw     string
		closeAt int
		ok      bool
	}{
		{"simple", "[^a]", "a", 3, true},
		{"escaped bracket", `[^X\]Y]:`, `X\]Y`, 6, true},
		{"unclosed", "[^a", "", 0, false},
		{"blank", "[^ ]", "", 0, false},
		{"empty", "[^]", "", 0, false},
		{"newline", "[^a\nb]", "", 0, false},
		{"nested opener", "[^a[b]", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, closeAt, ok := footnote.ScanLabel([]byte(tt.line), 2)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.raw, raw)
				assert.Equal(t, tt.closeAt, closeAt)
			}
		})
	}
}

func TestScanLabel_MaxSize(t *testing.T) {
	t.Parallel()

	fits := "[^" + strings.Repeat("x", footnote.MaxLabelSize) + "]"
	_, _, ok := footnote.ScanLabel([]byte(fits), 2)
	assert.True(t, ok)

	tooLong := "[^" + strings.Repeat("x", footnote.MaxLabelSize+1) + "]"
	_, _, ok = footnote.ScanLabel([]byte(tooLong), 2)
	assert.False(t, ok)
}
