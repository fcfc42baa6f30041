package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/format"
)

func sampleDump() *format.Dump {
	return &format.Dump{
		Path: "notes.md",
		Definitions: []format.DumpNode{{
			Kind:       "FootnoteDefinition",
			Identifier: "a",
			Label:      "A",
			Start:      &format.Position{Line: 3, Column: 1, Offset: 20},
			Children: []format.DumpNode{
				{Kind: "Paragraph"},
				{Kind: "CodeBlock", Language: "go", Detected: true},
				{Kind: "CodeBlock", Language: "sh"},
			},
		}},
		References: []format.DumpNode{{
			Kind:       "FootnoteReference",
			Identifier: "a",
			Label:      "A",
			Start:      &format.Position{Line: 1, Column: 5, Offset: 4},
		}, {
			Kind:       "FootnoteReference",
			Identifier: "missing",
			Label:      "missing",
		}},
		Undefined: []string{"missing"},
	}
}

func TestCollectRows(t *testing.T) {
	t.Parallel()

	rows := pretty.CollectRows(sampleDump())
	require.Len(t, rows, 3)

	assert.Equal(t, pretty.TableRow{Kind: "def", Identifier: "a", Label: "A", Location: "3:1", Language: "go?,sh"}, rows[0])
	assert.Equal(t, pretty.TableRow{Kind: "ref", Identifier: "a", Label: "A", Location: "1:5"}, rows[1])
	assert.Equal(t, "-", rows[2].Location)
}

func TestTableFormatter_FormatDump(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 80).FormatDump(sampleDump())
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Equal(t, "notes.md", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], " KIND  ID"))
	assert.True(t, strings.HasPrefix(lines[2], "====="))
	assert.True(t, strings.HasPrefix(lines[3], " def   a "))
	assert.True(t, strings.HasSuffix(lines[3], "go?,sh"))
	assert.Equal(t, " 1 definition | 2 references | undefined: missing", lines[7])

	assert.Empty(t, pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatDump(nil))
}

func TestTableFormatter_NarrowTerminal(t *testing.T) {
	t.Parallel()

	dump := sampleDump()
	dump.Definitions[0].Label = strings.Repeat("long label ", 10)

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 60).FormatDump(dump)
	assert.Contains(t, table, "...")
	assert.NotContains(t, table, dump.Definitions[0].Label)
}
