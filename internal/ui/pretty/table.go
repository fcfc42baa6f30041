package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdfoot/pkg/format"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // KIND, ID, LABEL, LOC, LANG
	minKindWidth     = 4
	minIDWidth       = 8
	minLabelWidth    = 12
	minLocWidth      = 9
	minLangWidth     = 4
	heavySeparator   = "="
	ellipsis         = "..."

	kindDefinition = "def"
	kindReference  = "ref"
)

// TableRow is a single footnote in the dump table.
type TableRow struct {
	Kind       string
	Identifier string
	Label      string
	Location   string
	Language   string
}

type columnWidths struct {
	kind  int
	id    int
	label int
	loc   int
	lang  int
}

func (w columnWidths) total() int {
	return w.kind + w.id + w.label + w.loc + w.lang + tablePadding*tableColumnCount
}

// TableFormatter formats footnote dumps as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatDump formats the definitions and references of dump, definitions
// first, followed by a legend naming undefined and unreferenced footnotes.
func (t *TableFormatter) FormatDump(dump *format.Dump) string {
	if dump == nil {
		return ""
	}

	rows := CollectRows(dump)
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.styles.FilePath.Render(dump.Path) + "\n")
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths) + "\n")
	builder.WriteString(t.formatLegend(dump) + "\n")

	return builder.String()
}

// CollectRows flattens a dump into table rows. Code block languages inside
// a definition are joined into its LANG column; detected ones carry a "?".
func CollectRows(dump *format.Dump) []TableRow {
	rows := make([]TableRow, 0, len(dump.Definitions)+len(dump.References))
	for _, def := range dump.Definitions {
		rows = append(rows, TableRow{
			Kind:       kindDefinition,
			Identifier: def.Identifier,
			Label:      def.Label,
			Location:   location(def.Start),
			Language:   strings.Join(languages(def, nil), ","),
		})
	}
	for _, ref := range dump.References {
		rows = append(rows, TableRow{
			Kind:       kindReference,
			Identifier: ref.Identifier,
			Label:      ref.Label,
			Location:   location(ref.Start),
		})
	}
	return rows
}

func languages(node format.DumpNode, acc []string) []string {
	if node.Language != "" {
		lang := node.Language
		if node.Detected {
			lang += "?"
		}
		acc = append(acc, lang)
	}
	for _, child := range node.Children {
		acc = languages(child, acc)
	}
	return acc
}

func location(p *format.Position) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		kind:  minKindWidth,
		id:    minIDWidth,
		label: minLabelWidth,
		loc:   minLocWidth,
		lang:  minLangWidth,
	}

	for _, row := range rows {
		widths.id = max(widths.id, utf8.RuneCountInString(row.Identifier))
		widths.label = max(widths.label, utf8.RuneCountInString(row.Label))
		widths.loc = max(widths.loc, utf8.RuneCountInString(row.Location))
		widths.lang = max(widths.lang, utf8.RuneCountInString(row.Language))
	}

	// Labels give way first, then identifiers.
	if excess := widths.total() - t.termWidth; excess > 0 {
		shrink := min(excess, widths.label-minLabelWidth)
		widths.label -= shrink
		excess -= shrink
		if excess > 0 {
			widths.id = max(minIDWidth, widths.id-excess)
		}
	}

	return widths
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		w.kind, "KIND",
		w.id, "ID",
		w.label, "LABEL",
		w.loc, "LOC",
		w.lang, "LANG",
	)
	return t.styles.TableHeader.Render(strings.TrimRight(header, " "))
}

func (t *TableFormatter) formatSeparator(w columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, w.total()))
}

func (t *TableFormatter) formatRow(row TableRow, w columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		w.kind, row.Kind,
		w.id, truncateString(row.Identifier, w.id),
		w.label, truncateString(row.Label, w.label),
		w.loc, row.Location,
		w.lang, row.Language,
	)
	content = strings.TrimRight(content, " ")

	if row.Kind == kindDefinition {
		return t.styles.TableDefinition.Render(content)
	}
	return t.styles.TableReference.Render(content)
}

func (t *TableFormatter) formatLegend(dump *format.Dump) string {
	parts := []string{
		fmt.Sprintf("%d %s", len(dump.Definitions), plural(len(dump.Definitions), "definition", "definitions")),
		fmt.Sprintf("%d %s", len(dump.References), plural(len(dump.References), "reference", "references")),
	}
	if len(dump.Undefined) > 0 {
		parts = append(parts, "undefined: "+strings.Join(dump.Undefined, ", "))
	}
	if len(dump.Unreferenced) > 0 {
		parts = append(parts, "unreferenced: "+strings.Join(dump.Unreferenced, ", "))
	}
	return t.styles.TableLegend.Render(" " + strings.Join(parts, " | "))
}

// truncateString shortens s to width runes, marking the cut with an ellipsis.
func truncateString(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return string(runes[:width])
	}
	return string(runes[:width-len(ellipsis)]) + ellipsis
}
