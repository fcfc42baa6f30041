package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfoot/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// SummaryMode selects the wording of a summary.
type SummaryMode int

const (
	// SummaryFormat describes a fmt run.
	SummaryFormat SummaryMode = iota

	// SummaryCheck describes a round-trip verification run.
	SummaryCheck
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func countFiles(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, wordFile, wordFiles))
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files reformatted, 1 unchanged, 3 footnotes (4 references)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, mode SummaryMode) string {
	var parts []string

	switch mode {
	case SummaryCheck:
		if stats.FilesUnstable == 0 {
			parts = append(parts, s.Success.Render(countFiles(stats.FilesProcessed)+" round-trip cleanly"))
		} else {
			parts = append(parts, s.Failure.Render(countFiles(stats.FilesUnstable)+" unstable"))
			stable := stats.FilesProcessed - stats.FilesUnstable
			parts = append(parts, fmt.Sprintf("%d stable", stable))
		}
	default:
		switch {
		case stats.FilesWritten > 0:
			parts = append(parts, s.Written.Render(countFiles(stats.FilesWritten)+" reformatted"))
		case stats.FilesChanged > 0:
			parts = append(parts, s.Changed.Render(countFiles(stats.FilesChanged)+" would be reformatted"))
		default:
			parts = append(parts, s.Success.Render("All files formatted")+
				s.Dim.Render(fmt.Sprintf(" (%s checked)", countFiles(stats.FilesProcessed))))
		}
		if unchanged := stats.FilesProcessed - stats.FilesChanged; stats.FilesChanged > 0 && unchanged > 0 {
			parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
		}
		if stats.FilesSkipped > 0 {
			parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
		}
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	parts = append(parts, s.Dim.Render(fmt.Sprintf("%d %s (%d %s)",
		stats.Definitions, plural(stats.Definitions, "footnote", "footnotes"),
		stats.References, plural(stats.References, "reference", "references"))))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, mode SummaryMode) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesChanged > 0 {
		row("Files changed", s.Changed.Render, stats.FilesChanged)
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Written.Render, stats.FilesWritten)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Skipped.Render, stats.FilesSkipped)
	}
	if stats.FilesUnstable > 0 {
		row("Files unstable", s.Unstable.Render, stats.FilesUnstable)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Error.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")
	row("Definitions", s.SummaryValue.Render, stats.Definitions)
	row("References", s.SummaryValue.Render, stats.References)
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be processed"))
	case mode == SummaryCheck && stats.FilesUnstable > 0:
		builder.WriteString(s.Failure.Render("Round-trip check failed"))
	case mode == SummaryCheck:
		builder.WriteString(s.Success.Render("Round-trip check passed"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Changed.Render("Formatting needed"))
	default:
		builder.WriteString(s.Success.Render("Formatting complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
