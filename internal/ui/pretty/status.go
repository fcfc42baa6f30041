package pretty

import (
	"strings"

	"github.com/yaklabco/mdfoot/pkg/runner"
)

// Status labels for per-file output.
const (
	StatusUnchanged = "unchanged"
	StatusChanged   = "changed"
	StatusWritten   = "formatted"
	StatusSkipped   = "skipped"
	StatusUnstable  = "unstable"
	StatusStable    = "ok"
	StatusError     = "error"
)

// FileStatus returns the status label for one outcome. When the outcome was
// verified, the verification decides between ok and unstable.
func FileStatus(outcome runner.FileOutcome) string {
	res := outcome.Result
	switch {
	case outcome.Error != nil || res == nil:
		return StatusError
	case res.Verification != nil && !res.Verification.Stable:
		return StatusUnstable
	case res.Skipped:
		return StatusSkipped
	case res.Written:
		return StatusWritten
	case res.Verification != nil:
		return StatusStable
	case res.Changed():
		return StatusChanged
	default:
		return StatusUnchanged
	}
}

// FormatFileStatus formats a status line such as "  formatted  docs/a.md".
// The reason for a skip, failure or instability follows on the next line.
func (s *Styles) FormatFileStatus(outcome runner.FileOutcome, displayPath string) string {
	status := FileStatus(outcome)

	var label string
	switch status {
	case StatusError:
		label = s.Error.Render(status)
	case StatusUnstable:
		label = s.Unstable.Render(status)
	case StatusSkipped:
		label = s.Skipped.Render(status)
	case StatusWritten:
		label = s.Written.Render(status)
	case StatusChanged:
		label = s.Changed.Render(status)
	case StatusStable:
		label = s.Success.Render(status)
	default:
		label = s.Unchanged.Render(status)
	}

	var builder strings.Builder
	builder.WriteString("  " + label + strings.Repeat(" ", statusWidth-len(status)) + s.FilePath.Render(displayPath) + "\n")

	if reason := statusReason(outcome); reason != "" {
		builder.WriteString("      " + s.Reason.Render(reason) + "\n")
	}

	return builder.String()
}

// statusWidth pads labels to the longest status plus two spaces.
const statusWidth = len(StatusUnchanged) + 2

func statusReason(outcome runner.FileOutcome) string {
	if outcome.Error != nil {
		return outcome.Error.Error()
	}
	res := outcome.Result
	if res == nil {
		return ""
	}
	if res.Verification != nil && !res.Verification.Stable {
		return res.Verification.Mismatch
	}
	if res.Skipped {
		return res.SkipReason
	}
	return ""
}

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.SplitAfter(diff, "\n")
	var builder strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		var styled string
		switch {
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
			styled = s.DiffHeader.Render(body)
		case strings.HasPrefix(body, "@@"):
			styled = s.DiffHunk.Render(body)
		case strings.HasPrefix(body, "+"):
			styled = s.DiffAdd.Render(body)
		case strings.HasPrefix(body, "-"):
			styled = s.DiffRemove.Render(body)
		default:
			styled = s.DiffContext.Render(body)
		}
		builder.WriteString(styled + "\n")
	}
	return builder.String()
}
