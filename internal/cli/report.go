package cli

import (
	"fmt"
	"io"

	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

// reportOptions controls how a run is printed.
type reportOptions struct {
	WorkingDir string
	Mode       pretty.SummaryMode
	ShowDiff   bool
	Summary    bool
}

// printReport writes one line per file that needs attention, the diffs when
// requested, and a summary.
func printReport(w io.Writer, styles *pretty.Styles, result *runner.Result, opts reportOptions) {
	for _, file := range result.Files {
		switch pretty.FileStatus(file) {
		case pretty.StatusUnchanged, pretty.StatusStable:
			continue
		}

		fmt.Fprint(w, styles.FormatFileStatus(file, displayPath(opts.WorkingDir, file.Path)))
		if opts.ShowDiff && file.Result != nil {
			fmt.Fprint(w, styles.FormatDiff(file.Result.Diff))
		}
	}

	if opts.Summary {
		fmt.Fprint(w, styles.FormatSummary(result.Stats, opts.Mode))
		return
	}
	fmt.Fprint(w, styles.FormatSummaryOneLine(result.Stats, opts.Mode))
}
