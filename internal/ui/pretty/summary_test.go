package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		mode  pretty.SummaryMode
		want  string
	}{
		{
			name:  "nothing to do",
			stats: runner.Stats{FilesProcessed: 3, Definitions: 1, References: 1},
			want:  "All files formatted (3 files checked), 1 footnote (1 reference)\n",
		},
		{
			name:  "would reformat",
			stats: runner.Stats{FilesProcessed: 3, FilesChanged: 1, Definitions: 2, References: 3},
			want:  "1 file would be reformatted, 2 unchanged, 2 footnotes (3 references)\n",
		},
		{
			name:  "written with skip and failure",
			stats: runner.Stats{FilesProcessed: 2, FilesChanged: 2, FilesWritten: 1, FilesSkipped: 1, FilesErrored: 1},
			want:  "1 file reformatted, 1 skipped, 1 failed, 0 footnotes (0 references)\n",
		},
		{
			name:  "check passed",
			stats: runner.Stats{FilesProcessed: 1},
			mode:  pretty.SummaryCheck,
			want:  "1 file round-trip cleanly, 0 footnotes (0 references)\n",
		},
		{
			name:  "check failed",
			stats: runner.Stats{FilesProcessed: 4, FilesUnstable: 1},
			mode:  pretty.SummaryCheck,
			want:  "1 file unstable, 3 stable, 0 footnotes (0 references)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.mode))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("format with changes", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(runner.Stats{
			FilesProcessed: 10,
			FilesChanged:   3,
			Definitions:    7,
			References:     12,
		}, pretty.SummaryFormat)

		assert.Contains(t, result, "Summary")
		assert.Contains(t, result, "Files checked:     10")
		assert.Contains(t, result, "Files changed:     3")
		assert.Contains(t, result, "Definitions:       7")
		assert.Contains(t, result, "References:        12")
		assert.Contains(t, result, "Formatting needed")
		assert.NotContains(t, result, "Files written:")
	})

	t.Run("format written", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(runner.Stats{FilesProcessed: 2, FilesChanged: 1, FilesWritten: 1}, pretty.SummaryFormat)
		assert.Contains(t, result, "Files written:     1")
		assert.Contains(t, result, "Formatting complete")
	})

	t.Run("check failed", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(runner.Stats{FilesProcessed: 2, FilesUnstable: 1}, pretty.SummaryCheck)
		assert.Contains(t, result, "Files unstable:    1")
		assert.Contains(t, result, "Round-trip check failed")
	})

	t.Run("errors win", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(runner.Stats{FilesErrored: 1}, pretty.SummaryCheck)
		assert.Contains(t, result, "Files failed:      1")
		assert.Contains(t, result, "Some files could not be processed")
	})
}
