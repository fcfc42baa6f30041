package runner

import "github.com/yaklabco/mdfoot/pkg/format"

// FileOutcome is the result for one discovered file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *format.FileResult

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesChanged counts files whose formatted content differs from disk.
	FilesChanged int

	// FilesWritten counts files replaced on disk.
	FilesWritten int

	// FilesSkipped counts changed files left alone, e.g. after a concurrent edit.
	FilesSkipped int

	// FilesUnstable counts files that failed round-trip verification.
	FilesUnstable int

	Definitions int
	References  int
}

// Result is the overall runner result.
type Result struct {
	// Files is ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasChanges reports whether any file would be or was reformatted.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasFailures reports whether any file errored or failed verification.
func (r *Result) HasFailures() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || r.Stats.FilesUnstable > 0)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	res := outcome.Result
	r.Stats.FilesProcessed++
	r.Stats.Definitions += res.Definitions
	r.Stats.References += res.References

	if res.Changed() {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Verification != nil && !res.Verification.Stable {
		r.Stats.FilesUnstable++
	}
}
