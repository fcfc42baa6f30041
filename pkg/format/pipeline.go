package format

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/mdfoot/pkg/config"
	"github.com/yaklabco/mdfoot/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates the formatted content could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// diffContext is the number of unchanged lines shown around each hunk.
const diffContext = 3

// PipelineOptions controls what ProcessFile does with a formatted document.
type PipelineOptions struct {
	// Write replaces the file with the formatted content.
	Write bool

	// Diff fills FileResult.Diff with a unified diff of the change.
	Diff bool

	// Verify checks that the document survives a round trip.
	Verify bool

	// Backup configures backups taken before a file is replaced.
	Backup fsutil.BackupConfig
}

// PipelineOptionsFromConfig creates PipelineOptions from a resolved config.
// A check run never writes.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{}
	}
	return PipelineOptions{
		Write: cfg.Write && !cfg.Check,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	}
}

// FileResult is the outcome of running the pipeline on one file.
type FileResult struct {
	*Result

	// Verification is set when PipelineOptions.Verify was requested.
	Verification *Verification

	// Diff is the unified diff between the original and formatted content.
	Diff string

	// Skipped is true if the file changed on disk while it was processed.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Pipeline formats files on disk.
type Pipeline struct {
	Formatter *Formatter
	Options   PipelineOptions
}

// NewPipeline creates a pipeline around formatter.
func NewPipeline(formatter *Formatter, opts PipelineOptions) *Pipeline {
	return &Pipeline{Formatter: formatter, Options: opts}
}

// ProcessFile runs the pipeline for a single file:
//  1. Read and hash the file.
//  2. Format it, or verify it when requested.
//  3. Build a diff if requested.
//  4. When writing a changed file: check for concurrent modification, back
//     the file up and replace it atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	out, err := p.ProcessContent(ctx, path, content)
	if err != nil {
		return nil, err
	}

	if !p.Options.Write || !out.Changed() {
		return out, nil
	}
	if out.Verification != nil && !out.Verification.Stable {
		out.Skipped = true
		out.SkipReason = "output does not round-trip: " + out.Verification.Mismatch
		return out, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		out.Skipped = true
		out.SkipReason = "file modified during processing"
		return out, nil
	}

	created, err := fsutil.CreateBackup(ctx, path, p.Options.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	out.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, out.Formatted, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	out.Written = true

	return out, nil
}

// ProcessContent formats in-memory content without file I/O.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	out := &FileResult{}

	if p.Options.Verify {
		verification, err := p.Formatter.Verify(ctx, path, content)
		if err != nil {
			return nil, err
		}
		out.Verification = verification
		out.Result = verification.Result
	} else {
		result, err := p.Formatter.Format(ctx, path, content)
		if err != nil {
			return nil, err
		}
		out.Result = result
	}

	if p.Options.Diff && out.Changed() {
		diff, err := UnifiedDiff(path, out.Original, out.Formatted)
		if err != nil {
			return nil, err
		}
		out.Diff = diff
	}

	return out, nil
}

// UnifiedDiff renders a git-style unified diff from original to formatted.
func UnifiedDiff(path string, original, formatted []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(formatted)),
		FromFile: "a/" + diffPath(path),
		ToFile:   "b/" + diffPath(path),
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}

// diffPath drops the leading slash of absolute paths so that diff headers
// read "a/path" rather than "a//path".
func diffPath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "/")
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
