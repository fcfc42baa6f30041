package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/mdfoot/internal/configloader"
	"github.com/yaklabco/mdfoot/pkg/format"
	"github.com/yaklabco/mdfoot/pkg/fsutil"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

// Exit codes for mdfoot.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnstable indicates that check found documents that do not survive
	// a round trip, or that fmt --check found documents needing formatting.
	ExitUnstable = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFormattingNeeded is returned by fmt --check when files would change.
	ErrFormattingNeeded = errors.New("files need formatting")

	// ErrUnstable is returned by check when a document fails verification.
	ErrUnstable = errors.New("round-trip verification failed")

	// ErrProcessingFailed is returned when some files could not be processed.
	ErrProcessingFailed = errors.New("some files could not be processed")
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// Silent reports whether err only signals an exit status and needs no log line.
func Silent(err error) bool {
	return errors.Is(err, ErrFormattingNeeded) || errors.Is(err, ErrUnstable)
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ExitConfigError
	case isIOError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a run. In check mode any
// changed file is a failure as well as any unstable one.
func ExitCodeFromResult(result *runner.Result, checkMode bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		for _, file := range result.Files {
			if file.Error != nil && !isIOError(file.Error) {
				return ExitInternalError
			}
		}
		return ExitIOError
	}

	if result.Stats.FilesUnstable > 0 {
		return ExitUnstable
	}

	if checkMode && result.Stats.FilesChanged > 0 {
		return ExitUnstable
	}

	return ExitSuccess
}

// resultError converts a run result into the error a command returns.
func resultError(result *runner.Result, checkMode bool) error {
	code := ExitCodeFromResult(result, checkMode)
	switch {
	case code == ExitSuccess:
		return nil
	case result.Stats.FilesErrored > 0:
		return withExitCode(code, fmt.Errorf("%w: %d failed", ErrProcessingFailed, result.Stats.FilesErrored))
	case result.Stats.FilesUnstable > 0:
		return withExitCode(code, ErrUnstable)
	default:
		return withExitCode(code, ErrFormattingNeeded)
	}
}

func isIOError(err error) bool {
	return errors.Is(err, format.ErrFileNotFound) ||
		errors.Is(err, format.ErrPermissionDenied) ||
		errors.Is(err, format.ErrWriteFailure) ||
		errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
