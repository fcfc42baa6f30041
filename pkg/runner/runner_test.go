package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfoot/pkg/format"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newPipeline(t *testing.T, opts format.PipelineOptions) *format.Pipeline {
	t.Helper()
	formatter, err := format.New(format.DefaultOptions())
	require.NoError(t, err)
	return format.NewPipeline(formatter, opts)
}

// countingProcessor records calls and fails for one path.
type countingProcessor struct {
	calls   atomic.Int32
	failFor string
}

var errInjected = errors.New("injected")

func (p *countingProcessor) ProcessFile(_ context.Context, path string) (*format.FileResult, error) {
	p.calls.Add(1)
	if filepath.Base(path) == p.failFor {
		return nil, errInjected
	}
	return &format.FileResult{Result: &format.Result{Path: path, Original: []byte("x"), Formatted: []byte("x")}}, nil
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	proc := &countingProcessor{}
	result, err := runner.New(proc).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Zero(t, proc.calls.Load())
}

func TestRunner_Run_Format(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"clean.md":      "A[^a].\n\n[^a]: b\n",
		"messy.md":      "A[^a][^b].\n\n[^a]:   b\n",
		"docs/guide.md": "Plain text.\n",
	})

	result, err := runner.New(newPipeline(t, format.PipelineOptions{})).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "clean.md"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "docs", "guide.md"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "messy.md"), result.Files[2].Path)

	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 2, result.Stats.Definitions)
	assert.Equal(t, 3, result.Stats.References)
	assert.True(t, result.HasChanges())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "[^a]:   b\n"})

	result, err := runner.New(newPipeline(t, format.PipelineOptions{Write: true})).Run(context.Background(), runner.Options{
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesWritten)

	got, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "[^a]: b\n", string(got))
}

func TestRunner_Run_Verify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "A[^a].\n\n[^a]: b\n\n    ```\n    c\n    ```\n"})

	result, err := runner.New(newPipeline(t, format.PipelineOptions{Verify: true})).Run(context.Background(), runner.Options{
		WorkingDir: dir,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NotNil(t, result.Files[0].Result.Verification)
	assert.True(t, result.Files[0].Result.Verification.Stable)
	assert.Zero(t, result.Stats.FilesUnstable)
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "a", "b.md": "b", "c.md": "c"})

	proc := &countingProcessor{failFor: "b.md"}
	result, err := runner.New(proc).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 3})
	require.NoError(t, err)

	assert.EqualValues(t, 3, proc.calls.Load())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	require.ErrorIs(t, result.Files[1].Error, errInjected)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".md"] = "Text[^" + name + "].\n\n[^" + name + "]:  note\n"
	}
	writeFiles(t, dir, files)

	run := func(jobs int) *runner.Result {
		result, err := runner.New(newPipeline(t, format.PipelineOptions{})).Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
		})
		require.NoError(t, err)
		return result
	}

	serial, parallel := run(1), run(8)
	assert.Equal(t, serial.Stats, parallel.Stats)
	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Formatted, parallel.Files[i].Result.Formatted)
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(&countingProcessor{}).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
