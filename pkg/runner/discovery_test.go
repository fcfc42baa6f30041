package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfoot/pkg/runner"
)

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"README.md":             "",
		"notes.markdown":        "",
		"main.go":               "",
		"docs/guide.md":         "",
		"docs/api/ref.MD":       "",
		"vendor/lib/README.md":  "",
		".hidden/secret.md":     "",
		"docs/.draft.md":        "",
		"node_modules/pkg/a.md": "",
		"README.md.mdfoot.bak":  "",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{"README.md", "docs/api/ref.MD", "docs/guide.md", "node_modules/pkg/a.md", "notes.markdown", "vendor/lib/README.md"},
		},
		{
			name: "exclude directories",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/node_modules/**"}},
			want: []string{"README.md", "docs/api/ref.MD", "docs/guide.md", "notes.markdown"},
		},
		{
			name: "leading double star matches at the root",
			opts: runner.Options{ExcludeGlobs: []string{"**/node_modules/**", "**/api/**"}},
			want: []string{"README.md", "docs/guide.md", "notes.markdown", "vendor/lib/README.md"},
		},
		{
			name: "exclude base name",
			opts: runner.Options{ExcludeGlobs: []string{"README.md"}},
			want: []string{"docs/api/ref.MD", "docs/guide.md", "node_modules/pkg/a.md", "notes.markdown"},
		},
		{
			name: "include",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api/ref.MD", "docs/guide.md"},
		},
		{
			name: "single segment star",
			opts: runner.Options{IncludeGlobs: []string{"docs/*.md"}},
			want: []string{"docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".markdown"}},
			want: []string{"notes.markdown"},
		},
		{
			name: "explicit paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.md", "README.md"}},
			want: []string{"README.md", "docs/api/ref.MD", "docs/guide.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.md"},
	})
	require.Error(t, err)
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"["},
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": ""})
	writeFiles(t, target, map[string]string{"linked.md": ""})

	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, relPaths(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "linked.md", filepath.Base(files[1]))
}
