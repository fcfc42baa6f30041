// Package runner formats many Markdown files concurrently.
package runner

// Options controls file discovery and concurrency.
type Options struct {
	// Paths are the files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Defaults to the process working directory.
	WorkingDir string

	// Extensions lists the lowercase extensions treated as Markdown.
	// Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovery to matching files when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of concurrent workers; <= 0 means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
