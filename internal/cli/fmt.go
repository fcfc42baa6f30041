package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfoot/internal/logging"
	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/config"
	"github.com/yaklabco/mdfoot/pkg/format"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

// errWriteStdin is returned for fmt --write on standard input.
var errWriteStdin = errors.New("--write cannot be used with standard input")

type fmtFlags struct {
	styleFlags

	diff    bool
	summary bool
}

func newFmtCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format Markdown footnotes",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write formatted content back to the files")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit with status 1 if any file needs formatting")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print a unified diff of each change")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block instead of a single line")
	addStyleFlags(cmd, cfg, &flags.styleFlags)

	return cmd
}

const fmtLongDescription = `Format Markdown documents, normalizing footnote definitions and calls.

By default, formats all .md and .markdown files in the current directory
and subdirectories and reports which files would change. Use --write to
rewrite them in place; a backup is kept next to each rewritten file unless
--no-backups is given. Pass "-" to format standard input to standard output.

Examples:
  mdfoot fmt                       # Report files that need formatting
  mdfoot fmt --write docs/         # Rewrite files under docs/
  mdfoot fmt --diff README.md      # Show the changes as a unified diff
  mdfoot fmt --check               # Exit with status 1 if anything would change
  cat notes.md | mdfoot fmt -      # Format standard input`

func runFmt(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fmtFlags) error {
	cfg, err := resolveConfig(cmd, cliCfg, &flags.styleFlags)
	if err != nil {
		return err
	}

	if isStdin(args) {
		return formatStdin(cmd, cfg, flags)
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	pipelineOpts := format.PipelineOptionsFromConfig(cfg)
	pipelineOpts.Diff = flags.diff

	pipeline, err := newPipeline(cfg, pipelineOpts)
	if err != nil {
		return err
	}

	runOpts, err := runOptions(args, cfg)
	if err != nil {
		return err
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldWrite, pipelineOpts.Write,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	printReport(out, newStyles(cmd, out), result, reportOptions{
		WorkingDir: runOpts.WorkingDir,
		Mode:       pretty.SummaryFormat,
		ShowDiff:   flags.diff,
		Summary:    flags.summary,
	})

	return resultError(result, cfg.Check)
}

// formatStdin formats standard input. The formatted document, or its diff
// with --diff, goes to standard output; --check only sets the exit status.
func formatStdin(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags) error {
	if cfg.Write {
		return withExitCode(ExitInvalidUsage, errWriteStdin)
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("read standard input: %w", err))
	}

	pipeline, err := newPipeline(cfg, format.PipelineOptions{Diff: flags.diff})
	if err != nil {
		return err
	}

	result, err := pipeline.ProcessContent(cmd.Context(), stdinPath, content)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case cfg.Check:
		// Exit status only.
	case flags.diff:
		fmt.Fprint(out, result.Diff)
	default:
		if _, err := out.Write(result.Formatted); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("write standard output: %w", err))
		}
	}

	if cfg.Check && result.Changed() {
		return withExitCode(ExitUnstable, ErrFormattingNeeded)
	}
	return nil
}
