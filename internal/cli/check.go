package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfoot/internal/logging"
	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/config"
	"github.com/yaklabco/mdfoot/pkg/format"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

type checkFlags struct {
	styleFlags

	summary bool
}

func newCheckCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify that documents survive a format round trip",
		Long: `Parse each document, format it, parse the output again and compare the
two trees. A document is stable when the trees agree, footnote labels and
identifiers included, and formatting the output a second time changes
nothing. Files are never modified.

Examples:
  mdfoot check                     # Check the current directory
  mdfoot check docs/ README.md     # Check specific paths
  mdfoot check - < notes.md        # Check standard input`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, cfg, flags)
		},
	}

	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block instead of a single line")
	addStyleFlags(cmd, cfg, &flags.styleFlags)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags) error {
	cfg, err := resolveConfig(cmd, cliCfg, &flags.styleFlags)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cfg, format.PipelineOptions{Verify: true})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	styles := newStyles(cmd, out)

	if isStdin(args) {
		return checkStdin(cmd, pipeline, styles)
	}

	runOpts, err := runOptions(args, cfg)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}

	printReport(out, styles, result, reportOptions{
		WorkingDir: runOpts.WorkingDir,
		Mode:       pretty.SummaryCheck,
		Summary:    flags.summary,
	})

	return resultError(result, false)
}

func checkStdin(cmd *cobra.Command, pipeline *format.Pipeline, styles *pretty.Styles) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("read standard input: %w", err))
	}

	res, err := pipeline.ProcessContent(cmd.Context(), stdinPath, content)
	if err != nil {
		return err
	}

	outcome := runner.FileOutcome{Path: stdinPath, Result: res}
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatFileStatus(outcome, stdinPath))

	if !res.Verification.Stable {
		return withExitCode(ExitUnstable, ErrUnstable)
	}
	return nil
}
