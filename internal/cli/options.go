package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfoot/internal/configloader"
	"github.com/yaklabco/mdfoot/internal/logging"
	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/config"
	"github.com/yaklabco/mdfoot/pkg/format"
	"github.com/yaklabco/mdfoot/pkg/runner"
)

// stdinPath is the path argument that selects standard input.
const stdinPath = "-"

// styleFlags holds the flags shared by commands that format documents.
type styleFlags struct {
	flavor string
	ignore []string
}

func addStyleFlags(cmd *cobra.Command, cfg *config.Config, flags *styleFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&cfg.Style.Bullet, "bullet", "", "bullet marker for lists: *, -, +")
	cmd.Flags().StringVar(&cfg.Style.Fence, "fence", "", "fence marker for code blocks: `, ~")
	cmd.Flags().StringVar(&cfg.Style.Emphasis, "emphasis", "", "emphasis marker: *, _")
	cmd.Flags().BoolVar(&cfg.Footnotes.FirstLineBlank, "first-line-blank", false,
		"start footnote definition content on the line after the marker")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
}

// resolveConfig layers the CLI flags in cliCfg over the discovered configuration.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config, flags *styleFlags) (*config.Config, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags != nil {
		if cmd.Flags().Changed("flavor") {
			cliCfg.Flavor = config.Flavor(flags.flavor)
		}
		cliCfg.Ignore = flags.ignore
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFirstLineBlank, cfg.Footnotes.FirstLineBlank,
	)

	return cfg, nil
}

// newPipeline builds the formatting pipeline for cfg.
func newPipeline(cfg *config.Config, opts format.PipelineOptions) (*format.Pipeline, error) {
	formatter, err := format.New(format.OptionsFromConfig(cfg))
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return format.NewPipeline(formatter, opts), nil
}

// runOptions converts positional arguments and cfg into runner options.
func runOptions(args []string, cfg *config.Config) (runner.Options, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return runner.Options{}, fmt.Errorf("get working directory: %w", err)
	}
	return runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}, nil
}

// isStdin reports whether args select standard input.
func isStdin(args []string) bool {
	return len(args) == 1 && args[0] == stdinPath
}

// newStyles returns output styles for w according to the --color flag.
func newStyles(cmd *cobra.Command, w io.Writer) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
}

// displayPath shortens paths below workDir for output.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
