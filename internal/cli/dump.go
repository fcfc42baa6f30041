package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfoot/internal/ui/pretty"
	"github.com/yaklabco/mdfoot/pkg/config"
	"github.com/yaklabco/mdfoot/pkg/format"
	"github.com/yaklabco/mdfoot/pkg/fsutil"
)

type dumpFlags struct {
	styleFlags

	format string
}

func newDumpCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the footnotes of a document",
		Long: `Parse a document and print its footnote definitions and references with
their identifiers, labels and source positions. Definitions include their
content as a tree; fenced code without an info string is annotated with a
detected language. Footnotes that are referenced but never defined, or
defined but never referenced, are listed separately.

Examples:
  mdfoot dump README.md                  # YAML output
  mdfoot dump README.md --format json    # JSON output
  mdfoot dump README.md --format table   # One row per footnote
  mdfoot dump - < notes.md               # Read standard input`,
		Args: func(cmd *cobra.Command, args []string) error {
			return withExitCode(ExitInvalidUsage, cobra.ExactArgs(1)(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.DumpFormatYAML), "output format: yaml, json, table")
	addStyleFlags(cmd, cfg, &flags.styleFlags)

	return cmd
}

func runDump(cmd *cobra.Command, path string, cliCfg *config.Config, flags *dumpFlags) error {
	outFormat := config.DumpFormat(flags.format)
	if !outFormat.IsValid() {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be yaml, json or table", flags.format))
	}

	cfg, err := resolveConfig(cmd, cliCfg, &flags.styleFlags)
	if err != nil {
		return err
	}

	formatter, err := format.New(format.OptionsFromConfig(cfg))
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	ctx := cmd.Context()

	var content []byte
	if path == stdinPath {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("read standard input: %w", err))
		}
	} else {
		content, _, err = fsutil.ReadFile(ctx, path)
		if err != nil {
			return err
		}
	}

	dump, err := formatter.Dump(ctx, path, content)
	if err != nil {
		return err
	}

	return writeDump(cmd, dump, outFormat)
}

func writeDump(cmd *cobra.Command, dump *format.Dump, outFormat config.DumpFormat) error {
	out := cmd.OutOrStdout()

	switch outFormat {
	case config.DumpFormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case config.DumpFormatTable:
		table := pretty.NewTableFormatter(newStyles(cmd, out), pretty.TerminalWidth(out))
		fmt.Fprint(out, table.FormatDump(dump))
	default:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(config.YAMLIndent())
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}

	return nil
}
