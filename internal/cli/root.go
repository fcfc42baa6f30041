// Package cli provides the Cobra command structure for mdfoot.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfoot/internal/configloader"
	"github.com/yaklabco/mdfoot/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdfoot command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdfoot",
		Short: "Format and verify GitHub Flavored Markdown footnotes",
		Long: `mdfoot parses Markdown documents with GFM footnotes and writes them back
in a canonical form.

Footnote calls such as [^1] and definitions such as "[^1]: Note." are kept
intact through a round trip: labels keep their spelling, definition content
is re-indented by four spaces, and literal text that would turn into a
footnote is escaped. Run "mdfoot check" to verify that documents survive the
round trip before rewriting them with "mdfoot fmt --write".` + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the MDFOOT_* variables for the root help text.
func environmentHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "  %-34s %s\n", v.Name, v.Description)
	}
	return b.String()
}
