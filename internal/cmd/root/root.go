// Package root provides the root command for the hl CLI.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/highlight-cli/internal/cmd/completion"
	"github.com/open-cli-collective/highlight-cli/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/highlight-cli/internal/cmd/init"
	"github.com/open-cli-collective/highlight-cli/internal/cmd/split"
	"github.com/open-cli-collective/highlight-cli/internal/logging"
	"github.com/open-cli-collective/highlight-cli/internal/version"
	"github.com/open-cli-collective/highlight-cli/internal/view"
)

// NewCmdRoot creates the root command for hl.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hl",
		Short: "Highlight search terms in text and HTML",
		Long: `hl marks every occurrence of one or more search terms in a document.

Plain text is split around the terms. HTML input is split into tags and
text so terms are only matched between tags, and tags that would leave
the result unbalanced are repaired.

Get started by running: hl highlight --term foo README.md`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = logging.FromContext(cmd.Context()).Sync()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/hl/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: terminal, html, markdown, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return view.ValidFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.SetVersionTemplate("hl version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(split.NewCmdHighlight())
	cmd.AddCommand(split.NewCmdFragments())
	cmd.AddCommand(split.NewCmdPattern())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
