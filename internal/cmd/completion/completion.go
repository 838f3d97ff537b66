// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name     string
	install  string
	generate func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `  # Load in current session
  source <(hl completion bash)

  # Install permanently (Linux)
  hl completion bash | sudo tee /etc/bash_completion.d/hl > /dev/null

  # Install permanently (macOS with Homebrew)
  hl completion bash > $(brew --prefix)/etc/bash_completion.d/hl`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name: "zsh",
		install: `  # Load in current session
  source <(hl completion zsh)

  # Install permanently
  hl completion zsh > "${fpath[1]}/_hl"`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		install: `  # Load in current session
  hl completion fish | source

  # Install permanently
  hl completion fish > ~/.config/fish/completions/hl.fish`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		install: `  # Load in current session
  hl completion powershell | Out-String | Invoke-Expression

  # Install permanently
  hl completion powershell >> $PROFILE`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for hl.

These scripts enable tab-completion for commands, flags, and flag values
such as --output formats. See each sub-command's help for installation
instructions.`,
	}

	for _, s := range shells {
		cmd.AddCommand(newCmdShell(s))
	}

	return cmd
}

func newCmdShell(s shell) *cobra.Command {
	return &cobra.Command{
		Use:                   s.name,
		Short:                 fmt.Sprintf("Generate %s completion script", s.name),
		Example:               s.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.generate(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
