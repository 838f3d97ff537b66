package split

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCmdFragments creates the fragments command.
func NewCmdFragments() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fragments [file]",
		Short: "List the fragments a document splits into",
		Long: `List each fragment with its index and type.

Types are text, highlighted and markup. Content is quoted so whitespace
is visible; it is truncated in terminal output.`,
		Example: `  # Inspect how an HTML snippet is split
  echo '<b>foo</b> bar' | hl fragments --html -t foo

  # Full fragment list as JSON
  hl fragments page.html --html -t foo -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepare(cmd, args, opts); err != nil {
				return err
			}
			return runFragments(cmd.Context(), opts)
		},
	}

	addSplitFlags(cmd, opts)

	return cmd
}

func runFragments(ctx context.Context, opts *options) error {
	renderer, err := opts.renderer()
	if err != nil {
		return err
	}

	doc, _, err := opts.split(ctx)
	if err != nil {
		return err
	}

	return renderer.RenderFragmentTable(doc)
}
