package split

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/highlight-cli/internal/logging"
	"github.com/open-cli-collective/highlight-cli/internal/view"
	"github.com/open-cli-collective/highlight-cli/pkg/highlight"
)

// NewCmdHighlight creates the highlight command.
func NewCmdHighlight() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Highlight terms in a document",
		Long: `Highlight every occurrence of the given terms.

Input is read from the file argument, --url, or stdin. With --html the
input is treated as markup: tags are kept intact and only text between
them is matched. Unbalanced tags are repaired and reported with --verbose.`,
		Example: `  # Highlight a term in a file
  hl highlight --term error app.log

  # Several terms, case-sensitive, from stdin
  cat notes.txt | hl highlight -t TODO -t FIXME --case-sensitive

  # Highlight inside an HTML page and emit HTML with <mark> tags
  hl highlight --html --url https://example.com -t example -o html

  # Render markdown with bold highlights
  hl highlight --markdown README.md -t install -o markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepare(cmd, args, opts); err != nil {
				return err
			}
			return runHighlight(cmd.Context(), opts)
		},
	}

	addSplitFlags(cmd, opts)

	return cmd
}

func runHighlight(ctx context.Context, opts *options) error {
	renderer, err := opts.renderer()
	if err != nil {
		return err
	}

	doc, input, err := opts.split(ctx)
	if err != nil {
		var timeout *highlight.TimeoutError
		if !errors.As(err, &timeout) {
			return err
		}

		logging.FromContext(ctx).Warn("highlighting timed out, showing unhighlighted text",
			zap.String("pattern", timeout.Pattern),
			zap.Duration("timeout", timeout.Timeout))
		if renderErr := renderer.RenderDocument(unhighlighted(input, opts.markup())); renderErr != nil {
			return renderErr
		}
		return err
	}

	return renderer.RenderDocument(doc)
}

// unhighlighted wraps input as a single fragment.
func unhighlighted(input string, markup bool) view.Document {
	typ := highlight.FragmentText
	if markup {
		typ = highlight.FragmentMarkup
	}
	return view.Document{
		Fragments: []highlight.Fragment{{Content: input, Type: typ}},
		Markup:    markup,
	}
}
