package split

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/highlight-cli/internal/view"
	"github.com/open-cli-collective/highlight-cli/pkg/highlight"
)

type patternOptions struct {
	terms     []string
	wholeWord bool
	html      bool
	output    string
	noColor   bool
	stdout    io.Writer
}

// NewCmdPattern creates the pattern command.
func NewCmdPattern() *cobra.Command {
	opts := &patternOptions{}

	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Print the regular expression built from terms",
		Long: `Print the alternation hl matches with.

Case sensitivity is applied when the pattern is compiled, so it is not
part of the printed pattern. With --html each term is followed by its
HTML-encoded form.`,
		Example: `  hl pattern -t foo -t "a.b"
  hl pattern -t "Tom & Jerry" --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runPattern(opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.terms, "term", "t", nil, "Term to include (repeatable)")
	cmd.Flags().BoolVar(&opts.wholeWord, "whole-word", false, "Extend each match to the next word boundary")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Add HTML-encoded forms of the terms")

	return cmd
}

func runPattern(opts *patternOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if len(opts.terms) == 0 {
		return errors.New("at least one --term is required")
	}

	terms := opts.terms
	if opts.html {
		terms = highlight.BuildTerms("", opts.terms)
	}

	pattern := highlight.CompilePattern(terms, opts.wholeWord)
	if pattern == "" {
		return errors.New("all terms are empty")
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	if opts.output == string(view.FormatJSON) {
		renderer.RenderKeyValue("pattern", pattern)
		return nil
	}
	renderer.RenderText(pattern)
	return nil
}
