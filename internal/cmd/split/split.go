// Package split provides the highlight, fragments and pattern commands.
package split

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/highlight-cli/internal/config"
	"github.com/open-cli-collective/highlight-cli/internal/logging"
	"github.com/open-cli-collective/highlight-cli/internal/source"
	"github.com/open-cli-collective/highlight-cli/internal/view"
	"github.com/open-cli-collective/highlight-cli/pkg/highlight"
	"github.com/open-cli-collective/highlight-cli/pkg/md"
)

// options are shared by the highlight and fragments commands.
type options struct {
	terms         []string
	caseSensitive bool
	wholeWord     bool
	html          bool
	markdown      bool
	sanitize      bool
	url           string
	timeout       time.Duration

	file        string
	output      string
	noColor     bool
	color       string
	markerOpen  string
	markerClose string

	stdin  io.Reader
	stdout io.Writer
	client *source.Client
}

func addSplitFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringArrayVarP(&opts.terms, "term", "t", nil, "Term to highlight (repeatable)")
	cmd.Flags().BoolVar(&opts.caseSensitive, "case-sensitive", false, "Match terms case-sensitively")
	cmd.Flags().BoolVar(&opts.wholeWord, "whole-word", false, "Extend each match to the next word boundary")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Treat input as HTML and keep tags intact")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Convert markdown input to HTML first (implies --html)")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "Strip unsafe HTML before splitting (implies --html)")
	cmd.Flags().StringVar(&opts.url, "url", "", "Fetch input from a URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Matching time budget (default 5s)")
}

// prepare fills the options from global flags, arguments and the config file.
// Flags the user set explicitly win over the config.
func prepare(cmd *cobra.Command, args []string, opts *options) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'hl init' to reconfigure)", err)
	}

	opts.output, _ = cmd.Flags().GetString("output")
	opts.noColor, _ = cmd.Flags().GetBool("no-color")
	if opts.output == "" {
		opts.output = cfg.OutputFormat
	}
	opts.color = cfg.HighlightColor
	opts.markerOpen = cfg.MarkerOpen
	opts.markerClose = cfg.MarkerClose

	if !cmd.Flags().Changed("case-sensitive") {
		opts.caseSensitive = cfg.CaseSensitive
	}
	if !cmd.Flags().Changed("whole-word") {
		opts.wholeWord = cfg.UntilNextBoundary
	}
	if !cmd.Flags().Changed("timeout") {
		opts.timeout = cfg.TimeoutDuration()
	}

	if len(args) > 0 {
		opts.file = args[0]
	}
	opts.stdin = pipedStdin(cmd)
	opts.stdout = cmd.OutOrStdout()
	return nil
}

// pipedStdin returns the command's stdin unless it is an interactive terminal.
func pipedStdin(cmd *cobra.Command) io.Reader {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return nil
		}
	}
	return in
}

func (o *options) markup() bool {
	return o.html || o.markdown || o.sanitize
}

func (o *options) highlightOptions() highlight.Options {
	return highlight.Options{
		CaseSensitive:     o.caseSensitive,
		UntilNextBoundary: o.wholeWord,
		Timeout:           o.timeout,
	}
}

func (o *options) renderer() (*view.Renderer, error) {
	if err := view.ValidateFormat(o.output); err != nil {
		return nil, err
	}

	r := view.NewRenderer(view.Format(o.output), o.noColor)
	if o.stdout != nil {
		r.SetWriter(o.stdout)
	}
	if o.color != "" {
		if err := r.SetHighlightColor(o.color); err != nil {
			return nil, err
		}
	}
	if o.markerOpen != "" || o.markerClose != "" {
		r.SetMarkers(o.markerOpen, o.markerClose)
	}
	return r, nil
}

// read returns the input, converted to HTML and sanitized as requested.
func (o *options) read(ctx context.Context) (string, error) {
	client := o.client
	if client == nil {
		client = source.NewClient(0)
	}

	input, err := client.Read(ctx, o.file, o.url, o.stdin)
	if err != nil {
		return "", err
	}

	if o.markdown {
		input, err = md.ToHTML([]byte(input))
		if err != nil {
			return "", err
		}
	}
	if o.sanitize {
		input = md.Sanitize(input)
	}
	return input, nil
}

// split reads the input and splits it. The input is returned even when
// splitting fails so callers can fall back to it.
func (o *options) split(ctx context.Context) (view.Document, string, error) {
	logger := logging.FromContext(ctx)

	input, err := o.read(ctx)
	if err != nil {
		return view.Document{}, "", err
	}

	var term string
	var rest []string
	if len(o.terms) > 0 {
		term, rest = o.terms[0], o.terms[1:]
	}

	if o.markup() {
		result, err := highlight.SplitHTML(input, term, rest, o.highlightOptions())
		if err != nil {
			return view.Document{}, input, err
		}
		for _, w := range result.Warnings {
			logger.Debug("repaired markup", zap.String("warning", w))
		}
		logger.Debug("split markup",
			zap.String("pattern", result.Pattern),
			zap.Int("fragments", len(result.Fragments)))
		return view.Document{Fragments: result.Fragments, Pattern: result.Pattern, Markup: true}, input, nil
	}

	fragments, pattern, err := highlight.GetFragments(input, term, rest, o.highlightOptions())
	if err != nil {
		return view.Document{}, input, err
	}
	logger.Debug("split text",
		zap.String("pattern", pattern),
		zap.Int("fragments", len(fragments)))
	return view.Document{
		Fragments: highlight.Classify(fragments, pattern, o.caseSensitive),
		Pattern:   pattern,
	}, input, nil
}
