package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/highlight-cli/internal/config"
	"github.com/open-cli-collective/highlight-cli/internal/view"
	"github.com/open-cli-collective/highlight-cli/pkg/highlight"
)

type showOptions struct {
	configPath string
	output     string
	noColor    bool
	stdout     io.Writer
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective hl configuration and where each value comes from.`,
		Example: `  # Show current config
  hl config show

  # Effective config as JSON
  hl config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = configPath(cmd)
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runShow(opts)
		},
	}

	return cmd
}

func runShow(opts *showOptions) error {
	if opts.noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(opts.configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(opts.configPath)
	if err != nil {
		return err
	}

	if opts.output == string(view.FormatJSON) {
		r := view.NewRenderer(view.FormatJSON, opts.noColor)
		r.SetWriter(opts.stdout)
		return r.RenderJSON(cfg)
	}

	timeout := cfg.Timeout
	if timeout == "" {
		timeout = highlight.DefaultTimeout.String()
	}

	w := opts.stdout
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-20s", label+":")
		fmt.Fprint(w, value)

		source := "default"
		if envVar != "" && os.Getenv(envVar) != "" {
			source = envVar
		} else if fileValue != "" {
			source = "config"
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Case sensitive", strconv.FormatBool(cfg.CaseSensitive), boolValue(fileCfg.CaseSensitive), "HL_CASE_SENSITIVE")
	printField("Until next boundary", strconv.FormatBool(cfg.UntilNextBoundary), boolValue(fileCfg.UntilNextBoundary), "HL_UNTIL_NEXT_BOUNDARY")
	printField("Timeout", timeout, fileCfg.Timeout, "HL_TIMEOUT")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "HL_OUTPUT")
	printField("Color", cfg.HighlightColor, fileCfg.HighlightColor, "HL_COLOR")
	printField("Markers", cfg.MarkerOpen+" "+cfg.MarkerClose, fileCfg.MarkerOpen+fileCfg.MarkerClose, "")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", opts.configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// boolValue maps false to "" so an omitted bool reads as unset.
func boolValue(b bool) string {
	if b {
		return "true"
	}
	return ""
}
