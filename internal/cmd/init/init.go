// Package init provides the init command for hl.
package init

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/highlight-cli/internal/config"
	"github.com/open-cli-collective/highlight-cli/internal/view"
)

type initOptions struct {
	configPath  string
	defaults    bool
	interactive bool
	noColor     bool
	stdout      io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{interactive: true}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize hl configuration",
		Long: `Initialize hl with your preferred defaults.

This command will guide you through choosing case sensitivity, match
extension, the matching time budget and how highlights are rendered.
The configuration will be saved to ~/.config/hl/config.yml.`,
		Example: `  # Interactive setup
  hl init

  # Write the built-in defaults without prompting
  hl init --defaults`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Write the built-in defaults without prompting")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	prompt := opts.interactive && !opts.defaults

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && prompt {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.stdout, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{Timeout: "5s"}
	cfg.ApplyDefaults()

	if prompt {
		if err := configForm(cfg).Run(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	r := view.NewRenderer(view.FormatTerminal, opts.noColor)
	r.SetWriter(opts.stdout)
	r.Success("Configuration saved to " + configPath)
	fmt.Fprintln(opts.stdout, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.stdout, "  hl highlight --term foo README.md")
	fmt.Fprintln(opts.stdout, "  hl fragments --html --term foo page.html")

	return nil
}

func configForm(cfg *config.Config) *huh.Form {
	formats := make([]huh.Option[string], 0, len(view.ValidFormats()))
	for _, f := range view.ValidFormats() {
		formats = append(formats, huh.NewOption(f, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Case-sensitive matching").
				Description("Match terms with exact case").
				Value(&cfg.CaseSensitive),

			huh.NewConfirm().
				Title("Extend matches to the next word boundary").
				Description(`"high" then highlights all of "highlighting"`).
				Value(&cfg.UntilNextBoundary),

			huh.NewInput().
				Title("Matching timeout").
				Description("Time budget for one document, e.g. 5s or 500ms").
				Value(&cfg.Timeout).
				Validate(validateTimeout),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(formats...).
				Value(&cfg.OutputFormat),

			huh.NewSelect[string]().
				Title("Highlight color").
				Description("Used by the terminal format").
				Options(huh.NewOptions(config.Colors()...)...).
				Value(&cfg.HighlightColor),

			huh.NewInput().
				Title("Opening marker").
				Description("Placed before highlights in plain output").
				Value(&cfg.MarkerOpen),

			huh.NewInput().
				Title("Closing marker").
				Value(&cfg.MarkerClose),
		),
	)
}

func validateTimeout(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("not a duration: %s", s)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
