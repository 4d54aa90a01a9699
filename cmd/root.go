package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/panefm/internal/browser"
	"github.com/timvw/panefm/internal/config"
	"github.com/timvw/panefm/internal/journal"
	"github.com/timvw/panefm/internal/logging"
	"github.com/timvw/panefm/internal/mode"
	telem "github.com/timvw/panefm/internal/otel"
	"github.com/timvw/panefm/internal/panes"
	"github.com/timvw/panefm/internal/transfer"
)

var (
	// Flags overriding the config file and environment.
	flagTheme     string
	flagPanes     int
	flagReverse   bool
	flagOverwrite string
	flagLogFile   string
)

var rootCmd = &cobra.Command{
	Use:   "panefm [dir]",
	Short: "Multi-pane terminal file manager",
	Long: `panefm shows two or more directory panes side by side and moves,
copies and deletes entries between them.

Mark an entry with m (move) or c (copy), switch to the destination pane
and press Enter. ctrl+d deletes the selected entry without confirmation.

Configuration is loaded from .panefm.yaml, ~/.config/panefm/config.yaml
or PANEFM_* environment variables.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(cmd, args)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "color theme: dark, light")
	rootCmd.Flags().IntVar(&flagPanes, "panes", 0, "initial number of panes (default 2)")
	rootCmd.Flags().BoolVar(&flagReverse, "reverse", false, "start with reversed sort order")
	rootCmd.Flags().StringVar(&flagOverwrite, "overwrite", "", "existing destination: replace, refuse")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file")
}

// loadConfig loads configuration and applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.ConfigFile != "" {
		fmt.Fprintf(os.Stderr, "config: loaded %s\n", cfg.ConfigFile)
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = flagTheme
	}
	if flags.Changed("panes") {
		if flagPanes < 1 {
			return nil, fmt.Errorf("--panes must be at least 1")
		}
		cfg.Panes = flagPanes
	}
	if flags.Changed("reverse") {
		cfg.Reverse = flagReverse
	}
	if flags.Changed("overwrite") {
		policy, err := transfer.ParsePolicy(flagOverwrite)
		if err != nil {
			return nil, err
		}
		cfg.Overwrite, cfg.Policy = flagOverwrite, policy
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	return cfg, nil
}

func runBrowser(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	if start, err = startDir(start); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer log.Close()

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}
	var metrics *telem.Metrics
	if tel != nil {
		defer tel.Shutdown(context.Background())
		metrics = tel.Metrics
	}

	keys, err := browser.DefaultKeyMap().WithOverrides(cfg.Keys)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	set, err := panes.New(start, cfg.Panes,
		panes.WithLogger(log.Logger),
		panes.WithMetrics(metrics),
		panes.WithReverse(cfg.Reverse),
	)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.JournalPath(), cfg.JournalSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal disabled: %v\n", err)
		j, _ = journal.Open("", cfg.JournalSize)
	}
	defer j.Close()

	engine := &transfer.Engine{
		Panes:     set,
		Overwrite: cfg.Policy,
		Metrics:   metrics,
		Log:       log.Logger,
	}
	ctrl := mode.New(set, engine, j, log.Logger)

	log.Info().Str("dir", start).Int("panes", cfg.Panes).Str("overwrite", cfg.Policy.String()).Msg("starting")
	b := &browser.Browser{
		Controller: ctrl,
		Keys:       keys,
		Theme:      browser.ThemeByName(cfg.Theme),
	}
	return b.Run(ctx)
}

// startDir resolves "." to the working directory so the error for an
// unreadable cwd names a real path.
func startDir(dir string) (string, error) {
	if dir != "." {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	return wd, nil
}
