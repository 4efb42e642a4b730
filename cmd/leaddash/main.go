package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leaddash/internal/config"
	"leaddash/internal/logging"
)

// app holds what every command needs once flags are parsed.
type app struct {
	// flags
	dataDir  string
	dataPath string
	verbose  bool

	// resolved in PersistentPreRunE
	userCfgPath string
	cfg         config.Config // normalized
	validation  config.Validation
	log         *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "leaddash",
		Short: "Lead dashboard engine",
		Long: `leaddash serves an interactive dashboard over a CSV of sales leads:
sidebar filters, summary metrics, a lead score histogram, per-lead detail
cards and a CSV download of the filtered subset.

Run without a subcommand to start the HTTP engine.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "engine data dir (default $LEADDASH_DATA_DIR or .)")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "dataset file, overrides data.path from config")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.summaryCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.configCmd())
	return root
}

func (a *app) init() error {
	if a.dataDir == "" {
		a.dataDir = os.Getenv("LEADDASH_DATA_DIR")
	}
	if a.dataDir == "" {
		a.dataDir = "."
	}
	if err := os.MkdirAll(a.dataDir, 0o755); err != nil {
		return err
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(a.dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}
	a.userCfgPath = userCfgPath

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	// every command works on the trimmed config; serve and config validate
	// report the validation result
	a.cfg, a.validation = config.NormalizeAndValidate(cfg)

	a.log, err = logging.New(logging.Options{
		Level:       a.cfg.Logging.Level,
		Development: a.cfg.Logging.Development,
		Verbose:     a.verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// datasetPath is the --data flag or data.path resolved against the data dir.
func (a *app) datasetPath() string {
	if a.dataPath != "" {
		return a.dataPath
	}
	return config.ResolveDataPath(a.cfg, a.dataDir)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
