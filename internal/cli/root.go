// Package cli provides the command-line interface for casepairs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/casepairs/internal/collector"
	"github.com/raphaelgruber/casepairs/internal/config"
	"github.com/raphaelgruber/casepairs/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configFile string
	logFile    string

	// Loaded in PersistentPreRunE
	cfg           config.Config
	logger        *slog.Logger
	loggerCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "casepairs",
	Short: "Build a judgement/summary CSV dataset from a directory tree",
	Long: `Casepairs walks a dataset root, finds every "judgement" directory with a
"summary" sibling, pairs the .txt files that share a name, drops blank pairs
and writes them to judgement_summary.csv inside the root.

Configuration comes from an optional YAML file (--config or CASEPAIRS_CONFIG),
CASEPAIRS_* environment variables and flags, in increasing priority.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if logFile != "" {
			cfg.LogFile = logFile
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, loggerCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if loggerCleanup != nil {
			if err := loggerCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and runs it.
// Ctrl-C cancels the run before any output is written.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(scanCmd)
}

// layoutFlags are shared by commands that read a dataset root.
type layoutFlags struct {
	judgementDir string
	summaryDir   string
	extension    string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.judgementDir, "judgement-dir", "", "name of judgement directories (default from config)")
	cmd.Flags().StringVar(&f.summaryDir, "summary-dir", "", "name of summary directories (default from config)")
	cmd.Flags().StringVar(&f.extension, "ext", "", "document file extension (default from config)")
}

// resolve applies flags and the positional root onto the loaded config and
// validates the result.
func (f *layoutFlags) resolve(args []string) (config.Config, error) {
	c := cfg
	if len(args) > 0 {
		c.DatasetRoot = args[0]
	}
	if f.judgementDir != "" {
		c.JudgementDir = f.judgementDir
	}
	if f.summaryDir != "" {
		c.SummaryDir = f.summaryDir
	}
	if f.extension != "" {
		c.Extension = f.extension
	}

	if err := c.Validate(); err != nil {
		if errors.Is(err, config.ErrNoDatasetRoot) {
			return c, fmt.Errorf("%w: pass <root> or set %s", err, config.EnvDatasetRoot)
		}
		return c, err
	}
	return c, nil
}

// newService creates the dataset service for the resolved config.
func newService(c config.Config) *service.DatasetService {
	return service.NewDatasetService(collector.Options{
		JudgementDir: c.JudgementDir,
		SummaryDir:   c.SummaryDir,
		Extension:    c.Extension,
	}, logger)
}

// out returns where command output goes.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
