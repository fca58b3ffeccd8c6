package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/batch"
	"github.com/pbaille/digest/internal/config"
	"github.com/pbaille/digest/internal/logging"
)

// app holds the state shared by all subcommands of one invocation
type app struct {
	configPath string
	verbose    bool
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
	runID  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "digest",
		Short:        "Maintain daily news digest files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(numberCmd(a))
	rootCmd.AddCommand(replaceCmd(a))
	rootCmd.AddCommand(mergeCmd(a))
	rootCmd.AddCommand(reorderCmd(a))
	rootCmd.AddCommand(sortCmd(a))
	rootCmd.AddCommand(serveCmd(a))

	return rootCmd
}

// init loads the configuration and builds the run logger
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	format := cfg.Logging.Format
	if a.logFormat != "" {
		format = a.logFormat
	}

	logger, err := logging.New(level, format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger, a.runID = logging.WithRun(logger, cmd.Name())
	a.logger.Debug("Configuration loaded", zap.String("config", a.configPath))
	return nil
}

func (a *app) runner(cmd *cobra.Command, dryRun bool) *batch.Runner {
	return batch.New(cmd.OutOrStdout(), a.logger, dryRun)
}

// cwd returns dir, or the working directory when dir is empty
func cwd(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return os.Getwd()
}
