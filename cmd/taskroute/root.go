package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/taskroute/internal/cli"
	"github.com/aretw0/taskroute/internal/config"
	"github.com/aretw0/taskroute/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskroute",
	Short: "taskroute sends a task to the right agent",
	Long: `taskroute asks a language model whether a task is a translation, a summary or a
calculation, then runs the matching agent on the input. Arithmetic is evaluated
locally when the expression is safe.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides config)")
}

// loadConfig reads the config file and applies the logging flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level, logging.Format(cfg.Log.Format)), nil
}

// loadApp builds the wired application for commands that route requests.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg, logger)
}

func closeApp(app *cli.App) {
	if err := app.Close(context.Background()); err != nil {
		app.Logger.Warn("Shutdown incomplete", "err", err)
	}
}
