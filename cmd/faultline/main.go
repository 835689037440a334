package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"faultline/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	debug   = false
)

func main() {
	// variables already in the environment win over .env
	if err := cli.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, level, err := newConsoleLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetDebugMode(debug)
		if debug {
			level.SetLevel(zapcore.DebugLevel)
		}
		cli.ConfigureStyling(os.Stdout)
	}
	initCommands(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorLine(cli.NormalizeError(err)))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "faultline",
	Short: "Configuration-driven error dispatch",
	Long: `faultline routes errors to handlers chosen by configuration.

A configuration file maps error type identifiers (errx codes) to handler
refs and names default handlers for everything else. This CLI validates
those files, lists the built-in handlers and error codes, and dispatches
synthetic errors to verify handlers end to end.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and structured error output")
}

func initCommands(logger *zap.Logger) {
	rootCmd.AddCommand(cli.NewCheckCmd(logger))
	rootCmd.AddCommand(cli.NewDispatchCmd(logger))
	rootCmd.AddCommand(cli.NewHandlersCmd(logger))
	rootCmd.AddCommand(cli.NewCodesCmd(logger))
}

// newConsoleLogger returns a human-friendly console logger at Error level.
// The returned level is raised to Debug by --debug.
func newConsoleLogger() (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zap.ErrorLevel)
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	return logger, level, err
}
