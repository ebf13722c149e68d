package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/app"
	"github.com/sqmw/repofolio/internal/config"
	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/logging"
	"github.com/sqmw/repofolio/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "repofolio: %v\n", err)
		return mapErrorToExitCode(err)
	}
	return 0
}

// globalFlags override the config file.
type globalFlags struct {
	configPath string
	user       string
	apiBase    string
	storage    string
	dataDir    string
	logLevel   string
	logFile    string
	jsonOutput bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "repofolio",
		Short: "Browse a GitHub user's repositories as a portfolio",
		Long: `repofolio fetches a GitHub user's public repositories and presents them as a
searchable portfolio with language filters, sorting, a trending sidebar based on
star changes since the last visit, and top-starred projects.

Without a subcommand it starts the terminal UI. The subcommands print the same
derived views for scripts.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			rt, err := app.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			return app.Run(cmd.Context(), rt)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/repofolio/config.toml)")
	pf.StringVar(&flags.user, "user", "", "GitHub user whose repositories are listed")
	pf.StringVar(&flags.apiBase, "api-base", "", "GitHub REST API base URL")
	pf.StringVar(&flags.storage, "storage", "", "storage backend: file, sqlite or memory")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory for cached data and preferences")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFile, "log-file", "", "log file used by the terminal UI")
	pf.BoolVar(&flags.jsonOutput, "json", false, "print subcommand output as JSON")

	rootCmd.AddCommand(
		newListCommand(flags),
		newTrendingCommand(flags),
		newLanguagesCommand(flags),
		newCacheCommand(flags),
		newLogsCommand(flags),
		newVersionCommand(),
	)
	return rootCmd
}

// load reads the config file and applies flag overrides.
func (f *globalFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if f.user != "" {
		cfg.User = f.user
	}
	if f.apiBase != "" {
		cfg.APIBase = f.apiBase
	}
	if f.storage != "" {
		cfg.Storage = f.storage
	}
	if f.dataDir != "" {
		if cfg.DataDir, err = config.ExpandPath(f.dataDir); err != nil {
			return config.Config{}, fmt.Errorf("--data-dir: %w", err)
		}
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFile != "" {
		if cfg.LogFile, err = config.ExpandPath(f.logFile); err != nil {
			return config.Config{}, fmt.Errorf("--log-file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openCLI wires a runtime that logs to stderr. Without --log-level only
// warnings and errors are shown so they do not drown the output.
func (f *globalFlags) openCLI() (*app.Runtime, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, err
	}
	level := f.logLevel
	if level == "" {
		level = "warn"
	}
	logger, err := logging.New("", level)
	if err != nil {
		return nil, err
	}
	rt, err := app.Open(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return rt, nil
}

func closeRuntime(rt *app.Runtime) {
	if err := rt.Close(); err != nil {
		rt.Logger.Warn("close storage", zap.Error(err))
	}
	_ = rt.Logger.Sync()
}

// mapErrorToExitCode maps errors to exit codes: 2 rate limited, 3 network
// failure, 1 anything else.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, github.ErrRateLimit) {
		return 2
	}
	if errors.Is(err, github.ErrNetworkFailure) {
		return 3
	}
	return 1
}
