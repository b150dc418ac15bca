package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/store"
)

// app carries the state shared by every command once the root pre-run has
// loaded the configuration.
type app struct {
	configFile string
	baseURL    string
	instances  []string
	spec       string
	workers    int
	driver     string
	dbPath     string
	logFormat  string
	logLevel   string

	cfg    *config.Configuration
	logger *zap.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "parallel-instances",
		Short: "Run browser test suites against several instances in parallel",
		Long: `parallel-instances runs the same browser test suites against every configured
instance of an application, retries flaky page visits, records performance
metrics per instance and keeps the results for reporting.

Every flag can be set from the environment with the CYPRESS_ prefix,
e.g. CYPRESS_BASE_URL=https://staging.example.com.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cobrautil.CommandStack(cobrautil.SyncViperPreRunE(config.EnvPrefix), a.load),
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "configuration file (default ./parallel-instances.yaml)")
	flags.StringVar(&a.baseURL, "base-url", "", "base URL of the instance under test")
	flags.StringSliceVar(&a.instances, "instance", nil, "instance base URL, repeatable; overrides the configured instances")
	flags.StringVar(&a.spec, "spec", "", "glob over suite names")
	flags.IntVar(&a.workers, "workers", 0, "instances driven concurrently")
	flags.StringVar(&a.driver, "driver", "", "browser driver: playwright, rod or http")
	flags.StringVar(&a.dbPath, "db", "", "results database path")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newRunCommand(a),
		newOpenCommand(a),
		newReportCommand(a),
		newServeCommand(a),
		newResolveCommand(a),
		newTokenCommand(a),
	)

	return root
}

// Execute runs the root command and prints the error, if any.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// load reads the configuration, applies flags and plugins, and installs the
// global logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()

	cfg, err := config.Load(viper.New(), a.configFile, a.options(f)...)
	if err != nil {
		return err
	}
	if f.Changed("workers") {
		cfg.Run.Workers = a.workers
	}
	if f.Changed("driver") {
		cfg.Browser.Driver = a.driver
	}
	if f.Changed("db") {
		cfg.Store.DBPath = a.dbPath
	}

	cfg, err = config.ApplyPlugins(cfg, config.CIBuildPlugin(os.Getenv))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	a.cfg = cfg
	a.logger = logger
	zap.S().Named("cmd").Debugw("configuration loaded", "config", cfg.DebugMap())
	return nil
}

// options turns the flags set on the command line or through the
// environment into configuration options applied over the file.
func (a *app) options(f *pflag.FlagSet) []config.ConfigurationOption {
	var opts []config.ConfigurationOption
	if f.Changed("base-url") {
		opts = append(opts, config.WithBaseURL(a.baseURL))
	}
	if f.Changed("instance") {
		opts = append(opts, config.SetInstances(a.instances))
	}
	if f.Changed("spec") {
		opts = append(opts, config.WithSpecPattern(a.spec))
	}
	if f.Changed("log-format") {
		opts = append(opts, config.WithLogFormat(a.logFormat))
	}
	if f.Changed("log-level") {
		opts = append(opts, config.WithLogLevel(a.logLevel))
	}
	return opts
}

func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = lvl

	return zcfg.Build()
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	db, err := store.NewDB(a.cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}
	st := store.NewStore(db)
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to migrate results database: %w", err)
	}
	return st, nil
}
