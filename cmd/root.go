package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/modelctl/internal/config"
	"github.com/zjrosen/modelctl/internal/flags"
	"github.com/zjrosen/modelctl/internal/infrastructure/filestore"
	"github.com/zjrosen/modelctl/internal/log"
	"github.com/zjrosen/modelctl/internal/tracing"
)

// localConfigPath is checked before the user config directory.
const localConfigPath = ".modelctl/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	// configErr holds a config read or decode failure until setup can return it.
	configErr error
)

// env is the per-invocation state built before a subcommand runs.
var env struct {
	store      *filestore.Store
	flags      *flags.Registry
	tracer     *tracing.Provider
	span       trace.Span
	logCleanup func()
}

var rootCmd = &cobra.Command{
	Use:   "modelctl",
	Short: "Track AI model versions through their lifecycle",
	Long: `modelctl keeps a registry of AI model versions with their creation,
deprecation and retirement dates, and reports whether each one is active,
deprecated or retired at any point in time.`,
	Version:            version,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .modelctl/config.yaml, then ~/.config/modelctl/config.yaml)")
	rootCmd.PersistentFlags().StringP("registry", "r", "",
		"path to registry file (default: "+config.DefaultRegistryFile+")")
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs")
	rootCmd.PersistentFlags().String("log-file", "", "debug log path (default: debug.log)")
}

func initConfig() {
	viper.Reset()

	defaults := config.Defaults()
	viper.SetDefault("registry", defaults.Registry)
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("log_file", defaults.LogFile)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("sqlite.path", defaults.SQLite.Path)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	viper.SetEnvPrefix("MODELCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlag("registry", rootCmd.PersistentFlags().Lookup("registry"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .modelctl/config.yaml (current directory)
		// 2. ~/.config/modelctl/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "modelctl"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults apply.
	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}

	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
}

// setup validates configuration and wires logging, tracing, feature flags and
// the registry store for the subcommand.
func setup(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	env.logCleanup = nil
	if cfg.Debug {
		cleanup, err := log.Init(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("initializing log: %w", err)
		}
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
		env.logCleanup = cleanup
	}
	log.Debug(log.CatCLI, "Running command", "command", cmd.CommandPath(), "args", args,
		"config", viper.ConfigFileUsed())

	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	env.tracer = provider
	if provider.Enabled() {
		log.Debug(log.CatTrace, "Tracing enabled", "exporter", cfg.Tracing.Exporter)
	}
	ctx, span := tracing.Start(cmd.Context(), provider.Tracer(), tracing.SpanPrefixCommand+cmd.Name(),
		attribute.String(tracing.AttrCommandName, cmd.CommandPath()),
	)
	cmd.SetContext(ctx)
	env.span = span

	env.flags = flags.New(cfg.Flags)

	store, err := filestore.New(cfg.Registry, filestore.WithTracer(provider.Tracer()))
	if err != nil {
		return err
	}
	env.store = store
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	return finish(nil)
}

// finish ends the command span with cmdErr, flushes traces and closes the log.
func finish(cmdErr error) error {
	if env.span != nil {
		tracing.Finish(env.span, cmdErr)
		env.span = nil
	}
	var err error
	if env.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := env.tracer.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("flushing traces: %w", shutdownErr)
		}
		env.tracer = nil
	}
	if env.logCleanup != nil {
		env.logCleanup()
		env.logCleanup = nil
	}
	return err
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		// PersistentPostRunE is skipped when RunE fails.
		_ = finish(err)
		fmt.Fprintf(rootCmd.ErrOrStderr(), "✗ Error: %v\n", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
