package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version will be set via ldflags during build.
var Version = "dev"

// DefaultLedgerFile is the ledger read when neither --ledger nor FINTRACK_LEDGER is set
const DefaultLedgerFile = "ledger.yaml"

// app carries the per-invocation settings shared by every subcommand
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:   "fintrack",
		Short: "Salary, stock vesting and multi-currency expense tracker",
		Long: `fintrack breaks salaries down into deductions and rent tax, runs stock vesting
events through the vesting tax pipeline, and rolls multi-currency expenses up
into per-currency totals, grand totals and a monthly dashboard.

Everything is read from a single YAML ledger file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd.ErrOrStderr())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/fintrack/config.yaml)")
	rootCmd.PersistentFlags().String("ledger", DefaultLedgerFile, "ledger file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = a.v.BindPFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))
	_ = a.v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newSalaryCommand(a))
	rootCmd.AddCommand(newStocksCommand(a))
	rootCmd.AddCommand(newExpensesCommand(a))
	rootCmd.AddCommand(newDashboardCommand(a))
	rootCmd.AddCommand(newBonusCommand(a))
	rootCmd.AddCommand(newReportCommand(a))

	return rootCmd
}

func (a *app) initConfig(logOut io.Writer) error {
	// .env is optional, for local development
	_ = godotenv.Load()

	// Set up config file
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		a.v.AddConfigPath(filepath.Join(home, ".config", "fintrack"))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	// Environment variables
	a.v.SetEnvPrefix("FINTRACK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	// Read config file
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	logger, err := setupLogging(logOut, a.v.GetString("logging.level"), a.v.GetString("logging.format"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger
	return nil
}

func setupLogging(w io.Writer, level, format string) (*slog.Logger, error) {
	// Parse log level
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Create handler based on format
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}

	switch format {
	case "console":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
