package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"financetracker/internal/api"
	"financetracker/internal/config"
	"financetracker/internal/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Version = "0.1.0"
	appName = "financetracker"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		envFile  string
		port     string
		driver   string
		dbPath   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Personal finance tracker backend",
		Long: `Records income and expense transactions and serves monthly, yearly
and running-balance summaries over HTTP.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
			}

			cfg := config.FromEnv()
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("db-driver") {
				cfg.DB.Driver = driver
			}
			if flags.Changed("db-path") {
				cfg.DB.Path = dbPath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a .env file")
	cmd.Flags().StringVarP(&port, "port", "p", "8080", "HTTP listen port (overrides SERVER_PORT)")
	cmd.Flags().StringVar(&driver, "db-driver", config.DriverSQLite, "Database driver: sqlite or postgres (overrides DB_DRIVER)")
	cmd.Flags().StringVar(&dbPath, "db-path", "finance.db", "sqlite database file (overrides DB_PATH)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("opening database",
		zap.String("driver", cfg.DB.Driver),
		zap.String("path", cfg.DB.Path),
		zap.String("host", cfg.DB.Host),
		zap.String("name", cfg.DB.Name),
	)

	conn, err := db.InitDB(cfg.DB)
	if err != nil {
		logger.Error("database unavailable", zap.Error(err))
		return err
	}
	defer conn.Close()

	server := api.NewServer(db.NewStore(conn, cfg.DB.Driver), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, ":"+cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	if strings.ToLower(format) == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
