package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"kestrel-v0/db"
	apiserver "kestrel-v0/internal/api"
	configapp "kestrel-v0/internal/config/application"
	heartbeatapp "kestrel-v0/internal/heartbeat/application"
	heartbeatdomain "kestrel-v0/internal/heartbeat/domain"
	heartbeatinfra "kestrel-v0/internal/heartbeat/infrastructure"
	"kestrel-v0/internal/infrastructure/database"
	"kestrel-v0/internal/infrastructure/logger"
	"kestrel-v0/internal/schema"
)

func main() {
	app := &cli.App{
		Name:  "kestrel",
		Usage: "missed-heartbeat detection over service event batches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "path to a .env file",
			},
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "expected heartbeat interval in seconds",
			},
			&cli.IntFlag{
				Name:    "misses",
				Aliases: []string{"m"},
				Usage:   "consecutive missed heartbeats before alerting",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "sqlite audit store path (empty disables auditing)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: DEBUG, INFO, WARN, ERROR",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: text or json",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "log output: stdout, stderr, or file path",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "monitor",
				Usage:     "run one detection pass over a JSON event file",
				ArgsUsage: "<heartbeat_file.json>",
				Action:    runMonitor,
			},
			{
				Name:  "serve",
				Usage: "serve the monitoring API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "API key for the X-API-Key header",
					},
					&cli.StringFlag{
						Name:  "port",
						Usage: "API server port",
					},
					&cli.BoolFlag{
						Name:  "dev",
						Usage: "enable development mode",
					},
				},
				Action: runServe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies flag > env > .env > default precedence and propagates
// the logging settings to the environment before the logger is built.
func loadConfig(c *cli.Context) *configapp.RuntimeConfig {
	bootLogger := logger.DefaultLogger()
	configapp.LoadEnvFile(bootLogger, c.String("env-file"))

	cfg := configapp.LoadRuntimeConfig(
		c.Int("interval"),
		c.Int("misses"),
		c.String("api-key"),
		c.String("port"),
		c.String("log-level"),
		c.String("log-format"),
		c.String("log-output"),
		c.String("db"),
		c.Bool("dev"),
	)

	os.Setenv("KESTREL_LOG_LEVEL", cfg.LogLevel)
	os.Setenv("KESTREL_LOG_FORMAT", cfg.LogFormat)
	os.Setenv("KESTREL_LOG_OUTPUT", cfg.LogOutput)

	return cfg
}

// openAuditStore opens the optional sqlite audit store. The returned cleanup
// is always safe to call.
func openAuditStore(ctx context.Context, appLogger *logger.Logger, cfg *configapp.RuntimeConfig) (heartbeatdomain.Repository, func(), error) {
	if cfg.DBPath == "" {
		return nil, func() {}, nil
	}

	appLogger.Debug("Connecting to database", "file", cfg.DBPath)
	dbRead, err := database.ConnectSQLite(cfg.DBPath)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to connect to read database: %w", err)
	}
	dbRead.SetMaxOpenConns(runtime.NumCPU())

	dbWrite, err := database.ConnectSQLite(cfg.DBPath)
	if err != nil {
		dbRead.Close()
		return nil, func() {}, fmt.Errorf("failed to connect to write database: %w", err)
	}
	dbWrite.SetMaxOpenConns(1)

	cleanup := func() {
		dbRead.Close()
		dbWrite.Close()
	}

	appLogger.Debug("Initializing database schema")
	_, err = dbWrite.ExecContext(ctx, schema.DDL)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to initialize schema: %w", err)
	}

	repo := heartbeatinfra.NewRepository(db.New(dbRead), db.New(dbWrite))
	return repo, cleanup, nil
}

func runMonitor(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowSubcommandHelp(c)
		return cli.Exit("monitor requires exactly one argument: <heartbeat_file.json>", 2)
	}

	cfg := loadConfig(c)
	appLogger := logger.NewLogger()
	logger.SetDefaultLogger(appLogger)

	detector, err := heartbeatdomain.NewDetector(cfg.IntervalSeconds, cfg.AllowedMisses)
	if err != nil {
		return fmt.Errorf("failed to configure detector: %w", err)
	}

	repo, cleanup, err := openAuditStore(c.Context, appLogger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	service := heartbeatapp.NewService(appLogger, detector, repo)

	path := c.Args().First()
	appLogger.Info("Running monitoring pass",
		"path", path,
		"interval_seconds", cfg.IntervalSeconds,
		"allowed_misses", cfg.AllowedMisses,
	)

	// Data-quality problems never abort the run; they surface as warnings
	// and an empty or reduced event set.
	result := service.MonitorFile(c.Context, path)

	reporter := heartbeatapp.NewWriterReporter(os.Stdout)
	return reporter.Report(result)
}

func runServe(c *cli.Context) error {
	cfg := loadConfig(c)
	appLogger := logger.NewLogger()
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting Kestrel", "version", "1.0")

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	detector, err := heartbeatdomain.NewDetector(cfg.IntervalSeconds, cfg.AllowedMisses)
	if err != nil {
		return fmt.Errorf("failed to configure detector: %w", err)
	}

	repo, cleanup, err := openAuditStore(sigCtx, appLogger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	monitorService := heartbeatapp.NewService(appLogger, detector, repo)

	appLogger.Debug("Initializing API server")
	apiServer, err := apiserver.NewServer(appLogger, cfg, monitorService, repo)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	serverErrChan := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	appLogger.Info("Kestrel started successfully, waiting for shutdown signal")

	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutdown signal received, starting graceful shutdown")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("API server shutdown error: %w", err)
		}

		appLogger.Info("Graceful shutdown completed")
		return nil
	case err := <-serverErrChan:
		appLogger.Error("Server error received", "err", err)
		return err
	}
}
