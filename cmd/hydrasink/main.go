package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/hydrasink/internal/api"
	"github.com/jroosing/hydrasink/internal/config"
	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/logging"
	"github.com/jroosing/hydrasink/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set HYDRASINK_CONFIG)")
		host       = flag.String("host", "", "Override bind host")
		port       = flag.Int("port", 0, "Override bind port")
		address    = flag.String("address", "", "Override the IPv4 address returned for blocked names")
		noAPI      = flag.Bool("no-api", false, "Disable the management API")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *address != "" {
		cfg.Sinkhole.Address = *address
	}
	if *noAPI {
		cfg.API.Enabled = false
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	// Flags may have changed derived values.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("hydrasink starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"address", cfg.Sinkhole.SpoofIP.String(),
		"default_rcode", cfg.Sinkhole.RCode.String(),
		"database", cfg.Database.Enabled,
		"api", cfg.API.Enabled,
	)

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := server.NewRunner(logger)

	var db *database.DB
	if cfg.Database.Enabled {
		var err error
		db, err = database.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close database", "err", err)
			}
		}()
		runner.SetStore(db)
		logger.Info("database opened", "path", cfg.Database.Path)
	}

	if err := runner.LoadBlocklist(ctx, cfg); err != nil {
		return err
	}

	if cfg.API.Enabled {
		apiLogger := logging.Component(logger, "api")
		apiServer := api.New(cfg, db, apiLogger)
		apiServer.SetSinkhole(runner)

		go func() {
			apiLogger.Info("management API listening", "addr", apiServer.Addr())
			if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				apiLogger.Error("management API failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := apiServer.Shutdown(shutdownCtx); err != nil {
				apiLogger.Warn("management API shutdown incomplete", "err", err)
			}
		}()
	}

	return runner.RunWithContext(ctx, cfg)
}
