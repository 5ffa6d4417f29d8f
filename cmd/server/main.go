package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/me/rrsim/internal/config"
	"github.com/me/rrsim/internal/logging"
	"github.com/me/rrsim/internal/server"
	"github.com/me/rrsim/internal/store"
)

func main() {
	// Flags are applied last so they win over the config file and RRSIM_* env.
	var (
		addr       = flag.String("addr", "", "Listen address (default :8080)")
		logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		logFormat  = flag.String("log-format", "", "Log format (text, json, none)")
		dbFlag     = flag.String("db", "", "Database path (default ~/.rrsim/rrsim.db)")
		quantum    = flag.Int("quantum", 0, "Default time quantum for requests that omit one")
		maxTime    = flag.Int("max-time", 0, "Default simulation time bound for requests that omit one")
		configFile = flag.String("config", "", "Path to a YAML server config file")
		debug      = flag.Bool("debug", false, "Shorthand for --log-level=debug")
	)
	flag.Parse()

	cfg := config.DefaultServerConfig()
	if *configFile != "" {
		if err := config.LoadFile(&cfg, *configFile); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "environment: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "db":
			cfg.DBPath = *dbFlag
		case "quantum":
			cfg.Simulation.TimeQuantum = *quantum
		case "max-time":
			cfg.Simulation.MaxTime = *maxTime
		}
	})
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	format, _ := logging.ParseFormat(cfg.LogFormat) // checked by Validate
	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), format)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".rrsim")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "rrsim.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	srv := server.New(cfg, st, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting",
			"addr", cfg.Addr,
			"time_quantum", cfg.Simulation.TimeQuantum,
			"max_time", cfg.Simulation.MaxTime,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
