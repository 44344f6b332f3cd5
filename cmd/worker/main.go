package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/edvin/jobboard/internal/config"
	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/db"
	"github.com/edvin/jobboard/internal/logging"
	"github.com/edvin/jobboard/internal/mailer"
	"github.com/edvin/jobboard/internal/metrics"
	"github.com/edvin/jobboard/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("worker"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	metrics.RegisterPgxPoolMetrics(pool)

	services := core.NewServices(pool, core.SystemClock(), logger)
	mail := mailer.NewSMTP(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		UseSSL:   cfg.SMTPUseSSL,
	})

	sched, err := scheduler.New(cfg, services, mail, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer sched.Stop()

	if cfg.MetricsAddr != "" {
		metricsSrv := metrics.NewServer(cfg.MetricsAddr)
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("starting metrics server")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	if err := sched.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("worker failed")
	}

	logger.Info().Msg("shutting down worker")
}
