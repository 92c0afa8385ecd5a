package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/jobfair-interviews/internal/config"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	applicationRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/application"
	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/integrations/meetingprovider"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
	"github.com/m04kA/jobfair-interviews/pkg/metrics"
	"github.com/m04kA/jobfair-interviews/pkg/txmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting jobfair-interviews...")
	log.Info("Configuration loaded from %s", configPath)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики собираются всегда, наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopPoolStats := make(chan struct{})
	defer close(stopPoolStats)
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopPoolStats)

	isolation, err := txmanager.ParseIsolation(cfg.Database.TxIsolation)
	if err != nil {
		return err
	}
	txManager := txmanager.NewTransactionManager(wrappedDB, isolation, cfg.Database.TxMaxAttempts)

	// Интеграции
	eventClient := eventservice.NewClient(
		cfg.EventService.URL,
		time.Duration(cfg.EventService.Timeout)*time.Second,
		log,
	)

	emitter, err := notifier.New(ctx, notifier.Options{
		Backends:      cfg.Notifier.Backends,
		ChannelPrefix: cfg.Notifier.ChannelPrefix,
		Timeout:       time.Duration(cfg.Notifier.Timeout) * time.Second,
		RedisAddr:     cfg.Notifier.RedisAddr,
		RedisPassword: cfg.Notifier.RedisPassword,
		RedisDB:       cfg.Notifier.RedisDB,
		NATSURL:       cfg.Notifier.NATSURL,
	}, log, metricsCollector)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}
	defer emitter.Close()

	deps := &dependencies{
		slots:        slotRepo.NewRepository(wrappedDB),
		applications: applicationRepo.NewRepository(wrappedDB),
		events:       eventClient,
		notifier:     emitter,
		txManager:    txManager,
		metrics:      metricsCollector,
		rules:        slotRules(cfg.Booking),
		logger:       log,
	}

	if cfg.MeetingProvider.Enabled {
		deps.provisioner = meetingprovider.NewClient(
			cfg.MeetingProvider.URL,
			cfg.MeetingProvider.APIKey,
			time.Duration(cfg.MeetingProvider.Timeout)*time.Second,
		)
		log.Info("Meeting provider enabled: %s", cfg.MeetingProvider.URL)
	} else {
		log.Warn("Meeting provider disabled, video slots will be booked without meeting links")
	}

	opts := routerOptions{}
	if cfg.Metrics.Enabled {
		opts = routerOptions{
			httpMetrics:    metricsCollector,
			metricsPath:    cfg.Metrics.Path,
			metricsHandler: metricsCollector.Handler(),
		}
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(deps, opts),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error: %v", err)
		return err
	}

	log.Info("Server exited")
	return nil
}

func slotRules(cfg config.BookingConfig) domain.SlotRules {
	return domain.SlotRules{
		RequireEventWindow: cfg.RequireEventWindow,
		MaxSlotsPerRequest: cfg.MaxSlotsPerRequest,
		MinSlotMinutes:     cfg.MinSlotMinutes,
		MaxSlotMinutes:     cfg.MaxSlotMinutes,
	}
}
