// Package service assembles the pipeline: provider, normalizer, sinks,
// retention, refresh loop and the metrics listener, with graceful shutdown
// tying them together.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"live-markets-service/internal/cache"
	"live-markets-service/internal/classify"
	"live-markets-service/internal/config"
	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/filestore"
	"live-markets-service/internal/merge"
	"live-markets-service/internal/metrics"
	"live-markets-service/internal/normalize"
	"live-markets-service/internal/persist"
	"live-markets-service/internal/providers"
	"live-markets-service/internal/refresh"
	"live-markets-service/internal/retention"
)

var metricsSetup = metrics.Setup

// Service owns the running pipeline.
type Service struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	loop          *refresh.Loop
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closeStore    func() error
}

// New connects to Redis and wires the full pipeline from configuration.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("service: config: %w", err)
	}

	store, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	provider := buildProvider(cfg, logger)
	svc := assemble(cfg, logger, provider, store, nil)
	svc.closeStore = store.Close
	return svc, nil
}

// newServiceWithDeps is used for testing to inject custom components.
func newServiceWithDeps(cfg config.Config, logger *slog.Logger, provider providers.FeedProvider, store cache.Store, recorder *metrics.Recorder) *Service {
	return assemble(cfg, logger, provider, store, recorder)
}

func assemble(cfg config.Config, logger *slog.Logger, provider providers.FeedProvider, store cache.Store, recorder *metrics.Recorder) *Service {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	keys := cache.NewKeyspace(cfg.Redis.KeyPrefix)
	files := filestore.New(cfg.Storage.DataDir)
	persister := persist.New(store, files, keys, logger)
	manager := retention.New(store, files, keys, cfg.Sports, persist.GenerationKinds(), logger)

	sports := make([]markets.Sport, 0, len(cfg.Sports))
	for _, s := range cfg.Sports {
		sports = append(sports, markets.ParseSport(s))
	}

	runner := refresh.NewRunner(refresh.Deps{
		Provider:         provider,
		Normalizer:       normalize.New(classify.New(logger)).WithSiteBase(cfg.Upstream.Origin),
		Merger:           merge.New(nil),
		Persister:        persister,
		Retention:        manager,
		Metrics:          recorder,
		Logger:           logger,
		Sports:           sports,
		VerifySampleSize: cfg.Storage.VerifySampleSize,
	})
	loop := refresh.NewLoop(runner, logger, cfg.RefreshInterval)

	svc := &Service{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		loop:        loop,
		metricsStop: metricsShutdown,
	}
	if metricsSrv != nil {
		svc.metricsServer = metricsSrv
	}
	return svc
}

// Run starts the refresh loop and metrics listener, then waits for context
// cancellation to shut down gracefully.
func (s *Service) Run(ctx context.Context) {
	s.startMetrics()
	s.loop.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}
	s.gracefulShutdown()
}

// Status reports the refresh loop's health.
func (s *Service) Status() refresh.Status {
	return s.loop.Status()
}

func (s *Service) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	srv := s.metricsServer
	logger := s.logger
	go func() {
		if logger != nil {
			logger.Info("metrics server starting", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn("metrics server failed", "error", err)
			}
		}
	}()
}

func (s *Service) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.loop.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop refresh loop", "error", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if s.closeStore != nil {
		if err := s.closeStore(); err != nil && s.logger != nil {
			s.logger.Warn("cache close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: mux,
			},
		}
	}

	return rec, metricsSrv, shutdown
}
