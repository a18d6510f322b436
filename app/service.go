// Package app assembles the configured pieces into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/storeops/shelfwatch/api/dashboard"
	"github.com/storeops/shelfwatch/config"
	coremetrics "github.com/storeops/shelfwatch/core/metrics"
	coremon "github.com/storeops/shelfwatch/core/monitoring"
	"github.com/storeops/shelfwatch/core/restock"
	"github.com/storeops/shelfwatch/core/savedviews"
	"github.com/storeops/shelfwatch/infra/dataset"
	"github.com/storeops/shelfwatch/infra/logger"
	"github.com/storeops/shelfwatch/infra/metrics"
	"github.com/storeops/shelfwatch/infra/monitoring"
)

// Service owns the loaded dataset and the HTTP servers.
type Service struct {
	Dataset *restock.Dataset
	handler *dashboard.Handler
	sink    coremetrics.Sink
	log     logger.Logger
	cfg     *config.Config
}

// New loads the dataset and wires the dashboard from the configuration. A
// missing or malformed dataset is a hard error; the service never starts
// without data.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")

	monitor, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}
	coremon.Init(monitor)

	started := time.Now()
	ds, err := dataset.LoadCSV(cfg.Dataset.Path)
	if err != nil {
		coremon.CaptureException(err, map[string]string{"component": "dataset"})
		return nil, err
	}
	loadTime := time.Since(started)
	logg.Infow("dataset loaded", map[string]any{
		"path":    cfg.Dataset.Path,
		"records": ds.Len(),
		"ms":      loadTime.Milliseconds(),
	})

	sink, err := metrics.BuildSinks(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if rec, ok := sink.(coremetrics.LoadRecorder); ok {
		ev := coremetrics.LoadEvent{
			Path:     cfg.Dataset.Path,
			Records:  ds.Len(),
			Duration: loadTime,
			Time:     time.Now(),
		}
		if err := rec.RecordLoad(ev); err != nil {
			logg.Warnf("record load metrics: %v", err)
		}
	}

	h := dashboard.NewHandler(ds, savedviews.NewMemoryStore(), sink, logger.New("dashboard"), cfg.Server.TableLimit)
	return &Service{Dataset: ds, handler: h, sink: sink, log: logg, cfg: cfg}, nil
}

// Run serves the dashboard and blocks until the context is cancelled or the
// listener fails.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.Prometheus.Enabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Prometheus.Address); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("dashboard listening on %s", s.cfg.Server.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		coremon.CaptureException(err, map[string]string{"component": "http"})
		return err
	}
}

// Close flushes pending monitoring events and releases the metric sinks.
func (s *Service) Close() error {
	coremon.Flush(2 * time.Second)
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
