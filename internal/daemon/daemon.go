// Package daemon assembles and runs the long-lived docsite service: the HTTP
// API, the content watcher and the scheduled coverage audit.
package daemon

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/audit"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/page"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
	"git.home.luguber.info/inful/docsite/internal/server/httpserver"
)

// Status represents the current state of the daemon.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// Daemon owns every background component of a serving process.
type Daemon struct {
	config    *config.Config
	logger    *slog.Logger
	site      *Site
	recorder  metrics.Recorder
	auditor   *audit.Auditor
	scheduler *audit.Scheduler
	watcher   *content.Watcher
	server    *httpserver.Server

	status    atomic.Value
	startTime time.Time
	wg        sync.WaitGroup
}

// New wires the daemon from cfg without starting anything.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Daemon{config: cfg, logger: logger, recorder: metrics.NoopRecorder{}}
	d.status.Store(StatusStopped)

	var metricsHandler http.Handler
	if cfg.Monitoring.Metrics.Enabled {
		reg := prom.NewRegistry()
		d.recorder = metrics.NewPrometheusRecorder(reg)
		metricsHandler = metrics.HTTPHandler(reg)
	}

	site, err := NewSite(cfg, d.recorder, logger)
	if err != nil {
		return nil, err
	}
	d.site = site
	d.auditor = audit.NewAuditor(site.Store, site.Registry, d.recorder, logger)

	if d.scheduler, err = audit.NewScheduler(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "create audit scheduler").Build()
	}
	if err := d.scheduleAudit(); err != nil {
		return nil, err
	}

	if cfg.Server.Watch {
		if site.Cache == nil {
			logger.Warn("Content watching has no effect with the cache disabled")
		} else {
			w, err := content.NewWatcher(site.Dirs, site.Store, site.Cache)
			if err != nil {
				return nil, errors.WrapError(err, errors.CategoryFileSystem, "watch content roots").Build()
			}
			d.watcher = w
		}
	}

	d.server = httpserver.New(handlers.Deps{
		Registry:     site.Registry,
		Source:       site.Source,
		Store:        site.Store,
		Pages:        page.NewService(site.Registry, site.Source, d.recorder),
		Translations: site.Translations,
		Auditor:      d.auditor,
		Recorder:     d.recorder,
		Logger:       logger,
	}, httpserver.Options{
		Addr:            cfg.Server.Addr,
		MetricsPath:     cfg.Monitoring.Metrics.Path,
		MetricsHandler:  metricsHandler,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	return d, nil
}

// scheduleAudit registers the coverage job; a cron schedule wins over the interval.
func (d *Daemon) scheduleAudit() error {
	var err error
	if expr := d.config.Audit.Schedule; expr != "" {
		_, err = d.scheduler.ScheduleCoverageCron(expr, d.auditor)
	} else {
		_, err = d.scheduler.ScheduleCoverage(d.config.Audit.Interval, d.auditor)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid audit schedule").
			WithContext("schedule", d.config.Audit.Schedule).
			Build()
	}
	return nil
}

// Site returns the content stack served by the daemon.
func (d *Daemon) Site() *Site { return d.site }

// Handler returns the HTTP handler, for tests.
func (d *Daemon) Handler() http.Handler { return d.server.Handler() }

// Addr returns the bound HTTP address once started.
func (d *Daemon) Addr() string { return d.server.Addr() }

// GetStatus returns the current daemon status.
func (d *Daemon) GetStatus() Status {
	status, ok := d.status.Load().(Status)
	if !ok {
		return StatusError
	}
	return status
}

// Start launches the HTTP server, the watcher and the audit scheduler.
func (d *Daemon) Start(ctx context.Context) error {
	if !d.status.CompareAndSwap(StatusStopped, StatusStarting) {
		return errors.RuntimeError("daemon is not in stopped state").
			WithContext("status", string(d.GetStatus())).
			Build()
	}
	d.startTime = time.Now()

	if err := d.server.Start(ctx); err != nil {
		d.status.Store(StatusError)
		d.release(ctx)
		return err
	}
	if d.watcher != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.watcher.Run(ctx); err != nil {
				d.logger.Error("Content watcher stopped", logfields.Error(err))
			}
		}()
	}
	d.scheduler.Start(ctx)

	d.status.Store(StatusRunning)
	d.logger.Info("docsite daemon started",
		logfields.Addr(d.server.Addr()),
		logfields.Count(len(d.site.Registry.Supported())),
		slog.Bool("watch", d.watcher != nil),
		slog.Bool("metrics", d.config.Monitoring.Metrics.Enabled))
	return nil
}

// release closes the watcher and scheduler created by New when Start fails
// before they run.
func (d *Daemon) release(ctx context.Context) {
	if d.watcher != nil {
		if err := d.watcher.Close(); err != nil {
			d.logger.Warn("Closing content watcher failed", logfields.Error(err))
		}
	}
	if err := d.scheduler.Stop(ctx); err != nil {
		d.logger.Warn("Stopping audit scheduler failed", logfields.Error(err))
	}
}

// Stop shuts components down in reverse start order.
func (d *Daemon) Stop(ctx context.Context) error {
	if !d.status.CompareAndSwap(StatusRunning, StatusStopping) {
		return nil
	}
	var errs []error
	if err := d.scheduler.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if d.watcher != nil {
		if err := d.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := d.server.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	d.wg.Wait()

	d.status.Store(StatusStopped)
	d.logger.Info("docsite daemon stopped", slog.Duration("uptime", time.Since(d.startTime)))
	if len(errs) > 0 {
		return errors.RuntimeError("daemon shutdown").WithCause(stderrors.Join(errs...)).Build()
	}
	return nil
}

// Run starts the daemon, blocks until ctx is cancelled and then stops it
// within the configured shutdown timeout.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	d.logger.Info("Shutdown signal received, stopping daemon")
	timeout := d.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return d.Stop(stopCtx)
}
