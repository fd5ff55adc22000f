// Package daemon wires the engine, adapters and servers into a
// long-running tick loop.
package daemon

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/brachisto/brachisto-go/internal/adapters/metrics"
	"github.com/brachisto/brachisto-go/internal/adapters/persistence"
	"github.com/brachisto/brachisto-go/internal/adapters/staticdata"
	"github.com/brachisto/brachisto-go/internal/adapters/stream"
	"github.com/brachisto/brachisto-go/internal/application/common"
	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/application/setup"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
	"github.com/brachisto/brachisto-go/internal/infrastructure/database"
)

// Daemon owns the simulation runtime: the engine service, the mediator
// surface, persistence and the optional stream/metrics servers.
type Daemon struct {
	cfg *config.Config

	service    *engine.Service
	mediator   mediator.Mediator
	dispatcher *setup.Dispatcher

	db    *gorm.DB
	saves sim.SaveRepository

	hub           *stream.Hub
	streamServer  *stream.Server
	metricsServer *metrics.Server
	engineMetrics *metrics.EngineMetricsCollector
}

// NewProvider loads the static dataset named by the engine config,
// falling back to the built-in data when no file is configured
func NewProvider(cfg *config.EngineConfig) (statics.Provider, error) {
	if cfg.DataFile == "" {
		return staticdata.Default(), nil
	}
	return staticdata.LoadFile(cfg.DataFile)
}

// NewEngine builds a simulation engine from configuration
func NewEngine(cfg *config.EngineConfig, provider statics.Provider) *sim.Engine {
	engineCfg := sim.DefaultConfig()
	engineCfg.Seed = cfg.Seed
	engineCfg.StartZone = shared.ZoneID(cfg.StartZone)
	engineCfg.ProbeType = shared.ProbeTypeID(cfg.ProbeType)
	engineCfg.InitialProbes = cfg.InitialProbes
	engineCfg.InitialMetal = cfg.InitialMetal
	return sim.NewEngine(provider, engineCfg)
}

// New wires a daemon from configuration. The returned daemon is not
// running; call Run.
func New(cfg *config.Config) (*Daemon, error) {
	provider, err := NewProvider(&cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("loading static data: %w", err)
	}

	service := engine.NewService(NewEngine(&cfg.Engine, provider))

	registry := setup.NewHandlerRegistry(service)
	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return nil, fmt.Errorf("registering handlers: %w", err)
	}
	logOut, err := cfg.Logging.Writer()
	if err != nil {
		return nil, fmt.Errorf("opening log output: %w", err)
	}
	m.Use(setup.LoggingMiddleware(common.NewStdLoggerTo(logOut, cfg.Logging.Level, cfg.Logging.Format)))

	d := &Daemon{
		cfg:        cfg,
		service:    service,
		mediator:   m,
		dispatcher: setup.NewDispatcher(m),
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandMetrics := metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return nil, fmt.Errorf("registering command metrics: %w", err)
		}
		m.Use(metrics.PrometheusMiddleware(commandMetrics))

		d.engineMetrics = metrics.NewEngineMetricsCollector()
		if err := d.engineMetrics.Register(); err != nil {
			return nil, fmt.Errorf("registering engine metrics: %w", err)
		}
		d.metricsServer = metrics.NewServer(&cfg.Metrics)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	d.db = db
	d.saves = persistence.NewGormSaveRepository(db)

	if cfg.Stream.Enabled {
		d.hub = stream.NewHub(d.dispatcher)
		d.streamServer = stream.NewServer(&cfg.Stream, d.hub)
	}

	return d, nil
}

// Service exposes the engine service for in-process callers
func (d *Daemon) Service() *engine.Service {
	return d.service
}

// Dispatcher exposes the action dispatcher for in-process callers
func (d *Daemon) Dispatcher() *setup.Dispatcher {
	return d.dispatcher
}

// Saves exposes the save repository
func (d *Daemon) Saves() sim.SaveRepository {
	return d.saves
}

// RestoreAutosave loads the configured autosave slot if present. A
// missing slot is not an error; a corrupt one is.
func (d *Daemon) RestoreAutosave(ctx context.Context) error {
	snap, err := d.saves.Load(ctx, d.cfg.Daemon.AutosaveSlot)
	if err != nil {
		return nil
	}
	return d.service.With(func(eng *sim.Engine) error {
		eng.Restore(snap)
		return nil
	})
}

// Run drives the tick loop until ctx is cancelled, then saves and
// shuts the servers down
func (d *Daemon) Run(ctx context.Context) error {
	if d.hub != nil {
		go d.hub.Run(ctx)
	}
	if d.streamServer != nil {
		go func() {
			if err := d.streamServer.Start(); err != nil {
				log.Printf("daemon: %v", err)
			}
		}()
	}
	if d.metricsServer != nil {
		go func() {
			if err := d.metricsServer.Start(); err != nil {
				log.Printf("daemon: %v", err)
			}
		}()
	}

	deltaDays := d.cfg.Daemon.SimSpeed / d.cfg.Engine.TicksPerDay
	limiter := rate.NewLimiter(rate.Every(d.cfg.Daemon.TickInterval), 1)

	var lastAutosave time.Time
	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		start := time.Now()
		d.service.Tick(deltaDays)
		snap := d.service.Snapshot()

		if d.engineMetrics != nil {
			d.engineMetrics.RecordTick(snap, time.Since(start).Seconds())
		}
		if d.hub != nil {
			d.hub.Broadcast(snap)
		}

		if d.autosaveDue(lastAutosave) {
			if err := d.saves.Save(context.Background(), d.cfg.Daemon.AutosaveSlot, snap); err != nil {
				log.Printf("daemon: autosave failed: %v", err)
			}
			lastAutosave = time.Now()
		}
	}

	return d.shutdown()
}

func (d *Daemon) autosaveDue(last time.Time) bool {
	interval := d.cfg.Daemon.AutosaveInterval
	return interval > 0 && time.Since(last) >= interval
}

func (d *Daemon) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.Daemon.ShutdownTimeout)
	defer cancel()

	// Final save before the servers go away
	if d.cfg.Daemon.AutosaveInterval > 0 {
		if err := d.saves.Save(shutdownCtx, d.cfg.Daemon.AutosaveSlot, d.service.Snapshot()); err != nil {
			log.Printf("daemon: final save failed: %v", err)
		}
	}

	if d.streamServer != nil {
		if err := d.streamServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("daemon: stream shutdown: %v", err)
		}
	}
	if d.metricsServer != nil {
		if err := d.metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("daemon: metrics shutdown: %v", err)
		}
	}

	return database.Close(d.db)
}
