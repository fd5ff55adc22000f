package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// EngineMetricsCollector exposes the simulation's headline numbers
type EngineMetricsCollector struct {
	ticksTotal   prometheus.Counter
	tickDuration prometheus.Histogram

	gameTimeDays prometheus.Gauge
	metalKg      prometheus.Gauge
	slagKg       prometheus.Gauge
	energyStored prometheus.Gauge
	dysonMassKg  prometheus.Gauge
	totalProbes  prometheus.Gauge

	probesByZone *prometheus.GaugeVec

	energyLimited prometheus.Gauge
	metalLimited  prometheus.Gauge
}

// NewEngineMetricsCollector creates a new engine metrics collector
func NewEngineMetricsCollector() *EngineMetricsCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &EngineMetricsCollector{
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks executed",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Tick execution duration distribution",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		gameTimeDays: gauge("game_time_days", "Simulated time elapsed in days"),
		metalKg:      gauge("metal_kg", "Stored refined metal in kilograms"),
		slagKg:       gauge("slag_kg", "Stored slag in kilograms"),
		energyStored: gauge("energy_stored_watt_days", "Banked energy in watt-days"),
		dysonMassKg:  gauge("dyson_mass_kg", "Accumulated swarm mass in kilograms"),
		totalProbes:  gauge("probes_total", "Total probe count across all zones"),
		probesByZone: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "probes_by_zone",
				Help:      "Probe count per orbital zone",
			},
			[]string{"zone"},
		),
		energyLimited: gauge("energy_limited", "1 when the energy throttle is active"),
		metalLimited:  gauge("metal_limited", "1 when the metal throttle is active"),
	}
}

// Register registers all engine metrics with the Prometheus registry
func (c *EngineMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.ticksTotal,
		c.tickDuration,
		c.gameTimeDays,
		c.metalKg,
		c.slagKg,
		c.energyStored,
		c.dysonMassKg,
		c.totalProbes,
		c.probesByZone,
		c.energyLimited,
		c.metalLimited,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordTick updates all gauges from a snapshot and records the tick's
// wall-clock duration
func (c *EngineMetricsCollector) RecordTick(snap *sim.Snapshot, durationSeconds float64) {
	c.ticksTotal.Inc()
	c.tickDuration.Observe(durationSeconds)

	c.gameTimeDays.Set(snap.TimeDays)
	c.metalKg.Set(snap.Metal)
	c.slagKg.Set(snap.Slag)
	c.energyStored.Set(snap.EnergyStored)
	c.dysonMassKg.Set(snap.DysonMass)

	var total float64
	for zone, count := range snap.Probes {
		c.probesByZone.WithLabelValues(zone).Set(float64(count))
		total += float64(count)
	}
	c.totalProbes.Set(total)

	c.energyLimited.Set(boolGauge(snap.EnergyLimited))
	c.metalLimited.Set(boolGauge(snap.MetalLimited))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
