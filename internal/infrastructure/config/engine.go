package config

// EngineConfig holds simulation engine configuration
type EngineConfig struct {
	// Path to a YAML static data file; empty uses the built-in dataset
	DataFile string `mapstructure:"data_file"`

	// Deterministic RNG seed for probe distribution
	Seed int64 `mapstructure:"seed"`

	// Starting zone for the initial probe population
	StartZone string `mapstructure:"start_zone"`

	// Probe design id used for replication
	ProbeType string `mapstructure:"probe_type"`

	// Initial stocks
	InitialProbes int     `mapstructure:"initial_probes" validate:"min=0"`
	InitialMetal  float64 `mapstructure:"initial_metal" validate:"min=0"`

	// Simulated days advanced per tick at speed 1.0
	TicksPerDay float64 `mapstructure:"ticks_per_day" validate:"required,gt=0"`
}
