package config

import "time"

// DaemonConfig holds daemon service configuration
type DaemonConfig struct {
	// Wall-clock interval between ticks
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// Simulation speed multiplier; scales the per-tick delta, not the
	// tick frequency
	SimSpeed float64 `mapstructure:"sim_speed" validate:"gt=0"`

	// Autosave cadence and target slot; zero interval disables autosave
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	AutosaveSlot     string        `mapstructure:"autosave_slot"`

	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
