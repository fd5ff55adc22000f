package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Engine defaults
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = 1
	}
	if cfg.Engine.StartZone == "" {
		cfg.Engine.StartZone = "earth"
	}
	if cfg.Engine.ProbeType == "" {
		cfg.Engine.ProbeType = "probe"
	}
	if cfg.Engine.InitialProbes == 0 {
		cfg.Engine.InitialProbes = 10
	}
	if cfg.Engine.InitialMetal == 0 {
		cfg.Engine.InitialMetal = 100
	}
	if cfg.Engine.TicksPerDay == 0 {
		cfg.Engine.TicksPerDay = 10
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "brachisto"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "brachisto"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "brachisto.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.TickInterval == 0 {
		cfg.Daemon.TickInterval = time.Second
	}
	if cfg.Daemon.SimSpeed == 0 {
		cfg.Daemon.SimSpeed = 1.0
	}
	if cfg.Daemon.AutosaveSlot == "" {
		cfg.Daemon.AutosaveSlot = "autosave"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/brachisto-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Stream defaults
	if cfg.Stream.Host == "" {
		cfg.Stream.Host = "localhost"
	}
	if cfg.Stream.Port == 0 {
		cfg.Stream.Port = 8077
	}
	if cfg.Stream.Path == "" {
		cfg.Stream.Path = "/ws"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9077
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
