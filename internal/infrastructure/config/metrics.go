package config

// MetricsConfig controls the Prometheus scrape endpoint that reports
// tick timings and simulation totals.
type MetricsConfig struct {
	// Enabled turns the metrics HTTP server on
	Enabled bool `mapstructure:"enabled"`

	// Port for the scrape endpoint
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Host to bind; defaults to localhost so the endpoint is not
	// exposed beyond the machine running the daemon
	Host string `mapstructure:"host"`

	// Path of the scrape endpoint, normally /metrics
	Path string `mapstructure:"path"`
}
