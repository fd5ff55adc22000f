package config

// StreamConfig holds websocket snapshot streaming configuration
type StreamConfig struct {
	// Enabled controls whether the websocket server starts
	Enabled bool `mapstructure:"enabled"`

	// Host to bind the websocket server
	Host string `mapstructure:"host"`

	// Port for the websocket server
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Path for the websocket endpoint (default: /ws)
	Path string `mapstructure:"path"`
}
