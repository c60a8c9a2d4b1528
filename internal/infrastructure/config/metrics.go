package config

// MetricsConfig holds metrics collection and export configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Textfile receives the Prometheus text exposition when the process
	// exits, for the node_exporter textfile collector
	Textfile string `mapstructure:"textfile" validate:"required_if=Enabled true"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`
}
