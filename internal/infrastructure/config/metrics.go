package config

// MetricsConfig holds metrics collection configuration. Runs are batch jobs,
// so metrics are written to a node-exporter textfile instead of served.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath receives the registry in Prometheus text format after
	// each command
	TextfilePath string `mapstructure:"textfile_path"`
}
