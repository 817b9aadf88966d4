package config

// TracingConfig holds OpenTelemetry configuration
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter: none, stdout, otlp
	Exporter string `mapstructure:"exporter" validate:"required,oneof=none stdout otlp"`

	// Endpoint is the OTLP gRPC collector address
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Exporter otlp"`

	ServiceName string `mapstructure:"service_name"`

	// SampleRatio in [0,1]; 1 traces every run
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}
