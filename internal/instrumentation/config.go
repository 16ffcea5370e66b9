package instrumentation

import "fmt"

// Metrics exporter types.
const (
	ExporterPrometheus = "prometheus"
	ExporterStdout     = "stdout"
)

// Config holds the configuration for OpenTelemetry metrics.
type Config struct {
	// Enabled determines if instrumentation is active. One-shot CLI
	// commands leave it off; serve mode turns it on.
	Enabled bool

	// ServiceName is the name reported in the metrics resource.
	ServiceName string

	// ServiceVersion is the version reported in the metrics resource.
	ServiceVersion string

	// MetricsExporter selects "prometheus" (scrape endpoint) or "stdout".
	MetricsExporter string

	// MetricsAddr is the listen address for the Prometheus scrape
	// endpoint, e.g. ":9090". Ignored for the stdout exporter.
	MetricsAddr string

	// DetailedLabels controls whether high-cardinality labels (anonymized
	// account identifiers) are attached to metrics.
	DetailedLabels bool
}

// DefaultConfig returns the configuration used when serve mode enables
// instrumentation without further flags.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		ServiceName:     "gtcli",
		ServiceVersion:  "dev",
		MetricsExporter: ExporterPrometheus,
		MetricsAddr:     ":9090",
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	switch c.MetricsExporter {
	case ExporterPrometheus, ExporterStdout:
	default:
		return fmt.Errorf("unknown metrics exporter %q", c.MetricsExporter)
	}

	if c.MetricsExporter == ExporterPrometheus && c.MetricsAddr == "" {
		return fmt.Errorf("metrics address required for prometheus exporter")
	}

	return nil
}
