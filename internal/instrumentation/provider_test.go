package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg.MetricsExporter = "graphite"
	assert.Error(t, cfg.Validate())

	cfg.MetricsExporter = ExporterPrometheus
	cfg.MetricsAddr = ""
	assert.Error(t, cfg.Validate())
}

func TestDisabledProviderIsNoOp(t *testing.T) {
	p, err := NewProvider(context.Background(), DefaultConfig(), nil)
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	// Recording on the no-op recorder must not panic.
	p.Metrics().RecordToolInvocation(context.Background(), "tasks_list", "a@x.com", StatusSuccess, time.Second)
	p.Metrics().RecordAuthorization(context.Background(), "manual", StatusError)
	p.Metrics().RecordAPIOperation(context.Background(), "list_tasks", StatusSuccess, time.Second)

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNilMetricsIsNoOp(t *testing.T) {
	var m *Metrics
	m.RecordToolInvocation(context.Background(), "tasks_list", "", StatusSuccess, time.Second)
	m.RecordAuthorization(context.Background(), "interactive", StatusSuccess)
	m.RecordAPIOperation(context.Background(), "list_tasks", StatusSuccess, time.Second)
}

func TestMetricsRecording(t *testing.T) {
	ctx := context.Background()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	m, err := NewMetrics(provider.Meter("test"), false)
	require.NoError(t, err)

	m.RecordToolInvocation(ctx, "tasks_list_task_lists", "a@x.com", StatusSuccess, 50*time.Millisecond)
	m.RecordToolInvocation(ctx, "tasks_list_task_lists", "a@x.com", StatusError, 10*time.Millisecond)
	m.RecordAuthorization(ctx, "interactive", StatusSuccess)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			names[metric.Name] = true
		}
	}
	assert.True(t, names["mcp_tool_invocations_total"])
	assert.True(t, names["mcp_tool_duration_seconds"])
	assert.True(t, names["oauth_authorizations_total"])
}
