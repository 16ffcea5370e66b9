// Package instrumentation provides OpenTelemetry metrics for gtcli's
// serve mode: MCP tool invocations, Google Tasks API operations and OAuth
// authorization attempts, exported via a Prometheus scrape endpoint or the
// stdout exporter.
//
// One-shot CLI commands run with instrumentation disabled; the disabled
// provider hands out a no-op metrics recorder so call sites need no
// guards.
package instrumentation
