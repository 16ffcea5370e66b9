// Package logging provides log/slog helpers shared across gtcli: canonical
// attribute keys, error attributes that omit nil, and sanitizers that keep
// emails and tokens out of log output.
package logging
