package instrumentation

import (
	"net/http"
	"strings"
	"time"
)

// apiTransport wraps an http.RoundTripper and records one API operation
// metric per request.
type apiTransport struct {
	base    http.RoundTripper
	metrics *Metrics
}

// NewTransport wraps base so every request through it is recorded on the
// given metrics handle. A nil base falls back to http.DefaultTransport; a
// nil metrics handle makes the wrapper a passthrough recorder.
func NewTransport(base http.RoundTripper, metrics *Metrics) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &apiTransport{base: base, metrics: metrics}
}

func (t *apiTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(r)

	status := StatusSuccess
	if err != nil || resp.StatusCode >= 400 {
		status = StatusError
	}
	t.metrics.RecordAPIOperation(r.Context(), operationLabel(r), status, time.Since(start))

	return resp, err
}

// Path segments that may appear verbatim in the operation label. Everything
// else is a resource identifier and would blow up label cardinality.
var literalSegments = map[string]bool{
	"tasks":    true,
	"v1":       true,
	"users":    true,
	"@me":      true,
	"@default": true,
	"lists":    true,
	"move":     true,
	"clear":    true,
}

// operationLabel renders a request as "METHOD /path" with resource IDs
// collapsed to "-".
func operationLabel(r *http.Request) string {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i, seg := range segments {
		if !literalSegments[seg] {
			segments[i] = "-"
		}
	}
	return r.Method + " /" + strings.Join(segments, "/")
}
