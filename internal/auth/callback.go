package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/teemow/gtcli/internal/logging"
)

const successPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Authorization Successful</title></head>
<body style="font-family: sans-serif; max-width: 600px; margin: 50px auto; text-align: center;">
  <h1>Authorization successful</h1>
  <p>gtcli has been authorized. You can close this window and return to the terminal.</p>
</body>
</html>`

const failurePage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Authorization Failed</title></head>
<body style="font-family: sans-serif; max-width: 600px; margin: 50px auto; text-align: center;">
  <h1>Authorization failed</h1>
  <p>gtcli was not authorized. You can close this window and retry from the terminal.</p>
</body>
</html>`

type callbackResult struct {
	code string
	err  error
}

// awaitRedirect runs the interactive sub-protocol: it binds the fixed local
// callback port, opens the authorization URL in the user's browser (best
// effort) and waits for the provider redirect. It resolves exactly once,
// with a code, a denial, a timeout or context cancellation, and tears the
// listener down on every exit path.
func (f *Flow) awaitRedirect(ctx context.Context, authURL string) (string, error) {
	addr := fmt.Sprintf("localhost:%d", f.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to bind callback listener on %s (is another authorization in progress?): %w", addr, err)
	}

	// Buffered so the handler never blocks on an abandoned flow.
	results := make(chan callbackResult, 1)
	var once sync.Once

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("code") != "":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, successPage)
			once.Do(func() { results <- callbackResult{code: q.Get("code")} })
		case q.Get("error") != "":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, failurePage)
			once.Do(func() { results <- callbackResult{err: fmt.Errorf("%w: %s", ErrDenied, q.Get("error"))} })
		default:
			// Any other request shape has no effect on flow state.
			http.Error(w, "missing code or error parameter", http.StatusBadRequest)
		}
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			f.logger.Warn("callback listener stopped", logging.Err(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	}()

	fmt.Fprintf(f.output, "Opening the following URL in your browser:\n\n%s\n\n", authURL)
	fmt.Fprintf(f.output, "Waiting for authorization on http://%s ...\n", addr)
	if err := f.openBrowser(authURL); err != nil {
		// Non-fatal: the URL is printed above for manual opening.
		f.logger.Debug("failed to open browser", logging.Err(err))
	}

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		return res.code, res.err
	case <-timer.C:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
