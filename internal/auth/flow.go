package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/teemow/gtcli/internal/instrumentation"
	"github.com/teemow/gtcli/internal/logging"
	"github.com/teemow/gtcli/internal/store"
)

const (
	// DefaultPort is the fixed local port the interactive callback listener
	// binds. A second concurrent flow on the same machine fails to bind,
	// which is the intended behavior for a one-human, one-terminal CLI.
	DefaultPort = 9999

	// DefaultTimeout bounds how long the interactive listener waits for the
	// provider redirect before giving up.
	DefaultTimeout = 5 * time.Minute
)

// DefaultScopes are requested when the caller supplies none.
var DefaultScopes = []string{tasks.TasksScope}

// TokenPair is the output of a successful authorization flow. RefreshToken
// is always present; AccessToken may be empty.
type TokenPair struct {
	RefreshToken string
	AccessToken  string
}

// Flow drives one three-legged OAuth2 authorization-code exchange against
// Google. It owns no persistent state; its only output is a TokenPair the
// caller persists. A Flow value is good for a single Authorize call.
type Flow struct {
	creds       store.Credentials
	scopes      []string
	endpoint    oauth2.Endpoint
	manual      bool
	port        int
	timeout     time.Duration
	input       io.Reader
	output      io.Writer
	openBrowser func(url string) error
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
}

// Option customizes a Flow.
type Option func(*Flow)

// WithManualMode selects the copy-paste sub-protocol: the flow prints the
// authorization URL and blocks reading the pasted redirect from the
// terminal instead of running a local callback listener.
func WithManualMode() Option {
	return func(f *Flow) { f.manual = true }
}

// WithScopes overrides the requested permission scopes.
func WithScopes(scopes []string) Option {
	return func(f *Flow) {
		if len(scopes) > 0 {
			f.scopes = scopes
		}
	}
}

// WithTimeout overrides the interactive listener timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Flow) { f.timeout = d }
}

// WithPort overrides the callback listener port.
func WithPort(port int) Option {
	return func(f *Flow) { f.port = port }
}

// WithEndpoint overrides the provider endpoint, used by tests to point the
// exchange at a local fake.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(f *Flow) { f.endpoint = endpoint }
}

// WithInput overrides the terminal input used in manual mode.
func WithInput(r io.Reader) Option {
	return func(f *Flow) { f.input = r }
}

// WithOutput overrides where prompts and the authorization URL are printed.
func WithOutput(w io.Writer) Option {
	return func(f *Flow) { f.output = w }
}

// WithBrowserOpener overrides how the authorization URL is opened in the
// user's browser.
func WithBrowserOpener(open func(url string) error) Option {
	return func(f *Flow) { f.openBrowser = open }
}

// WithMetrics attaches an instrumentation handle; a nil handle disables
// recording.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(f *Flow) { f.metrics = m }
}

// New creates a Flow for the given application credentials.
func New(creds store.Credentials, logger *slog.Logger, opts ...Option) *Flow {
	if logger == nil {
		logger = slog.Default()
	}

	f := &Flow{
		creds:       creds,
		scopes:      DefaultScopes,
		endpoint:    google.Endpoint,
		port:        DefaultPort,
		timeout:     DefaultTimeout,
		input:       os.Stdin,
		output:      os.Stdout,
		openBrowser: browser.OpenURL,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// config builds the oauth2 configuration for this flow. Offline access and
// forced consent guarantee a refresh token even when the account granted
// consent in an earlier authorization.
func (f *Flow) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     f.creds.ClientID,
		ClientSecret: f.creds.ClientSecret,
		Endpoint:     f.endpoint,
		RedirectURL:  fmt.Sprintf("http://localhost:%d", f.port),
		Scopes:       f.scopes,
	}
}

// Authorize runs the authorization-code grant once and returns the
// resulting token pair. An access token without a refresh token is not a
// valid outcome; see ErrNoRefreshToken.
func (f *Flow) Authorize(ctx context.Context) (*TokenPair, error) {
	pair, err := f.authorize(ctx)

	mode := "interactive"
	if f.manual {
		mode = "manual"
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	f.metrics.RecordAuthorization(ctx, mode, status)

	return pair, err
}

func (f *Flow) authorize(ctx context.Context) (*TokenPair, error) {
	conf := f.config()
	authURL := conf.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	var code string
	var err error
	if f.manual {
		var redirect string
		redirect, err = f.promptRedirect(authURL)
		if err == nil {
			code, err = extractCode(redirect)
		}
	} else {
		code, err = f.awaitRedirect(ctx, authURL)
	}
	if err != nil {
		return nil, err
	}

	return f.exchange(ctx, conf, code)
}

// promptRedirect prints the authorization URL and blocks reading one line
// of terminal input containing the pasted redirect URL. Manual mode has no
// timeout; the terminal is assumed to be attended.
func (f *Flow) promptRedirect(authURL string) (string, error) {
	fmt.Fprintf(f.output, "Open the following URL in your browser and authorize gtcli:\n\n%s\n\n", authURL)
	fmt.Fprint(f.output, "Paste the full redirect URL here: ")

	scanner := bufio.NewScanner(f.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read redirect URL: %w", err)
		}
		return "", fmt.Errorf("no redirect URL entered")
	}

	return strings.TrimSpace(scanner.Text()), nil
}

// exchange submits the authorization code to the token endpoint.
func (f *Flow) exchange(ctx context.Context, conf *oauth2.Config, code string) (*TokenPair, error) {
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if tok.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	f.logger.Debug("authorization complete",
		slog.String("access_token", logging.SanitizeToken(tok.AccessToken)),
		slog.String("refresh_token", logging.SanitizeToken(tok.RefreshToken)))

	return &TokenPair{
		RefreshToken: tok.RefreshToken,
		AccessToken:  tok.AccessToken,
	}, nil
}

var (
	codeParamRe  = regexp.MustCompile(`[?&]code=([^&\s]+)`)
	errorParamRe = regexp.MustCompile(`[?&]error=([^&\s]+)`)
)

// extractCode pulls the authorization code out of a redirect URL's query
// string. Pasted redirects are not always strictly valid absolute URLs, so
// after url.Parse a regex scan over the raw string serves as fallback. An
// error query parameter means the user denied consent.
func extractCode(redirect string) (string, error) {
	if u, err := url.Parse(redirect); err == nil {
		q := u.Query()
		if code := q.Get("code"); code != "" {
			return code, nil
		}
		if e := q.Get("error"); e != "" {
			return "", fmt.Errorf("%w: %s", ErrDenied, e)
		}
	}

	if m := codeParamRe.FindStringSubmatch(redirect); m != nil {
		if decoded, err := url.QueryUnescape(m[1]); err == nil {
			return decoded, nil
		}
		return m[1], nil
	}
	if m := errorParamRe.FindStringSubmatch(redirect); m != nil {
		reason := m[1]
		if decoded, err := url.QueryUnescape(reason); err == nil {
			reason = decoded
		}
		return "", fmt.Errorf("%w: %s", ErrDenied, reason)
	}

	return "", ErrInvalidRedirect
}
