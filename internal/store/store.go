package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/teemow/gtcli/internal/logging"
)

const (
	accountsFile    = "accounts.json"
	credentialsFile = "credentials.json"
)

// OAuth2 holds the per-account OAuth2 artifacts obtained from an
// authorization flow. RefreshToken is the durable credential; AccessToken
// is an optional short-lived cache that may be absent or stale.
type OAuth2 struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken,omitempty"`
}

// Account is the per-user unit of stored authorization state, keyed by email.
type Account struct {
	Email  string `json:"email"`
	OAuth2 OAuth2 `json:"oauth2"`
}

// Valid reports whether the account satisfies the record invariant:
// email, client id, client secret and refresh token must all be non-empty.
// The access token is optional.
func (a Account) Valid() bool {
	return a.Email != "" &&
		a.OAuth2.ClientID != "" &&
		a.OAuth2.ClientSecret != "" &&
		a.OAuth2.RefreshToken != ""
}

// Credentials are the application-level OAuth client credentials registered
// with Google. There is a single set per installation.
type Credentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// Store persists application credentials and per-account OAuth records as
// two flat JSON files in a configuration directory. It exclusively owns the
// in-memory account collection and the backing files; every mutation
// rewrites the affected file in full.
//
// The store has no in-process locking across processes: concurrent
// processes each hold an independent snapshot and the last writer wins.
type Store struct {
	dir      string
	accounts map[string]Account
	logger   *slog.Logger
}

// New creates a Store over the given configuration directory, creating the
// directory if needed and loading any existing accounts file. A missing or
// corrupt accounts file is treated as zero accounts; only a directory that
// cannot be created is an error.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	s := &Store{
		dir:      dir,
		accounts: make(map[string]Account),
		logger:   logger,
	}
	s.loadAccounts()

	return s, nil
}

// Dir returns the configuration directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// loadAccounts reads the accounts file into the in-memory collection.
// Parse failures and invalid records are dropped silently so that one
// corrupt entry never blocks access to the others, and a corrupt file
// never prevents the CLI from starting.
func (s *Store) loadAccounts() {
	path := filepath.Join(s.dir, accountsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		s.logger.Warn("ignoring unreadable accounts file", logging.Err(err))
		return
	}

	for _, a := range accounts {
		if !a.Valid() {
			s.logger.Warn("dropping invalid account record",
				slog.String(logging.KeyAccount, logging.AnonymizeEmail(a.Email)))
			continue
		}
		// Last entry wins on duplicate email.
		s.accounts[a.Email] = a
	}
}

// saveAccounts rewrites the accounts file in full from the in-memory
// collection. Order follows map iteration and is not stable across runs.
func (s *Store) saveAccounts() error {
	accounts := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}

	path := filepath.Join(s.dir, accountsFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write accounts file: %w", err)
	}

	return nil
}

// AddAccount upserts an account by email and persists the collection.
func (s *Store) AddAccount(account Account) error {
	if !account.Valid() {
		return fmt.Errorf("invalid account record for %q", account.Email)
	}

	s.accounts[account.Email] = account
	if err := s.saveAccounts(); err != nil {
		return err
	}

	s.logger.Debug("stored account",
		slog.String(logging.KeyAccount, logging.AnonymizeEmail(account.Email)))
	return nil
}

// GetAccount returns the stored account for the given email, if present.
func (s *Store) GetAccount(email string) (Account, bool) {
	a, ok := s.accounts[email]
	return a, ok
}

// HasAccount reports whether an account exists for the given email.
func (s *Store) HasAccount(email string) bool {
	_, ok := s.accounts[email]
	return ok
}

// GetAllAccounts returns a snapshot of the current accounts. The returned
// slice is a copy, not a live view.
func (s *Store) GetAllAccounts() []Account {
	accounts := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	return accounts
}

// DeleteAccount removes the account for the given email and persists the
// collection. It reports whether anything was removed; an unknown email is
// not an error.
func (s *Store) DeleteAccount(email string) (bool, error) {
	if _, ok := s.accounts[email]; !ok {
		return false, nil
	}

	delete(s.accounts, email)
	if err := s.saveAccounts(); err != nil {
		return false, err
	}

	s.logger.Debug("deleted account",
		slog.String(logging.KeyAccount, logging.AnonymizeEmail(email)))
	return true, nil
}

// SetCredentials overwrites the application credentials file wholesale.
func (s *Store) SetCredentials(clientID, clientSecret string) error {
	creds := Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	path := filepath.Join(s.dir, credentialsFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// GetCredentials returns the stored application credentials. A missing,
// unreadable or incomplete credentials file yields absent, never an error;
// the user re-enters credentials in that case.
func (s *Store) GetCredentials() (Credentials, bool) {
	path := filepath.Join(s.dir, credentialsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		s.logger.Warn("ignoring unreadable credentials file", logging.Err(err))
		return Credentials{}, false
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, false
	}

	return creds, true
}
