package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(email string) Account {
	return Account{
		Email: email,
		OAuth2: OAuth2{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "refresh-token",
			AccessToken:  "access-token",
		},
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NotNil(t, s)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Empty(t, s.GetAllAccounts())
}

func TestAddAndGetAccountRoundTrip(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	account := testAccount("a@x.com")
	require.NoError(t, s.AddAccount(account))

	got, ok := s.GetAccount("a@x.com")
	require.True(t, ok)
	assert.Equal(t, account, got)
	assert.True(t, s.HasAccount("a@x.com"))
	assert.False(t, s.HasAccount("b@x.com"))
}

func TestAddAccountRejectsInvalidRecord(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	account := testAccount("a@x.com")
	account.OAuth2.RefreshToken = ""
	assert.Error(t, s.AddAccount(account))
	assert.False(t, s.HasAccount("a@x.com"))
}

func TestAddAccountUpsertsByEmail(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	first := testAccount("a@x.com")
	require.NoError(t, s.AddAccount(first))

	second := first
	second.OAuth2.RefreshToken = "new-refresh-token"
	require.NoError(t, s.AddAccount(second))

	assert.Len(t, s.GetAllAccounts(), 1)
	got, ok := s.GetAccount("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "new-refresh-token", got.OAuth2.RefreshToken)
}

func TestGetAllAccountsCountsDistinctEmails(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, s.AddAccount(testAccount("a@x.com")))
	require.NoError(t, s.AddAccount(testAccount("b@x.com")))
	require.NoError(t, s.AddAccount(testAccount("a@x.com")))
	assert.Len(t, s.GetAllAccounts(), 2)

	removed, err := s.DeleteAccount("a@x.com")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, s.GetAllAccounts(), 1)
}

func TestDeleteAccountUnknownEmail(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	removed, err := s.DeleteAccount("missing@x.com")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir, nil)
	require.NoError(t, err)

	account := Account{
		Email: "a@x.com",
		OAuth2: OAuth2{
			ClientID:     "c",
			ClientSecret: "s",
			RefreshToken: "r",
		},
	}
	require.NoError(t, s.AddAccount(account))

	// A fresh store over the same directory sees the same state.
	reopened, err := New(dir, nil)
	require.NoError(t, err)

	got, ok := reopened.GetAccount("a@x.com")
	require.True(t, ok)
	assert.Equal(t, account, got)
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	dir := t.TempDir()

	records := []Account{
		{Email: "valid@x.com", OAuth2: OAuth2{ClientID: "c", ClientSecret: "s", RefreshToken: "r"}},
		{Email: "", OAuth2: OAuth2{ClientID: "c", ClientSecret: "s", RefreshToken: "r"}},
		{Email: "norefresh@x.com", OAuth2: OAuth2{ClientID: "c", ClientSecret: "s"}},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, accountsFile), data, 0600))

	s, err := New(dir, nil)
	require.NoError(t, err)

	accounts := s.GetAllAccounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "valid@x.com", accounts[0].Email)
}

func TestLoadToleratesMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, accountsFile), []byte("{not json"), 0600))

	s, err := New(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, s.GetAllAccounts())
}

func TestLoadToleratesNonArrayRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, accountsFile), []byte(`{"email":"a@x.com"}`), 0600))

	s, err := New(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, s.GetAllAccounts())
}

func TestLoadLastEntryWinsOnDuplicateEmail(t *testing.T) {
	dir := t.TempDir()

	records := []Account{
		{Email: "a@x.com", OAuth2: OAuth2{ClientID: "c", ClientSecret: "s", RefreshToken: "old"}},
		{Email: "a@x.com", OAuth2: OAuth2{ClientID: "c", ClientSecret: "s", RefreshToken: "new"}},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, accountsFile), data, 0600))

	s, err := New(dir, nil)
	require.NoError(t, err)

	got, ok := s.GetAccount("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "new", got.OAuth2.RefreshToken)
}

func TestSetAndGetCredentials(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	_, ok := s.GetCredentials()
	assert.False(t, ok)

	require.NoError(t, s.SetCredentials("id", "secret"))

	creds, ok := s.GetCredentials()
	require.True(t, ok)
	assert.Equal(t, Credentials{ClientID: "id", ClientSecret: "secret"}, creds)

	// A second set overwrites wholesale.
	require.NoError(t, s.SetCredentials("id2", "secret2"))
	creds, ok = s.GetCredentials()
	require.True(t, ok)
	assert.Equal(t, "id2", creds.ClientID)
}

func TestGetCredentialsAbsentOnCorruptOrIncompleteFile(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "malformed JSON", contents: "{oops"},
		{name: "missing client id", contents: `{"clientSecret":"s"}`},
		{name: "missing client secret", contents: `{"clientId":"c"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte(tc.contents), 0600))

			s, err := New(dir, nil)
			require.NoError(t, err)

			_, ok := s.GetCredentials()
			assert.False(t, ok)
		})
	}
}

func TestAccountsFileIsPrettyPrintedArray(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.AddAccount(testAccount("a@x.com")))

	data, err := os.ReadFile(filepath.Join(dir, accountsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")

	var parsed []Account
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 1)
}
