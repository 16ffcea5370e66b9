package tasks_tools

import (
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gtcli/internal/instrumentation"
	"github.com/teemow/gtcli/internal/store"
	"github.com/teemow/gtcli/internal/tasks"
)

func testDeps(t *testing.T, emails ...string) *Deps {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	for _, email := range emails {
		require.NoError(t, st.AddAccount(store.Account{
			Email:  email,
			OAuth2: store.OAuth2{ClientID: "c", ClientSecret: "s", RefreshToken: "r"},
		}))
	}

	return &Deps{
		Store:   st,
		Clients: tasks.NewClientCache(st, nil, nil),
		Metrics: &instrumentation.Metrics{},
	}
}

func TestRegister(t *testing.T) {
	s := mcpserver.NewMCPServer("gtcli-test", "0.0.0")
	require.NoError(t, Register(s, testDeps(t, "a@x.com"), false))
}

func TestRegisterReadOnly(t *testing.T) {
	s := mcpserver.NewMCPServer("gtcli-test", "0.0.0")
	require.NoError(t, Register(s, testDeps(t, "a@x.com"), true))
}

func TestAccountFromArgs(t *testing.T) {
	t.Run("explicit argument wins", func(t *testing.T) {
		deps := testDeps(t, "a@x.com", "b@x.com")
		email, err := accountFromArgs(deps, map[string]interface{}{"account": "b@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", email)
	})

	t.Run("single account is the default", func(t *testing.T) {
		deps := testDeps(t, "a@x.com")
		email, err := accountFromArgs(deps, map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", email)
	})

	t.Run("no accounts", func(t *testing.T) {
		deps := testDeps(t)
		_, err := accountFromArgs(deps, map[string]interface{}{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no accounts configured")
	})

	t.Run("ambiguous without argument", func(t *testing.T) {
		deps := testDeps(t, "a@x.com", "b@x.com")
		_, err := accountFromArgs(deps, map[string]interface{}{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple accounts")
	})
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2026-08-28T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())

	_, err = parseDate("next tuesday")
	assert.Error(t, err)
}

func TestRequiredStringArg(t *testing.T) {
	args := map[string]interface{}{"taskListId": "list-1", "empty": ""}

	v, err := requiredStringArg(args, "taskListId")
	require.NoError(t, err)
	assert.Equal(t, "list-1", v)

	_, err = requiredStringArg(args, "empty")
	assert.Error(t, err)

	_, err = requiredStringArg(args, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing is required")
}
