package tasks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"

	"github.com/teemow/gtcli/internal/store"
)

func TestToTaskList(t *testing.T) {
	assert.Empty(t, toTaskList(nil).ID)

	result := toTaskList(&tasksapi.TaskList{
		Id:      "list-1",
		Title:   "My Tasks",
		Updated: "2026-08-01T14:00:00Z",
	})

	assert.Equal(t, "list-1", result.ID)
	assert.Equal(t, "My Tasks", result.Title)
	assert.Equal(t, time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC), result.Updated)
}

func TestToTaskListIgnoresBadTimestamp(t *testing.T) {
	result := toTaskList(&tasksapi.TaskList{Id: "list-1", Updated: "yesterday"})
	assert.True(t, result.Updated.IsZero())
}

func TestToTask(t *testing.T) {
	assert.Empty(t, toTask(nil).ID)

	completed := "2026-08-01T10:00:00Z"
	result := toTask(&tasksapi.Task{
		Id:        "task-1",
		Title:     "Write report",
		Notes:     "quarterly numbers",
		Status:    StatusCompleted,
		Due:       "2026-08-07T09:00:00Z",
		Completed: &completed,
		Parent:    "task-0",
		Position:  "00000000000000000001",
		Links: []*tasksapi.TaskLinks{
			{Type: "email", Description: "related email", Link: "https://mail.google.com/x"},
		},
	})

	assert.Equal(t, "task-1", result.ID)
	assert.Equal(t, "Write report", result.Title)
	assert.Equal(t, "quarterly numbers", result.Notes)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.False(t, result.Due.IsZero())
	assert.False(t, result.Completed.IsZero())
	assert.Equal(t, "task-0", result.Parent)
	require.Len(t, result.Links, 1)
	assert.Equal(t, "email", result.Links[0].Type)
}

// fakeService builds a Client whose Tasks service talks to a local fake.
func fakeService(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := tasksapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return newClient(svc, "a@x.com")
}

func TestListTaskLists(t *testing.T) {
	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[{"id":"list-1","title":"Inbox"},{"id":"list-2","title":"Groceries"}]}`)
	})

	lists, err := client.ListTaskLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Inbox", lists[0].Title)
	assert.Equal(t, "list-2", lists[1].ID)
}

func TestListTasksFilters(t *testing.T) {
	var gotQuery string
	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[{"id":"task-1","title":"Buy milk","status":"needsAction"}]}`)
	})

	dueMax := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	list, err := client.ListTasks(context.Background(), "list-1", true, time.Time{}, dueMax)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Title)
	assert.Contains(t, gotQuery, "showCompleted=true")
	assert.Contains(t, gotQuery, "dueMax=")
	assert.NotContains(t, gotQuery, "dueMin=")
}

func TestNewClientFromAccount(t *testing.T) {
	account := store.Account{
		Email: "a@x.com",
		OAuth2: store.OAuth2{
			ClientID:     "c",
			ClientSecret: "s",
			RefreshToken: "r",
		},
	}

	client, err := NewClient(context.Background(), account, nil)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", client.Email())
}
