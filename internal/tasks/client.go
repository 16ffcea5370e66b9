package tasks

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/teemow/gtcli/internal/instrumentation"
	"github.com/teemow/gtcli/internal/store"
)

// Client wraps the Google Tasks service for a single authorized account.
type Client struct {
	svc   *tasks.Service
	email string
}

func newClient(svc *tasks.Service, email string) *Client {
	return &Client{svc: svc, email: email}
}

// Email returns the account email this client is associated with.
func (c *Client) Email() string {
	return c.email
}

// NewClient creates a Tasks client authenticated from a stored account
// record. The refresh token drives an oauth2 token source; the stored
// access token is used opportunistically and refreshed when stale. API
// calls are recorded on metrics, which may be nil.
func NewClient(ctx context.Context, account store.Account, metrics *instrumentation.Metrics) (*Client, error) {
	conf := &oauth2.Config{
		ClientID:     account.OAuth2.ClientID,
		ClientSecret: account.OAuth2.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{tasks.TasksScope},
	}

	tok := &oauth2.Token{
		AccessToken:  account.OAuth2.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: account.OAuth2.RefreshToken,
		// Force an immediate refresh check; the stored access token has an
		// unknown age.
		Expiry: time.Unix(1, 0),
	}

	httpClient := oauth2.NewClient(ctx, conf.TokenSource(ctx, tok))
	httpClient.Transport = instrumentation.NewTransport(httpClient.Transport, metrics)

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service for %s: %w", account.Email, err)
	}

	return newClient(svc, account.Email), nil
}

// ListTaskLists lists all task lists for the account.
func (c *Client) ListTaskLists(ctx context.Context) ([]TaskList, error) {
	result, err := c.svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	var taskLists []TaskList
	for _, tl := range result.Items {
		taskLists = append(taskLists, toTaskList(tl))
	}

	return taskLists, nil
}

// GetTaskList retrieves a specific task list by ID.
func (c *Client) GetTaskList(ctx context.Context, taskListID string) (*TaskList, error) {
	tl, err := c.svc.Tasklists.Get(taskListID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task list: %w", err)
	}

	result := toTaskList(tl)
	return &result, nil
}

// CreateTaskList creates a new task list with the given title.
func (c *Client) CreateTaskList(ctx context.Context, title string) (*TaskList, error) {
	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}

	result := toTaskList(created)
	return &result, nil
}

// RenameTaskList updates a task list's title.
func (c *Client) RenameTaskList(ctx context.Context, taskListID, title string) (*TaskList, error) {
	updated, err := c.svc.Tasklists.Update(taskListID, &tasks.TaskList{
		Id:    taskListID,
		Title: title,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to rename task list: %w", err)
	}

	result := toTaskList(updated)
	return &result, nil
}

// DeleteTaskList deletes a task list and all tasks in it.
func (c *Client) DeleteTaskList(ctx context.Context, taskListID string) error {
	if err := c.svc.Tasklists.Delete(taskListID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	return nil
}

// ListTasks lists tasks in a task list. When showCompleted is true,
// completed tasks are included. Non-zero dueMin/dueMax restrict by due date.
func (c *Client) ListTasks(ctx context.Context, taskListID string, showCompleted bool, dueMin, dueMax time.Time) ([]Task, error) {
	call := c.svc.Tasks.List(taskListID).Context(ctx)

	if showCompleted {
		call = call.ShowCompleted(true).ShowHidden(true)
	}
	if !dueMin.IsZero() {
		call = call.DueMin(dueMin.Format(time.RFC3339))
	}
	if !dueMax.IsZero() {
		call = call.DueMax(dueMax.Format(time.RFC3339))
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var taskList []Task
	for _, t := range result.Items {
		taskList = append(taskList, toTask(t))
	}

	return taskList, nil
}

// GetTask retrieves a specific task by ID.
func (c *Client) GetTask(ctx context.Context, taskListID, taskID string) (*Task, error) {
	t, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	result := toTask(t)
	return &result, nil
}

// CreateTask creates a new task in the given list.
func (c *Client) CreateTask(ctx context.Context, taskListID string, input TaskInput) (*Task, error) {
	t := &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Status: input.Status,
	}
	if !input.Due.IsZero() {
		t.Due = input.Due.Format(time.RFC3339)
	}

	call := c.svc.Tasks.Insert(taskListID, t).Context(ctx)
	if input.Parent != "" {
		call = call.Parent(input.Parent)
	}
	if input.Previous != "" {
		call = call.Previous(input.Previous)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	result := toTask(created)
	return &result, nil
}

// UpdateTask updates an existing task. Zero-valued input fields leave the
// corresponding task fields unchanged.
func (c *Client) UpdateTask(ctx context.Context, taskListID, taskID string, input TaskInput) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing task: %w", err)
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Notes != "" {
		existing.Notes = input.Notes
	}
	if input.Status != "" {
		existing.Status = input.Status
	}
	if !input.Due.IsZero() {
		existing.Due = input.Due.Format(time.RFC3339)
	}

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	result := toTask(updated)
	return &result, nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, taskListID, taskID string) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	existing.Status = StatusCompleted
	completed := time.Now().Format(time.RFC3339)
	existing.Completed = &completed

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	result := toTask(updated)
	return &result, nil
}

// MoveTask moves a task to a different position or parent within its list.
func (c *Client) MoveTask(ctx context.Context, taskListID, taskID, parent, previous string) (*Task, error) {
	call := c.svc.Tasks.Move(taskListID, taskID).Context(ctx)
	if parent != "" {
		call = call.Parent(parent)
	}
	if previous != "" {
		call = call.Previous(previous)
	}

	moved, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	result := toTask(moved)
	return &result, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskListID, taskID string) error {
	if err := c.svc.Tasks.Delete(taskListID, taskID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ClearCompletedTasks clears all completed tasks from a task list.
func (c *Client) ClearCompletedTasks(ctx context.Context, taskListID string) error {
	if err := c.svc.Tasks.Clear(taskListID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear completed tasks: %w", err)
	}
	return nil
}
