package tasks_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gtcli/internal/instrumentation"
	"github.com/teemow/gtcli/internal/store"
	"github.com/teemow/gtcli/internal/tasks"
)

// Deps bundles what the tool handlers need: the account store, the
// per-account client cache and the metrics recorder.
type Deps struct {
	Store   *store.Store
	Clients *tasks.ClientCache
	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// Register registers all Tasks-related tools with the MCP server. When
// readOnly is true, only non-mutating tools are registered.
func Register(s *mcpserver.MCPServer, deps *Deps, readOnly bool) error {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	if err := registerAccountTools(s, deps); err != nil {
		return fmt.Errorf("failed to register account tools: %w", err)
	}
	if err := registerTaskListTools(s, deps, readOnly); err != nil {
		return fmt.Errorf("failed to register task list tools: %w", err)
	}
	if err := registerTaskTools(s, deps, readOnly); err != nil {
		return fmt.Errorf("failed to register task tools: %w", err)
	}

	return nil
}

type toolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// instrumented wraps a tool handler with invocation metrics.
func instrumented(name string, deps *Deps, handler toolHandler) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		account, _ := accountFromArgs(deps, request.GetArguments())

		result, err := handler(ctx, request)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		deps.Metrics.RecordToolInvocation(ctx, name, account, status, time.Since(start))

		return result, err
	}
}

// accountFromArgs resolves the account email for a tool call. An explicit
// "account" argument wins; otherwise, if exactly one account is stored, it
// is used.
func accountFromArgs(deps *Deps, args map[string]interface{}) (string, error) {
	if email, ok := args["account"].(string); ok && email != "" {
		return email, nil
	}

	accounts := deps.Store.GetAllAccounts()
	if len(accounts) == 1 {
		return accounts[0].Email, nil
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("no accounts configured; run 'gtcli accounts add' first")
	}
	return "", fmt.Errorf("multiple accounts configured; pass the account argument")
}

// clientForArgs resolves the account and returns its cached Tasks client.
func clientForArgs(ctx context.Context, deps *Deps, args map[string]interface{}) (*tasks.Client, error) {
	email, err := accountFromArgs(deps, args)
	if err != nil {
		return nil, err
	}
	return deps.Clients.ForAccount(ctx, email)
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func requiredStringArg(args map[string]interface{}, key string) (string, error) {
	v := stringArg(args, key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// parseDate accepts RFC3339 or a plain YYYY-MM-DD date.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected RFC3339 or YYYY-MM-DD)", value)
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}

// accountArgOption is the shared account argument description.
func accountArgOption() mcp.ToolOption {
	return mcp.WithString("account",
		mcp.Description("Account email. Optional when exactly one account is configured."),
	)
}

// registerAccountTools registers the account listing tool.
func registerAccountTools(s *mcpserver.MCPServer, deps *Deps) error {
	listAccountsTool := mcp.NewTool("tasks_list_accounts",
		mcp.WithDescription("List the Google accounts authorized for task access"),
	)

	s.AddTool(listAccountsTool, instrumented("tasks_list_accounts", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		emails := []string{}
		for _, a := range deps.Store.GetAllAccounts() {
			emails = append(emails, a.Email)
		}
		return jsonResult(emails), nil
	}))

	return nil
}
