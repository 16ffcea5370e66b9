package tasks_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// registerTaskListTools registers task list management tools.
func registerTaskListTools(s *mcpserver.MCPServer, deps *Deps, readOnly bool) error {
	listTaskListsTool := mcp.NewTool("tasks_list_task_lists",
		mcp.WithDescription("List all task lists for an account"),
		accountArgOption(),
	)

	s.AddTool(listTaskListsTool, instrumented("tasks_list_task_lists", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := clientForArgs(ctx, deps, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		lists, err := client.ListTaskLists(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list task lists: %v", err)), nil
		}

		return jsonResult(lists), nil
	}))

	getTaskListTool := mcp.NewTool("tasks_get_task_list",
		mcp.WithDescription("Get details of a specific task list"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list to retrieve"),
		),
	)

	s.AddTool(getTaskListTool, instrumented("tasks_get_task_list", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		taskList, err := client.GetTaskList(ctx, taskListID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get task list: %v", err)), nil
		}

		return jsonResult(taskList), nil
	}))

	if readOnly {
		return nil
	}

	createTaskListTool := mcp.NewTool("tasks_create_task_list",
		mcp.WithDescription("Create a new task list"),
		accountArgOption(),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the new task list"),
		),
	)

	s.AddTool(createTaskListTool, instrumented("tasks_create_task_list", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		title, err := requiredStringArg(args, "title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		created, err := client.CreateTaskList(ctx, title)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create task list: %v", err)), nil
		}

		return jsonResult(created), nil
	}))

	renameTaskListTool := mcp.NewTool("tasks_rename_task_list",
		mcp.WithDescription("Rename a task list"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list to rename"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The new title"),
		),
	)

	s.AddTool(renameTaskListTool, instrumented("tasks_rename_task_list", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := requiredStringArg(args, "title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		updated, err := client.RenameTaskList(ctx, taskListID, title)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to rename task list: %v", err)), nil
		}

		return jsonResult(updated), nil
	}))

	deleteTaskListTool := mcp.NewTool("tasks_delete_task_list",
		mcp.WithDescription("Delete a task list and all tasks in it"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list to delete"),
		),
	)

	s.AddTool(deleteTaskListTool, instrumented("tasks_delete_task_list", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteTaskList(ctx, taskListID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task list: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Task list %s deleted", taskListID)), nil
	}))

	return nil
}
