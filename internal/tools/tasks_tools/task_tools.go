package tasks_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gtcli/internal/tasks"
)

// registerTaskTools registers task management tools.
func registerTaskTools(s *mcpserver.MCPServer, deps *Deps, readOnly bool) error {
	listTasksTool := mcp.NewTool("tasks_list_tasks",
		mcp.WithDescription("List tasks in a task list, optionally filtered by completion and due date"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithBoolean("showCompleted",
			mcp.Description("Include completed tasks (default: false)"),
		),
		mcp.WithString("dueMin",
			mcp.Description("Only tasks due after this date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("dueMax",
			mcp.Description("Only tasks due before this date (RFC3339 or YYYY-MM-DD)"),
		),
	)

	s.AddTool(listTasksTool, instrumented("tasks_list_tasks", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		showCompleted, _ := args["showCompleted"].(bool)

		var dueMin, dueMax time.Time
		if v := stringArg(args, "dueMin"); v != "" {
			if dueMin, err = parseDate(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		if v := stringArg(args, "dueMax"); v != "" {
			if dueMax, err = parseDate(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		items, err := client.ListTasks(ctx, taskListID, showCompleted, dueMin, dueMax)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
		}

		return jsonResult(items), nil
	}))

	getTaskTool := mcp.NewTool("tasks_get_task",
		mcp.WithDescription("Get details of a specific task"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
	)

	s.AddTool(getTaskTool, instrumented("tasks_get_task", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := requiredStringArg(args, "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := client.GetTask(ctx, taskListID, taskID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get task: %v", err)), nil
		}

		return jsonResult(task), nil
	}))

	if readOnly {
		return nil
	}

	createTaskTool := mcp.NewTool("tasks_create_task",
		mcp.WithDescription("Create a new task in a task list"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the task"),
		),
		mcp.WithString("notes",
			mcp.Description("Notes for the task"),
		),
		mcp.WithString("due",
			mcp.Description("Due date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("parent",
			mcp.Description("Parent task ID; makes this a subtask"),
		),
		mcp.WithString("previous",
			mcp.Description("Previous sibling task ID for positioning"),
		),
	)

	s.AddTool(createTaskTool, instrumented("tasks_create_task", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := requiredStringArg(args, "title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := tasks.TaskInput{
			Title:    title,
			Notes:    stringArg(args, "notes"),
			Parent:   stringArg(args, "parent"),
			Previous: stringArg(args, "previous"),
		}
		if v := stringArg(args, "due"); v != "" {
			if input.Due, err = parseDate(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		created, err := client.CreateTask(ctx, taskListID, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
		}

		return jsonResult(created), nil
	}))

	updateTaskTool := mcp.NewTool("tasks_update_task",
		mcp.WithDescription("Update an existing task; omitted fields are unchanged"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes"),
		),
		mcp.WithString("due",
			mcp.Description("New due date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("status",
			mcp.Description("New status: needsAction or completed"),
		),
	)

	s.AddTool(updateTaskTool, instrumented("tasks_update_task", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := requiredStringArg(args, "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := tasks.TaskInput{
			Title:  stringArg(args, "title"),
			Notes:  stringArg(args, "notes"),
			Status: stringArg(args, "status"),
		}
		if v := stringArg(args, "due"); v != "" {
			if input.Due, err = parseDate(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		updated, err := client.UpdateTask(ctx, taskListID, taskID, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
		}

		return jsonResult(updated), nil
	}))

	completeTaskTool := mcp.NewTool("tasks_complete_task",
		mcp.WithDescription("Mark a task as completed"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
	)

	s.AddTool(completeTaskTool, instrumented("tasks_complete_task", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := requiredStringArg(args, "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		completed, err := client.CompleteTask(ctx, taskListID, taskID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
		}

		return jsonResult(completed), nil
	}))

	moveTaskTool := mcp.NewTool("tasks_move_task",
		mcp.WithDescription("Move a task to a different position or parent within its list"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
		mcp.WithString("parent",
			mcp.Description("New parent task ID; empty moves the task to the top level"),
		),
		mcp.WithString("previous",
			mcp.Description("Previous sibling task ID for positioning"),
		),
	)

	s.AddTool(moveTaskTool, instrumented("tasks_move_task", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := requiredStringArg(args, "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		moved, err := client.MoveTask(ctx, taskListID, taskID, stringArg(args, "parent"), stringArg(args, "previous"))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to move task: %v", err)), nil
		}

		return jsonResult(moved), nil
	}))

	deleteTaskTool := mcp.NewTool("tasks_delete_task",
		mcp.WithDescription("Delete a task"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
	)

	s.AddTool(deleteTaskTool, instrumented("tasks_delete_task", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := requiredStringArg(args, "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteTask(ctx, taskListID, taskID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted", taskID)), nil
	}))

	clearCompletedTool := mcp.NewTool("tasks_clear_completed",
		mcp.WithDescription("Clear all completed tasks from a task list"),
		accountArgOption(),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description("The ID of the task list"),
		),
	)

	s.AddTool(clearCompletedTool, instrumented("tasks_clear_completed", deps, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskListID, err := requiredStringArg(args, "taskListId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := clientForArgs(ctx, deps, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.ClearCompletedTasks(ctx, taskListID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to clear completed tasks: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Completed tasks cleared from list %s", taskListID)), nil
	}))

	return nil
}
