package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/gtcli/internal/tasks"
)

// parseDateFlag accepts RFC3339 or a plain YYYY-MM-DD date; empty is zero.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected RFC3339 or YYYY-MM-DD)", value)
}

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks within a task list",
	}

	var account, list string
	cmd.PersistentFlags().StringVar(&account, "account", "", "Account email (optional with a single account)")
	cmd.PersistentFlags().StringVar(&list, "list", "", "Task list ID")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			showCompleted, _ := cmd.Flags().GetBool("completed")
			dueMinStr, _ := cmd.Flags().GetString("due-min")
			dueMaxStr, _ := cmd.Flags().GetString("due-max")

			dueMin, err := parseDateFlag(dueMinStr)
			if err != nil {
				return err
			}
			dueMax, err := parseDateFlag(dueMaxStr)
			if err != nil {
				return err
			}

			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			items, err := client.ListTasks(cmd.Context(), list, showCompleted, dueMin, dueMax)
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Tasks(items)
		},
	}
	listCmd.Flags().Bool("completed", false, "Include completed tasks")
	listCmd.Flags().String("due-min", "", "Only tasks due after this date")
	listCmd.Flags().String("due-max", "", "Only tasks due before this date")

	showCmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			task, err := client.GetTask(cmd.Context(), list, args[0])
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Task(*task)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to a task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")
			dueStr, _ := cmd.Flags().GetString("due")
			parent, _ := cmd.Flags().GetString("parent")
			previous, _ := cmd.Flags().GetString("previous")

			due, err := parseDateFlag(dueStr)
			if err != nil {
				return err
			}

			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			created, err := client.CreateTask(cmd.Context(), list, tasks.TaskInput{
				Title:    args[0],
				Notes:    notes,
				Due:      due,
				Parent:   parent,
				Previous: previous,
			})
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Task(*created)
		},
	}
	addCmd.Flags().String("notes", "", "Notes for the task")
	addCmd.Flags().String("due", "", "Due date (RFC3339 or YYYY-MM-DD)")
	addCmd.Flags().String("parent", "", "Parent task ID; makes this a subtask")
	addCmd.Flags().String("previous", "", "Previous sibling task ID for positioning")

	updateCmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task; omitted flags leave fields unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			notes, _ := cmd.Flags().GetString("notes")
			status, _ := cmd.Flags().GetString("status")
			dueStr, _ := cmd.Flags().GetString("due")

			due, err := parseDateFlag(dueStr)
			if err != nil {
				return err
			}

			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			updated, err := client.UpdateTask(cmd.Context(), list, args[0], tasks.TaskInput{
				Title:  title,
				Notes:  notes,
				Status: status,
				Due:    due,
			})
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Task(*updated)
		},
	}
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().String("notes", "", "New notes")
	updateCmd.Flags().String("status", "", "New status: needsAction or completed")
	updateCmd.Flags().String("due", "", "New due date (RFC3339 or YYYY-MM-DD)")

	doneCmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			completed, err := client.CompleteTask(cmd.Context(), list, args[0])
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Task(*completed)
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to a different position or parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, _ := cmd.Flags().GetString("parent")
			previous, _ := cmd.Flags().GetString("previous")

			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			moved, err := client.MoveTask(cmd.Context(), list, args[0], parent, previous)
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Task(*moved)
		},
	}
	moveCmd.Flags().String("parent", "", "New parent task ID; empty moves the task to the top level")
	moveCmd.Flags().String("previous", "", "Previous sibling task ID for positioning")

	deleteCmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			if err := client.DeleteTask(cmd.Context(), list, args[0]); err != nil {
				return err
			}

			fmt.Printf("Task %s deleted\n", args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all completed tasks from a task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			if err := client.ClearCompletedTasks(cmd.Context(), list); err != nil {
				return err
			}

			fmt.Println("Completed tasks cleared")
			return nil
		},
	}

	for _, c := range []*cobra.Command{listCmd, showCmd, addCmd, updateCmd, doneCmd, moveCmd, deleteCmd, clearCmd} {
		cmd.AddCommand(c)
	}

	// Every tasks subcommand operates on a list.
	_ = cmd.MarkPersistentFlagRequired("list")

	return cmd
}
