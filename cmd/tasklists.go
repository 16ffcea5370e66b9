package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gtcli/internal/store"
	"github.com/teemow/gtcli/internal/tasks"
)

// resolveAccount returns the stored account for the --account flag. An
// empty email resolves to the single stored account when unambiguous.
func resolveAccount(st *store.Store, email string) (store.Account, error) {
	if email == "" {
		accounts := st.GetAllAccounts()
		switch len(accounts) {
		case 0:
			return store.Account{}, fmt.Errorf("no accounts configured; run 'gtcli accounts add' first")
		case 1:
			return accounts[0], nil
		default:
			return store.Account{}, fmt.Errorf("multiple accounts configured; pass --account")
		}
	}

	account, ok := st.GetAccount(email)
	if !ok {
		return store.Account{}, fmt.Errorf("account not found: %s", email)
	}
	return account, nil
}

// taskClientFor opens the store and builds a Tasks client for the account.
func taskClientFor(cmd *cobra.Command, email string) (*tasks.Client, error) {
	st, err := openStore(newLogger())
	if err != nil {
		return nil, err
	}

	account, err := resolveAccount(st, email)
	if err != nil {
		return nil, err
	}

	return tasks.NewClient(cmd.Context(), account, nil)
}

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage task lists",
	}

	var account string
	cmd.PersistentFlags().StringVar(&account, "account", "", "Account email (optional with a single account)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all task lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			lists, err := client.ListTaskLists(cmd.Context())
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.TaskLists(lists)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			created, err := client.CreateTaskList(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.TaskList(*created)
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <list-id> <title>",
		Short: "Rename a task list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			updated, err := client.RenameTaskList(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.TaskList(*updated)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a task list and all tasks in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := taskClientFor(cmd, account)
			if err != nil {
				return err
			}

			if err := client.DeleteTaskList(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Task list %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, renameCmd, deleteCmd)
	return cmd
}
