package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gtcli/internal/auth"
	"github.com/teemow/gtcli/internal/store"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the OAuth client credentials for this installation",
	}

	var clientID, clientSecret string

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the OAuth client id and secret",
		Long: `Store the OAuth client credentials of your Google Cloud project. These
identify the gtcli installation to Google and are required before any
account can be authorized. Create them in the Google Cloud console under
"APIs & Services > Credentials" with the Tasks API enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(newLogger())
			if err != nil {
				return err
			}

			if err := st.SetCredentials(clientID, clientSecret); err != nil {
				return fmt.Errorf("failed to store credentials: %w", err)
			}

			fmt.Println("Credentials stored")
			return nil
		},
	}
	setCmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client id")
	setCmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	_ = setCmd.MarkFlagRequired("client-id")
	_ = setCmd.MarkFlagRequired("client-secret")

	cmd.AddCommand(setCmd)
	return cmd
}

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage authorized Google accounts",
	}

	cmd.AddCommand(newAccountsListCmd())
	cmd.AddCommand(newAccountsAddCmd())
	cmd.AddCommand(newAccountsRemoveCmd())
	return cmd
}

func newAccountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List authorized accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(newLogger())
			if err != nil {
				return err
			}

			w, err := newFormatWriter()
			if err != nil {
				return err
			}
			return w.Accounts(st.GetAllAccounts())
		},
	}
}

func newAccountsAddCmd() *cobra.Command {
	var email string
	var manual bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Authorize a Google account for task access",
		Long: `Run the OAuth2 authorization flow for a Google account and store the
resulting refresh token. By default a browser window is opened and the
redirect is captured on a local port; with --manual the authorization URL
is printed and the redirect URL is pasted back into the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			st, err := openStore(logger)
			if err != nil {
				return err
			}

			creds, ok := st.GetCredentials()
			if !ok {
				return fmt.Errorf("no OAuth client credentials configured; run 'gtcli credentials set' first")
			}

			// Reject duplicates before any network call so a failed
			// re-authorization cannot clobber a working token.
			if st.HasAccount(email) {
				return fmt.Errorf("account %s already exists; remove it first to re-authorize", email)
			}

			opts := []auth.Option{}
			if manual {
				opts = append(opts, auth.WithManualMode())
			}

			flow := auth.New(creds, logger, opts...)
			pair, err := flow.Authorize(cmd.Context())
			if err != nil {
				return err
			}

			account := store.Account{
				Email: email,
				OAuth2: store.OAuth2{
					ClientID:     creds.ClientID,
					ClientSecret: creds.ClientSecret,
					RefreshToken: pair.RefreshToken,
					AccessToken:  pair.AccessToken,
				},
			}
			if err := st.AddAccount(account); err != nil {
				return fmt.Errorf("failed to store account: %w", err)
			}

			fmt.Printf("Account %s authorized\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the account to authorize")
	cmd.Flags().BoolVar(&manual, "manual", false, "Paste the redirect URL manually instead of using a local listener")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAccountsRemoveCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an authorized account",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(newLogger())
			if err != nil {
				return err
			}

			removed, err := st.DeleteAccount(email)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No account found for %s\n", email)
				return nil
			}

			fmt.Printf("Account %s removed\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the account to remove")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
