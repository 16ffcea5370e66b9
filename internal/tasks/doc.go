// Package tasks provides a client for managing Google Tasks on behalf of a
// stored gtcli account.
//
// The package wraps the Google Tasks API (tasks/v1) and covers:
//   - task lists: list, get, create, rename, delete
//   - tasks: list, get, create, update, complete, move, delete, clear
//   - due-date and completion filtering
//
// Clients are built from store.Account records: the account's client
// credentials and refresh token feed an oauth2 token source, so access
// tokens refresh transparently. ClientCache keeps one client per account
// email for callers that serve many operations in one process, such as the
// MCP server.
package tasks
