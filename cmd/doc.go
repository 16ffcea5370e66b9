// Package cmd implements the command-line interface for gtcli.
//
// This package provides the following commands:
//   - credentials: Manage the installation's OAuth client credentials
//   - accounts: Authorize, list and remove Google accounts
//   - lists: Manage task lists
//   - tasks: Manage tasks within a task list
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
package cmd
