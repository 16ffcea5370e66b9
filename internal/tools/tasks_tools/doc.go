// Package tasks_tools registers MCP tools for Google Tasks operations:
// task list and task CRUD, completion, moving and clearing, plus an
// account listing tool.
//
// Tools resolve accounts by email through the shared client cache. When
// exactly one account is stored the account argument may be omitted.
// Mutating tools are skipped in read-only mode.
package tasks_tools
