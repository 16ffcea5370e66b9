// Package format renders task lists, tasks and accounts for CLI output,
// either as tab-separated tables or as indented JSON.
package format
