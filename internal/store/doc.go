// Package store persists gtcli's application credentials and per-account
// OAuth records under a configuration directory (default ~/.gtcli).
//
// Two flat files back the store:
//   - credentials.json: the installation's OAuth client id and secret
//   - accounts.json: a JSON array of authorized accounts keyed by email
//
// The store is deliberately forgiving on the read path: a missing or
// corrupt file, or an individual record missing required fields, is
// treated as absent data rather than an error, so a damaged config
// directory never prevents the CLI from starting. Every mutation rewrites
// the affected file in full.
package store
