// Package auth drives the OAuth2 authorization-code grant against Google
// to obtain a refresh token for an account.
//
// Two sub-protocols are supported. The interactive mode opens the
// authorization URL in the user's browser and receives the redirect on a
// short-lived local HTTP listener bound to a fixed port, with a bounded
// wait. The manual mode prints the URL and blocks reading the pasted
// redirect from the terminal, with no timeout.
//
// Offline access and forced consent are always requested so that the
// provider issues a refresh token even when the account has authorized the
// application before. An access token without a refresh token is treated
// as a failure, not a partial success.
//
// The package holds no persistent state; callers persist the resulting
// token pair through the store package.
package auth
