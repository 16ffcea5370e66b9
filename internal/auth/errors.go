package auth

import "errors"

// Failure taxonomy of the authorization flow. None of these are retried
// internally; the caller decides whether to re-invoke the flow.
var (
	// ErrDenied indicates the user denied consent; the provider's error
	// string is attached by the caller via wrapping.
	ErrDenied = errors.New("authorization denied by provider")

	// ErrInvalidRedirect indicates a redirect that carries neither a code
	// nor an error parameter.
	ErrInvalidRedirect = errors.New("invalid redirect: no authorization code found")

	// ErrNoRefreshToken indicates the token exchange succeeded but the
	// provider issued no refresh token. Remediation is to re-authorize,
	// which forces the consent screen and a fresh refresh token.
	ErrNoRefreshToken = errors.New("No refresh token received, please re-authorize to grant offline access")

	// ErrTimeout indicates the local callback listener gave up waiting for
	// the provider redirect.
	ErrTimeout = errors.New("timed out waiting for the authorization redirect, please try again")
)
