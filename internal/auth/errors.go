package auth

import "errors"

var (
	// ErrUnauthenticated covers absent, malformed and expired tokens alike.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrExternalAuthFailed means the identity provider rejected the
	// assertion, errored, or timed out. A timeout is never treated as success.
	ErrExternalAuthFailed = errors.New("external auth failed")
)
