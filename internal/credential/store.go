// Package credential persists the session's bearer token across process
// restarts. Exactly one token is active per device at a time, held under a
// single well-known key; a store never errors on absence or on clearing an
// already-empty value.
package credential

import "context"

// Key is the well-known name the token is stored under, shared by every
// backend so a device switching backends keeps a stable location.
const Key = "auth_token"

// Store is the persistence contract for the bearer token.
//
// Read returns the stored token, or "" when none was ever written or it was
// cleared — absence is not an error. Write overwrites any prior value and
// Clear removes it; both are idempotent.
type Store interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
