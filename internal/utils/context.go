// Package utils provides general-purpose helper utilities shared by
// the handler, service and worker layers: context keys, HMAC hashing,
// JSON response writing, JWT generation and validation, and UUID
// generation for documents and access objects.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// A dedicated type instead of a plain string prevents collisions with
// other packages that store string-keyed values in the same context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the
// authenticated user's identifier. Handlers read it back through
// GetUserIDFromContext; everything below the handler layer receives
// the owner id explicitly as an argument.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user's id from the
// request context.
//
// The ok flag is false when the value is missing or is not an int64,
// which for a route behind the auth middleware indicates a wiring bug
// rather than a client error.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
