// ABOUTME: Context plumbing for the authenticated identity.
// ABOUTME: Provides WithIdentity/FromContext for propagation through handlers.

package auth

import (
	"context"
)

// identityKey is the key type for storing an Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the Identity from the context, returning nil if not
// present. The dispatcher guarantees it is present for any request that
// passed the gate.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
