// ABOUTME: Bearer-token authentication against the static credential store.
// ABOUTME: Produces an Identity or a typed failure with a fixed message.

package auth

import (
	"net/http"
	"strings"

	"mcpgate/internal/creds"
)

// bearerPrefix is the exact literal an Authorization header must carry.
const bearerPrefix = "Bearer "

// FailureKind identifies why authentication was rejected.
type FailureKind int

const (
	// MissingToken: no Authorization header at all.
	MissingToken FailureKind = iota
	// InvalidFormat: header present but not "Bearer <token>".
	InvalidFormat
	// InvalidToken: token present but not a key in the store.
	InvalidToken
)

// Failure is a typed authentication rejection. Message strings are part of
// the wire contract and must not change.
type Failure struct {
	Kind FailureKind
}

func (f *Failure) Error() string {
	return f.Message()
}

// Message returns the fixed client-facing message for this failure kind.
func (f *Failure) Message() string {
	switch f.Kind {
	case MissingToken:
		return "Missing Authorization header"
	case InvalidFormat:
		return "Invalid Authorization header format. Expected: Bearer <token>"
	default:
		return "Invalid or expired API key"
	}
}

// Identity is the authenticated caller for one request. It wraps the matched
// credential and is discarded when the request completes.
type Identity struct {
	credential creds.Credential
}

// NewIdentity wraps a credential as an authenticated identity.
func NewIdentity(c creds.Credential) *Identity {
	return &Identity{credential: c}
}

// Username returns the authenticated user's name.
func (id *Identity) Username() string {
	return id.credential.Username
}

// Credential returns the underlying credential.
func (id *Identity) Credential() creds.Credential {
	return id.credential
}

// ExternalKey returns the named external service key for this caller.
func (id *Identity) ExternalKey(name string) (string, bool) {
	return id.credential.ExternalKey(name)
}

// Authenticate validates the Authorization header against the store.
// Header name lookup is case-insensitive (http.Header canonicalizes);
// the Bearer prefix match is exact.
func Authenticate(h http.Header, store *creds.Store) (*Identity, *Failure) {
	header := h.Get("Authorization")
	if header == "" {
		return nil, &Failure{Kind: MissingToken}
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return nil, &Failure{Kind: InvalidFormat}
	}

	credential, found := store.Lookup(token)
	if !found {
		return nil, &Failure{Kind: InvalidToken}
	}

	return NewIdentity(credential), nil
}
