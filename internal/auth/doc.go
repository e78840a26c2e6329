// Package auth implements the bearer-token gate in front of the /mcp endpoint.
//
// Callers present a static API key as "Authorization: Bearer <key>". The gate
// looks the key up in the credential store and produces an Identity, or one of
// three typed failures (missing header, malformed header, unknown key). The
// gate runs strictly before protocol parsing; a failure short-circuits the
// request with HTTP 401.
//
// The Identity for a successful request is attached to the request context via
// WithIdentity and read back by tool executors via FromContext.
package auth
