// Package creds loads the credentials file and exposes the immutable
// API-key-indexed credential store.
//
// The file is TOML, one table per user:
//
//	[alice]
//	api_key = "k1"
//	[alice.external_keys]
//	postgres_url = "postgres://..."
//
// The store is constructed once before the server accepts traffic. Duplicate
// API keys and empty files are load errors; the process must not start with a
// partial store.
package creds
