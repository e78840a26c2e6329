// ABOUTME: Credential file loading and the immutable API-key-indexed store.
// ABOUTME: Parses TOML user tables and rejects duplicate API keys at load time.

package creds

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Credential holds one user's identity and service keys.
// Credentials are immutable once loaded.
type Credential struct {
	Username     string
	APIKey       string
	ExternalKeys map[string]string
}

// ExternalKey returns the named external service key (e.g. "postgres_url").
func (c Credential) ExternalKey(name string) (string, bool) {
	v, ok := c.ExternalKeys[name]
	return v, ok
}

// Store maps API keys to credentials. It is built once at startup and
// shared read-only across all requests, so no locking is needed.
type Store struct {
	byKey map[string]Credential
}

// Lookup returns the credential for an API key.
func (s *Store) Lookup(apiKey string) (Credential, bool) {
	c, ok := s.byKey[apiKey]
	return c, ok
}

// Len returns the number of loaded credentials.
func (s *Store) Len() int {
	return len(s.byKey)
}

// userConfig is one user table in the credentials TOML file:
//
//	[alice]
//	api_key = "k1"
//	[alice.external_keys]
//	postgres_url = "postgres://..."
type userConfig struct {
	APIKey       string            `toml:"api_key"`
	ExternalKeys map[string]string `toml:"external_keys"`
}

// Load reads a TOML credentials file and builds the store.
// Returns an error for an unreadable or unparseable file, an empty user
// list, or a duplicate API key.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file %s: %w", path, err)
	}

	var users map[string]userConfig
	if err := toml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", path, err)
	}

	return buildStore(users, path)
}

func buildStore(users map[string]userConfig, path string) (*Store, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users found in credentials file %s", path)
	}

	byKey := make(map[string]Credential, len(users))
	for username, uc := range users {
		if uc.APIKey == "" {
			return nil, fmt.Errorf("user %q has no api_key", username)
		}
		if existing, dup := byKey[uc.APIKey]; dup {
			return nil, fmt.Errorf("duplicate API key shared by users %q and %q", existing.Username, username)
		}
		byKey[uc.APIKey] = Credential{
			Username:     username,
			APIKey:       uc.APIKey,
			ExternalKeys: uc.ExternalKeys,
		}
	}

	return &Store{byKey: byKey}, nil
}

// NewStore builds a store from in-memory credentials. Used by tests and
// anywhere a file-backed store is not wanted.
func NewStore(credentials ...Credential) (*Store, error) {
	byKey := make(map[string]Credential, len(credentials))
	for _, c := range credentials {
		if c.APIKey == "" {
			return nil, fmt.Errorf("credential for %q has no API key", c.Username)
		}
		if existing, dup := byKey[c.APIKey]; dup {
			return nil, fmt.Errorf("duplicate API key shared by users %q and %q", existing.Username, c.Username)
		}
		byKey[c.APIKey] = c
	}
	return &Store{byKey: byKey}, nil
}
