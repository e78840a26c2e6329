// ABOUTME: Tests for credential file loading and store construction.
// ABOUTME: Covers TOML parsing, duplicate key rejection, and lookups.

package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeCredsFile(t, `
[alice]
api_key = "k1"

[alice.external_keys]
postgres_url = "postgres://localhost/alice"

[bob]
api_key = "k2"
`)

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	alice, ok := store.Lookup("k1")
	require.True(t, ok)
	assert.Equal(t, "alice", alice.Username)
	assert.Equal(t, "k1", alice.APIKey)

	url, ok := alice.ExternalKey("postgres_url")
	require.True(t, ok)
	assert.Equal(t, "postgres://localhost/alice", url)

	bob, ok := store.Lookup("k2")
	require.True(t, ok)
	assert.Equal(t, "bob", bob.Username)
	assert.Empty(t, bob.ExternalKeys)
}

func TestLoad_UnknownKeyNotFound(t *testing.T) {
	path := writeCredsFile(t, "[alice]\napi_key = \"k1\"\n")

	store, err := Load(path)
	require.NoError(t, err)

	_, ok := store.Lookup("nope")
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading credentials file")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeCredsFile(t, "not valid = [toml")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing credentials file")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeCredsFile(t, "")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no users found")
}

func TestLoad_DuplicateAPIKey(t *testing.T) {
	path := writeCredsFile(t, `
[alice]
api_key = "same"

[bob]
api_key = "same"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate API key")
}

func TestLoad_MissingAPIKey(t *testing.T) {
	path := writeCredsFile(t, `
[alice]
api_key = ""
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no api_key")
}

func TestNewStore_Duplicate(t *testing.T) {
	_, err := NewStore(
		Credential{Username: "alice", APIKey: "k"},
		Credential{Username: "bob", APIKey: "k"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate API key")
}

func TestNewStore_Valid(t *testing.T) {
	store, err := NewStore(Credential{Username: "alice", APIKey: "k1"})
	require.NoError(t, err)

	c, ok := store.Lookup("k1")
	require.True(t, ok)
	assert.Equal(t, "alice", c.Username)
}
