// ABOUTME: Whoami tool reporting the authenticated caller's identity.
// ABOUTME: Returns the username and the names of configured external keys.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"mcpgate/internal/auth"
)

// WhoamiTool reports who the authenticated caller is.
type WhoamiTool struct{}

func (t *WhoamiTool) Name() string {
	return "whoami"
}

func (t *WhoamiTool) Description() string {
	return "Returns the authenticated caller's username and available external key names."
}

func (t *WhoamiTool) ParameterSchema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false,"required":[]}`)
}

func (t *WhoamiTool) Execute(_ context.Context, _ json.RawMessage, identity *auth.Identity) (json.RawMessage, error) {
	if identity == nil {
		return nil, errors.New("no authenticated identity")
	}

	keys := make([]string, 0, len(identity.Credential().ExternalKeys))
	for name := range identity.Credential().ExternalKeys {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	return json.Marshal(map[string]any{
		"username":      identity.Username(),
		"external_keys": keys,
	})
}
