// ABOUTME: Clock tool returning the current server time.
// ABOUTME: Takes no arguments; result is an ISO 8601 timestamp.

package tools

import (
	"context"
	"encoding/json"
	"time"

	"mcpgate/internal/auth"
)

// ClockTool reports the current server time.
type ClockTool struct{}

func (t *ClockTool) Name() string {
	return "get_current_time"
}

func (t *ClockTool) Description() string {
	return "Returns the current server time as an ISO 8601 string."
}

func (t *ClockTool) ParameterSchema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false,"required":[]}`)
}

func (t *ClockTool) Execute(_ context.Context, _ json.RawMessage, _ *auth.Identity) (json.RawMessage, error) {
	return json.Marshal(map[string]string{
		"current_time": time.Now().UTC().Format(time.RFC3339),
	})
}
