// ABOUTME: UUID generation tool producing random version 4 UUIDs.
// ABOUTME: Accepts an optional count bounded by the parameter schema.

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mcpgate/internal/auth"
)

// UUIDTool generates random version 4 UUIDs.
type UUIDTool struct{}

func (t *UUIDTool) Name() string {
	return "generate_uuid"
}

func (t *UUIDTool) Description() string {
	return "Generates one or more random version 4 UUIDs."
}

func (t *UUIDTool) ParameterSchema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"count":{"type":"integer","minimum":1,"maximum":100}},"additionalProperties":false,"required":[]}`)
}

type uuidInput struct {
	Count int `json:"count"`
}

func (t *UUIDTool) Execute(_ context.Context, args json.RawMessage, _ *auth.Identity) (json.RawMessage, error) {
	var in uuidInput
	if !argsAbsent(args) {
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}
	if in.Count == 0 {
		in.Count = 1
	}

	ids := make([]string, in.Count)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	return json.Marshal(map[string]any{
		"uuids": ids,
		"count": len(ids),
	})
}
