// ABOUTME: Tool capability interface and the discovery-facing definition type.
// ABOUTME: Concrete tools implement Tool and are registered at startup.

package tools

import (
	"context"
	"encoding/json"

	"mcpgate/internal/auth"
)

// Tool is the capability interface every registered tool satisfies.
// Implementations must be safe for concurrent Execute calls; the registry
// shares one instance across all requests.
type Tool interface {
	// Name returns the tool's stable, unique name.
	Name() string

	// Description returns a human-readable description for discovery.
	Description() string

	// ParameterSchema returns the JSON Schema subset describing the tool's
	// arguments. The dispatcher validates arguments against it before Execute.
	ParameterSchema() json.RawMessage

	// Execute runs the tool. args is the raw argument object (possibly
	// empty/null); identity is the authenticated caller. Errors surface to
	// the client with a human-readable message.
	Execute(ctx context.Context, args json.RawMessage, identity *auth.Identity) (json.RawMessage, error)
}

// Definition is the discovery-facing metadata for a tool.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}
