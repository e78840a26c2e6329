// ABOUTME: Immutable tool registry built once at startup.
// ABOUTME: Keeps an ordered definition list for discovery and a dispatch table.

package tools

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrToolCollision indicates a tool name is already registered.
var ErrToolCollision = errors.New("tool name collision")

// Registry holds registered tools: an ordered definition list for discovery
// and a name-keyed dispatch table for invocation. It is mutated only during
// startup registration; afterwards every method is read-only and safe for
// concurrent use.
type Registry struct {
	definitions []Definition
	tools       map[string]Tool
	logger      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. A duplicate name returns ErrToolCollision naming the
// duplicate; callers treat that as fatal at startup.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return errors.New("tool has empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: tool '%s' is already registered", ErrToolCollision, name)
	}

	r.tools[name] = t
	r.definitions = append(r.definitions, Definition{
		Name:        name,
		Description: t.Description(),
		Parameters:  t.ParameterSchema(),
	})

	r.logger.Debug("tool registered", "tool_name", name)
	return nil
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []Definition {
	return r.definitions
}

// Dispatch returns the executor for a tool name.
func (r *Registry) Dispatch(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.definitions))
	for i, d := range r.definitions {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.definitions)
}

// BuildRegistry constructs the registry from the statically known tool list.
// Registration order is discovery order. Any error here must prevent the
// process from serving traffic.
func BuildRegistry(logger *slog.Logger) (*Registry, error) {
	r := NewRegistry(logger)

	all := []Tool{
		&ClockTool{},
		&WhoamiTool{},
		&UUIDTool{},
	}

	for _, t := range all {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}

	logger.Info("tool registry built", "tool_count", r.Len())
	return r, nil
}
