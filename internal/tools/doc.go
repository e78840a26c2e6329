// Package tools defines the tool capability interface, the registry that
// maps tool names to executors, and the argument validator.
//
// The registry is built once at startup by BuildRegistry from a statically
// known tool list; a duplicate tool name aborts startup. After build it is
// read-only and safe to share across concurrent requests without locking.
//
// The validator checks a JSON argument object against a fixed subset of
// JSON Schema keywords (type, properties, required, additionalProperties,
// minLength, maxLength, pattern, minimum, maximum, maxItems). It fails fast
// on the first violation and its message strings are a wire contract: the
// dispatcher's error classifier pattern-matches on them.
package tools
