// ABOUTME: Argument validation against the supported JSON Schema subset.
// ABOUTME: Fails fast on the first violation; message strings are a wire contract.

package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError is a typed argument-validation failure. Its message is the
// client-facing text; the dispatcher classifies these structurally as
// invalid-parameter errors.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// schema is the supported subset of JSON Schema keywords. Anything else in a
// tool's schema is ignored.
type schema struct {
	Type                 string             `json:"type"`
	Properties           map[string]*schema `json:"properties"`
	Required             []string           `json:"required"`
	AdditionalProperties *bool              `json:"additionalProperties"`
	MinLength            *int               `json:"minLength"`
	MaxLength            *int               `json:"maxLength"`
	Pattern              string             `json:"pattern"`
	Minimum              *float64           `json:"minimum"`
	Maximum              *float64           `json:"maximum"`
	MaxItems             *int               `json:"maxItems"`
}

// argsAbsent reports whether the raw arguments count as "not provided".
// A JSON null is treated the same as a missing field.
func argsAbsent(args json.RawMessage) bool {
	trimmed := bytes.TrimSpace(args)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ValidateArgs validates a raw JSON argument object against a tool's
// parameter schema. It returns nil on success or a *ValidationError whose
// message describes the first violation found.
//
// Checks run in a fixed order: absent-arguments handling, the arguments-
// must-be-an-object check, additionalProperties, required (in declared
// order), then per-property sub-schema checks. Iteration over argument keys
// is unordered; only the first violation found is reported.
func ValidateArgs(schemaJSON json.RawMessage, args json.RawMessage) error {
	var s schema
	if err := json.Unmarshal(schemaJSON, &s); err != nil {
		return fmt.Errorf("invalid parameter schema: %w", err)
	}

	additional := true
	if s.AdditionalProperties != nil {
		additional = *s.AdditionalProperties
	}

	if argsAbsent(args) {
		if len(s.Required) > 0 {
			return validationErrorf("Missing required arguments: %s", strings.Join(s.Required, ", "))
		}
		return nil
	}

	obj, err := decodeObject(args)
	if err != nil {
		return validationErrorf("Arguments must be an object")
	}

	// The unexpected-parameter check only applies when the schema declares
	// a properties object.
	if !additional && s.Properties != nil {
		for key := range obj {
			if _, known := s.Properties[key]; !known {
				return validationErrorf("Unexpected parameter: '%s'", key)
			}
		}
	}

	for _, field := range s.Required {
		if _, present := obj[field]; !present {
			return validationErrorf("Missing required parameter: '%s'", field)
		}
	}

	if s.Properties != nil {
		for name, value := range obj {
			propSchema, known := s.Properties[name]
			if !known {
				continue
			}
			if err := validateValue(name, value, propSchema); err != nil {
				return err
			}
		}
	}

	return nil
}

// decodeObject decodes raw JSON into a map, preserving numeric literals as
// json.Number so integers stay distinguishable from floats.
func decodeObject(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("not an object")
	}
	return obj, nil
}

// validateValue checks one argument value against its sub-schema: type
// first, then string checks, numeric bounds, and array length. Each check
// short-circuits on the first failure.
func validateValue(name string, value any, s *schema) error {
	if s.Type != "" {
		actual := jsonType(value)
		matches := s.Type == actual || (s.Type == "number" && actual == "integer")
		if !matches {
			return validationErrorf("Parameter '%s' must be of type '%s', got '%s'", name, s.Type, actual)
		}
	}

	if str, ok := value.(string); ok {
		if s.MinLength != nil && len(str) < *s.MinLength {
			return validationErrorf("Parameter '%s' must be at least %d characters long", name, *s.MinLength)
		}
		if s.MaxLength != nil && len(str) > *s.MaxLength {
			return validationErrorf("Parameter '%s' exceeds maximum length of %d", name, *s.MaxLength)
		}
		// Restricted pattern support: only "^<prefix>*" forms, checked as a
		// plain prefix test. Anything else is ignored.
		if strings.HasPrefix(s.Pattern, "^") && strings.HasSuffix(s.Pattern, "*") {
			prefix := strings.TrimRight(strings.TrimLeft(s.Pattern, "^"), "*")
			if !strings.HasPrefix(str, prefix) {
				return validationErrorf("Parameter '%s' does not match required pattern", name)
			}
		}
	}

	if num, ok := value.(json.Number); ok {
		if f, err := num.Float64(); err == nil {
			if s.Minimum != nil && f < *s.Minimum {
				return validationErrorf("Parameter '%s' must be at least %s", name, formatBound(*s.Minimum))
			}
			if s.Maximum != nil && f > *s.Maximum {
				return validationErrorf("Parameter '%s' must be at most %s", name, formatBound(*s.Maximum))
			}
		}
	}

	if arr, ok := value.([]any); ok {
		if s.MaxItems != nil && len(arr) > *s.MaxItems {
			return validationErrorf("Parameter '%s' exceeds maximum array length of %d", name, *s.MaxItems)
		}
	}

	return nil
}

// jsonType names the JSON type of a decoded value. Numbers that parse as
// integers report "integer"; an integer value also satisfies a declared
// "number" type (handled by the caller).
func jsonType(value any) string {
	switch v := value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		if isInteger(v) {
			return "integer"
		}
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

// isInteger reports whether a JSON number literal is an integer. Literals
// with a fraction or exponent ("42.0", "1e3") are floats even when their
// value is whole.
func isInteger(n json.Number) bool {
	if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseUint(n.String(), 10, 64)
	return err == nil
}

// formatBound renders a numeric bound without a trailing ".0" for whole
// values, matching the message contract ("must be at least 3").
func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
