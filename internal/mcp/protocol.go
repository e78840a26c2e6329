// ABOUTME: Protocol envelope types, error codes, and the failure classifier.
// ABOUTME: Message keywords and prefixes are an observable wire contract.

package mcp

import (
	"encoding/json"
	"errors"
	"strings"

	"mcpgate/internal/tools"
)

// JSON-RPC error codes used by the protocol.
const (
	ErrorAuth           = -32001
	ErrorInvalidParams  = -32002
	ErrorToolExecution  = -32003
	ErrorInvalidRequest = -32600
	ErrorMethodNotFound = -32601
)

// RequestEnvelope is the outer request object, tagged by method.
type RequestEnvelope struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// InvokeParams are the params of an invoke request.
type InvokeParams struct {
	ToolName  string          `json:"tool_name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ResponseEnvelope is the outer response object. Exactly one of Result and
// Error is set; the other is omitted entirely from the serialized form.
type ResponseEnvelope struct {
	JSONRPC string       `json:"jsonrpc"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail is the error member of a response envelope.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// successEnvelope builds a success response.
func successEnvelope(result any) ResponseEnvelope {
	return ResponseEnvelope{JSONRPC: "2.0", Result: result}
}

// errorEnvelope builds an error response.
func errorEnvelope(code int, message string, data any) ResponseEnvelope {
	return ResponseEnvelope{
		JSONRPC: "2.0",
		Error:   &ErrorDetail{Code: code, Message: message, Data: data},
	}
}

// paramKeywords are the literal substrings that mark a failure message as
// parameter-related. The set is a compatibility contract with existing
// clients; do not edit it.
var paramKeywords = []string{
	"parameter",
	"required",
	"Unexpected",
	"Missing",
	"must be",
	"exceeds maximum",
	"at least",
	"characters long",
	"type",
}

// isParamValidationError reports whether a failure message reads as
// parameter-related.
func isParamValidationError(msg string) bool {
	for _, kw := range paramKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// classifyFailure turns a validation or execution failure into an error
// detail. Typed validation errors classify structurally; opaque executor
// errors fall back to the keyword heuristic so the observable split matches
// what clients already depend on.
func classifyFailure(err error) *ErrorDetail {
	msg := err.Error()

	var verr *tools.ValidationError
	if errors.As(err, &verr) || isParamValidationError(msg) {
		return &ErrorDetail{
			Code:    ErrorInvalidParams,
			Message: "Invalid parameters: " + msg,
		}
	}
	return &ErrorDetail{
		Code:    ErrorToolExecution,
		Message: "Tool execution error: " + msg,
	}
}
