// Package mcp implements the tool invocation protocol served on /mcp.
//
// The request envelope is a JSON object tagged by "method":
//
//	{"method": "discover"}
//	{"method": "invoke", "params": {"tool_name": "...", "arguments": {...}}}
//
// Every response is a JSON-RPC 2.0 style envelope carrying exactly one of
// "result" or "error"; the absent field is omitted from the serialized form.
// Authentication failures are the only ones signaled at the HTTP level (401);
// malformed envelopes are rejected at the transport boundary with 400; all
// dispatch outcomes, success or error, travel in a 200 body.
package mcp
