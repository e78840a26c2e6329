// ABOUTME: HTTP server for the tool invocation protocol on /mcp.
// ABOUTME: Wires the auth gate, envelope parsing, dispatch, and /health.

package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"mcpgate/internal/auth"
	"mcpgate/internal/creds"
	"mcpgate/internal/tools"
)

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// Config holds the dependencies for the protocol server.
type Config struct {
	Registry    *tools.Registry
	Credentials *creds.Store
	Logger      *slog.Logger
}

// Server serves the tool invocation protocol. The registry and credential
// store are immutable after construction, so the server holds them without
// locking.
type Server struct {
	registry    *tools.Registry
	credentials *creds.Store
	logger      *slog.Logger
}

// NewServer creates a protocol server from the given configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Credentials == nil {
		return nil, errors.New("credential store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		registry:    cfg.Registry,
		credentials: cfg.Credentials,
		logger:      logger,
	}, nil
}

// RegisterRoutes registers /mcp (behind the auth gate) and /health (open)
// on the given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/mcp", s.requireAuth(http.HandlerFunc(s.handleMCP)))
	mux.HandleFunc("/health", s.handleHealth)
}

// requireAuth is the bearer-token gate in front of the protocol endpoint.
// It runs strictly before envelope parsing; a failure short-circuits with
// HTTP 401 and a full error envelope.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, failure := auth.Authenticate(r.Header, s.credentials)
		if failure != nil {
			s.logger.Debug("authentication rejected", "reason", failure.Message())
			s.writeEnvelope(w, http.StatusUnauthorized, errorEnvelope(ErrorAuth, failure.Message(), nil))
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// handleHealth serves the unauthenticated liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleMCP parses the request envelope and routes discover/invoke.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		s.writeInvalidRequest(w, "failed to read request body")
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		s.writeInvalidRequest(w, "request body too large")
		return
	}

	var req RequestEnvelope
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeInvalidRequest(w, "invalid JSON in request body")
		return
	}

	switch req.Method {
	case "discover":
		s.handleDiscover(w)
	case "invoke":
		var params InvokeParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				s.writeInvalidRequest(w, "malformed invoke params")
				return
			}
		}
		if params.ToolName == "" {
			s.writeInvalidRequest(w, "invoke requires params.tool_name")
			return
		}
		s.handleInvoke(w, r, params)
	default:
		s.writeInvalidRequest(w, fmt.Sprintf("unknown method '%s'", req.Method))
	}
}

// handleDiscover returns every registered tool definition, in registration
// order, unfiltered by identity.
func (s *Server) handleDiscover(w http.ResponseWriter) {
	definitions := s.registry.Definitions()

	s.logger.Debug("discover", "tool_count", len(definitions))

	s.writeEnvelope(w, http.StatusOK, successEnvelope(map[string]any{
		"tools": definitions,
	}))
}

// handleInvoke looks the tool up, validates arguments, and executes.
// All outcomes are HTTP 200; success or failure travels in the envelope.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request, params InvokeParams) {
	requestID := uuid.New().String()
	identity := auth.FromContext(r.Context())

	log := s.logger.With(
		"tool_name", params.ToolName,
		"request_id", requestID,
		"username", identity.Username(),
	)

	tool, found := s.registry.Dispatch(params.ToolName)
	if !found {
		log.Debug("invoke of unknown tool")
		s.writeEnvelope(w, http.StatusOK, errorEnvelope(
			ErrorMethodNotFound,
			fmt.Sprintf("Tool '%s' not found", params.ToolName),
			map[string]any{"available_tools": s.registry.Names()},
		))
		return
	}

	if err := tools.ValidateArgs(tool.ParameterSchema(), params.Arguments); err != nil {
		detail := classifyFailure(err)
		log.Debug("argument validation failed", "error", err)
		s.writeEnvelope(w, http.StatusOK, ResponseEnvelope{JSONRPC: "2.0", Error: detail})
		return
	}

	result, err := tool.Execute(r.Context(), params.Arguments, identity)
	if err != nil {
		detail := classifyFailure(err)
		log.Warn("tool execution failed", "error", err, "code", detail.Code)
		s.writeEnvelope(w, http.StatusOK, ResponseEnvelope{JSONRPC: "2.0", Error: detail})
		return
	}

	// A tool returning no payload still yields a present result member;
	// result and error are mutually exclusive and one must be set.
	if len(result) == 0 {
		result = json.RawMessage("null")
	}

	log.Debug("invoke complete")
	s.writeEnvelope(w, http.StatusOK, successEnvelope(json.RawMessage(result)))
}

// writeInvalidRequest rejects a malformed envelope at the transport
// boundary: HTTP 400 with the reserved invalid-request code.
func (s *Server) writeInvalidRequest(w http.ResponseWriter, message string) {
	s.writeEnvelope(w, http.StatusBadRequest, errorEnvelope(ErrorInvalidRequest, message, nil))
}

// writeEnvelope serializes a response envelope with the given HTTP status.
func (s *Server) writeEnvelope(w http.ResponseWriter, status int, env ResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Warn("failed to encode response envelope", "error", err)
	}
}
