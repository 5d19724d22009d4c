// Package mcp exposes the resolver as an MCP tool over a JSON-RPC stdio
// transport.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/doi"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

const protocolVersion = "2024-11-05"

// Resolver is the operation served by the paper_metadata tool.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*types.MetadataRecord, error)
}

// Server handles MCP protocol requests
type Server struct {
	resolver Resolver
	version  string
	log      *zap.Logger
}

// NewServer creates a new MCP server
func NewServer(resolver Resolver, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{resolver: resolver, version: version, log: log}
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is cancelled. Only JSON-RPC frames are written to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	decoder := json.NewDecoder(r)
	encoder := json.NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var request Request
		if err := decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// The stream cannot be resynchronised after a syntax error.
			var syntaxErr *json.SyntaxError
			s.sendError(encoder, nil, ParseError, "Failed to parse request")
			if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("decoding request: %w", err)
			}
			continue
		}

		response := s.HandleRequest(ctx, &request)
		// Notifications (no ID) never get a response.
		if response == nil || request.ID == nil {
			continue
		}
		if err := encoder.Encode(response); err != nil {
			s.log.Error("failed to encode response", zap.Error(err))
		}
	}
}

// HandleRequest processes an MCP request and returns a response.
// Returns nil for notifications.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	id := req.ID

	switch req.Method {
	case "initialize":
		return s.resultResponse(id, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": "paper-metadata", "version": s.version},
		})
	case "tools/list":
		return s.resultResponse(id, map[string]any{"tools": getAllTools()})
	case "tools/call":
		return s.handleToolsCall(ctx, req, id)
	case "ping":
		return s.resultResponse(id, map[string]any{})
	}

	if id == nil {
		return nil
	}
	return s.errorResponse(id, MethodNotFound, "Method not found")
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request, id any) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid parameters")
	}

	switch params.Name {
	case ToolPaperMetadata:
		return s.handlePaperMetadata(ctx, id, params.Arguments)
	default:
		return s.errorResponse(id, MethodNotFound, fmt.Sprintf("Unknown tool: %s", params.Name))
	}
}

func (s *Server) handlePaperMetadata(ctx context.Context, id any, raw json.RawMessage) *Response {
	var args metadataArgs
	if len(raw) == 0 || json.Unmarshal(raw, &args) != nil {
		return s.errorResponse(id, InvalidParams, "identifier is required")
	}
	if args.Identifier == "" {
		return s.errorResponse(id, InvalidParams, "identifier is required")
	}

	rec, err := s.resolver.Resolve(ctx, args.Identifier)
	if errors.Is(err, doi.ErrInvalidIdentifier) {
		s.log.Info("rejected identifier", zap.String("identifier", args.Identifier), zap.Error(err))
		return s.toolResponse(id, err.Error(), true)
	}
	if err != nil {
		s.log.Error("resolution failed", zap.String("identifier", args.Identifier), zap.Error(err))
		return s.errorResponse(id, InternalError, err.Error())
	}

	return s.toolResponse(id, formatResult(rec), false)
}

// Helper methods

func (s *Server) toolResponse(id any, text string, isError bool) *Response {
	return s.resultResponse(id, map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": text,
			},
		},
		"isError": isError,
	})
}

func (s *Server) resultResponse(id, result any) *Response {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return s.errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  json.RawMessage(resultJSON),
	}
}

func (s *Server) errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}

func (s *Server) sendError(encoder *json.Encoder, id any, code int, message string) {
	if err := encoder.Encode(s.errorResponse(id, code, message)); err != nil {
		s.log.Error("failed to encode error response", zap.Error(err))
	}
}

func formatResult(data any) string {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(jsonData)
}
