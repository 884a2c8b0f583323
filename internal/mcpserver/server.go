// Package mcpserver exposes the diet planner as MCP tools.
package mcpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"
)

const (
	ToolCalculateDietPlan = "calculate_diet_plan"
	ToolGetActivePlan     = "get_active_plan"
)

// ErrUnknownTool is returned by Call for a tool name that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

type toolHandler func(req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type Server struct {
	db    *sql.DB
	log   *zap.Logger
	tools map[string]toolHandler
}

func New(db *sql.DB, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{db: db, log: log}
	s.tools = map[string]toolHandler{
		ToolCalculateDietPlan: s.handleCalculateDietPlan,
		ToolGetActivePlan:     s.handleGetActivePlan,
	}
	return s
}

// ToolNames lists the registered tools in name order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches one tool call. Caller mistakes come back as a result with
// IsError set; only an unknown tool or an internal failure is an error.
func (s *Server) Call(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	handler, ok := s.tools[req.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Name)
	}
	result, err := handler(req)
	if err != nil {
		s.log.Error("tool call failed", zap.String("tool", req.Name), zap.Error(err))
		return nil, err
	}
	s.log.Info("tool call", zap.String("tool", req.Name), zap.Bool("is_error", result.IsError))
	return result, nil
}

func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("unmarshal arguments: %w", err)
	}
	return nil
}

func jsonResult(data any) (*protocol.CallToolResult, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{Type: "text", Text: string(raw)},
		},
	}, nil
}

func errorResult(msg string) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
