package mcp

import (
	"context"
	"errors"
	"fmt"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/keycalc/internal/engine/display"
)

// Tool names.
const (
	ToolNewSession   = "new_session"
	ToolPress        = "press"
	ToolDisplay      = "display"
	ToolSnapshot     = "snapshot"
	ToolClear        = "clear"
	ToolCloseSession = "close_session"
)

// Handlers implements the calculator tools over a Manager.
type Handlers struct {
	sessions *Manager
}

// NewHandlers creates tool handlers for m.
func NewHandlers(m *Manager) *Handlers {
	return &Handlers{sessions: m}
}

// Register adds every calculator tool to s.
func (h *Handlers) Register(s *server.MCPServer) {
	s.AddTool(gomcp.NewTool(ToolNewSession,
		gomcp.WithDescription("Open a new calculator session and return its ID"),
	), h.NewSession)

	s.AddTool(gomcp.NewTool(ToolPress,
		gomcp.WithDescription("Press a sequence of keys, e.g. \"12+7=\" or \"9<BS>\", and return the display"),
		sessionParam(),
		gomcp.WithString("keys",
			gomcp.Required(),
			gomcp.Description("Keys to press: digits, . + - * / % ^ = and <CR>, <BS>, <Esc>"),
		),
	), h.Press)

	s.AddTool(gomcp.NewTool(ToolDisplay,
		gomcp.WithDescription("Return the previous and current display lines"),
		sessionParam(),
	), h.Display)

	s.AddTool(gomcp.NewTool(ToolSnapshot,
		gomcp.WithDescription("Return the calculator state as JSON"),
		sessionParam(),
		gomcp.WithBoolean("pretty",
			gomcp.Description("Indent the JSON document"),
		),
	), h.Snapshot)

	s.AddTool(gomcp.NewTool(ToolClear,
		gomcp.WithDescription("Clear the calculator"),
		sessionParam(),
	), h.Clear)

	s.AddTool(gomcp.NewTool(ToolCloseSession,
		gomcp.WithDescription("Close a calculator session"),
		sessionParam(),
	), h.CloseSession)
}

func sessionParam() gomcp.ToolOption {
	return gomcp.WithString("session_id",
		gomcp.Required(),
		gomcp.Description("Session ID returned by new_session"),
	)
}

// NewSession handles new_session.
func (h *Handlers) NewSession(ctx context.Context, request gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s, err := h.sessions.Create()
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	return gomcp.NewToolResultText(s.ID()), nil
}

// Press handles press.
func (h *Handlers) Press(ctx context.Context, request gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s, result := h.session(request)
	if result != nil {
		return result, nil
	}

	keys, ok := request.GetArguments()["keys"].(string)
	if !ok {
		return gomcp.NewToolResultError("keys is required"), nil
	}

	prev, cur, err := s.Press(keys)
	if err != nil {
		return gomcp.NewToolResultError(fmt.Sprintf("%v\n%s", err, lines(prev, cur))), nil
	}
	return gomcp.NewToolResultText(lines(prev, cur)), nil
}

// Display handles display.
func (h *Handlers) Display(ctx context.Context, request gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s, result := h.session(request)
	if result != nil {
		return result, nil
	}
	return gomcp.NewToolResultText(lines(s.Lines())), nil
}

// Snapshot handles snapshot.
func (h *Handlers) Snapshot(ctx context.Context, request gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s, result := h.session(request)
	if result != nil {
		return result, nil
	}

	doc, err := s.Snapshot()
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	if indent, _ := request.GetArguments()["pretty"].(bool); indent {
		doc = display.Pretty(doc, false)
	}
	return gomcp.NewToolResultText(string(doc)), nil
}

// Clear handles clear.
func (h *Handlers) Clear(ctx context.Context, request gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s, result := h.session(request)
	if result != nil {
		return result, nil
	}
	return gomcp.NewToolResultText(lines(s.Clear())), nil
}

// CloseSession handles close_session.
func (h *Handlers) CloseSession(ctx context.Context, request gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	id, ok := request.GetArguments()["session_id"].(string)
	if !ok || id == "" {
		return gomcp.NewToolResultError("session_id is required"), nil
	}
	if err := h.sessions.Close(id); err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	return gomcp.NewToolResultText("closed " + id), nil
}

// session resolves the session_id argument. A non-nil result is the
// error to return to the client.
func (h *Handlers) session(request gomcp.CallToolRequest) (*Session, *gomcp.CallToolResult) {
	id, ok := request.GetArguments()["session_id"].(string)
	if !ok || id == "" {
		return nil, gomcp.NewToolResultError("session_id is required")
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, gomcp.NewToolResultError(fmt.Sprintf("unknown session %q", id))
		}
		return nil, gomcp.NewToolResultError(err.Error())
	}
	return s, nil
}

// lines joins the display lines, previous first.
func lines(previous, current string) string {
	return previous + "\n" + current
}
