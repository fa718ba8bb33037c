package mcp

import (
	"context"
	"encoding/json"
	"errors"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/service/chat"
	"github.com/sandevgo/inspire/internal/service/router"
	"github.com/sandevgo/inspire/pkg/log"
)

// UserID owns every conversation started over MCP.
const UserID = "mcp"

type ChatService interface {
	HandleMessage(ctx context.Context, req chat.Request) (chat.Reply, error)
}

type Router interface {
	Route(ctx context.Context, message string) (router.Decision, error)
}

type ToolLister interface {
	List(ctx context.Context, category core.Category) ([]core.Tool, error)
}

// Server exposes routing and chat as MCP tools over stdio.
type Server struct {
	mcp    *server.MCPServer
	chat   ChatService
	router Router
	tools  ToolLister
}

func NewServer(chatSvc ChatService, r Router, tools ToolLister) *Server {
	s := &Server{
		mcp:    server.NewMCPServer(core.AppName, core.AppVersion, server.WithToolCapabilities(false)),
		chat:   chatSvc,
		router: r,
		tools:  tools,
	}

	s.mcp.AddTool(mcpproto.NewTool("route_message",
		mcpproto.WithDescription("Classify a message and return the catalog tool that would answer it."),
		mcpproto.WithString("message", mcpproto.Required(), mcpproto.Description("The user message to route")),
	), s.handleRoute)

	s.mcp.AddTool(mcpproto.NewTool("ask",
		mcpproto.WithDescription("Send a message to an AI tool and return its reply. Omit tool_id to route automatically."),
		mcpproto.WithString("message", mcpproto.Required(), mcpproto.Description("The message to send")),
		mcpproto.WithString("tool_id", mcpproto.Description("Catalog id of the tool to use")),
		mcpproto.WithString("conversation_id", mcpproto.Description("Continue an earlier conversation")),
	), s.handleAsk)

	s.mcp.AddTool(mcpproto.NewTool("list_tools",
		mcpproto.WithDescription("List catalog tools, most popular first."),
		mcpproto.WithString("category", mcpproto.Description("Only list tools of this category")),
	), s.handleListTools)

	return s
}

// Serve blocks until stdin is closed or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving mcp over stdio")
	return server.ServeStdio(s.mcp, server.WithStdioContextFunc(func(context.Context) context.Context {
		return ctx
	}))
}

type routeResult struct {
	Category core.Category `json:"category"`
	Tool     core.Tool     `json:"tool"`
}

func (s *Server) handleRoute(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	d, err := s.router.Route(ctx, message)
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return jsonResult(routeResult{Category: d.Category, Tool: *d.Tool})
}

func (s *Server) handleAsk(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	reply, err := s.chat.HandleMessage(ctx, chat.Request{
		UserID:         UserID,
		ConversationID: req.GetString("conversation_id", ""),
		ToolID:         req.GetString("tool_id", ""),
		Message:        message,
	})
	if err != nil {
		var verr *chat.ValidationError
		if errors.As(err, &verr) {
			return mcpproto.NewToolResultError(verr.Reason), nil
		}
		log.FromCtx(ctx).Error().Err(err).Msg("mcp ask failed")
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return jsonResult(reply)
}

func (s *Server) handleListTools(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	tools, err := s.tools.List(ctx, core.Category(req.GetString("category", "")))
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	if tools == nil {
		tools = []core.Tool{}
	}
	return jsonResult(tools)
}

func jsonResult(v any) (*mcpproto.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcpproto.NewToolResultText(string(data)), nil
}
