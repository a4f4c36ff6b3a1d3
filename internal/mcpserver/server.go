// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Berea study tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SpoonyCreature/berea/internal/studyservice"
)

// Server wraps the MCP server with Berea tools.
type Server struct {
	mcp *server.MCPServer
	svc *studyservice.Service
}

// New creates a new MCP server with all Berea tools registered.
func New(svc *studyservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Berea",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_study",
		mcp.WithDescription("Generate a Bible study for a natural-language query over one or more verse references."),
		mcp.WithString("user", mcp.Required(), mcp.Description("Owner user id")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language question about the passage")),
		mcp.WithString("reference", mcp.Required(), mcp.Description("Verse reference, e.g. \"Colossians 1:16-19\"")),
		mcp.WithString("translation", mcp.Description("Translation source id (default kjv)")),
	), s.createStudy)

	s.mcp.AddTool(mcp.NewTool("get_study",
		mcp.WithDescription("Read a study by id."),
		mcp.WithString("user", mcp.Required(), mcp.Description("Requesting user id")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Study id")),
	), s.getStudy)

	s.mcp.AddTool(mcp.NewTool("list_studies",
		mcp.WithDescription("List the user's studies plus public ones, newest first."),
		mcp.WithString("user", mcp.Required(), mcp.Description("Requesting user id")),
	), s.listStudies)

	s.mcp.AddTool(mcp.NewTool("get_coverage",
		mcp.WithDescription("Report how much of the canon the user has read, per book and overall."),
		mcp.WithString("user", mcp.Required(), mcp.Description("Requesting user id")),
	), s.getCoverage)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Append a free-form study note to the user's context."),
		mcp.WithString("user", mcp.Required(), mcp.Description("Owner user id")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note content")),
		mcp.WithString("reference", mcp.Description("Optional verse reference the note is about")),
	), s.addNote)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reference, err := req.RequireString("reference")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	translation := ""
	if t, err := req.RequireString("translation"); err == nil {
		translation = t
	}

	st, err := s.svc.CreateStudy(ctx, studyservice.CreateInput{
		Owner:       user,
		Query:       query,
		References:  []string{reference},
		Translation: translation,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(st, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.svc.GetStudy(ctx, user, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(st, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listStudies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items, err := s.svc.ListStudies(ctx, user, 20, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCoverage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := s.svc.Coverage(ctx, user)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reference := ""
	if ref, err := req.RequireString("reference"); err == nil {
		reference = ref
	}
	if _, err := s.svc.AddNote(ctx, user, reference, content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("note added"), nil
}
