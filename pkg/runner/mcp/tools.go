package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListCallsTool(srv, svc)
	registerGetCallTool(srv, svc)
	registerAddNoteTool(srv, svc)
	registerToggleArchiveTool(srv, svc)
	registerListDraftsTool(srv, svc)
}

func registerListCallsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_calls",
		mcp.WithDescription("List one page of the call log, newest first."),
		mcp.WithNumber("page",
			mcp.Description("1-based page number. Defaults to 1."),
		),
		mcp.WithString("filter",
			mcp.Description("Narrow the page to one call type or to archived calls."),
			mcp.Enum("all", "voicemail", "answered", "missed", "archived"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Page   int    `json:"page"`
			Filter string `json:"filter"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.ListCalls(ctx, args.Page, args.Filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetCallTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_call",
		mcp.WithDescription("Fetch a single call with its notes."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Call identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.CallByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_note",
		mcp.WithDescription("Add a note to a call. Notes that fail to send are kept as drafts."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Call identifier to annotate."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text of the note."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.AddNote(ctx, id, content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleArchiveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_archive",
		mcp.WithDescription("Archive an active call or unarchive an archived one."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Call identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleArchive(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListDraftsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_drafts",
		mcp.WithDescription("List notes that could not be sent yet."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.Drafts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"drafts": list,
			"count":  len(list),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
