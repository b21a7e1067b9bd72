package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCallsResource(srv, svc)
	registerCallTemplate(srv, svc)
}

func registerCallsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"calllog://calls",
		"Calls",
		mcp.WithResourceDescription("The first page of the call log."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		page, err := svc.ListCalls(ctx, 1, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, page)
	})
}

func registerCallTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"calllog://calls/{id}",
		"Call Details",
		mcp.WithTemplateDescription("A single call with its notes."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("call id is required")
		}

		dto, err := svc.CallByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"call": dto})
	})
}

// templateArg accepts both a plain string and the single-element list the
// URI template matcher produces.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
