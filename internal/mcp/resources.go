package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"pagebuilder/internal/domain"
)

const layoutsURI = "pagebuilder://layouts"

func (s *Server) registerResources() {
	// ── pagebuilder://layouts ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		layoutsURI,
		"Saved Layouts",
		mcp.WithResourceDescription("Names of all saved layouts in store order"),
		mcp.WithMIMEType("application/json"),
	), s.handleLayoutsResource)

	// ── pagebuilder://palette ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"pagebuilder://palette",
		"Element Palette",
		mcp.WithMIMEType("application/json"),
	), s.handlePaletteResource)
}

func (s *Server) handleLayoutsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.layouts.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(names, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      layoutsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePaletteResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, _ := json.MarshalIndent(domain.Palette(), "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "pagebuilder://palette",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
