package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"pagebuilder/internal/domain"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("compose_page",
		mcp.WithPromptDescription("Guide through composing, saving and publishing a layout from the element palette"),
		mcp.WithArgument("purpose",
			mcp.ArgumentDescription("What the page is for, e.g. a sign-up form"),
			mcp.RequiredArgument(),
		),
	), s.handleComposePrompt)
}

func (s *Server) handleComposePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	purpose := req.Params.Arguments["purpose"]
	palette := make([]string, 0, len(domain.Palette()))
	for _, kind := range domain.Palette() {
		palette = append(palette, string(kind))
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Compose a page for: %s", purpose),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Compose a page layout for: %s

Available elements, in palette order: %s.

Steps:
1. Pick the elements the page needs and order them top to bottom.
2. Choose a short layout name. Save and publish both refuse an empty name.
3. Call save_layout with the name, the elements as a JSON array and any form values.
4. Call publish_layout with the same arguments to render the read-only page.
5. Read pagebuilder://layouts to confirm the layout was stored.`, purpose, strings.Join(palette, ", ")),
				},
			},
		},
	}, nil
}
