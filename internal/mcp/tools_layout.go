package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/service"
)

func (s *Server) registerLayoutTools() {
	// ── list_palette ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_palette",
		mcp.WithDescription("List the element kinds that can be placed on a layout, in palette order"),
	), s.handleListPalette)

	// ── save_layout ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_layout",
		append([]mcp.ToolOption{
			mcp.WithDescription("Save a layout as a new document. Saving the same name twice keeps both copies."),
		}, compositionArgs()...)...,
	), s.handleSaveLayout)

	// ── load_layout ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("load_layout",
		mcp.WithDescription("Load a saved layout. Without a name the configured load policy picks one; an empty store yields the empty layout."),
		mcp.WithString("name",
			mcp.Description("Exact name of the layout to load"),
		),
	), s.handleLoadLayout)

	// ── publish_layout ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("publish_layout",
		append([]mcp.ToolOption{
			mcp.WithDescription("Render a layout as a static read-only page and publish it. Returns the HTML and, when a surface is available, where it was opened."),
		}, compositionArgs()...)...,
	), s.handlePublishLayout)
}

func compositionArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("name",
			mcp.Description("Layout name (required)"),
			mcp.Required(),
		),
		mcp.WithString("elements",
			mcp.Description(`JSON array of element identifiers in display order, e.g. ["Label","Button"]`),
		),
		mcp.WithString("formName",
			mcp.Description("Value of the form's name field"),
		),
		mcp.WithString("age",
			mcp.Description("Value of the form's age field, kept as text"),
		),
		mcp.WithBoolean("isWorking",
			mcp.Description("Whether the form's is-working checkbox is checked"),
		),
	}
}

// compositionFromRequest builds a composition from tool arguments. A missing
// name is left empty so the service reports it.
func compositionFromRequest(req mcp.CallToolRequest) (domain.Composition, error) {
	elements, err := elementsArg(req.GetArguments())
	if err != nil {
		return domain.Composition{}, err
	}
	return domain.Composition{
		Elements: elements,
		FormData: domain.FormData{
			Name:      req.GetString("formName", ""),
			Age:       req.GetString("age", ""),
			IsWorking: req.GetBool("isWorking", false),
		},
		Name: req.GetString("name", ""),
	}, nil
}

func (s *Server) handleListPalette(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(domain.Palette())
}

func (s *Server) handleSaveLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := compositionFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.layouts.Save(ctx, c); err != nil {
		return mcp.NewToolResultError(domain.UserMessage(err)), nil
	}
	return jsonResult(map[string]any{
		"saved":    c.Name,
		"elements": len(c.Elements),
	})
}

func (s *Server) handleLoadLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")

	var (
		c   domain.Composition
		err error
	)
	if name != "" {
		c, err = s.layouts.LoadNamed(ctx, name)
	} else {
		c, err = s.layouts.Load(ctx)
	}
	if errors.Is(err, service.ErrLayoutNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No saved layout named %q.", name)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(domain.UserMessage(err)), nil
	}
	return jsonResult(c.ToLayoutDocument())
}

type publishView struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Notice   string `json:"notice,omitempty"`
	HTML     string `json:"html"`
}

func (s *Server) handlePublishLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := compositionFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.layouts.Publish(ctx, c)
	switch {
	case err == nil:
		return jsonResult(publishView{Name: c.Name, Location: res.Location, HTML: string(res.Document.HTML)})
	case domain.IsSurfaceUnavailable(err):
		// The page still renders; only the surface is missing.
		doc, rerr := s.layouts.Render(c)
		if rerr != nil {
			return mcp.NewToolResultError(domain.UserMessage(rerr)), nil
		}
		return jsonResult(publishView{Name: c.Name, Notice: domain.UserMessage(err), HTML: string(doc.HTML)})
	default:
		return mcp.NewToolResultError(domain.UserMessage(err)), nil
	}
}
