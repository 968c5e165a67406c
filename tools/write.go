package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"notelink/notes"
	"notelink/types"
)

// Write implements the mutating MCP tools. Not registered in
// read-only mode.
type Write struct {
	svc *notes.Service
}

// NewWrite creates a new write tool handler.
func NewWrite(svc *notes.Service) *Write {
	return &Write{svc: svc}
}

// CreateNote creates a note, optionally seeded from a template.
func (h *Write) CreateNote(ctx context.Context, req *mcp.CallToolRequest, input types.CreateNoteToolInput) (*mcp.CallToolResult, any, error) {
	n, err := h.svc.CreateNote(ctx, notes.CreateNoteInput{
		Title:      input.Title,
		Content:    input.Content,
		TemplateID: input.TemplateID,
	})
	if err != nil {
		return serviceError("create_note", err), nil, nil
	}
	res, err := jsonTextResult(map[string]any{
		"created":    true,
		"id":         n.ID,
		"title":      n.Title,
		"references": n.References,
	})
	return res, nil, err
}

// UpdateNote replaces a note's title and/or content. The link index is
// recomputed from the new content.
func (h *Write) UpdateNote(ctx context.Context, req *mcp.CallToolRequest, input types.UpdateNoteToolInput) (*mcp.CallToolResult, any, error) {
	if input.Title == nil && input.Content == nil {
		return errorResult("nothing to update: provide title or content"), nil, nil
	}
	n, err := h.svc.UpdateNote(ctx, input.ID, notes.UpdateNoteInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return serviceError("update_note", err), nil, nil
	}
	res, err := jsonTextResult(map[string]any{
		"updated":        true,
		"id":             n.ID,
		"references":     n.References,
		"backreferences": n.Backreferences,
	})
	return res, nil, err
}

// DeleteNote removes a note and severs every link to and from it.
func (h *Write) DeleteNote(ctx context.Context, req *mcp.CallToolRequest, input types.DeleteNoteToolInput) (*mcp.CallToolResult, any, error) {
	if err := h.svc.DeleteNote(ctx, input.ID); err != nil {
		return serviceError("delete_note", err), nil, nil
	}
	return textResult(fmt.Sprintf("deleted note %s (links to and from it were removed)", input.ID)), nil, nil
}
