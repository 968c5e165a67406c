// Package tools implements the MCP tool handlers over the note service.
package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"notelink/notes"
	"notelink/types"
)

// Read implements the read-only MCP tools.
type Read struct {
	svc *notes.Service
}

// NewRead creates a new read tool handler.
func NewRead(svc *notes.Service) *Read {
	return &Read{svc: svc}
}

// GetNote returns a note with its reference sets.
func (h *Read) GetNote(ctx context.Context, req *mcp.CallToolRequest, input types.GetNoteInput) (*mcp.CallToolResult, any, error) {
	n, err := h.svc.Note(ctx, input.ID)
	if err != nil {
		return serviceError("get_note", err), nil, nil
	}
	res, err := jsonTextResult(n)
	return res, nil, err
}

// ListNotes returns note summaries, most recently updated first.
func (h *Read) ListNotes(ctx context.Context, req *mcp.CallToolRequest, input types.ListNotesInput) (*mcp.CallToolResult, any, error) {
	all, err := h.svc.Notes(ctx)
	if err != nil {
		return serviceError("list_notes", err), nil, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(all) > limit {
		all = all[:limit]
	}

	summaries := make([]map[string]any, 0, len(all))
	for _, n := range all {
		summaries = append(summaries, map[string]any{
			"id":        n.ID,
			"title":     n.Title,
			"links":     len(n.References),
			"backlinks": len(n.Backreferences),
			"updatedAt": n.UpdatedAt,
		})
	}

	res, err := jsonTextResult(map[string]any{
		"count": len(summaries),
		"notes": summaries,
	})
	return res, nil, err
}

// SearchNotes runs a case-insensitive substring search over titles and content.
func (h *Read) SearchNotes(ctx context.Context, req *mcp.CallToolRequest, input types.SearchNotesInput) (*mcp.CallToolResult, any, error) {
	if input.Query == "" {
		return errorResult("query is required"), nil, nil
	}
	results, err := h.svc.SearchNotes(ctx, input.Query)
	if err != nil {
		return serviceError("search_notes", err), nil, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(results) > limit {
		results = results[:limit]
	}
	if len(results) == 0 {
		return textResult(fmt.Sprintf("no notes match %q", input.Query)), nil, nil
	}

	res, err := jsonTextResult(results)
	return res, nil, err
}

// GetBacklinks returns the notes that currently reference the given note.
func (h *Read) GetBacklinks(ctx context.Context, req *mcp.CallToolRequest, input types.GetBacklinksInput) (*mcp.CallToolResult, any, error) {
	back, err := h.svc.Backlinks(ctx, input.ID)
	if err != nil {
		return serviceError("get_backlinks", err), nil, nil
	}
	res, err := jsonTextResult(map[string]any{
		"id":        input.ID,
		"count":     len(back),
		"backlinks": back,
	})
	return res, nil, err
}

// Overview returns the link-graph counters.
func (h *Read) Overview(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	stats, err := h.svc.Overview(ctx)
	if err != nil {
		return serviceError("overview", err), nil, nil
	}
	res, err := jsonTextResult(stats)
	return res, nil, err
}
