package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"notelink/notes"
	"notelink/tools"
)

// newServer creates and configures the MCP server with all tools
// registered. If readOnly is true, write tools are not registered.
func newServer(svc *notes.Service, readOnly bool) *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "notelink",
			Version: version,
		},
		nil,
	)

	read := tools.NewRead(svc)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by id with its content, outbound references (notes it links to via [[id]] markers), and backreferences (notes that link to it).",
	}, read.GetNote)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_notes",
		Description: "List note summaries with link and backlink counts, most recently updated first. Use limit to bound output size.",
	}, read.ListNotes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_notes",
		Description: "Case-insensitive substring search over note titles and content. Returns full matching notes.",
	}, read.SearchNotes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_backlinks",
		Description: "Get the notes that currently reference a note. Direct inbound neighbors only.",
	}, read.GetBacklinks)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "overview",
		Description: "Get link-graph counters: total notes, templates, links between existing notes, dangling references, and orphan notes.",
	}, read.Overview)

	if !readOnly {
		write := tools.NewWrite(svc)

		mcp.AddTool(srv, &mcp.Tool{
			Name:        "create_note",
			Description: "Create a new note. Content may embed [[id]] reference markers; the backlink index updates automatically. Set templateId to copy the initial body from a template.",
		}, write.CreateNote)

		mcp.AddTool(srv, &mcp.Tool{
			Name:        "update_note",
			Description: "Update a note's title and/or content by id. New content replaces the old body entirely and the reference index is recomputed from it.",
		}, write.UpdateNote)

		mcp.AddTool(srv, &mcp.Tool{
			Name:        "delete_note",
			Description: "Delete a note by id. Links to and from the note are removed from every neighbor. This is irreversible.",
		}, write.DeleteNote)
	}

	// --- Health tool ---
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "health",
		Description: "Check server status: version, read-only mode, note count. Use to verify the server is alive and see its configuration.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
		stats, err := svc.Overview(ctx)

		status := "ok"
		if err != nil {
			status = fmt.Sprintf("error: %v", err)
		}

		data, _ := json.MarshalIndent(map[string]any{
			"status":    status,
			"version":   version,
			"readOnly":  readOnly,
			"noteCount": stats.Notes,
		}, "", "  ")

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil, nil
	})

	return srv
}
