package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"arknotes/internal/application/commands"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// RegisterReadTools adds all read-only note tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.DocumentStore, index ports.NoteIndex) {
	s.AddTool(listNotebooksTool(), listNotebooksHandler(repo))
	s.AddTool(listNotesTool(), listNotesHandler(repo))
	s.AddTool(readNoteTool(), readNoteHandler(repo))
	s.AddTool(searchTool(), searchHandler(repo, index))
}

// --- list_notebooks ---

func listNotebooksTool() mcp.Tool {
	return mcp.NewTool("list_notebooks",
		mcp.WithDescription("List the collections of a view. The active one is marked with *."),
		mcp.WithString("view",
			mcp.Description("View whose collections to list: todo, notes or kanban. Defaults to notes."),
		),
	)
}

func listNotebooksHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view := req.GetString("view", domain.ViewNotes.String())

		listings, err := commands.NewListNotebooksCommand(repo, view).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(listings, formatNotebook)
	}
}

// --- list_notes ---

func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List the notes of a notebook with their ids, positions and sizes."),
		mcp.WithString("notebook_id",
			mcp.Description("Notebook id. Omit for the active notebook."),
		),
	)
}

func listNotesHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewListNotesCommand(repo, req.GetString("notebook_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(res.Notes, formatNote)
	}
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read the markdown content of a note."),
		mcp.WithString("notebook_id",
			mcp.Description("Notebook id. Omit for the active notebook."),
		),
		mcp.WithNumber("note_id",
			mcp.Description("Note id as shown by list_notes"),
			mcp.Required(),
		),
	)
}

func readNoteHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := commands.NewShowNoteCommand(repo, req.GetString("notebook_id", ""), noteID(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s", n.Title, n.Content)), nil
	}
}

// --- search_notes ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_notes",
		mcp.WithDescription("Search note titles and contents across every notebook."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(repo ports.DocumentStore, index ports.NoteIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(repo, index, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %d  %s  %s\n", r.NotebookID, r.NoteID, r.Title, r.Snippet)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func noteID(req mcp.CallToolRequest) int64 {
	return int64(req.GetFloat("note_id", 0))
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatNotebook(l commands.NotebookListing) string {
	marker := " "
	if l.Active {
		marker = "*"
	}
	return fmt.Sprintf("%s %s  %s  (%d)", marker, l.ID, l.Name, l.Count)
}

func formatNote(n domain.Note) string {
	return fmt.Sprintf("%d  %s  at (%g, %g) size %gx%g  %s", n.ID, n.Title, n.X, n.Y, n.Width, n.Height, n.ViewMode)
}
