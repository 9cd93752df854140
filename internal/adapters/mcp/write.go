package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"arknotes/internal/application/commands"
	"arknotes/internal/ports"
)

// RegisterWriteTools adds all note and notebook mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.DocumentStore) {
	s.AddTool(createNoteTool(), createNoteHandler(repo))
	s.AddTool(setContentTool(), setContentHandler(repo))
	s.AddTool(renameNoteTool(), renameNoteHandler(repo))
	s.AddTool(moveTool(), moveHandler(repo))
	s.AddTool(resizeTool(), resizeHandler(repo))
	s.AddTool(toggleTool(), toggleHandler(repo))
	s.AddTool(deleteNoteTool(), deleteNoteHandler(repo))
	s.AddTool(createNotebookTool(), createNotebookHandler(repo))
	s.AddTool(renameNotebookTool(), renameNotebookHandler(repo))
	s.AddTool(deleteNotebookTool(), deleteNotebookHandler(repo))
}

func notebookParam() mcp.ToolOption {
	return mcp.WithString("notebook_id", mcp.Description("Notebook id. Omit for the active notebook."))
}

func noteIDParam() mcp.ToolOption {
	return mcp.WithNumber("note_id", mcp.Description("Note id as shown by list_notes"), mcp.Required())
}

func viewParam() mcp.ToolOption {
	return mcp.WithString("view",
		mcp.Description("View the collection belongs to: todo, notes or kanban"),
		mcp.Required(),
	)
}

// --- create_note ---

func createNoteTool() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription("Create a note in a notebook. It is placed like a note created in the app, cascading from the top left."),
		notebookParam(),
		mcp.WithString("title", mcp.Description("Note title"), mcp.Required()),
	)
}

func createNoteHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateNoteCommand(repo, req.GetString("notebook_id", ""), req.GetString("title", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_note_content ---

func setContentTool() mcp.Tool {
	return mcp.NewTool("set_note_content",
		mcp.WithDescription("Replace the markdown content of a note."),
		notebookParam(),
		noteIDParam(),
		mcp.WithString("content", mcp.Description("New markdown content"), mcp.Required()),
	)
}

func setContentHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetNoteContentCommand(repo, req.GetString("notebook_id", ""), noteID(req), req.GetString("content", ""))
		msg, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- rename_note ---

func renameNoteTool() mcp.Tool {
	return mcp.NewTool("rename_note",
		mcp.WithDescription("Change the title of a note."),
		notebookParam(),
		noteIDParam(),
		mcp.WithString("title", mcp.Description("New title"), mcp.Required()),
	)
}

func renameNoteHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameNoteCommand(repo, req.GetString("notebook_id", ""), noteID(req), req.GetString("title", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move_note ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move_note",
		mcp.WithDescription("Move a note to a workspace position. The position is clamped to the 5000x5000 workspace."),
		notebookParam(),
		noteIDParam(),
		mcp.WithNumber("x", mcp.Description("Left edge in workspace units"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Top edge in workspace units"), mcp.Required()),
	)
}

func moveHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveNoteCommand(repo, req.GetString("notebook_id", ""), noteID(req),
			req.GetFloat("x", 0), req.GetFloat("y", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- resize_note ---

func resizeTool() mcp.Tool {
	return mcp.NewTool("resize_note",
		mcp.WithDescription("Resize a note. Sizes below 380x280 are raised to that minimum."),
		notebookParam(),
		noteIDParam(),
		mcp.WithNumber("width", mcp.Description("Width in workspace units"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("Height in workspace units"), mcp.Required()),
	)
}

func resizeHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewResizeNoteCommand(repo, req.GetString("notebook_id", ""), noteID(req),
			req.GetFloat("width", 0), req.GetFloat("height", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- toggle_note ---

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle_note",
		mcp.WithDescription("Switch a note between edit and preview mode."),
		notebookParam(),
		noteIDParam(),
	)
}

func toggleHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode, err := commands.NewToggleNoteCommand(repo, req.GetString("notebook_id", ""), noteID(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Note %d is now in %s mode", noteID(req), mode)), nil
	}
}

// --- delete_note ---

func deleteNoteTool() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note. This cannot be undone."),
		notebookParam(),
		noteIDParam(),
	)
}

func deleteNoteHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteNoteCommand(repo, req.GetString("notebook_id", ""), noteID(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create_notebook ---

func createNotebookTool() mcp.Tool {
	return mcp.NewTool("create_notebook",
		mcp.WithDescription("Create a collection in a view and make it the active one."),
		viewParam(),
		mcp.WithString("name", mcp.Description("Collection name"), mcp.Required()),
	)
}

func createNotebookHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateNotebookCommand(repo, req.GetString("view", ""), req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename_notebook ---

func renameNotebookTool() mcp.Tool {
	return mcp.NewTool("rename_notebook",
		mcp.WithDescription("Rename a collection. A blank name leaves it unchanged."),
		viewParam(),
		mcp.WithString("id", mcp.Description("Collection id"), mcp.Required()),
		mcp.WithString("name", mcp.Description("New name"), mcp.Required()),
	)
}

func renameNotebookHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameNotebookCommand(repo, req.GetString("view", ""), req.GetString("id", ""), req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_notebook ---

func deleteNotebookTool() mcp.Tool {
	return mcp.NewTool("delete_notebook",
		mcp.WithDescription("Delete a collection and everything in it. The last collection of a view cannot be deleted."),
		viewParam(),
		mcp.WithString("id", mcp.Description("Collection id"), mcp.Required()),
	)
}

func deleteNotebookHandler(repo ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteNotebookCommand(repo, req.GetString("view", ""), req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
