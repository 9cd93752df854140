package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"arknotes/internal/adapters/editor"
	"arknotes/internal/application/commands"
)

var notebookID string

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long: `List, create, show, move, resize and delete notes.

Without --notebook the active notebook is used.

Examples:
  arknotes-cli note list
  arknotes-cli note create "Groceries"
  arknotes-cli note move 3 120 80
  arknotes-cli note resize 3 300 200`,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in stored order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewListNotesCommand(GetRepo(), notebookID).Execute(ctx)
		if err != nil {
			return err
		}

		for _, n := range result.Notes {
			fmt.Printf("%d %s (%g,%g %gx%g)\n", n.ID, n.Title, n.X, n.Y, n.Width, n.Height)
		}
		return nil
	},
}

var noteCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewCreateNoteCommand(GetRepo(), notebookID, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		note, err := commands.NewShowNoteCommand(GetRepo(), notebookID, id).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n\n%s\n", note.Title, note.Content)
		return nil
	},
}

var noteMoveCmd = &cobra.Command{
	Use:   "move <id> <x> <y>",
	Short: "Place a note at a workspace position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, x, y, err := parseGeometry(args)
		if err != nil {
			return err
		}
		ctx := context.Background()
		result, err := commands.NewMoveNoteCommand(GetRepo(), notebookID, id, x, y).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var noteResizeCmd = &cobra.Command{
	Use:   "resize <id> <width> <height>",
	Short: "Resize a note",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, w, h, err := parseGeometry(args)
		if err != nil {
			return err
		}
		ctx := context.Background()
		result, err := commands.NewResizeNoteCommand(GetRepo(), notebookID, id, w, h).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var noteRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Change a note's title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		result, err := commands.NewRenameNoteCommand(GetRepo(), notebookID, id, args[1]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		result, err := commands.NewDeleteNoteCommand(GetRepo(), notebookID, id).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var noteToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Switch a note between edit and preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		mode, err := commands.NewToggleNoteCommand(GetRepo(), notebookID, id).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Note %d now in %s mode\n", id, mode)
		return nil
	},
}

var noteAttachCmd = &cobra.Command{
	Use:   "attach <id> <image-path>",
	Short: "Embed an image into a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		msg, err := commands.NewAttachImageCommand(GetRepo(), notebookID, id, args[1]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note in $EDITOR, or replace its content from stdin with -",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()

		var msg string
		if len(args) == 2 && args[1] == "-" {
			content, readErr := io.ReadAll(os.Stdin)
			if readErr != nil {
				return fmt.Errorf("failed to read stdin: %w", readErr)
			}
			msg, err = commands.NewSetNoteContentCommand(GetRepo(), notebookID, id, string(content)).Execute(ctx)
		} else {
			msg, err = commands.NewEditNoteCommand(GetRepo(), editor.NewOpener(""), notebookID, id).Execute(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func parseGeometry(args []string) (int64, float64, float64, error) {
	id, err := parseNoteID(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	a, errA := strconv.ParseFloat(args[1], 64)
	b, errB := strconv.ParseFloat(args[2], 64)
	if errA != nil || errB != nil || !finite(a) || !finite(b) {
		return 0, 0, 0, fmt.Errorf("invalid numbers %q %q", args[1], args[2])
	}
	return id, a, b, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.PersistentFlags().StringVarP(&notebookID, "notebook", "b", "", "notebook id (defaults to the active one)")
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteCreateCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteMoveCmd)
	noteCmd.AddCommand(noteResizeCmd)
	noteCmd.AddCommand(noteRenameCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteToggleCmd)
	noteCmd.AddCommand(noteAttachCmd)
	noteCmd.AddCommand(noteEditCmd)
}
