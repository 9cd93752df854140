package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"arknotes/internal/application/commands"
)

var viewKind string

var notebookCmd = &cobra.Command{
	Use:     "notebook",
	Aliases: []string{"nb"},
	Short:   "Manage notebooks",
	Long: `List, create, rename, delete and select collections.

The --view flag picks the view the collection belongs to: notes, todo or kanban.

Examples:
  arknotes-cli notebook list
  arknotes-cli notebook create "Work"
  arknotes-cli notebook list --view kanban`,
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		listCmd := commands.NewListNotebooksCommand(GetRepo(), viewKind)
		books, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}

		for _, b := range books {
			marker := " "
			if b.Active {
				marker = "*"
			}
			fmt.Printf("%s %s %s (%d)\n", marker, b.ID, b.Name, b.Count)
		}
		return nil
	},
}

var notebookCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a notebook and select it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		createCmd := commands.NewCreateNotebookCommand(GetRepo(), viewKind, args[0])
		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var notebookRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a notebook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		renameCmd := commands.NewRenameNotebookCommand(GetRepo(), viewKind, args[0], args[1])
		result, err := renameCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var notebookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notebook and its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		deleteCmd := commands.NewDeleteNotebookCommand(GetRepo(), viewKind, args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var notebookSelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Make a notebook the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		msg, err := commands.NewSelectNotebookCommand(GetRepo(), viewKind, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notebookCmd)
	notebookCmd.PersistentFlags().StringVar(&viewKind, "view", "notes", "view kind: notes, todo or kanban")
	notebookCmd.AddCommand(notebookListCmd)
	notebookCmd.AddCommand(notebookCreateCmd)
	notebookCmd.AddCommand(notebookRenameCmd)
	notebookCmd.AddCommand(notebookDeleteCmd)
	notebookCmd.AddCommand(notebookSelectCmd)
}
