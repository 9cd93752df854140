package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"arknotes/internal/adapters/sqlite"
	"arknotes/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes",
	Long: `Search note titles and contents across every notebook.

The search index is refreshed when the document changed since the last search.

Examples:
  arknotes-cli search milk`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		index := sqlite.NewIndex()
		if err := index.Open(cfg.Home); err != nil {
			return err
		}
		defer index.Close()

		results, err := commands.NewSearchCommand(GetRepo(), index, args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %d %s\n", r.NotebookName, r.NoteID, r.Title)
			if r.Snippet != "" {
				fmt.Printf("    %s\n", r.Snippet)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
