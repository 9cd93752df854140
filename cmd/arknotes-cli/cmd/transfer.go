package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"arknotes/internal/application/commands"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write a backup file",
	Long: `Write the document and settings to a JSON backup file.

Without a path, or with a directory, the file is named ark-notes-backup-<date>.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		ctx := context.Background()
		result, err := commands.NewExportCommand(GetRepo(), GetRepo(), path).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace the document with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewImportCommand(GetRepo(), GetRepo(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
