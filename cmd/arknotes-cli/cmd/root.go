package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"arknotes/internal/adapters/filesystem"
	"arknotes/internal/adapters/remote"
	"arknotes/internal/application/remotesync"
	"arknotes/internal/config"
	"arknotes/internal/logging"
)

var (
	homePath string
	cfg      *config.Config
	repo     *filesystem.Repository
	log      zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arknotes-cli",
	Short: "CLI for managing Ark Notes notebooks",
	Long: `arknotes-cli is a command-line interface for the Ark Notes workspace.

It lists, creates, moves, resizes and deletes notes and notebooks,
searches note contents, exports and imports backups, and syncs the
document with the remote store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if homePath != "" {
			cfg.Home = config.ExpandHome(homePath)
		}
		log = logging.Console(cfg.LogLevel)
		repo = filesystem.NewRepository(cfg.Home, log)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homePath, "home", "", "data directory (defaults to $ARKNOTES_HOME or "+config.DefaultHome+")")
}

// GetRepo returns the initialized repository
func GetRepo() *filesystem.Repository {
	return repo
}

// remoteClient builds a client carrying the stored session, if any
func remoteClient() (*remote.Client, error) {
	session, err := repo.LoadSession()
	if err != nil {
		return nil, err
	}
	return remote.NewClient(cfg.Remote, remote.WithLogger(log), remote.WithSession(session)), nil
}

func syncService() (*remotesync.Service, error) {
	client, err := remoteClient()
	if err != nil {
		return nil, err
	}
	return remotesync.NewService(client, log), nil
}
