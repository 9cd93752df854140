package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"arknotes/internal/application/commands"
)

var (
	password string
	register bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with the remote store",
	Long: `Upload or download the document. Sync is last-write-wins and
requires a session created with login.`,
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local document",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := syncService()
		if err != nil {
			return err
		}
		msg, err := commands.NewPushCommand(GetRepo(), svc).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the local document with the remote one",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := syncService()
		if err != nil {
			return err
		}
		result, err := commands.NewPullCommand(GetRepo(), svc).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in to the remote store",
	Long: `Log in and keep the session for later syncs.

The password is taken from --password, $ARKNOTES_PASSWORD, or read from stdin.
With --register the account is created first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := readPassword()
		if err != nil {
			return err
		}
		client, err := remoteClient()
		if err != nil {
			return err
		}
		msg, err := commands.NewLoginCommand(client, GetRepo(), args[0], secret, register).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the remote session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := remoteClient()
		if err != nil {
			return err
		}
		msg, err := commands.NewLogoutCommand(client, GetRepo()).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

func readPassword() (string, error) {
	if password != "" {
		return password, nil
	}
	if env := os.Getenv("ARKNOTES_PASSWORD"); env != "" {
		return env, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(pushCmd)
	syncCmd.AddCommand(pullCmd)

	loginCmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	loginCmd.Flags().BoolVar(&register, "register", false, "create the account before logging in")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
