package commands

import (
	"context"
	"fmt"

	"arknotes/internal/application"
	"arknotes/internal/application/remotesync"
	"arknotes/internal/ports"
)

// PushCommand uploads the stored document and settings
type PushCommand struct {
	repo ports.DocumentStore
	sync *remotesync.Service
}

// NewPushCommand creates a new PushCommand
func NewPushCommand(repo ports.DocumentStore, sync *remotesync.Service) *PushCommand {
	return &PushCommand{repo: repo, sync: sync}
}

// Execute runs the push command
func (c *PushCommand) Execute(ctx context.Context) (string, error) {
	doc, err := c.repo.LoadDocument()
	if err != nil {
		return "", fmt.Errorf("failed to load document: %w", err)
	}
	settings, err := c.repo.LoadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	snap, err := remotesync.Snapshot(doc, settings)
	if err != nil {
		return "", err
	}
	if err := c.sync.Push(ctx, snap, false); err != nil {
		return "", err
	}
	return "Uploaded document", nil
}

// PullCommand downloads the remote bundle and replaces the local one
type PullCommand struct {
	repo ports.DocumentStore
	sync *remotesync.Service
}

// NewPullCommand creates a new PullCommand
func NewPullCommand(repo ports.DocumentStore, sync *remotesync.Service) *PullCommand {
	return &PullCommand{repo: repo, sync: sync}
}

// Execute runs the pull command
func (c *PullCommand) Execute(ctx context.Context) (*ImportResult, error) {
	bundle, err := c.sync.Pull(ctx, false)
	if err != nil {
		return nil, err
	}
	res, err := ApplyBundle(c.repo, bundle)
	if err != nil {
		return nil, err
	}
	if !res.Data && !res.Settings {
		res.Message = "Remote store is empty, nothing changed"
	} else {
		res.Message = "Downloaded document"
	}
	return res, nil
}

// LoginCommand authenticates against the remote store and keeps the session
type LoginCommand struct {
	auth     ports.Authenticator
	sessions ports.SessionStore
	Username string
	Password string
	Register bool
}

// NewLoginCommand creates a new LoginCommand. With register set it creates the account first.
func NewLoginCommand(auth ports.Authenticator, sessions ports.SessionStore, username, password string, register bool) *LoginCommand {
	return &LoginCommand{auth: auth, sessions: sessions, Username: username, Password: password, Register: register}
}

// Validate checks if the credentials are present
func (c *LoginCommand) Validate() error {
	if err := application.ValidateRequired("username", c.Username); err != nil {
		return err
	}
	return application.ValidateRequired("password", c.Password)
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	call := c.auth.Login
	if c.Register {
		call = c.auth.Register
	}
	session, err := call(ctx, c.Username, c.Password)
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	if err := c.sessions.SaveSession(session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return fmt.Sprintf("Logged in as %s", session.Username), nil
}

// LogoutCommand ends the remote session and forgets it locally
type LogoutCommand struct {
	auth     ports.Authenticator
	sessions ports.SessionStore
}

// NewLogoutCommand creates a new LogoutCommand
func NewLogoutCommand(auth ports.Authenticator, sessions ports.SessionStore) *LogoutCommand {
	return &LogoutCommand{auth: auth, sessions: sessions}
}

// Execute runs the logout command. The local session is cleared even when the
// remote call fails.
func (c *LogoutCommand) Execute(ctx context.Context) (string, error) {
	remoteErr := c.auth.Logout(ctx)
	if err := c.sessions.ClearSession(); err != nil {
		return "", fmt.Errorf("failed to clear session: %w", err)
	}
	if remoteErr != nil {
		return "", fmt.Errorf("logged out locally, remote logout failed: %w", remoteErr)
	}
	return "Logged out", nil
}
