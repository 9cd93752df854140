package ports

import (
	"context"

	"arknotes/internal/domain"
)

// RemoteStore is the remote document store used for sync. Sync is last-write-wins.
type RemoteStore interface {
	Upload(ctx context.Context, bundle *domain.Bundle) error
	Download(ctx context.Context) (*domain.Bundle, error)
}

// Session holds the result of a successful login
type Session struct {
	Username string `json:"username"`
	Token    string `json:"session_token"`
}

// Authenticator performs the account calls of the remote store
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Register(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context) error
}

// SessionStore keeps the login session between runs
type SessionStore interface {
	// LoadSession returns nil when nobody is logged in
	LoadSession() (*Session, error)
	SaveSession(s *Session) error
	ClearSession() error
}
