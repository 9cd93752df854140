package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/application/remotesync"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

type memRemote struct {
	bundle *domain.Bundle
}

func (m *memRemote) Upload(ctx context.Context, b *domain.Bundle) error {
	m.bundle = b
	return nil
}

func (m *memRemote) Download(ctx context.Context) (*domain.Bundle, error) {
	return m.bundle, nil
}

type fakeAuth struct {
	logoutErr error
	calls     []string
}

func (a *fakeAuth) Login(ctx context.Context, u, p string) (*ports.Session, error) {
	a.calls = append(a.calls, "login")
	return &ports.Session{Username: u, Token: "tok"}, nil
}

func (a *fakeAuth) Register(ctx context.Context, u, p string) (*ports.Session, error) {
	a.calls = append(a.calls, "register")
	return &ports.Session{Username: u, Token: "tok"}, nil
}

func (a *fakeAuth) Logout(ctx context.Context) error {
	a.calls = append(a.calls, "logout")
	return a.logoutErr
}

type memSessions struct {
	session *ports.Session
}

func (m *memSessions) LoadSession() (*ports.Session, error) { return m.session, nil }
func (m *memSessions) SaveSession(s *ports.Session) error   { m.session = s; return nil }
func (m *memSessions) ClearSession() error                  { m.session = nil; return nil }

func TestPushPull(t *testing.T) {
	ctx := context.Background()
	remote := &memRemote{}
	svc := remotesync.NewService(remote, zerolog.Nop())

	src := newMemRepo(t)
	mustCreateNote(t, src, "synced")
	_, err := NewPushCommand(src, svc).Execute(ctx)
	require.NoError(t, err)

	dst := newMemRepo(t)
	res, err := NewPullCommand(dst, svc).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, res.Data)

	notes, _ := NewListNotesCommand(dst, "").Execute(ctx)
	require.Len(t, notes.Notes, 1)
	assert.Equal(t, "synced", notes.Notes[0].Title)
}

func TestPullCommand_EmptyRemote(t *testing.T) {
	svc := remotesync.NewService(&memRemote{}, zerolog.Nop())
	repo := newMemRepo(t)

	res, err := NewPullCommand(repo, svc).Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Data)
	assert.Zero(t, repo.saves)
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	sessions := &memSessions{}

	_, err := NewLoginCommand(auth, sessions, "ada", "", false).Execute(ctx)
	assert.Error(t, err)

	msg, err := NewLoginCommand(auth, sessions, "ada", "secret", true).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Logged in as ada", msg)
	assert.Equal(t, "tok", sessions.session.Token)

	auth.logoutErr = errors.New("offline")
	_, err = NewLogoutCommand(auth, sessions).Execute(ctx)
	assert.Error(t, err)
	assert.Nil(t, sessions.session, "local session is cleared even when the remote call fails")
	assert.Equal(t, []string{"register", "logout"}, auth.calls)
}
