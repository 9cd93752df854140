// Package remotesync pushes and pulls the document bundle to the remote store.
// It only ever sees snapshots; applying a pulled document is the caller's job.
package remotesync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// Status summarizes the outcome of the last sync calls
type Status struct {
	LastPush  time.Time
	LastPull  time.Time
	LastError error
}

// Service runs sync calls against a remote store. Silent calls log and swallow
// failures; explicit calls return them.
type Service struct {
	remote ports.RemoteStore
	log    zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	status Status
}

// NewService creates a sync service
func NewService(remote ports.RemoteStore, log zerolog.Logger) *Service {
	return &Service{
		remote: remote,
		log:    log.With().Str("component", "sync").Logger(),
		now:    time.Now,
	}
}

// Snapshot deep-copies the live document and settings into a bundle that can
// be handed to another goroutine.
func Snapshot(doc *domain.Document, settings *domain.Settings) (*domain.Bundle, error) {
	data, err := doc.Clone()
	if err != nil {
		return nil, err
	}
	var s *domain.Settings
	if settings != nil {
		copied := *settings
		if settings.Active != nil {
			copied.Active = make(map[string]string, len(settings.Active))
			for k, v := range settings.Active {
				copied.Active[k] = v
			}
		}
		s = &copied
	}
	return &domain.Bundle{Data: data, Settings: s}, nil
}

// Push uploads a snapshot
func (s *Service) Push(ctx context.Context, snapshot *domain.Bundle, silent bool) error {
	err := s.remote.Upload(ctx, snapshot)
	s.record(err, func(st *Status, at time.Time) { st.LastPush = at })
	if err != nil {
		return s.fail("upload", err, silent)
	}
	s.log.Debug().Bool("silent", silent).Msg("uploaded document")
	return nil
}

// Pull downloads the remote bundle. The returned data, if present, is normalized.
// A silent failure returns a nil bundle and no error.
func (s *Service) Pull(ctx context.Context, silent bool) (*domain.Bundle, error) {
	bundle, err := s.remote.Download(ctx)
	s.record(err, func(st *Status, at time.Time) { st.LastPull = at })
	if err != nil {
		return nil, s.fail("download", err, silent)
	}
	if bundle == nil {
		bundle = &domain.Bundle{}
	}
	if bundle.Data != nil {
		bundle.Data.Normalize()
	}
	s.log.Debug().Bool("silent", silent).Bool("has_data", bundle.Data != nil).Msg("downloaded document")
	return bundle, nil
}

// Status returns the outcome of the last calls
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Service) record(err error, stamp func(*Status, time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastError = err
	if err == nil {
		stamp(&s.status, s.now())
	}
}

func (s *Service) fail(op string, err error, silent bool) error {
	if !silent {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if errors.Is(err, application.ErrNotAuthenticated) {
		s.log.Debug().Str("op", op).Msg("skipping background sync, not logged in")
		return nil
	}
	s.log.Warn().Err(err).Str("op", op).Msg("background sync failed")
	return nil
}
