package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/hoaxify/internal/logger"
)

// ErrClosed is returned by commits issued after Close.
var ErrClosed = errors.New("session service is closed")

// Repository loads and saves the session. Load returns nil, nil when
// nothing usable is stored.
type Repository interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session Session) error
}

// Service is the single owner of the process-wide session.
type Service struct {
	mu     sync.Mutex
	repo   Repository
	state  Session
	closed bool
}

// New hydrates the session from repo. Unreadable data starts a logged-out session.
func New(ctx context.Context, repo Repository) *Service {
	s := &Service{repo: repo}

	loaded, err := repo.Load(ctx)
	if err != nil {
		logger.Log.Debugln("Error calling the `repo.Load()`: ", zap.Error(err))
	}
	if loaded != nil {
		s.state = *loaded
		s.state.normalize()
	}

	return s
}

// State returns a copy of the current session.
func (s *Service) State() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// LoginSuccess merges data into the session and marks it logged in.
func (s *Service) LoginSuccess(ctx context.Context, data LoginData) error {
	return s.commit(ctx, "loginSuccess", func(state *Session) {
		state.IsLoggedIn = true
		state.ID = data.ID
		state.Username = data.Username
		state.Image = data.Image
		state.Header = data.Header
	})
}

// Reset logs the session out, drops the ID and overlays the non-empty
// fields of initial. A nil initial only logs out.
func (s *Service) Reset(ctx context.Context, initial *Session) error {
	return s.commit(ctx, "reset", resetTo(initial))
}

func resetTo(initial *Session) func(state *Session) {
	return func(state *Session) {
		state.IsLoggedIn = false
		state.ID = 0
		if initial == nil {
			return
		}
		state.IsLoggedIn = initial.IsLoggedIn
		if initial.ID != 0 {
			state.ID = initial.ID
		}
		if initial.Username != "" {
			state.Username = initial.Username
		}
		if initial.Image != "" {
			state.Image = initial.Image
		}
		if initial.Header != "" {
			state.Header = initial.Header
		}
	}
}

// ResetAuthState re-reads the repository and resets the session to what it
// holds. It resynchronizes the service after the stored data changed behind
// its back.
func (s *Service) ResetAuthState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.Load(ctx)
	if err != nil {
		logger.Log.Debugln("Error calling the `s.repo.Load()`: ", zap.Error(err))
		stored = nil
	}

	return s.commitLocked(ctx, "reset", resetTo(stored))
}

// Logout drops every identity field.
func (s *Service) Logout(ctx context.Context) error {
	return s.commit(ctx, "logout", func(state *Session) {
		*state = Session{}
	})
}

// Close ends the service lifecycle; later commits fail with ErrClosed.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

// commit applies mutate and saves the result while holding the lock, so the
// repository always sees the commits in order.
func (s *Service) commit(ctx context.Context, name string, mutate func(state *Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitLocked(ctx, name, mutate)
}

// commitLocked requires s.mu. The session changes only once the save succeeds.
func (s *Service) commitLocked(ctx context.Context, name string, mutate func(state *Session)) error {
	if s.closed {
		return ErrClosed
	}

	next := s.state
	mutate(&next)
	next.normalize()

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("in internal/auth/auth.go/commit(%s): error while `s.repo.Save()` calling: %w", name, err)
	}
	s.state = next
	logger.Log.Debugln("session commit", "mutation", name, "isLoggedIn", s.state.IsLoggedIn)

	return nil
}
