package session

import (
	"churn-shield/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Manager loads, transitions and saves sessions.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewManager(store Store, ttl time.Duration, logger *slog.Logger) *Manager {
	if store == nil {
		panic("session store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, ttl: ttl, logger: logger.With("component", "SessionManager")}
}

// Load returns the session for id, or a fresh logged-out session with a new
// id when id is empty, unknown or expired. The fresh session is not saved.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		s, err := m.store.Get(ctx, id)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			m.logger.ErrorContext(ctx, "Failed to load session", slog.Any("error", err))
			return nil, err
		}
	}
	return New(uuid.NewString()), nil
}

// Transition applies ev to the session and persists the result.
func (m *Manager) Transition(ctx context.Context, s *Session, ev Event, username string) error {
	from := s.State
	if err := s.Apply(ev, username); err != nil {
		m.logger.InfoContext(ctx, "Rejected session transition",
			slog.String("from", string(from)), slog.String("event", string(ev)))
		return err
	}
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		m.logger.ErrorContext(ctx, "Failed to save session", slog.Any("error", err))
		return fmt.Errorf("failed to save session: %w", err)
	}
	m.logger.DebugContext(ctx, "Session transitioned",
		slog.String("from", string(from)), slog.String("to", string(s.State)))
	return nil
}

// ReadNotice consumes the registration notice and persists the cleared flag.
func (m *Manager) ReadNotice(ctx context.Context, s *Session) (bool, error) {
	if !s.JustRegistered {
		return false, nil
	}
	notice := s.ConsumeNotice()
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}
	return notice, nil
}

// Get returns a stored session without creating one.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Save persists s without a transition, e.g. to pin a freshly issued id.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
