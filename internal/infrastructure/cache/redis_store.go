package cache

import (
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/domain/session"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "churn:session:"
	resultKeyPrefix  = "churn:batch:"
)

// jsonStore keeps JSON values under a key prefix with a TTL.
type jsonStore struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

func (s *jsonStore) get(ctx context.Context, id string, v any) error {
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s%s", apperrors.ErrNotFound, s.prefix, id)
		}
		s.logger.ErrorContext(ctx, "Redis GET failed", slog.String("key", s.prefix+id), slog.Any("error", err))
		return apperrors.WrapStoreUnavailable(err, "redis get failed")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode cached value %s%s: %w", s.prefix, id, err)
	}
	return nil
}

func (s *jsonStore) set(ctx context.Context, id string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+id, raw, ttl).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Redis SET failed", slog.String("key", s.prefix+id), slog.Any("error", err))
		return apperrors.WrapStoreUnavailable(err, "redis set failed")
	}
	return nil
}

func (s *jsonStore) del(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Redis DEL failed", slog.String("key", s.prefix+id), slog.Any("error", err))
		return apperrors.WrapStoreUnavailable(err, "redis del failed")
	}
	return nil
}

type SessionStore struct {
	store jsonStore
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(client redis.Cmdable, logger *slog.Logger) *SessionStore {
	if client == nil {
		panic("redis client cannot be nil for SessionStore")
	}
	return &SessionStore{store: jsonStore{client: client, prefix: sessionKeyPrefix, logger: logger.With("component", "RedisSessionStore")}}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	var sess session.Session
	if err := s.store.get(ctx, id, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *session.Session, ttl time.Duration) error {
	if sess == nil || sess.ID == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidArgument)
	}
	return s.store.set(ctx, sess.ID, sess, ttl)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.store.del(ctx, id)
}

type ResultStore struct {
	store jsonStore
}

var _ prediction.ResultStore = (*ResultStore)(nil)

func NewResultStore(client redis.Cmdable, logger *slog.Logger) *ResultStore {
	if client == nil {
		panic("redis client cannot be nil for ResultStore")
	}
	return &ResultStore{store: jsonStore{client: client, prefix: resultKeyPrefix, logger: logger.With("component", "RedisResultStore")}}
}

func (s *ResultStore) Save(ctx context.Context, r *prediction.BatchResult, ttl time.Duration) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("%w: batch result id is required", apperrors.ErrInvalidArgument)
	}
	return s.store.set(ctx, r.ID, r, ttl)
}

func (s *ResultStore) Get(ctx context.Context, id string) (*prediction.BatchResult, error) {
	var r prediction.BatchResult
	if err := s.store.get(ctx, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
