package user

import (
	"churn-shield/internal/event"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Service interface {
	AddUser(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

var _ Service = (*userService)(nil)

type userService struct {
	repo   Repository
	hasher Hasher
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewUserService(repo Repository, hasher Hasher, pub event.EventPublisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("user repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUserService, using default stderr handler")
	}
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	if pub == nil {
		pub = event.NewNoopEventPublisher(logger)
	}

	return &userService{
		repo:   repo,
		hasher: hasher,
		pub:    pub,
		logger: logger.With(slog.String("component", "userService")),
	}
}

func (s *userService) AddUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperrors.NewValidationError("username", "cannot be empty")
	}
	if password == "" {
		return apperrors.NewValidationError("password", "cannot be empty")
	}
	logCtx := s.logger.With(slog.String("username", username))

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return fmt.Errorf("%w: %w", apperrors.ErrInternalServer, err)
	}

	if err := s.repo.Insert(ctx, username, hash); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			logCtx.InfoContext(ctx, "Registration rejected, username taken")
			return err
		}
		logCtx.ErrorContext(ctx, "Failed to store new user", slog.Any("error", err))
		return fmt.Errorf("failed to add user: %w", err)
	}
	logCtx.InfoContext(ctx, "User registered")

	if err := s.pub.PublishUserRegistered(ctx, event.UserRegisteredEvent{Username: username, Timestamp: time.Now()}); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish user registered event", slog.Any("error", err))
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}
	logCtx := s.logger.With(slog.String("username", username))

	hash, err := s.repo.FindPasswordHash(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.InfoContext(ctx, "Authentication failed, unknown user")
			return false, nil
		}
		logCtx.ErrorContext(ctx, "Credential lookup failed", slog.Any("error", err))
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			return false, err
		}
		return false, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(hash, password) {
		logCtx.InfoContext(ctx, "Authentication failed, password mismatch")
		return false, nil
	}
	logCtx.DebugContext(ctx, "Authentication succeeded")
	return true, nil
}
