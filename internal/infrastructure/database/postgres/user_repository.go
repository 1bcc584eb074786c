package postgres

import (
	"churn-shield/internal/domain/user"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const (
	insertUserQuery = `
        INSERT INTO users (username, password_hash, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (username) DO NOTHING`

	findPasswordHashQuery = `SELECT password_hash FROM users WHERE username = $1`
)

type UserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db DBPool, logger *slog.Logger) *UserRepository {
	if db == nil {
		panic("DBPool cannot be nil for UserRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUserRepository, using default stderr handler")
	}
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "UserRepository"),
	}
}

func (r *UserRepository) Insert(ctx context.Context, username, passwordHash string) error {
	logCtx := r.logger.With(slog.String("username", username))
	logCtx.DebugContext(ctx, "Attempting to insert user")

	cmdTag, err := r.db.Exec(ctx, insertUserQuery, username, passwordHash)
	if err != nil {
		translated := translateDBError(err, logCtx)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return user.ErrDuplicateUser
		}
		logCtx.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return translated
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.InfoContext(ctx, "Insert skipped, username already present")
		return user.ErrDuplicateUser
	}

	logCtx.InfoContext(ctx, "User inserted successfully")
	return nil
}

func (r *UserRepository) FindPasswordHash(ctx context.Context, username string) (string, error) {
	logCtx := r.logger.With(slog.String("username", username))

	var hash string
	err := r.db.QueryRow(ctx, findPasswordHashQuery, username).Scan(&hash)
	if err != nil {
		translated := translateDBError(err, logCtx)
		if errors.Is(translated, apperrors.ErrNotFound) {
			logCtx.DebugContext(ctx, "User not found")
			return "", fmt.Errorf("%w: user %s", apperrors.ErrNotFound, username)
		}
		return "", translated
	}
	return hash, nil
}
