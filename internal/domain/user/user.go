package user

import (
	"churn-shield/internal/pkg/apperrors"
	"context"
	"fmt"
	"time"
)

var (
	ErrDuplicateUser = fmt.Errorf("%w: username already taken", apperrors.ErrAlreadyExists)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
)

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository is the credential store. Insert must be insert-if-absent and
// return ErrDuplicateUser when the username exists. FindPasswordHash
// returns apperrors.ErrNotFound for unknown users. Connection failures are
// reported as apperrors.ErrStoreUnavailable.
type Repository interface {
	Insert(ctx context.Context, username, passwordHash string) error

	FindPasswordHash(ctx context.Context, username string) (string, error)
}
