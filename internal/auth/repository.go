package auth

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the data-access contract for session users.
// Service depends ONLY on this interface.
type SessionRepository interface {
	Save(ctx context.Context, user *SessionUser) error
	FindByEmail(ctx context.Context, email string) (*SessionUser, error)
	Delete(ctx context.Context, email string) error
}
