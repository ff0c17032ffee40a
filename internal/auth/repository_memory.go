package auth

import (
	"context"
	"sync"
)

type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]SessionUser
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string]SessionUser),
	}
}

func (r *InMemorySessionRepository) Save(_ context.Context, user *SessionUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[user.Email] = *user
	return nil
}

func (r *InMemorySessionRepository) FindByEmail(_ context.Context, email string) (*SessionUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.sessions[email]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &user, nil
}

func (r *InMemorySessionRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, email)
	return nil
}
