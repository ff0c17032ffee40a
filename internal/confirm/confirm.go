// Package confirm holds destructive actions until the user confirms them.
// Each session owns one slot: a new request replaces whatever was pending.
package confirm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoPending = errors.New("no pending confirmation")
	ErrMismatch  = errors.New("confirmation id does not match the pending one")
)

// Action runs once the user confirms.
type Action func(ctx context.Context) error

// Prompt is the text of a confirmation dialog and of its outcome.
type Prompt struct {
	Title   string
	Message string
	Success string
	Failure string
}

type Pending struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Success   string    `json:"-"`
	Failure   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	action Action
}

// Slot is the single pending confirmation of one session.
type Slot struct {
	mu      sync.Mutex
	pending *Pending
	ttl     time.Duration
	now     func() time.Time
}

func NewSlot(ttl time.Duration) *Slot {
	return &Slot{ttl: ttl, now: time.Now}
}

// Request stores action as the pending confirmation, dropping any previous one.
func (s *Slot) Request(prompt Prompt, action Action) Pending {
	now := s.now()
	p := &Pending{
		ID:        uuid.New().String(),
		Title:     prompt.Title,
		Message:   prompt.Message,
		Success:   prompt.Success,
		Failure:   prompt.Failure,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		action:    action,
	}

	s.mu.Lock()
	s.pending = p
	s.mu.Unlock()

	return *p
}

// Current returns the pending confirmation, if any and not expired.
func (s *Slot) Current() (Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.livePending()
	if p == nil {
		return Pending{}, false
	}
	return *p, true
}

// Confirm runs the pending action if id matches. The slot is emptied before
// the action runs, so a second Confirm with the same id gets ErrNoPending.
func (s *Slot) Confirm(ctx context.Context, id string) (Pending, error) {
	s.mu.Lock()
	p := s.livePending()
	if p == nil {
		s.mu.Unlock()
		return Pending{}, ErrNoPending
	}
	if p.ID != id {
		s.mu.Unlock()
		return Pending{}, ErrMismatch
	}
	s.pending = nil
	s.mu.Unlock()

	return *p, p.action(ctx)
}

// Cancel drops the pending confirmation and reports whether there was one.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	had := s.livePending() != nil
	s.pending = nil
	return had
}

// livePending must be called with mu held.
func (s *Slot) livePending() *Pending {
	if s.pending == nil {
		return nil
	}
	if s.ttl > 0 && s.now().After(s.pending.ExpiresAt) {
		s.pending = nil
		return nil
	}
	return s.pending
}

// Store hands out one Slot per session owner.
type Store struct {
	mu    sync.Mutex
	slots map[string]*Slot
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{slots: make(map[string]*Slot), ttl: ttl}
}

func (s *Store) For(owner string) *Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[owner]
	if !ok {
		slot = NewSlot(s.ttl)
		s.slots[owner] = slot
	}
	return slot
}

// Forget drops the owner's slot, e.g. on logout.
func (s *Store) Forget(owner string) {
	s.mu.Lock()
	delete(s.slots, owner)
	s.mu.Unlock()
}
