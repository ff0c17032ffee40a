package users

import (
	"context"
	"sort"
	"sync"

	"dashflow/internal/upstream"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

func NewInMemoryRepository(seed ...User) *InMemoryRepository {
	r := &InMemoryRepository{
		users:  make(map[int]User),
		nextID: 1,
	}
	for _, u := range seed {
		r.users[u.ID] = u.withDefaults()
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	return &u, nil
}

func (r *InMemoryRepository) Create(_ context.Context, u User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.nextID
	r.nextID++
	u = u.withDefaults()
	r.users[u.ID] = u
	return &u, nil
}

func (r *InMemoryRepository) Update(_ context.Context, u User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return nil, upstream.ErrNotFound
	}
	u = u.withDefaults()
	r.users[u.ID] = u
	return &u, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return upstream.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
