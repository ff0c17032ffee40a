package products

import (
	"context"
	"sort"
	"sync"

	"dashflow/internal/upstream"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	products map[int]Product
	nextID   int
}

func NewInMemoryRepository(seed ...Product) *InMemoryRepository {
	r := &InMemoryRepository{
		products: make(map[int]Product),
		nextID:   1,
	}
	for _, p := range seed {
		r.products[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) Categories(ctx context.Context) ([]string, error) {
	list, _ := r.List(ctx)

	seen := make(map[string]bool)
	var cats []string
	for _, p := range list {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = p
	return &p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, p Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.products[p.ID]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	p.Rating = old.Rating
	r.products[p.ID] = p
	return &p, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return upstream.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
