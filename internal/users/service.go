package users

import (
	"context"
	"time"

	"dashflow/internal/cache"
	"dashflow/internal/events"
	"dashflow/internal/listing"
)

const (
	listKey = "users:list"
	entity  = "user"
)

var searchFields listing.Fields[User] = func(u User) []string {
	return []string{u.Name, u.Email, u.Username, u.Company.Name}
}

var sortFields = listing.Comparators[User]{
	"id":      listing.ByNumber(func(u User) int { return u.ID }),
	"name":    listing.ByString(func(u User) string { return u.Name }),
	"email":   listing.ByString(func(u User) string { return u.Email }),
	"company": listing.ByString(func(u User) string { return u.Company.Name }),
	"role":    listing.ByString(func(u User) string { return u.Role }),
	"status":  listing.ByString(func(u User) string { return u.Status }),
}

type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	events   events.Publisher
}

func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration, pub events.Publisher) *Service {
	if c == nil {
		c = cache.NewMemory()
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL, events: pub}
}

// All returns every user, through the list cache.
func (s *Service) All(ctx context.Context) ([]User, error) {
	return cache.Remember(ctx, s.cache, listKey, s.cacheTTL, s.repo.List)
}

// List filters, sorts and paginates the full list.
func (s *Service) List(ctx context.Context, p listing.Params, f Filter) (listing.Page[User], error) {
	all, err := s.All(ctx)
	if err != nil {
		return listing.Page[User]{}, err
	}

	all = listing.Where(all, listing.EqualFold(f.Status, func(u User) string { return u.Status }))
	all = listing.Where(all, listing.EqualFold(f.Role, func(u User) string { return u.Role }))

	return listing.Apply(all, p, searchFields, sortFields)
}

func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor string, in Input) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, in.toUser(0))
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, actor, events.ActionCreated, created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, actor string, id int, in Input) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, in.toUser(id))
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, actor, events.ActionUpdated, id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actor string, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, actor, events.ActionDeleted, id)
	return nil
}

// afterMutation drops the cached list so the next read re-fetches it.
func (s *Service) afterMutation(ctx context.Context, actor, action string, id int) {
	cache.Invalidate(ctx, s.cache, listKey)
	events.Emit(ctx, s.events, events.Event{
		Entity: entity,
		Action: action,
		ID:     id,
		Actor:  actor,
	})
}
