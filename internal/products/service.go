package products

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"dashflow/internal/apierr"
	"dashflow/internal/cache"
	"dashflow/internal/events"
	"dashflow/internal/listing"

	"github.com/google/uuid"
)

const (
	listKey       = "products:list"
	categoriesKey = "products:categories"
	entity        = "product"

	MaxImageSize = 5 << 20
)

var ErrStorageDisabled = errors.New("image storage is not configured")

var searchFields listing.Fields[Product] = func(p Product) []string {
	return []string{p.Title, p.Category, p.Description}
}

var sortFields = listing.Comparators[Product]{
	"id":       listing.ByNumber(func(p Product) int { return p.ID }),
	"title":    listing.ByString(func(p Product) string { return p.Title }),
	"price":    listing.ByNumber(func(p Product) float64 { return p.Price }),
	"category": listing.ByString(func(p Product) string { return p.Category }),
	"rating":   listing.ByNumber(func(p Product) float64 { return p.Rating.Rate }),
}

// ImageUploader stores an object and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	events   events.Publisher
	images   ImageUploader
}

func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration, pub events.Publisher, images ImageUploader) *Service {
	if c == nil {
		c = cache.NewMemory()
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL, events: pub, images: images}
}

func (s *Service) All(ctx context.Context) ([]Product, error) {
	return cache.Remember(ctx, s.cache, listKey, s.cacheTTL, s.repo.List)
}

func (s *Service) List(ctx context.Context, p listing.Params, f Filter) (listing.Page[Product], error) {
	all, err := s.All(ctx)
	if err != nil {
		return listing.Page[Product]{}, err
	}

	all = listing.Where(all, listing.EqualFold(f.Category, func(p Product) string { return p.Category }))

	return listing.Apply(all, p, searchFields, sortFields)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return cache.Remember(ctx, s.cache, categoriesKey, s.cacheTTL, s.repo.Categories)
}

func (s *Service) Get(ctx context.Context, id int) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor string, in Input) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, in.toProduct(0))
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, actor, events.ActionCreated, created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, actor string, id int, in Input) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, in.toProduct(id))
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

// UploadImage stores a product picture and returns the URL to put in the
// product's image field.
func (s *Service) UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if s.images == nil {
		return "", ErrStorageDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", apierr.Invalid("image", "Le fichier doit être une image")
	}
	if size > MaxImageSize {
		return "", apierr.Invalid("image", "L'image ne doit pas dépasser 5 Mo")
	}

	key := fmt.Sprintf("products/%s%s", uuid.New().String(), strings.ToLower(path.Ext(filename)))
	return s.images.Upload(ctx, key, body, contentType)
}

func (s *Service) afterMutation(ctx context.Context, actor, action string, id int) {
	cache.Invalidate(ctx, s.cache, listKey, categoriesKey)
	events.Emit(ctx, s.events, events.Event{
		Entity: entity,
		Action: action,
		ID:     id,
		Actor:  actor,
	})
}
