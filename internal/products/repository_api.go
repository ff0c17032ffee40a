package products

import (
	"context"
	"fmt"

	"dashflow/internal/upstream"
)

// APIRepository talks to the Fake Store API /products resource.
type APIRepository struct {
	client *upstream.Client
}

func NewAPIRepository(client *upstream.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (r *APIRepository) List(ctx context.Context) ([]Product, error) {
	var list []Product
	if err := r.client.Get(ctx, "/products", &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *APIRepository) Get(ctx context.Context, id int) (*Product, error) {
	var p Product
	if err := r.client.Get(ctx, fmt.Sprintf("/products/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *APIRepository) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	if err := r.client.Get(ctx, "/products/categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *APIRepository) Create(ctx context.Context, p Product) (*Product, error) {
	var created Product
	if err := r.client.Post(ctx, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *APIRepository) Update(ctx context.Context, p Product) (*Product, error) {
	var updated Product
	if err := r.client.Put(ctx, fmt.Sprintf("/products/%d", p.ID), p, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated = p
	}
	return &updated, nil
}

func (r *APIRepository) Delete(ctx context.Context, id int) error {
	return r.client.Delete(ctx, fmt.Sprintf("/products/%d", id))
}
