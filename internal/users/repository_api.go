package users

import (
	"context"
	"fmt"

	"dashflow/internal/upstream"
)

// APIRepository talks to the JSONPlaceholder /users resource.
type APIRepository struct {
	client *upstream.Client
}

func NewAPIRepository(client *upstream.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (r *APIRepository) List(ctx context.Context) ([]User, error) {
	var list []User
	if err := r.client.Get(ctx, "/users", &list); err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = list[i].withDefaults()
	}
	return list, nil
}

func (r *APIRepository) Get(ctx context.Context, id int) (*User, error) {
	var u User
	if err := r.client.Get(ctx, fmt.Sprintf("/users/%d", id), &u); err != nil {
		return nil, err
	}
	u = u.withDefaults()
	return &u, nil
}

func (r *APIRepository) Create(ctx context.Context, u User) (*User, error) {
	var created User
	if err := r.client.Post(ctx, "/users", u, &created); err != nil {
		return nil, err
	}
	created = created.withDefaults()
	return &created, nil
}

func (r *APIRepository) Update(ctx context.Context, u User) (*User, error) {
	var updated User
	if err := r.client.Put(ctx, fmt.Sprintf("/users/%d", u.ID), u, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated = u
	}
	updated = updated.withDefaults()
	return &updated, nil
}

func (r *APIRepository) Delete(ctx context.Context, id int) error {
	return r.client.Delete(ctx, fmt.Sprintf("/users/%d", id))
}
