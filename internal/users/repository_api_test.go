package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashflow/internal/upstream"
)

func newFakeJSONPlaceholder(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz","company":{"name":"Romaguera-Crona"}},
			{"id":2,"name":"Ervin Howell","username":"Antonette","email":"Shanna@melissa.tv","company":{"name":"Deckow-Crist"}}
		]`))
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"name":"Leanne Graham","email":"Sincere@april.biz"}`))
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var u User
		_ = json.NewDecoder(r.Body).Decode(&u)
		u.ID = 11
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(u)
	})
	mux.HandleFunc("PUT /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var u User
		_ = json.NewDecoder(r.Body).Decode(&u)
		_ = json.NewEncoder(w).Encode(u)
	})
	mux.HandleFunc("DELETE /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	return httptest.NewServer(mux)
}

func TestAPIRepository(t *testing.T) {
	srv := newFakeJSONPlaceholder(t)
	defer srv.Close()

	repo := NewAPIRepository(upstream.NewClient(srv.URL, time.Second))
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	if list[0].Role != RoleAdmin || list[1].Role != RoleUser || list[1].Status != StatusActive {
		t.Fatalf("expected defaults to be filled, got %+v", list)
	}

	if _, err := repo.Get(ctx, 5); !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	created, err := repo.Create(ctx, User{Name: "New", Email: "new@example.com", Role: RoleEditor})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 11 || created.Role != RoleEditor {
		t.Fatalf("unexpected created user %+v", created)
	}

	updated, err := repo.Update(ctx, User{ID: 1, Name: "Renamed", Email: "r@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != 1 || updated.Name != "Renamed" {
		t.Fatalf("unexpected updated user %+v", updated)
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
}
