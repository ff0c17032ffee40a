package products

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashflow/internal/upstream"
)

func TestAPIRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","rating":{"rate":3.9,"count":120}}]`))
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["electronics","jewelery"]`))
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		// Fake Store answers unknown ids with an empty body.
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":21,"title":"New","price":1}`))
	})
	mux.HandleFunc("DELETE /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := NewAPIRepository(upstream.NewClient(srv.URL, time.Second))
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Rating.Count != 120 {
		t.Fatalf("unexpected list %+v", list)
	}

	cats, err := repo.Categories(ctx)
	if err != nil || len(cats) != 2 {
		t.Fatalf("unexpected categories %v err=%v", cats, err)
	}

	if _, err := repo.Get(ctx, 999); !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("expected not found for empty body, got %v", err)
	}

	created, err := repo.Create(ctx, Product{Title: "New", Price: 1})
	if err != nil || created.ID != 21 {
		t.Fatalf("unexpected create %+v err=%v", created, err)
	}

	var se *upstream.StatusError
	if err := repo.Delete(ctx, 1); !errors.As(err, &se) {
		t.Fatalf("expected status error, got %v", err)
	}
}
