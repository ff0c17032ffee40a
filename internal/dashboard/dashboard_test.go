package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashflow/internal/products"
	"dashflow/internal/upstream"
	"dashflow/internal/users"

	"github.com/gin-gonic/gin"
)

type usersFunc func(context.Context) ([]users.User, error)

func (f usersFunc) All(ctx context.Context) ([]users.User, error) { return f(ctx) }

type productsFunc func(context.Context) ([]products.Product, error)

func (f productsFunc) All(ctx context.Context) ([]products.Product, error) { return f(ctx) }

func sampleUsers() []users.User {
	return []users.User{
		{ID: 1, Name: "Leanne", Role: users.RoleAdmin, Status: users.StatusActive},
		{ID: 2, Name: "Ervin", Role: users.RoleUser, Status: users.StatusInactive},
		{ID: 3, Name: "Clementine", Role: users.RoleUser, Status: users.StatusActive},
	}
}

func sampleProducts() []products.Product {
	return []products.Product{
		{ID: 1, Title: "Backpack", Price: 100, Category: "men's clothing", Rating: products.Rating{Rate: 4.0, Count: 120}},
		{ID: 2, Title: "T-Shirt", Price: 20, Category: "men's clothing", Rating: products.Rating{Rate: 4.1, Count: 259}},
		{ID: 3, Title: "Bracelet", Price: 600, Category: "jewelery", Rating: products.Rating{Rate: 4.6, Count: 400}},
		{ID: 4, Title: "Drive", Price: 64.5, Category: "electronics", Rating: products.Rating{Rate: 4.1, Count: 300}},
	}
}

func TestBuild(t *testing.T) {
	o := Build(sampleUsers(), sampleProducts())

	s := o.Summary
	if s.TotalUsers != 3 || s.ActiveUsers != 2 || s.TotalProducts != 4 || s.Categories != 3 {
		t.Fatalf("unexpected counters %+v", s)
	}
	if s.InventoryValue != 784.5 || s.AveragePrice != 196.13 {
		t.Fatalf("unexpected prices %+v", s)
	}
	if s.AverageRating != 4.2 {
		t.Fatalf("unexpected rating %v", s.AverageRating)
	}

	want := []Point{{"electronics", 1}, {"jewelery", 1}, {"men's clothing", 2}}
	for i, p := range o.Charts.ProductsPerCategory {
		if p != want[i] {
			t.Fatalf("point %d: got %+v want %+v", i, p, want[i])
		}
	}
	if o.Charts.AveragePriceByCategory[2].Value != 60 {
		t.Fatalf("unexpected average %+v", o.Charts.AveragePriceByCategory)
	}

	// equal rate: higher count first
	if o.TopRated[0].ID != 3 || o.TopRated[1].ID != 4 || o.TopRated[2].ID != 2 {
		t.Fatalf("unexpected top rated order %+v", o.TopRated)
	}
}

func TestBuild_Empty(t *testing.T) {
	o := Build(nil, nil)

	if o.Summary.AveragePrice != 0 || len(o.RecentUsers) != 0 || len(o.Charts.ProductsPerCategory) != 0 {
		t.Fatalf("unexpected overview %+v", o)
	}
}

func TestOverview_FailingSide(t *testing.T) {
	okUsers := usersFunc(func(context.Context) ([]users.User, error) { return sampleUsers(), nil })
	badProducts := productsFunc(func(context.Context) ([]products.Product, error) {
		return nil, &upstream.StatusError{Code: http.StatusInternalServerError}
	})

	_, err := NewService(okUsers, badProducts).Overview(context.Background())

	var se *SourceError
	if !errors.As(err, &se) || se.Source != "products" {
		t.Fatalf("expected products source error, got %v", err)
	}
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	okProducts := productsFunc(func(context.Context) ([]products.Product, error) { return sampleProducts(), nil })
	badUsers := usersFunc(func(context.Context) ([]users.User, error) {
		return nil, &upstream.StatusError{Code: http.StatusServiceUnavailable}
	})
	okUsers := usersFunc(func(context.Context) ([]users.User, error) { return sampleUsers(), nil })

	cases := []struct {
		name  string
		users UsersSource
		want  int
		msg   string
	}{
		{"ok", okUsers, http.StatusOK, ""},
		{"users down", badUsers, http.StatusBadGateway, "Erreur lors du chargement des utilisateurs"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/api/dashboard", NewHandler(NewService(tc.users, okProducts)).Get)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if tc.msg != "" {
				var body map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body["error"] != tc.msg {
					t.Fatalf("unexpected message %q", body["error"])
				}
			}
		})
	}
}
