// Package dashboard builds the overview page: headline counters, chart
// series and two short lists, computed from the users and products lists.
package dashboard

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sort"

	"dashflow/internal/products"
	"dashflow/internal/users"

	"github.com/rs/zerolog/log"
)

const listSize = 5

type UsersSource interface {
	All(ctx context.Context) ([]users.User, error)
}

type ProductsSource interface {
	All(ctx context.Context) ([]products.Product, error)
}

// SourceError names which list could not be loaded.
type SourceError struct {
	Source  string
	Message string
	Err     error
}

func (e *SourceError) Error() string { return e.Source + ": " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }

type Summary struct {
	TotalUsers     int     `json:"total_users"`
	ActiveUsers    int     `json:"active_users"`
	TotalProducts  int     `json:"total_products"`
	Categories     int     `json:"categories"`
	AveragePrice   float64 `json:"average_price"`
	InventoryValue float64 `json:"inventory_value"`
	AverageRating  float64 `json:"average_rating"`
}

// Point is one bar of a chart.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Charts struct {
	ProductsPerCategory    []Point `json:"products_per_category"`
	AveragePriceByCategory []Point `json:"average_price_by_category"`
	UsersByRole            []Point `json:"users_by_role"`
}

type Overview struct {
	Summary     Summary            `json:"summary"`
	Charts      Charts             `json:"charts"`
	RecentUsers []users.User       `json:"recent_users"`
	TopRated    []products.Product `json:"top_rated"`
}

type Service struct {
	users    UsersSource
	products ProductsSource
}

func NewService(u UsersSource, p ProductsSource) *Service {
	return &Service{users: u, products: p}
}

// Overview fetches both lists concurrently and fails if either fails.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	usersCh := make(chan struct {
		Users []users.User
		Error error
	}, 1)
	productsCh := make(chan struct {
		Products []products.Product
		Error    error
	}, 1)

	go func() {
		list, err := s.users.All(ctx)
		usersCh <- struct {
			Users []users.User
			Error error
		}{Users: list, Error: err}
	}()

	go func() {
		list, err := s.products.All(ctx)
		productsCh <- struct {
			Products []products.Product
			Error    error
		}{Products: list, Error: err}
	}()

	usersResult := <-usersCh
	if usersResult.Error != nil {
		log.Error().Err(usersResult.Error).Msg("dashboard: users fetch failed")
		return nil, &SourceError{Source: "users", Message: "Erreur lors du chargement des utilisateurs", Err: usersResult.Error}
	}

	productsResult := <-productsCh
	if productsResult.Error != nil {
		log.Error().Err(productsResult.Error).Msg("dashboard: products fetch failed")
		return nil, &SourceError{Source: "products", Message: "Erreur lors du chargement des produits", Err: productsResult.Error}
	}

	return Build(usersResult.Users, productsResult.Products), nil
}

// Build computes the overview from already loaded lists.
func Build(us []users.User, ps []products.Product) *Overview {
	o := &Overview{
		Summary: Summary{
			TotalUsers:    len(us),
			TotalProducts: len(ps),
		},
		RecentUsers: firstN(us, listSize),
		TopRated:    topRated(ps, listSize),
	}

	roles := make(map[string]float64)
	for _, u := range us {
		if u.Status == users.StatusActive {
			o.Summary.ActiveUsers++
		}
		roles[u.Role]++
	}

	counts := make(map[string]float64)
	totals := make(map[string]float64)
	var ratingSum float64
	for _, p := range ps {
		counts[p.Category]++
		totals[p.Category] += p.Price
		o.Summary.InventoryValue += p.Price
		ratingSum += p.Rating.Rate
	}

	o.Summary.Categories = len(counts)
	if len(ps) > 0 {
		o.Summary.AveragePrice = round2(o.Summary.InventoryValue / float64(len(ps)))
		o.Summary.AverageRating = round2(ratingSum / float64(len(ps)))
	}
	o.Summary.InventoryValue = round2(o.Summary.InventoryValue)

	averages := make(map[string]float64, len(totals))
	for cat, total := range totals {
		averages[cat] = round2(total / counts[cat])
	}

	o.Charts = Charts{
		ProductsPerCategory:    series(counts),
		AveragePriceByCategory: series(averages),
		UsersByRole:            series(roles),
	}
	return o
}

func series(m map[string]float64) []Point {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	out := make([]Point, len(labels))
	for i, l := range labels {
		out[i] = Point{Label: l, Value: m[l]}
	}
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	return slices.Clone(items[:n])
}

func topRated(ps []products.Product, n int) []products.Product {
	sorted := slices.Clone(ps)
	slices.SortStableFunc(sorted, func(a, b products.Product) int {
		if c := cmp.Compare(b.Rating.Rate, a.Rating.Rate); c != 0 {
			return c
		}
		return cmp.Compare(b.Rating.Count, a.Rating.Count)
	})
	return firstN(sorted, n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
