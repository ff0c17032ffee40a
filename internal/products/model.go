package products

import (
	"strings"

	"dashflow/internal/apierr"
)

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product mirrors a Fake Store API product.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

type Input struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

type Filter struct {
	Category string
}

func (in *Input) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" {
		return apierr.Invalid("title", "Le titre est requis")
	}
	if in.Price < 0 {
		return apierr.Invalid("price", "Le prix doit être positif")
	}
	return nil
}

func (in Input) toProduct(id int) Product {
	return Product{
		ID:          id,
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
	}
}
