package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Category    string  `json:"category"`
	CountInStock int    `json:"countInStock"`

	// Derived by the review aggregator; no other writer besides the admin
	// product update path.
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"numReviews"`

	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductFilter struct {
	Keyword  string // substring match on name/description
	Category string
	Sort     string // newest, price_asc, price_desc, rating
	Limit    int
	Offset   int
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	// UpdateRating writes the derived aggregate fields. Reserved for the
	// review aggregator.
	UpdateRating(ctx context.Context, id string, rating float64, numReviews int) error
}
