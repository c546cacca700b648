package domain

import (
	"context"
	"time"
)

type Review struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	User               *User     `json:"user,omitempty"`
	ProductID          string    `json:"productId"`
	Product            *Product  `json:"product,omitempty"`
	Rating             int       `json:"rating"` // 1-5
	Comment            string    `json:"comment"`
	Status             string    `json:"status"` // active, flagged, removed
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase"`
	HelpfulVotes       int       `json:"helpfulVotes"`
	ReportCount        int       `json:"reportCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ReviewFilter struct {
	Keyword string // substring match on comment
	Limit   int
	Offset  int
}

type ReviewRepository interface {
	// Create returns ErrDuplicate when the (user, product) pair already has
	// a review.
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	GetAll(ctx context.Context, filter ReviewFilter) ([]Review, int64, error)
	// GetByProductID returns every review for the product, newest first,
	// regardless of status.
	GetByProductID(ctx context.Context, productID string) ([]Review, error)
	GetByUserID(ctx context.Context, userID string) ([]Review, error)
	GetTop(ctx context.Context, limit int) ([]Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id string) error
}
