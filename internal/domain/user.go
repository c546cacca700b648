package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Address struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PostalCode  string    `json:"postalCode"`
	Country     string    `json:"country"`
	AddressType string    `json:"addressType"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type AddressRepository interface {
	Create(ctx context.Context, addr *Address) error
	GetByID(ctx context.Context, id string) (*Address, error)
	GetByUserID(ctx context.Context, userID string) ([]Address, error)
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id string) error
	// SetDefault clears is_default on every address owned by userID and sets
	// it on id, in one transaction.
	SetDefault(ctx context.Context, userID, id string) error
}
