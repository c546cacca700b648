package domain

import (
	"context"
	"time"
)

// --- Cart Entities ---

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        string   `json:"id"`
	CartID    string   `json:"cartId"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	// UnitPrice is the catalog price captured when the item was first added.
	UnitPrice float64 `json:"unitPrice"`
}

// --- Order Entities ---

// Order is an immutable snapshot taken at creation time. Price fields are
// never re-derived after creation.
type Order struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId"`
	User              *User          `json:"user,omitempty"`
	Items             []OrderItem    `json:"orderItems"`
	ShippingAddressID string         `json:"shippingAddressId"`
	ShippingAddress   *Address       `json:"shippingAddress,omitempty"`
	PaymentMethod     string         `json:"paymentMethod"`
	PaymentResult     *PaymentResult `json:"paymentResult,omitempty"`
	ItemsPrice        float64        `json:"itemsPrice"`
	ShippingPrice     float64        `json:"shippingPrice"`
	TotalPrice        float64        `json:"totalPrice"`
	Status            string         `json:"status"`
	IsPaid            bool           `json:"isPaid"`
	PaidAt            *time.Time     `json:"paidAt,omitempty"`
	IsDelivered       bool           `json:"isDelivered"`
	DeliveredAt       *time.Time     `json:"deliveredAt,omitempty"`
	CheckoutSessionID string         `json:"-"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

type OrderItem struct {
	ID        string   `json:"id"`
	OrderID   string   `json:"orderId"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	// Name and Thumbnail are snapshots so historical orders survive catalog
	// edits and deletions.
	Name      string  `json:"name"`
	Thumbnail string  `json:"thumbnail"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address,omitempty"`
}

type OrderPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// --- Interfaces ---

type CartRepository interface {
	// GetByUserID loads the cart with line-item products resolved. Returns
	// ErrNotFound if the user has no cart yet.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Create(ctx context.Context, userID string) (*Cart, error)
	// UpsertItem adds quantity to an existing line item or inserts a new one
	// with the given price snapshot, as a single atomic statement.
	UpsertItem(ctx context.Context, cartID, productID string, quantity int, unitPrice float64) error
	// SetItemQuantity overwrites the quantity. ErrNotFound if no such line item.
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	// RemoveItem deletes the line item; removing an absent item is a no-op.
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
	GetAll(ctx context.Context, page, limit int) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePayment(ctx context.Context, id string, isPaid bool, paidAt *time.Time, result *PaymentResult) error
	SetCheckoutSession(ctx context.Context, id, sessionID string) error
	GetByCheckoutSession(ctx context.Context, sessionID string) (*Order, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
