package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/logger"
)

type CreateOrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderInput struct {
	Items             []CreateOrderItem `json:"orderItems"`
	ShippingAddressID string            `json:"shippingAddressId"`
	PaymentMethod     string            `json:"paymentMethod"`
	ItemsPrice        float64           `json:"itemsPrice"`
	ShippingPrice     float64           `json:"shippingPrice"`
	TotalPrice        float64           `json:"totalPrice"`
}

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	addressRepo domain.AddressRepository
	tm          domain.TransactionManager
}

func NewOrderUsecase(
	orderRepo domain.OrderRepository,
	cartRepo domain.CartRepository,
	productRepo domain.ProductRepository,
	addressRepo domain.AddressRepository,
	tm domain.TransactionManager,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		tm:          tm,
	}
}

// Create freezes the submitted items and prices into an order snapshot and
// clears the cart in the same transaction. Prices are stored as submitted;
// later catalog edits never touch them.
func (u *OrderUsecase) Create(ctx context.Context, userID string, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("orderItems must not be empty")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, domain.NewValidationError("paymentMethod is required")
	}

	addr, err := u.addressRepo.GetByID(ctx, input.ShippingAddressID)
	if err != nil {
		return nil, fmt.Errorf("shipping address: %w", err)
	}
	if addr.UserID != userID {
		return nil, fmt.Errorf("shipping address: %w", domain.ErrForbidden)
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, domain.NewValidationError("item quantity must be at least 1")
		}
		product, err := u.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", in.ProductID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Thumbnail: product.Thumbnail,
			Quantity:  in.Quantity,
			UnitPrice: in.Price,
		})
	}

	order := &domain.Order{
		UserID:            userID,
		Items:             items,
		ShippingAddressID: addr.ID,
		ShippingAddress:   addr,
		PaymentMethod:     input.PaymentMethod,
		ItemsPrice:        input.ItemsPrice,
		ShippingPrice:     input.ShippingPrice,
		TotalPrice:        input.TotalPrice,
		Status:            domain.OrderStatusPending,
	}

	err = u.tm.Do(ctx, func(ctx context.Context) error {
		if err := u.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		cart, err := u.cartRepo.GetByUserID(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return u.cartRepo.Clear(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (u *OrderUsecase) GetMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.orderRepo.GetByUserID(ctx, userID)
}

func (u *OrderUsecase) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr, err := u.addressRepo.GetByID(ctx, order.ShippingAddressID); err == nil {
		order.ShippingAddress = addr
	}
	return order, nil
}

func (u *OrderUsecase) GetAll(ctx context.Context, page, limit int) ([]domain.Order, *domain.OrderPagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	orders, total, err := u.orderRepo.GetAll(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := &domain.OrderPagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalOrders: total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	return orders, pagination, nil
}

// UpdateStatus is admin-only at the transport layer. The status string is
// stored as given and touches nothing else: isDelivered and the payment
// flags are separate pieces of state with their own writers.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if strings.TrimSpace(status) == "" {
		return nil, domain.NewValidationError("status is required")
	}
	if err := u.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return u.orderRepo.GetByID(ctx, id)
}

type UpdatePaymentInput struct {
	PaymentIntentID string     `json:"paymentIntentId"`
	IsPaid          bool       `json:"isPaid"`
	PaidAt          *time.Time `json:"paidAt"`
}

// UpdatePaymentStatus records a client-confirmed payment (cash on delivery,
// manual confirmation) for the caller's own order. Webhook-driven
// confirmation lives in PaymentUsecase; neither path guards against the
// other, last write wins.
func (u *OrderUsecase) UpdatePaymentStatus(ctx context.Context, userID, orderID string, input UpdatePaymentInput) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}

	paidAt := input.PaidAt
	if input.IsPaid && paidAt == nil {
		now := time.Now()
		paidAt = &now
	}

	result := order.PaymentResult
	if input.PaymentIntentID != "" {
		result = &domain.PaymentResult{
			ID:         input.PaymentIntentID,
			Status:     "completed",
			UpdateTime: time.Now().Format(time.RFC3339),
		}
	}

	if err := u.orderRepo.UpdatePayment(ctx, orderID, input.IsPaid, paidAt, result); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().
		Str("order_id", orderID).
		Bool("is_paid", input.IsPaid).
		Msg("order payment status updated")

	return u.orderRepo.GetByID(ctx, orderID)
}
