package usecase

import (
	"context"
	"errors"
	"fmt"

	"urbancart-backend/internal/domain"
)

type CartUsecase struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	maxQuantity int
}

func NewCartUsecase(cartRepo domain.CartRepository, productRepo domain.ProductRepository, maxQuantity int) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo, maxQuantity: maxQuantity}
}

// Get returns the user's cart. A user without a persisted cart gets an empty
// representation rather than an error.
func (u *CartUsecase) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (u *CartUsecase) getOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart, err = u.cartRepo.Create(ctx, userID)
	if errors.Is(err, domain.ErrDuplicate) {
		// Lost the creation race; the other request's cart wins.
		return u.cartRepo.GetByUserID(ctx, userID)
	}
	return cart, err
}

// AddItem merges the quantity into any existing line item for the same
// product and snapshots the current catalog price on first add.
func (u *CartUsecase) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity must be at least 1")
	}
	if quantity > u.maxQuantity {
		return nil, domain.NewValidationError(fmt.Sprintf("quantity must not exceed %d", u.maxQuantity))
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := u.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.UpsertItem(ctx, cart.ID, productID, quantity, product.Price); err != nil {
		return nil, err
	}
	return u.cartRepo.GetByUserID(ctx, userID)
}

// UpdateItem overwrites the quantity of an existing line item.
func (u *CartUsecase) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity must be at least 1")
	}
	if quantity > u.maxQuantity {
		return nil, domain.NewValidationError(fmt.Sprintf("quantity must not exceed %d", u.maxQuantity))
	}

	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return u.cartRepo.GetByUserID(ctx, userID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return u.cartRepo.GetByUserID(ctx, userID)
}

// Clear empties the cart but keeps the row, so clearing twice succeeds.
// A user who never had a cart gets ErrNotFound.
func (u *CartUsecase) Clear(ctx context.Context, userID string) error {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return u.cartRepo.Clear(ctx, cart.ID)
}
