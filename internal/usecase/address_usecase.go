package usecase

import (
	"context"
	"strings"

	"urbancart-backend/internal/domain"
)

type AddressUsecase struct {
	addressRepo domain.AddressRepository
}

func NewAddressUsecase(addressRepo domain.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo}
}

func validateAddress(addr *domain.Address) error {
	var fields []string
	required := map[string]string{
		"name":       addr.Name,
		"phone":      addr.Phone,
		"address":    addr.Address,
		"city":       addr.City,
		"postalCode": addr.PostalCode,
		"country":    addr.Country,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, name+" is required")
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID string, addr *domain.Address) (*domain.Address, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	addr.UserID = userID
	if addr.AddressType == "" {
		addr.AddressType = "home"
	}

	existing, err := u.addressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// First address always becomes the default. Created rows start off
	// non-default so the partial unique index cannot collide; promotion
	// happens in its own transaction.
	makeDefault := addr.IsDefault || len(existing) == 0
	addr.IsDefault = false
	if err := u.addressRepo.Create(ctx, addr); err != nil {
		return nil, err
	}
	if makeDefault {
		if err := u.addressRepo.SetDefault(ctx, userID, addr.ID); err != nil {
			return nil, err
		}
		addr.IsDefault = true
	}
	return addr, nil
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return u.addressRepo.GetByUserID(ctx, userID)
}

func (u *AddressUsecase) getOwned(ctx context.Context, userID, id string) (*domain.Address, error) {
	addr, err := u.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return addr, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID, id string, in *domain.Address) (*domain.Address, error) {
	if err := validateAddress(in); err != nil {
		return nil, err
	}
	addr, err := u.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	addr.Name = in.Name
	addr.Phone = in.Phone
	addr.Address = in.Address
	addr.City = in.City
	addr.State = in.State
	addr.PostalCode = in.PostalCode
	addr.Country = in.Country
	if in.AddressType != "" {
		addr.AddressType = in.AddressType
	}

	if err := u.addressRepo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID, id string) error {
	if _, err := u.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return u.addressRepo.Delete(ctx, id)
}

func (u *AddressUsecase) SetDefault(ctx context.Context, userID, id string) error {
	if _, err := u.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return u.addressRepo.SetDefault(ctx, userID, id)
}
