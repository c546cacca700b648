package usecase

import (
	"context"
	"testing"

	"urbancart-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestAddress() *domain.Address {
	return &domain.Address{
		Name: "Home", Phone: "555-0101", Address: "1 Main St",
		City: "Pune", State: "MH", PostalCode: "411001", Country: "IN",
	}
}

func TestAddressFirstBecomesDefault(t *testing.T) {
	uc := NewAddressUsecase(newFakeAddressRepo())

	first, err := uc.Create(context.Background(), "user-1", validTestAddress())
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := uc.Create(context.Background(), "user-1", validTestAddress())
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestAddressDefaultIsExclusive(t *testing.T) {
	repo := newFakeAddressRepo()
	uc := NewAddressUsecase(repo)

	first, err := uc.Create(context.Background(), "user-1", validTestAddress())
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), "user-1", validTestAddress())
	require.NoError(t, err)

	require.NoError(t, uc.SetDefault(context.Background(), "user-1", second.ID))

	addresses, err := uc.List(context.Background(), "user-1")
	require.NoError(t, err)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
			assert.NotEqual(t, first.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAddressCreateValidation(t *testing.T) {
	uc := NewAddressUsecase(newFakeAddressRepo())

	addr := validTestAddress()
	addr.City = ""
	addr.Country = ""

	_, err := uc.Create(context.Background(), "user-1", addr)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddressUpdateRequiresOwnership(t *testing.T) {
	uc := NewAddressUsecase(newFakeAddressRepo())

	addr, err := uc.Create(context.Background(), "user-1", validTestAddress())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "user-2", addr.ID, validTestAddress())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(context.Background(), "user-2", addr.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.SetDefault(context.Background(), "user-2", addr.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddressDeleteUnknown(t *testing.T) {
	uc := NewAddressUsecase(newFakeAddressRepo())

	err := uc.Delete(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
