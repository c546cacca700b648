package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.SetSecret("test-secret")
	os.Exit(m.Run())
}

func TestRegisterAndLogin(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), time.Hour)

	user, token, err := uc.Register(context.Background(), "Asha", "Asha@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.False(t, user.IsAdmin)

	got, loginToken, err := uc.Login(context.Background(), "asha@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), time.Hour)

	_, _, err := uc.Register(context.Background(), "", "not-an-email", "123")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), time.Hour)

	_, _, err := uc.Register(context.Background(), "Asha", "asha@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = uc.Register(context.Background(), "Another", "asha@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLoginBadCredentials(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), time.Hour)

	_, _, err := uc.Register(context.Background(), "Asha", "asha@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = uc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
