package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/utils"
)

type AuthUsecase struct {
	userRepo    domain.UserRepository
	tokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, tokenExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{userRepo: userRepo, tokenExpiry: tokenExpiry}
}

func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	var fields []string
	if strings.TrimSpace(name) == "" {
		fields = append(fields, "name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		fields = append(fields, "a valid email is required")
	}
	if len(password) < 6 {
		fields = append(fields, "password must be at least 6 characters")
	}
	if len(fields) > 0 {
		return nil, "", domain.NewValidationError(fields...)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.IsAdmin, u.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Same response for unknown email and wrong password.
		return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.IsAdmin, u.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}
