package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/cache"
	"urbancart-backend/pkg/logger"
)

type ReviewUsecase struct {
	reviewRepo  domain.ReviewRepository
	productRepo domain.ProductRepository
	orderRepo   domain.OrderRepository
	cache       cache.CacheService
}

func NewReviewUsecase(
	reviewRepo domain.ReviewRepository,
	productRepo domain.ProductRepository,
	orderRepo domain.OrderRepository,
	cacheService cache.CacheService,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cache:       cacheService,
	}
}

func validateReviewInput(rating int, comment string) error {
	var fields []string
	if rating < 1 || rating > 5 {
		fields = append(fields, "rating must be between 1 and 5")
	}
	length := utf8.RuneCountInString(strings.TrimSpace(comment))
	if length < 10 || length > 500 {
		fields = append(fields, "comment must be between 10 and 500 characters")
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func (u *ReviewUsecase) Create(ctx context.Context, userID, productID string, rating int, comment string) (*domain.Review, error) {
	if err := validateReviewInput(rating, comment); err != nil {
		return nil, err
	}
	if _, err := u.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:             userID,
		ProductID:          productID,
		Rating:             rating,
		Comment:            strings.TrimSpace(comment),
		Status:             domain.ReviewStatusActive,
		IsVerifiedPurchase: u.hasPurchased(ctx, userID, productID),
	}
	if err := u.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := u.recomputeAggregates(ctx, productID); err != nil {
		return nil, err
	}
	return review, nil
}

func (u *ReviewUsecase) hasPurchased(ctx context.Context, userID, productID string) bool {
	orders, err := u.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("verified purchase check failed")
		return false
	}
	for _, order := range orders {
		if !order.IsPaid {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}

func (u *ReviewUsecase) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	return u.reviewRepo.GetByID(ctx, id)
}

func (u *ReviewUsecase) GetByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return u.reviewRepo.GetByProductID(ctx, productID)
}

func (u *ReviewUsecase) GetMine(ctx context.Context, userID string) ([]domain.Review, error) {
	return u.reviewRepo.GetByUserID(ctx, userID)
}

func (u *ReviewUsecase) GetTop(ctx context.Context, limit int) ([]domain.Review, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	return u.reviewRepo.GetTop(ctx, limit)
}

func (u *ReviewUsecase) GetAll(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return u.reviewRepo.GetAll(ctx, filter)
}

func (u *ReviewUsecase) getEditable(ctx context.Context, userID string, isAdmin bool, reviewID string) (*domain.Review, error) {
	review, err := u.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID && !isAdmin {
		return nil, domain.ErrForbidden
	}
	return review, nil
}

func (u *ReviewUsecase) Update(ctx context.Context, userID string, isAdmin bool, reviewID string, rating int, comment string) (*domain.Review, error) {
	if err := validateReviewInput(rating, comment); err != nil {
		return nil, err
	}
	review, err := u.getEditable(ctx, userID, isAdmin, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = strings.TrimSpace(comment)
	if err := u.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := u.recomputeAggregates(ctx, review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

func (u *ReviewUsecase) Delete(ctx context.Context, userID string, isAdmin bool, reviewID string) error {
	review, err := u.getEditable(ctx, userID, isAdmin, reviewID)
	if err != nil {
		return err
	}
	if err := u.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	return u.recomputeAggregates(ctx, review.ProductID)
}

// SetStatus is the admin moderation hook. Status changes do not affect the
// aggregates: every stored review counts toward rating and numReviews until
// it is deleted.
func (u *ReviewUsecase) SetStatus(ctx context.Context, reviewID, status string) (*domain.Review, error) {
	switch status {
	case domain.ReviewStatusActive, domain.ReviewStatusFlagged, domain.ReviewStatusRemoved:
	default:
		return nil, domain.NewValidationError("status must be one of active, flagged, removed")
	}

	review, err := u.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.Status = status
	if err := u.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// recomputeAggregates recalculates the product's rating mean and review count
// from all stored reviews and invalidates the cached product.
func (u *ReviewUsecase) recomputeAggregates(ctx context.Context, productID string) error {
	reviews, err := u.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return err
	}

	rating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	if err := u.productRepo.UpdateRating(ctx, productID, rating, len(reviews)); err != nil {
		return err
	}

	u.cache.Delete(productCacheKey(productID))
	return nil
}
