package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/cache"
)

const (
	defaultProductLimit = 12
	maxProductLimit     = 100
)

func productCacheKey(id string) string { return "product:" + id }

type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
}

type CatalogUsecase struct {
	productRepo domain.ProductRepository
	cache       cache.CacheService
	cacheTTL    time.Duration
}

func NewCatalogUsecase(productRepo domain.ProductRepository, cacheService cache.CacheService, cacheTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{productRepo: productRepo, cache: cacheService, cacheTTL: cacheTTL}
}

func (u *CatalogUsecase) List(ctx context.Context, filter domain.ProductFilter) (*ProductPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultProductLimit
	}
	if filter.Limit > maxProductLimit {
		filter.Limit = maxProductLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	key := fmt.Sprintf("products:%s:%s:%s:%d:%d",
		filter.Keyword, filter.Category, filter.Sort, filter.Limit, filter.Offset)
	if cached, found := u.cache.Get(key); found {
		if page, ok := cached.(*ProductPage); ok {
			return page, nil
		}
	}

	products, total, err := u.productRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{Products: products, Total: total}
	u.cache.Set(key, page, u.cacheTTL)
	return page, nil
}

func (u *CatalogUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if cached, found := u.cache.Get(productCacheKey(id)); found {
		if product, ok := cached.(*domain.Product); ok {
			return product, nil
		}
	}

	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(productCacheKey(id), product, u.cacheTTL)
	return product, nil
}

func validateProduct(p *domain.Product) error {
	var fields []string
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, "name is required")
	}
	if p.Price < 0 {
		fields = append(fields, "price must not be negative")
	}
	if p.CountInStock < 0 {
		fields = append(fields, "countInStock must not be negative")
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func (u *CatalogUsecase) Create(ctx context.Context, adminID string, product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UserID = adminID

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	u.cache.Flush()
	return product, nil
}

func (u *CatalogUsecase) Update(ctx context.Context, id string, in *domain.Product) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Category = in.Category
	product.CountInStock = in.CountInStock
	if in.Thumbnail != "" {
		product.Thumbnail = in.Thumbnail
	}

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	u.cache.Flush()
	return product, nil
}

// Delete removes the product from the catalog. Order line items keep their
// snapshots, so history stays intact.
func (u *CatalogUsecase) Delete(ctx context.Context, id string) error {
	if err := u.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.cache.Flush()
	return nil
}
