package postgres

import (
	"context"
	"fmt"
	"strings"

	"urbancart-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, thumbnail, category, count_in_stock, rating, num_reviews, user_id, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Thumbnail, &p.Category,
		&p.CountInStock, &p.Rating, &p.NumReviews, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	err := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO products (name, description, price, thumbnail, category, count_in_stock, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, rating, num_reviews, created_at, updated_at`,
		product.Name, product.Description, product.Price, product.Thumbnail,
		product.Category, product.CountInStock, product.UserID,
	).Scan(&product.ID, &product.Rating, &product.NumReviews, &product.CreatedAt, &product.UpdatedAt)
	return translateErr(err)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err := scanProduct(row, &p); err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *productRepository) GetAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	var conds []string
	var args []any

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := querier(ctx, r.db).QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	orderBy := "created_at DESC"
	switch filter.Sort {
	case "price_asc":
		orderBy = "price ASC"
	case "price_desc":
		orderBy = "price DESC"
	case "rating":
		orderBy = "rating DESC, num_reviews DESC"
	}

	args = append(args, filter.Limit)
	limitIdx := len(args)
	args = append(args, filter.Offset)
	offsetIdx := len(args)

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, limitIdx, offsetIdx)

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, thumbnail = $4,
		    category = $5, count_in_stock = $6, updated_at = now()
		WHERE id = $7`,
		product.Name, product.Description, product.Price, product.Thumbnail,
		product.Category, product.CountInStock, product.ID)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateRating(ctx context.Context, id string, rating float64, numReviews int) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `
		UPDATE products SET rating = $1, num_reviews = $2, updated_at = now() WHERE id = $3`,
		rating, numReviews, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
