package postgres

import (
	"context"

	"urbancart-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type cartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	q := querier(ctx, r.db)

	var cart domain.Cart
	err := q.QueryRow(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}

	rows, err := q.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
		       p.id, p.name, p.description, p.price, p.thumbnail, p.category,
		       p.count_in_stock, p.rating, p.num_reviews, p.user_id, p.created_at, p.updated_at
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`,
		cart.ID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		var p domain.Product
		var pid *string
		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&pid, &p.Name, &p.Description, &p.Price, &p.Thumbnail, &p.Category,
			&p.CountInStock, &p.Rating, &p.NumReviews, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if pid != nil {
			p.ID = *pid
			item.Product = &p
		}
		cart.Items = append(cart.Items, item)
	}
	return &cart, rows.Err()
}

func (r *cartRepository) Create(ctx context.Context, userID string) (*domain.Cart, error) {
	cart := &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	err := querier(ctx, r.db).QueryRow(ctx,
		`INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at, updated_at`, userID,
	).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return cart, nil
}

// UpsertItem merges concurrent adds of the same product without a
// read-modify-write race.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID string, quantity int, unitPrice float64) error {
	_, err := querier(ctx, r.db).Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, quantity, unitPrice)
	return translateErr(err)
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3`,
		quantity, cartID, productID)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	return translateErr(err)
}

func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	_, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return translateErr(err)
}
