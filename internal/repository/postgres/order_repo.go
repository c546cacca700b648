package postgres

import (
	"context"
	"time"

	"urbancart-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, shipping_address_id, payment_method, items_price, shipping_price,
	total_price, status, is_paid, paid_at, is_delivered, delivered_at,
	payment_result_id, payment_result_status, payment_result_update_time, payment_result_email,
	checkout_session_id, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }, o *domain.Order) error {
	var resID, resStatus, resUpdateTime, resEmail, sessionID *string
	err := row.Scan(&o.ID, &o.UserID, &o.ShippingAddressID, &o.PaymentMethod,
		&o.ItemsPrice, &o.ShippingPrice, &o.TotalPrice, &o.Status,
		&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt,
		&resID, &resStatus, &resUpdateTime, &resEmail,
		&sessionID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}
	if sessionID != nil {
		o.CheckoutSessionID = *sessionID
	}
	if resID != nil {
		o.PaymentResult = &domain.PaymentResult{ID: *resID}
		if resStatus != nil {
			o.PaymentResult.Status = *resStatus
		}
		if resUpdateTime != nil {
			o.PaymentResult.UpdateTime = *resUpdateTime
		}
		if resEmail != nil {
			o.PaymentResult.EmailAddress = *resEmail
		}
	}
	return nil
}

// Create inserts the order header and its line-item snapshots. Callers run it
// inside TransactionManager.Do so the cart clear commits atomically with it.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	q := querier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO orders (user_id, shipping_address_id, payment_method, items_price, shipping_price, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		order.UserID, order.ShippingAddressID, order.PaymentMethod,
		order.ItemsPrice, order.ShippingPrice, order.TotalPrice, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return translateErr(err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := q.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, name, thumbnail, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			order.ID, item.ProductID, item.Name, item.Thumbnail, item.Quantity, item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return translateErr(err)
		}
	}
	return nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := querier(ctx, r.db).Query(ctx, `
		SELECT id, order_id, product_id, name, thumbnail, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`,
		orderIDs)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Thumbnail, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err := scanOrder(row, &o); err != nil {
		return nil, translateErr(err)
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return &o, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachItems(ctx, orders)
}

func (r *orderRepository) GetAll(ctx context.Context, page, limit int) ([]domain.Order, int64, error) {
	var total int64
	if err := querier(ctx, r.db).QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	offset := (page - 1) * limit
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	orders, err = r.attachItems(ctx, orders)
	return orders, total, err
}

func (r *orderRepository) attachItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2`,
		status, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id string, isPaid bool, paidAt *time.Time, result *domain.PaymentResult) error {
	var resID, resStatus, resUpdateTime, resEmail *string
	if result != nil {
		resID, resStatus, resUpdateTime = &result.ID, &result.Status, &result.UpdateTime
		if result.EmailAddress != "" {
			resEmail = &result.EmailAddress
		}
	}
	tag, err := querier(ctx, r.db).Exec(ctx, `
		UPDATE orders
		SET is_paid = $1, paid_at = $2,
		    payment_result_id = $3, payment_result_status = $4,
		    payment_result_update_time = $5, payment_result_email = $6,
		    updated_at = now()
		WHERE id = $7`,
		isPaid, paidAt, resID, resStatus, resUpdateTime, resEmail, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE orders SET checkout_session_id = $1, updated_at = now() WHERE id = $2`, sessionID, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	var o domain.Order
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE checkout_session_id = $1`, sessionID)
	if err := scanOrder(row, &o); err != nil {
		return nil, translateErr(err)
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return &o, nil
}
