package postgres

import (
	"context"

	"urbancart-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type addressRepository struct {
	db *pgxpool.Pool
	tm domain.TransactionManager
}

func NewAddressRepository(db *pgxpool.Pool, tm domain.TransactionManager) domain.AddressRepository {
	return &addressRepository{db: db, tm: tm}
}

const addressColumns = `id, user_id, name, phone, address, city, state, postal_code, country, address_type, is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(dest ...any) error }, a *domain.Address) error {
	return row.Scan(&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Address, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.AddressType, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
}

func (r *addressRepository) Create(ctx context.Context, addr *domain.Address) error {
	err := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO addresses (user_id, name, phone, address, city, state, postal_code, country, address_type, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		addr.UserID, addr.Name, addr.Phone, addr.Address, addr.City, addr.State,
		addr.PostalCode, addr.Country, addr.AddressType, addr.IsDefault,
	).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt)
	return translateErr(err)
}

func (r *addressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	var a domain.Address
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	if err := scanAddress(row, &a); err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *addressRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *addressRepository) Update(ctx context.Context, addr *domain.Address) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `
		UPDATE addresses
		SET name = $1, phone = $2, address = $3, city = $4, state = $5,
		    postal_code = $6, country = $7, address_type = $8, updated_at = now()
		WHERE id = $9`,
		addr.Name, addr.Phone, addr.Address, addr.City, addr.State,
		addr.PostalCode, addr.Country, addr.AddressType, addr.ID)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id string) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault clears the previous default before setting the new one so the
// partial unique index never trips mid-flight.
func (r *addressRepository) SetDefault(ctx context.Context, userID, id string) error {
	return r.tm.Do(ctx, func(ctx context.Context) error {
		q := querier(ctx, r.db)
		if _, err := q.Exec(ctx,
			`UPDATE addresses SET is_default = FALSE, updated_at = now() WHERE user_id = $1 AND is_default`, userID); err != nil {
			return translateErr(err)
		}
		tag, err := q.Exec(ctx,
			`UPDATE addresses SET is_default = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return translateErr(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
