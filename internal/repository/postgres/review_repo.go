package postgres

import (
	"context"
	"fmt"

	"urbancart-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type reviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `r.id, r.user_id, r.product_id, r.rating, r.comment, r.status,
	r.is_verified_purchase, r.helpful_votes, r.report_count, r.created_at, r.updated_at,
	u.name`

func scanReview(row interface{ Scan(dest ...any) error }, rv *domain.Review) error {
	var userName *string
	err := row.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.Status,
		&rv.IsVerifiedPurchase, &rv.HelpfulVotes, &rv.ReportCount, &rv.CreatedAt, &rv.UpdatedAt,
		&userName)
	if err != nil {
		return err
	}
	if userName != nil {
		rv.User = &domain.User{ID: rv.UserID, Name: *userName}
	}
	return nil
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, comment, status, is_verified_purchase)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		review.UserID, review.ProductID, review.Rating, review.Comment,
		review.Status, review.IsVerifiedPurchase,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	return translateErr(err)
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var rv domain.Review
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews r LEFT JOIN users u ON u.id = r.user_id WHERE r.id = $1`, id)
	if err := scanReview(row, &rv); err != nil {
		return nil, translateErr(err)
	}
	return &rv, nil
}

func (r *reviewRepository) GetAll(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	where := ""
	var args []any
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		where = " WHERE r.comment ILIKE $1"
	}

	var total int64
	if err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT count(*) FROM reviews r`+where, args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	args = append(args, filter.Limit)
	limitIdx := len(args)
	args = append(args, filter.Offset)
	offsetIdx := len(args)

	query := fmt.Sprintf(`SELECT %s FROM reviews r LEFT JOIN users u ON u.id = r.user_id%s
		ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`,
		reviewColumns, where, limitIdx, offsetIdx)

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *reviewRepository) GetByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	return r.list(ctx,
		`SELECT `+reviewColumns+` FROM reviews r LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.product_id = $1 ORDER BY r.created_at DESC`, productID)
}

func (r *reviewRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.list(ctx,
		`SELECT `+reviewColumns+` FROM reviews r LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

func (r *reviewRepository) GetTop(ctx context.Context, limit int) ([]domain.Review, error) {
	return r.list(ctx,
		`SELECT `+reviewColumns+` FROM reviews r LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.status = 'active'
		 ORDER BY r.rating DESC, r.helpful_votes DESC, r.created_at DESC LIMIT $1`, limit)
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `
		UPDATE reviews
		SET rating = $1, comment = $2, status = $3,
		    helpful_votes = $4, report_count = $5, updated_at = now()
		WHERE id = $6`,
		review.Rating, review.Comment, review.Status,
		review.HelpfulVotes, review.ReportCount, review.ID)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
