package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/BradenHooton/reviewhub/internal/database"
	"github.com/BradenHooton/reviewhub/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `id, product_name, review, star, created_at, updated_at`

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{pool: db.Pool}
}

func scanReviewRow(scanner rowScanner) (*models.Review, error) {
	var review models.Review
	var star int16

	err := scanner.Scan(
		&review.ID, &review.ProductName, &review.Review, &star,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	review.Star = int(star)
	return &review, nil
}

func scanReviewRows(rows pgx.Rows) ([]*models.Review, error) {
	defer rows.Close()

	reviews := make([]*models.Review, 0)
	for rows.Next() {
		review, err := scanReviewRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}

// ListAll returns every review in insertion order
func (r *ReviewRepository) ListAll(ctx context.Context) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	return scanReviewRows(rows)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReviewRow(r.pool.QueryRow(ctx, query, id))
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.ID = uuid.New().String()

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	query := `
		INSERT INTO reviews (id, product_name, review, star, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns

	return scanReviewRow(r.pool.QueryRow(ctx, query,
		review.ID, review.ProductName, review.Review, review.Star, review.CreatedAt, review.UpdatedAt,
	))
}

func (r *ReviewRepository) Update(ctx context.Context, id string, review *models.Review) (*models.Review, error) {
	query := `
		UPDATE reviews SET product_name = $2, review = $3, star = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + reviewColumns

	return scanReviewRow(r.pool.QueryRow(ctx, query,
		id, review.ProductName, review.Review, review.Star, time.Now(),
	))
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
