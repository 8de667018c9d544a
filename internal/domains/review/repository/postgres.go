package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"drivo-backend/internal/domains/review"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) review.Repository {
	return &postgresReviewRepository{pool: pool}
}

const reviewColumns = `id, ride_id, client_id, driver_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*review.Review, error) {
	r := &review.Review{}
	err := row.Scan(
		&r.ID,
		&r.RideID,
		&r.ClientID,
		&r.DriverID,
		&r.Rating,
		&r.Comment,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	return r, nil
}

func (repo *postgresReviewRepository) Create(ctx context.Context, r *review.Review) error {
	query := `
		INSERT INTO reviews (id, ride_id, client_id, driver_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := repo.pool.Exec(ctx, query,
		r.ID, r.RideID, r.ClientID, r.DriverID, r.Rating, r.Comment, r.CreatedAt,
	)
	if err != nil {
		// partial unique index on (client_id, ride_id) where ride_id is set
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return review.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (repo *postgresReviewRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*review.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE driver_id = $1 ORDER BY created_at DESC`

	rows, err := repo.pool.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*review.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

func (repo *postgresReviewRepository) AverageRating(ctx context.Context, driverID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE driver_id = $1`

	var avg float64
	if err := repo.pool.QueryRow(ctx, query, driverID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	return avg, nil
}
