package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"drivo-backend/internal/domains/user"
	"drivo-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresUserRepository{pool: pool}
}

// =====================================================
// USERS
// =====================================================

func (r *postgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		// 23505 = unique_violation on users.email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u := &user.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	u := &user.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *postgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	query := `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *postgresUserRepository) Activate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// =====================================================
// EMAIL OTPs
// =====================================================

func (r *postgresUserRepository) CreateOTP(ctx context.Context, otp *user.EmailOTP) error {
	query := `
		INSERT INTO email_otps (id, email, otp, created_at, is_used)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		otp.ID,
		otp.Email,
		otp.OTP,
		otp.CreatedAt,
		otp.IsUsed,
	)
	if err != nil {
		return fmt.Errorf("failed to create otp: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) FindLatestOTP(ctx context.Context, email string) (*user.EmailOTP, error) {
	query := `
		SELECT id, email, otp, created_at, is_used
		FROM email_otps
		WHERE email = $1 AND is_used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	otp := &user.EmailOTP{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&otp.ID,
		&otp.Email,
		&otp.OTP,
		&otp.CreatedAt,
		&otp.IsUsed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}

	return otp, nil
}

func (r *postgresUserRepository) ConsumeOTPAndActivate(ctx context.Context, otpID, userID uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE email_otps SET is_used = TRUE WHERE id = $1 AND is_used = FALSE`, otpID)
		if err != nil {
			return fmt.Errorf("failed to consume otp: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return user.ErrOTPAlreadyUsed
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, userID); err != nil {
			return fmt.Errorf("failed to activate user: %w", err)
		}

		return nil
	})
}

func (r *postgresUserRepository) PurgeExpiredOTPs(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `DELETE FROM email_otps WHERE is_used = TRUE OR created_at < $1`

	tag, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to purge otps: %w", err)
	}

	return tag.RowsAffected(), nil
}
