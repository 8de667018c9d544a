package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"drivo-backend/internal/domains/profile"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) profile.Repository {
	return &postgresProfileRepository{pool: pool}
}

// mapUniqueViolation turns a 23505 into the matching domain error,
// keyed on which constraint tripped.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "user_id"):
		return profile.ErrProfileAlreadyExists
	case strings.Contains(pgErr.ConstraintName, "cnic"):
		return profile.ErrCNICAlreadyExists
	case strings.Contains(pgErr.ConstraintName, "driving_license"):
		return profile.ErrLicenseAlreadyExists
	default:
		return profile.ErrProfileAlreadyExists
	}
}

// =====================================================
// DRIVERS
// =====================================================

const driverColumns = `
	id, user_id, full_name, cnic, age, driving_license, license_expiry,
	phone_number, city, status, dp, current_latitude, current_longitude,
	last_location_update, created_at, updated_at
`

func (r *postgresProfileRepository) scanDriver(row pgx.Row) (*profile.DriverProfile, error) {
	p := &profile.DriverProfile{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.CNIC,
		&p.Age,
		&p.DrivingLicense,
		&p.LicenseExpiry,
		&p.PhoneNumber,
		&p.City,
		&p.Status,
		&p.DP,
		&p.CurrentLatitude,
		&p.CurrentLongitude,
		&p.LastLocationUpdate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrDriverProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan driver profile: %w", err)
	}
	return p, nil
}

func (r *postgresProfileRepository) CreateDriver(ctx context.Context, p *profile.DriverProfile) error {
	query := `
		INSERT INTO driver_profiles (
			id, user_id, full_name, cnic, age, driving_license, license_expiry,
			phone_number, city, status, dp, current_latitude, current_longitude,
			last_location_update, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.FullName, p.CNIC, p.Age, p.DrivingLicense,
		p.LicenseExpiry, p.PhoneNumber, p.City, p.Status, p.DP,
		p.CurrentLatitude, p.CurrentLongitude, p.LastLocationUpdate,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create driver profile: %w", err)
	}

	return nil
}

func (r *postgresProfileRepository) FindDriverByID(ctx context.Context, id uuid.UUID) (*profile.DriverProfile, error) {
	query := `SELECT ` + driverColumns + ` FROM driver_profiles WHERE id = $1`
	return r.scanDriver(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresProfileRepository) FindDriverByUserID(ctx context.Context, userID uuid.UUID) (*profile.DriverProfile, error) {
	query := `SELECT ` + driverColumns + ` FROM driver_profiles WHERE user_id = $1`
	return r.scanDriver(r.pool.QueryRow(ctx, query, userID))
}

func (r *postgresProfileRepository) UpdateDriver(ctx context.Context, p *profile.DriverProfile) error {
	query := `
		UPDATE driver_profiles
		SET full_name = $1, cnic = $2, age = $3, driving_license = $4,
		    license_expiry = $5, phone_number = $6, city = $7, dp = $8,
		    updated_at = NOW()
		WHERE id = $9
	`

	tag, err := r.pool.Exec(ctx, query,
		p.FullName, p.CNIC, p.Age, p.DrivingLicense, p.LicenseExpiry,
		p.PhoneNumber, p.City, p.DP, p.ID,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update driver profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrDriverProfileNotFound
	}

	return nil
}

func (r *postgresProfileRepository) UpdateDriverLocation(ctx context.Context, userID uuid.UUID, lat, lon decimal.Decimal, at time.Time) error {
	query := `
		UPDATE driver_profiles
		SET current_latitude = $1, current_longitude = $2,
		    last_location_update = $3, updated_at = NOW()
		WHERE user_id = $4
	`

	tag, err := r.pool.Exec(ctx, query, lat, lon, at, userID)
	if err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrDriverProfileNotFound
	}

	return nil
}

func (r *postgresProfileRepository) ClearStaleDriverLocations(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		UPDATE driver_profiles
		SET current_latitude = NULL, current_longitude = NULL,
		    last_location_update = NULL, updated_at = NOW()
		WHERE last_location_update IS NOT NULL AND last_location_update < $1
	`

	tag, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to clear stale locations: %w", err)
	}

	return tag.RowsAffected(), nil
}

// =====================================================
// CLIENTS
// =====================================================

const clientColumns = `
	id, user_id, full_name, cnic, age, phone_number, address, dp,
	latitude, longitude, created_at, updated_at
`

func (r *postgresProfileRepository) scanClient(row pgx.Row) (*profile.ClientProfile, error) {
	p := &profile.ClientProfile{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.CNIC,
		&p.Age,
		&p.PhoneNumber,
		&p.Address,
		&p.DP,
		&p.Latitude,
		&p.Longitude,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrClientProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan client profile: %w", err)
	}
	return p, nil
}

func (r *postgresProfileRepository) CreateClient(ctx context.Context, p *profile.ClientProfile) error {
	query := `
		INSERT INTO client_profiles (
			id, user_id, full_name, cnic, age, phone_number, address, dp,
			latitude, longitude, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.FullName, p.CNIC, p.Age, p.PhoneNumber,
		p.Address, p.DP, p.Latitude, p.Longitude, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create client profile: %w", err)
	}

	return nil
}

func (r *postgresProfileRepository) FindClientByID(ctx context.Context, id uuid.UUID) (*profile.ClientProfile, error) {
	query := `SELECT ` + clientColumns + ` FROM client_profiles WHERE id = $1`
	return r.scanClient(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresProfileRepository) FindClientByUserID(ctx context.Context, userID uuid.UUID) (*profile.ClientProfile, error) {
	query := `SELECT ` + clientColumns + ` FROM client_profiles WHERE user_id = $1`
	return r.scanClient(r.pool.QueryRow(ctx, query, userID))
}

func (r *postgresProfileRepository) UpdateClient(ctx context.Context, p *profile.ClientProfile) error {
	query := `
		UPDATE client_profiles
		SET full_name = $1, cnic = $2, age = $3, phone_number = $4,
		    address = $5, dp = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := r.pool.Exec(ctx, query,
		p.FullName, p.CNIC, p.Age, p.PhoneNumber, p.Address, p.DP, p.ID,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update client profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrClientProfileNotFound
	}

	return nil
}

func (r *postgresProfileRepository) UpdateClientLocation(ctx context.Context, userID uuid.UUID, lat, lon decimal.Decimal) error {
	query := `
		UPDATE client_profiles
		SET latitude = $1, longitude = $2, updated_at = NOW()
		WHERE user_id = $3
	`

	tag, err := r.pool.Exec(ctx, query, lat, lon, userID)
	if err != nil {
		return fmt.Errorf("failed to update client location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrClientProfileNotFound
	}

	return nil
}

// =====================================================
// UNIQUENESS PROBES
// =====================================================

func (r *postgresProfileRepository) ExistsCNIC(ctx context.Context, cnic string) (bool, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM driver_profiles WHERE cnic = $1)
		    OR EXISTS(SELECT 1 FROM client_profiles WHERE cnic = $1)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, cnic).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cnic: %w", err)
	}

	return exists, nil
}

func (r *postgresProfileRepository) ExistsDrivingLicense(ctx context.Context, license string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM driver_profiles WHERE driving_license = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, license).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check driving license: %w", err)
	}

	return exists, nil
}
