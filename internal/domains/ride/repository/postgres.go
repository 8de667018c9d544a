package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"drivo-backend/internal/domains/ride"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRideRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ride.Repository {
	return &postgresRideRepository{pool: pool}
}

const rideColumns = `
	id, client_id, driver_id, pickup_location, dropoff_location,
	pickup_latitude, pickup_longitude, dropoff_latitude, dropoff_longitude,
	scheduled_datetime, vehicle_type, fuel_type, trip_type, fare, status,
	created_at
`

func scanRide(row pgx.Row) (*ride.Ride, error) {
	r := &ride.Ride{}
	err := row.Scan(
		&r.ID,
		&r.ClientID,
		&r.DriverID,
		&r.PickupLocation,
		&r.DropoffLocation,
		&r.PickupLatitude,
		&r.PickupLongitude,
		&r.DropoffLatitude,
		&r.DropoffLongitude,
		&r.ScheduledDatetime,
		&r.VehicleType,
		&r.FuelType,
		&r.TripType,
		&r.Fare,
		&r.Status,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ride.ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to scan ride: %w", err)
	}
	return r, nil
}

func (repo *postgresRideRepository) Create(ctx context.Context, r *ride.Ride) error {
	query := `
		INSERT INTO rides (
			id, client_id, driver_id, pickup_location, dropoff_location,
			pickup_latitude, pickup_longitude, dropoff_latitude,
			dropoff_longitude, scheduled_datetime, vehicle_type, fuel_type,
			trip_type, fare, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := repo.pool.Exec(ctx, query,
		r.ID, r.ClientID, r.DriverID, r.PickupLocation, r.DropoffLocation,
		r.PickupLatitude, r.PickupLongitude, r.DropoffLatitude,
		r.DropoffLongitude, r.ScheduledDatetime, r.VehicleType, r.FuelType,
		r.TripType, r.Fare, r.Status, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (repo *postgresRideRepository) FindByID(ctx context.Context, id uuid.UUID) (*ride.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	return scanRide(repo.pool.QueryRow(ctx, query, id))
}

func (repo *postgresRideRepository) listBy(ctx context.Context, column string, id uuid.UUID) ([]*ride.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE ` + column + ` = $1 ORDER BY created_at DESC`

	rows, err := repo.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	defer rows.Close()

	rides := []*ride.Ride{}
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rides: %w", err)
	}

	return rides, nil
}

func (repo *postgresRideRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*ride.Ride, error) {
	return repo.listBy(ctx, "client_id", clientID)
}

func (repo *postgresRideRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*ride.Ride, error) {
	return repo.listBy(ctx, "driver_id", driverID)
}
