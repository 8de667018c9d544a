package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/domains/review"
	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/domains/user"
)

type reviewService struct {
	repo     review.Repository
	rides    ride.Repository
	profiles profile.Service
}

func NewReviewService(repo review.Repository, rides ride.Repository, profiles profile.Service) review.Service {
	return &reviewService{
		repo:     repo,
		rides:    rides,
		profiles: profiles,
	}
}

// CreateReview stores a client's rating of a driver. When a ride is
// referenced it must belong to the caller; the partial unique index
// keeps it at one review per ride.
func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, email, role string, req review.CreateReviewRequest) (*review.Review, error) {
	// 1. ROLE CHECK
	if role != string(user.RoleClient) {
		return nil, review.ErrForbiddenRole
	}

	// 2. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, review.ErrInvalidRating
	}

	// 3. RESOLVE PARTICIPANTS
	clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("resolve client profile: %w", err)
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return nil, review.ErrDriverNotFound
	}
	if _, err := s.profiles.GetDriverByID(ctx, driverID); err != nil {
		if errors.Is(err, profile.ErrDriverProfileNotFound) {
			return nil, review.ErrDriverNotFound
		}
		return nil, err
	}

	// 4. OPTIONAL RIDE REFERENCE, must be the caller's own
	var rideID *uuid.UUID
	if req.RideID != "" {
		id, err := uuid.Parse(req.RideID)
		if err != nil {
			return nil, ride.ErrRideNotFound
		}
		r, err := s.rides.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if r.ClientID != clientProfile.ID {
			return nil, review.ErrNotRideOwner
		}
		rideID = &r.ID
	}

	// 5. CREATE
	rev := &review.Review{
		ID:        uuid.New(),
		RideID:    rideID,
		ClientID:  clientProfile.ID,
		DriverID:  driverID,
		Rating:    req.Rating,
		CreatedAt: time.Now(),
	}
	if req.Comment != "" {
		rev.Comment = &req.Comment
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}

	return rev, nil
}

func (s *reviewService) GetDriverReviews(ctx context.Context, driverID uuid.UUID) (*review.DriverReviews, error) {
	if _, err := s.profiles.GetDriverByID(ctx, driverID); err != nil {
		if errors.Is(err, profile.ErrDriverProfileNotFound) {
			return nil, review.ErrDriverNotFound
		}
		return nil, err
	}

	reviews, err := s.repo.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	avg, err := s.repo.AverageRating(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return &review.DriverReviews{
		Reviews:       reviews,
		AverageRating: avg,
		Count:         len(reviews),
	}, nil
}
