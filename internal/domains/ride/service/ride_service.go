package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/domains/user"
	"drivo-backend/pkg/logger"
)

type rideService struct {
	repo     ride.Repository
	profiles profile.Service
}

func NewRideService(repo ride.Repository, profiles profile.Service) ride.Service {
	return &rideService{
		repo:     repo,
		profiles: profiles,
	}
}

// ========================================
// CREATE
// ========================================

// CreateRide runs the full request pipeline: role check, profile
// resolution, payload normalization, insert.
func (s *rideService) CreateRide(ctx context.Context, userID uuid.UUID, email, role string, req ride.CreateRideRequest) (*ride.RideResponse, error) {
	// 1. ROLE CHECK: only clients request rides
	if role != string(user.RoleClient) {
		return nil, ride.ErrForbiddenRole
	}

	// 2. PROFILE RESOLUTION (get-or-create, race-safe underneath)
	clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("resolve client profile: %w", err)
	}

	// 3. VALIDATE + NORMALIZE PAYLOAD
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pickupLat, err := ride.NormalizeCoordinate(req.PickupLatitude)
	if err != nil {
		return nil, err
	}
	pickupLon, err := ride.NormalizeCoordinate(req.PickupLongitude)
	if err != nil {
		return nil, err
	}
	dropoffLat, err := ride.NormalizeCoordinate(req.DropoffLatitude)
	if err != nil {
		return nil, err
	}
	dropoffLon, err := ride.NormalizeCoordinate(req.DropoffLongitude)
	if err != nil {
		return nil, err
	}

	fuelType, err := ride.NormalizeFuelType(req.FuelType)
	if err != nil {
		return nil, err
	}
	tripType, err := ride.NormalizeTripType(req.TripType)
	if err != nil {
		return nil, err
	}
	schedule, err := ride.CombineSchedule(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	// 4. CREATE: requested, unassigned, fare computed elsewhere
	r := &ride.Ride{
		ID:                uuid.New(),
		ClientID:          clientProfile.ID,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		PickupLatitude:    pickupLat,
		PickupLongitude:   pickupLon,
		DropoffLatitude:   dropoffLat,
		DropoffLongitude:  dropoffLon,
		ScheduledDatetime: schedule,
		VehicleType:       req.VehicleType,
		FuelType:          fuelType,
		TripType:          tripType,
		Status:            ride.StatusRequested,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	logger.Info("ride requested", map[string]interface{}{
		"ride_id":   r.ID,
		"client_id": r.ClientID,
	})

	// 5. RESULT with nested participants
	return s.buildResponse(ctx, r, clientProfile)
}

// ========================================
// QUERIES
// ========================================

func (s *rideService) ListRides(ctx context.Context, userID uuid.UUID, email, role string) ([]*ride.RideResponse, error) {
	switch role {
	case string(user.RoleClient):
		clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
		if err != nil {
			return nil, err
		}
		rides, err := s.repo.ListByClient(ctx, clientProfile.ID)
		if err != nil {
			return nil, err
		}
		return s.buildResponses(ctx, rides, clientProfile)

	case string(user.RoleDriver):
		driverProfile, err := s.profiles.GetDriverProfile(ctx, userID, email)
		if err != nil {
			return nil, err
		}
		rides, err := s.repo.ListByDriver(ctx, driverProfile.ID)
		if err != nil {
			return nil, err
		}
		return s.buildResponses(ctx, rides, nil)

	default:
		return nil, ride.ErrMissingRole
	}
}

func (s *rideService) GetRide(ctx context.Context, userID uuid.UUID, email, role string, rideID uuid.UUID) (*ride.RideResponse, error) {
	r, err := s.repo.FindByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	// Visibility: the ride's client or its assigned driver only.
	switch role {
	case string(user.RoleClient):
		clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
		if err != nil {
			return nil, err
		}
		if r.ClientID != clientProfile.ID {
			return nil, ride.ErrNotParticipant
		}
		return s.buildResponse(ctx, r, clientProfile)

	case string(user.RoleDriver):
		driverProfile, err := s.profiles.GetDriverProfile(ctx, userID, email)
		if err != nil {
			return nil, err
		}
		if r.DriverID == nil || *r.DriverID != driverProfile.ID {
			return nil, ride.ErrNotParticipant
		}
		return s.buildResponse(ctx, r, nil)

	default:
		return nil, ride.ErrMissingRole
	}
}

// ========================================
// RESPONSE ASSEMBLY
// ========================================

func clientSummary(p *profile.ClientProfile) *ride.ParticipantSummary {
	if p == nil {
		return nil
	}
	return &ride.ParticipantSummary{
		ID:          p.ID,
		FullName:    p.FullName,
		PhoneNumber: p.PhoneNumber,
		DP:          p.DP,
	}
}

func driverSummary(p *profile.DriverProfile) *ride.ParticipantSummary {
	if p == nil {
		return nil
	}
	return &ride.ParticipantSummary{
		ID:          p.ID,
		FullName:    p.FullName,
		PhoneNumber: p.PhoneNumber,
		DP:          p.DP,
	}
}

// buildResponse resolves the participants for a single ride.
// knownClient skips a lookup when the caller's own profile is the
// ride's client.
func (s *rideService) buildResponse(ctx context.Context, r *ride.Ride, knownClient *profile.ClientProfile) (*ride.RideResponse, error) {
	resp := &ride.RideResponse{Ride: *r}

	if knownClient != nil && knownClient.ID == r.ClientID {
		resp.Client = clientSummary(knownClient)
	} else {
		cp, err := s.profiles.GetClientByID(ctx, r.ClientID)
		if err != nil {
			return nil, fmt.Errorf("resolve ride client: %w", err)
		}
		resp.Client = clientSummary(cp)
	}

	if r.DriverID != nil {
		dp, err := s.profiles.GetDriverByID(ctx, *r.DriverID)
		if err != nil {
			return nil, fmt.Errorf("resolve ride driver: %w", err)
		}
		resp.Driver = driverSummary(dp)
	}

	return resp, nil
}

func (s *rideService) buildResponses(ctx context.Context, rides []*ride.Ride, knownClient *profile.ClientProfile) ([]*ride.RideResponse, error) {
	responses := make([]*ride.RideResponse, 0, len(rides))
	for _, r := range rides {
		resp, err := s.buildResponse(ctx, r, knownClient)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
