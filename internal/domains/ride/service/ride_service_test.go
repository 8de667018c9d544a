package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/domains/user"
)

// ======== FAKES ========

type stubRideRepo struct {
	rides map[uuid.UUID]*ride.Ride
}

func newStubRideRepo() *stubRideRepo {
	return &stubRideRepo{rides: make(map[uuid.UUID]*ride.Ride)}
}

func (r *stubRideRepo) Create(ctx context.Context, rd *ride.Ride) error {
	cp := *rd
	r.rides[rd.ID] = &cp
	return nil
}

func (r *stubRideRepo) FindByID(ctx context.Context, id uuid.UUID) (*ride.Ride, error) {
	rd, ok := r.rides[id]
	if !ok {
		return nil, ride.ErrRideNotFound
	}
	cp := *rd
	return &cp, nil
}

func (r *stubRideRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*ride.Ride, error) {
	var out []*ride.Ride
	for _, rd := range r.rides {
		if rd.ClientID == clientID {
			cp := *rd
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubRideRepo) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*ride.Ride, error) {
	var out []*ride.Ride
	for _, rd := range r.rides {
		if rd.DriverID != nil && *rd.DriverID == driverID {
			cp := *rd
			out = append(out, &cp)
		}
	}
	return out, nil
}

// stubProfiles resolves every user to a fixed pair of profiles.
type stubProfiles struct {
	client *profile.ClientProfile
	driver *profile.DriverProfile
}

func (s *stubProfiles) EnsureProfile(ctx context.Context, userID uuid.UUID, email string, role user.Role) error {
	return nil
}

func (s *stubProfiles) GetDriverProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.DriverProfile, error) {
	return s.driver, nil
}

func (s *stubProfiles) UpdateDriverProfile(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateDriverProfileRequest, dp []byte) (*profile.DriverProfile, error) {
	return s.driver, nil
}

func (s *stubProfiles) UpdateDriverLocation(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateLocationRequest) (*profile.DriverProfile, error) {
	return s.driver, nil
}

func (s *stubProfiles) GetClientProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.ClientProfile, error) {
	return s.client, nil
}

func (s *stubProfiles) UpdateClientProfile(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateClientProfileRequest, dp []byte) (*profile.ClientProfile, error) {
	return s.client, nil
}

func (s *stubProfiles) UpdateClientLocation(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateLocationRequest) (*profile.ClientProfile, error) {
	return s.client, nil
}

func (s *stubProfiles) GetDriverByID(ctx context.Context, id uuid.UUID) (*profile.DriverProfile, error) {
	if s.driver != nil && s.driver.ID == id {
		return s.driver, nil
	}
	return nil, profile.ErrDriverProfileNotFound
}

func (s *stubProfiles) GetClientByID(ctx context.Context, id uuid.UUID) (*profile.ClientProfile, error) {
	if s.client != nil && s.client.ID == id {
		return s.client, nil
	}
	return nil, profile.ErrClientProfileNotFound
}

func (s *stubProfiles) CheckCNICUnique(ctx context.Context, cnic string) (bool, error) {
	return true, nil
}

func (s *stubProfiles) CheckLicenseUnique(ctx context.Context, license string) (bool, error) {
	return true, nil
}

func testProfiles() *stubProfiles {
	return &stubProfiles{
		client: &profile.ClientProfile{ID: uuid.New(), UserID: uuid.New(), FullName: "client one"},
		driver: &profile.DriverProfile{ID: uuid.New(), UserID: uuid.New(), FullName: "driver one"},
	}
}

func validRequest() ride.CreateRideRequest {
	return ride.CreateRideRequest{
		PickupLocation:  "Mall Road, Lahore",
		DropoffLocation: "Liberty Market, Lahore",
		PickupLatitude:  "31.5204",
		PickupLongitude: "74.3587",
		FuelType:        "Petrol",
		TripType:        "one_way",
		Date:            "25-12-2026",
		Time:            "09:30 AM",
	}
}

// ======== CREATE ========

func TestCreateRide(t *testing.T) {
	repo := newStubRideRepo()
	profiles := testProfiles()
	svc := NewRideService(repo, profiles)

	resp, err := svc.CreateRide(context.Background(), uuid.New(), "c@example.com", "client", validRequest())
	require.NoError(t, err)

	assert.Equal(t, ride.StatusRequested, resp.Status)
	assert.Nil(t, resp.Ride.DriverID)
	assert.Equal(t, profiles.client.ID, resp.Ride.ClientID)
	assert.Equal(t, ride.FuelPetrol, resp.FuelType)
	assert.Equal(t, ride.TripOneWay, resp.TripType)
	require.NotNil(t, resp.ScheduledDatetime)
	require.NotNil(t, resp.Client)
	assert.Equal(t, "client one", resp.Client.FullName)
	assert.Nil(t, resp.Driver)
	assert.Len(t, repo.rides, 1)
}

func TestCreateRideRejectsNonClients(t *testing.T) {
	svc := NewRideService(newStubRideRepo(), testProfiles())

	_, err := svc.CreateRide(context.Background(), uuid.New(), "d@example.com", "driver", validRequest())
	assert.ErrorIs(t, err, ride.ErrForbiddenRole)

	_, err = svc.CreateRide(context.Background(), uuid.New(), "n@example.com", "none", validRequest())
	assert.ErrorIs(t, err, ride.ErrForbiddenRole)
}

func TestCreateRideRejectsBadPayload(t *testing.T) {
	svc := NewRideService(newStubRideRepo(), testProfiles())
	ctx := context.Background()
	id := uuid.New()

	req := validRequest()
	req.PickupLatitude = "north"
	_, err := svc.CreateRide(ctx, id, "c@example.com", "client", req)
	assert.ErrorIs(t, err, ride.ErrInvalidCoordinate)

	req = validRequest()
	req.FuelType = "coal"
	_, err = svc.CreateRide(ctx, id, "c@example.com", "client", req)
	assert.ErrorIs(t, err, ride.ErrInvalidFuelType)

	req = validRequest()
	req.Time = ""
	_, err = svc.CreateRide(ctx, id, "c@example.com", "client", req)
	assert.ErrorIs(t, err, ride.ErrInvalidDateTime)

	req = validRequest()
	req.DropoffLocation = ""
	_, err = svc.CreateRide(ctx, id, "c@example.com", "client", req)
	assert.Error(t, err)
}

// ======== VISIBILITY ========

func TestGetRideVisibility(t *testing.T) {
	repo := newStubRideRepo()
	profiles := testProfiles()
	svc := NewRideService(repo, profiles)

	created, err := svc.CreateRide(context.Background(), uuid.New(), "c@example.com", "client", validRequest())
	require.NoError(t, err)
	rideID := created.Ride.ID

	t.Run("owning client sees it", func(t *testing.T) {
		resp, err := svc.GetRide(context.Background(), uuid.New(), "c@example.com", "client", rideID)
		require.NoError(t, err)
		assert.Equal(t, rideID, resp.Ride.ID)
	})

	t.Run("unassigned driver does not", func(t *testing.T) {
		_, err := svc.GetRide(context.Background(), uuid.New(), "d@example.com", "driver", rideID)
		assert.ErrorIs(t, err, ride.ErrNotParticipant)
	})

	t.Run("assigned driver sees it", func(t *testing.T) {
		repo.rides[rideID].DriverID = &profiles.driver.ID

		resp, err := svc.GetRide(context.Background(), uuid.New(), "d@example.com", "driver", rideID)
		require.NoError(t, err)
		require.NotNil(t, resp.Driver)
		assert.Equal(t, "driver one", resp.Driver.FullName)
	})

	t.Run("no role", func(t *testing.T) {
		_, err := svc.GetRide(context.Background(), uuid.New(), "n@example.com", "none", rideID)
		assert.ErrorIs(t, err, ride.ErrMissingRole)
	})

	t.Run("unknown ride", func(t *testing.T) {
		_, err := svc.GetRide(context.Background(), uuid.New(), "c@example.com", "client", uuid.New())
		assert.ErrorIs(t, err, ride.ErrRideNotFound)
	})
}

func TestListRidesScopedToCaller(t *testing.T) {
	repo := newStubRideRepo()
	profiles := testProfiles()
	svc := NewRideService(repo, profiles)

	_, err := svc.CreateRide(context.Background(), uuid.New(), "c@example.com", "client", validRequest())
	require.NoError(t, err)
	_, err = svc.CreateRide(context.Background(), uuid.New(), "c@example.com", "client", validRequest())
	require.NoError(t, err)

	clientRides, err := svc.ListRides(context.Background(), uuid.New(), "c@example.com", "client")
	require.NoError(t, err)
	assert.Len(t, clientRides, 2)

	// nothing assigned to the driver yet
	driverRides, err := svc.ListRides(context.Background(), uuid.New(), "d@example.com", "driver")
	require.NoError(t, err)
	assert.Empty(t, driverRides)

	_, err = svc.ListRides(context.Background(), uuid.New(), "n@example.com", "none")
	assert.ErrorIs(t, err, ride.ErrMissingRole)
}
