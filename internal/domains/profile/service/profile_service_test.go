package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/domains/user"
)

// ======== FAKES ========

// stubRepo is an in-memory profile.Repository. createDriverErr lets tests
// simulate losing the unique-constraint race on first access.
type stubRepo struct {
	drivers map[uuid.UUID]*profile.DriverProfile // by user ID
	clients map[uuid.UUID]*profile.ClientProfile

	createDriverCalls int
	createDriverErr   error
	findDriverMisses  int // force not-found on the next N driver lookups
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		drivers: make(map[uuid.UUID]*profile.DriverProfile),
		clients: make(map[uuid.UUID]*profile.ClientProfile),
	}
}

func (r *stubRepo) CreateDriver(ctx context.Context, p *profile.DriverProfile) error {
	r.createDriverCalls++
	if r.createDriverErr != nil {
		return r.createDriverErr
	}
	if _, ok := r.drivers[p.UserID]; ok {
		return profile.ErrProfileAlreadyExists
	}
	cp := *p
	r.drivers[p.UserID] = &cp
	return nil
}

func (r *stubRepo) FindDriverByID(ctx context.Context, id uuid.UUID) (*profile.DriverProfile, error) {
	for _, p := range r.drivers {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, profile.ErrDriverProfileNotFound
}

func (r *stubRepo) FindDriverByUserID(ctx context.Context, userID uuid.UUID) (*profile.DriverProfile, error) {
	if r.findDriverMisses > 0 {
		r.findDriverMisses--
		return nil, profile.ErrDriverProfileNotFound
	}
	p, ok := r.drivers[userID]
	if !ok {
		return nil, profile.ErrDriverProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubRepo) UpdateDriver(ctx context.Context, p *profile.DriverProfile) error {
	cp := *p
	r.drivers[p.UserID] = &cp
	return nil
}

func (r *stubRepo) UpdateDriverLocation(ctx context.Context, userID uuid.UUID, lat, lon decimal.Decimal, at time.Time) error {
	p, ok := r.drivers[userID]
	if !ok {
		return profile.ErrDriverProfileNotFound
	}
	p.CurrentLatitude = decimal.NullDecimal{Decimal: lat, Valid: true}
	p.CurrentLongitude = decimal.NullDecimal{Decimal: lon, Valid: true}
	p.LastLocationUpdate = &at
	return nil
}

func (r *stubRepo) ClearStaleDriverLocations(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (r *stubRepo) CreateClient(ctx context.Context, p *profile.ClientProfile) error {
	if _, ok := r.clients[p.UserID]; ok {
		return profile.ErrProfileAlreadyExists
	}
	cp := *p
	r.clients[p.UserID] = &cp
	return nil
}

func (r *stubRepo) FindClientByID(ctx context.Context, id uuid.UUID) (*profile.ClientProfile, error) {
	for _, p := range r.clients {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, profile.ErrClientProfileNotFound
}

func (r *stubRepo) FindClientByUserID(ctx context.Context, userID uuid.UUID) (*profile.ClientProfile, error) {
	p, ok := r.clients[userID]
	if !ok {
		return nil, profile.ErrClientProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubRepo) UpdateClient(ctx context.Context, p *profile.ClientProfile) error {
	cp := *p
	r.clients[p.UserID] = &cp
	return nil
}

func (r *stubRepo) UpdateClientLocation(ctx context.Context, userID uuid.UUID, lat, lon decimal.Decimal) error {
	p, ok := r.clients[userID]
	if !ok {
		return profile.ErrClientProfileNotFound
	}
	p.Latitude = decimal.NullDecimal{Decimal: lat, Valid: true}
	p.Longitude = decimal.NullDecimal{Decimal: lon, Valid: true}
	return nil
}

func (r *stubRepo) ExistsCNIC(ctx context.Context, cnic string) (bool, error) {
	for _, p := range r.drivers {
		if p.CNIC != nil && *p.CNIC == cnic {
			return true, nil
		}
	}
	for _, p := range r.clients {
		if p.CNIC != nil && *p.CNIC == cnic {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) ExistsDrivingLicense(ctx context.Context, license string) (bool, error) {
	for _, p := range r.drivers {
		if p.DrivingLicense != nil && *p.DrivingLicense == license {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo *stubRepo) profile.Service {
	return NewProfileService(repo, nil, nil)
}

// ======== GET-OR-CREATE ========

func TestGetDriverProfileMaterializesOnFirstAccess(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	p, err := svc.GetDriverProfile(context.Background(), userID, "ali.khan@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "ali.khan", p.FullName)
	assert.Equal(t, profile.DriverStatusPending, p.Status)

	// second access returns the same row without creating again
	again, err := svc.GetDriverProfile(context.Background(), userID, "ali.khan@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, 1, repo.createDriverCalls)
}

func TestGetDriverProfileLosesCreationRace(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	// the winner commits between the loser's lookup and insert: the first
	// find misses, the insert hits the unique constraint, the re-fetch
	// returns the winner's row
	winner := &profile.DriverProfile{ID: uuid.New(), UserID: userID, FullName: "winner"}
	repo.drivers[userID] = winner
	repo.findDriverMisses = 1
	repo.createDriverErr = profile.ErrProfileAlreadyExists

	p, err := svc.GetDriverProfile(context.Background(), userID, "loser@example.com")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, p.ID)
	assert.Equal(t, "winner", p.FullName)
	assert.Equal(t, 1, repo.createDriverCalls)
}

func TestGetClientProfileMaterializesOnFirstAccess(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	p, err := svc.GetClientProfile(context.Background(), userID, "sara@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sara", p.FullName)
}

func TestEnsureProfileByRole(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	driverID, clientID := uuid.New(), uuid.New()

	require.NoError(t, svc.EnsureProfile(context.Background(), driverID, "d@example.com", user.RoleDriver))
	require.NoError(t, svc.EnsureProfile(context.Background(), clientID, "c@example.com", user.RoleClient))
	require.NoError(t, svc.EnsureProfile(context.Background(), uuid.New(), "n@example.com", user.RoleNone))

	assert.Len(t, repo.drivers, 1)
	assert.Len(t, repo.clients, 1)
}

// ======== UPDATES ========

func TestUpdateDriverProfileAppliesSubmittedFieldsOnly(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.GetDriverProfile(context.Background(), userID, "ali@example.com")
	require.NoError(t, err)

	age := 30
	p, err := svc.UpdateDriverProfile(context.Background(), userID, "ali@example.com", profile.UpdateDriverProfileRequest{
		FullName:      "Ali Khan",
		CNIC:          "35202-1234567-1",
		Age:           &age,
		LicenseExpiry: "31-12-2027",
		City:          "Lahore",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ali Khan", p.FullName)
	require.NotNil(t, p.CNIC)
	assert.Equal(t, "35202-1234567-1", *p.CNIC)
	require.NotNil(t, p.LicenseExpiry)
	assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), *p.LicenseExpiry)
	assert.Nil(t, p.PhoneNumber) // untouched field stays empty

	// a later partial update leaves earlier fields alone
	p, err = svc.UpdateDriverProfile(context.Background(), userID, "ali@example.com", profile.UpdateDriverProfileRequest{
		PhoneNumber: "+923001234567",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ali Khan", p.FullName)
	require.NotNil(t, p.PhoneNumber)
}

func TestUpdateDriverProfileRejectsBadExpiryDate(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	_, err := svc.UpdateDriverProfile(context.Background(), uuid.New(), "a@example.com", profile.UpdateDriverProfileRequest{
		LicenseExpiry: "2027-12-31",
	}, nil)
	assert.Error(t, err)
}

func TestUpdateDriverLocation(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.GetDriverProfile(context.Background(), userID, "a@example.com")
	require.NoError(t, err)

	p, err := svc.UpdateDriverLocation(context.Background(), userID, "a@example.com", profile.UpdateLocationRequest{
		Latitude:  "31.52041234567", // rounded to 6 places
		Longitude: "74.3587",
	})
	require.NoError(t, err)
	require.True(t, p.CurrentLatitude.Valid)
	assert.Equal(t, "31.520412", p.CurrentLatitude.Decimal.String())
	require.NotNil(t, p.LastLocationUpdate)
}

func TestUpdateDriverLocationMaterializesOnFirstAccess(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	// no prior GET or role selection: the location update itself is the
	// profile's first access
	p, err := svc.UpdateDriverLocation(context.Background(), userID, "fresh.driver@example.com", profile.UpdateLocationRequest{
		Latitude:  "31.5204",
		Longitude: "74.3587",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "fresh.driver", p.FullName)
	assert.Equal(t, profile.DriverStatusPending, p.Status)
	require.True(t, p.CurrentLatitude.Valid)
	assert.Equal(t, "31.5204", p.CurrentLatitude.Decimal.String())
	assert.Equal(t, 1, repo.createDriverCalls)
}

func TestUpdateClientLocationMaterializesOnFirstAccess(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	p, err := svc.UpdateClientLocation(context.Background(), userID, "fresh.client@example.com", profile.UpdateLocationRequest{
		Latitude:  "24.8607",
		Longitude: "67.0011",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh.client", p.FullName)
	require.True(t, p.Latitude.Valid)
	assert.Equal(t, "24.8607", p.Latitude.Decimal.String())
	assert.Len(t, repo.clients, 1)
}

func TestUpdateLocationRejectsOutOfRange(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.GetDriverProfile(context.Background(), userID, "a@example.com")
	require.NoError(t, err)

	_, err = svc.UpdateDriverLocation(context.Background(), userID, "a@example.com", profile.UpdateLocationRequest{
		Latitude:  "91",
		Longitude: "74",
	})
	assert.ErrorIs(t, err, profile.ErrInvalidCoordinate)

	_, err = svc.UpdateDriverLocation(context.Background(), userID, "a@example.com", profile.UpdateLocationRequest{
		Latitude:  "31",
		Longitude: "-181",
	})
	assert.ErrorIs(t, err, profile.ErrInvalidCoordinate)
}

// ======== PROBES ========

func TestCheckCNICUnique(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.GetClientProfile(context.Background(), userID, "a@example.com")
	require.NoError(t, err)
	_, err = svc.UpdateClientProfile(context.Background(), userID, "a@example.com", profile.UpdateClientProfileRequest{
		CNIC: "35202-1234567-1",
	}, nil)
	require.NoError(t, err)

	unique, err := svc.CheckCNICUnique(context.Background(), "35202-1234567-1")
	require.NoError(t, err)
	assert.False(t, unique)

	unique, err = svc.CheckCNICUnique(context.Background(), "35202-7654321-9")
	require.NoError(t, err)
	assert.True(t, unique)
}
