package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/domains/user"
	"drivo-backend/internal/infrastructure/storage"
	"drivo-backend/pkg/logger"
)

const licenseExpiryLayout = "02-01-2006" // DD-MM-YYYY

// ObjectStorage is the slice of the storage layer this service needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type profileService struct {
	repo      profile.Repository
	storage   ObjectStorage
	processor *storage.ImageProcessor
}

func NewProfileService(repo profile.Repository, store ObjectStorage, processor *storage.ImageProcessor) profile.Service {
	return &profileService{
		repo:      repo,
		storage:   store,
		processor: processor,
	}
}

// ========================================
// GET-OR-CREATE CORE
// ========================================

// getOrCreateDriver returns the caller's driver profile, materializing it
// on first access. Concurrent first accesses race on the user_id unique
// constraint; the loser re-fetches and returns the winner's row.
func (s *profileService) getOrCreateDriver(ctx context.Context, userID uuid.UUID, email string) (*profile.DriverProfile, error) {
	p, err := s.repo.FindDriverByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, profile.ErrDriverProfileNotFound) {
		return nil, err
	}

	now := time.Now()
	fresh := &profile.DriverProfile{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  profile.DefaultFullName(email),
		Status:    profile.DriverStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.CreateDriver(ctx, fresh)
	if err == nil {
		return fresh, nil
	}
	if errors.Is(err, profile.ErrProfileAlreadyExists) {
		// lost the race, the other request's row wins
		return s.repo.FindDriverByUserID(ctx, userID)
	}

	return nil, err
}

func (s *profileService) getOrCreateClient(ctx context.Context, userID uuid.UUID, email string) (*profile.ClientProfile, error) {
	p, err := s.repo.FindClientByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, profile.ErrClientProfileNotFound) {
		return nil, err
	}

	now := time.Now()
	fresh := &profile.ClientProfile{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  profile.DefaultFullName(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.CreateClient(ctx, fresh)
	if err == nil {
		return fresh, nil
	}
	if errors.Is(err, profile.ErrProfileAlreadyExists) {
		return s.repo.FindClientByUserID(ctx, userID)
	}

	return nil, err
}

// EnsureProfile provisions the profile matching the chosen role.
func (s *profileService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string, role user.Role) error {
	switch role {
	case user.RoleDriver:
		_, err := s.getOrCreateDriver(ctx, userID, email)
		return err
	case user.RoleClient:
		_, err := s.getOrCreateClient(ctx, userID, email)
		return err
	default:
		return nil
	}
}

// ========================================
// DRIVER PROFILE
// ========================================

func (s *profileService) GetDriverProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.DriverProfile, error) {
	return s.getOrCreateDriver(ctx, userID, email)
}

func (s *profileService) UpdateDriverProfile(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateDriverProfileRequest, dp []byte) (*profile.DriverProfile, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. RESOLVE PROFILE (first PUT may also be first access)
	p, err := s.getOrCreateDriver(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	// 3. APPLY SUBMITTED FIELDS ONLY
	if req.FullName != "" {
		p.FullName = req.FullName
	}
	if req.CNIC != "" {
		p.CNIC = &req.CNIC
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.DrivingLicense != "" {
		p.DrivingLicense = &req.DrivingLicense
	}
	if req.LicenseExpiry != "" {
		expiry, err := time.Parse(licenseExpiryLayout, req.LicenseExpiry)
		if err != nil {
			return nil, profile.ErrInvalidDate
		}
		p.LicenseExpiry = &expiry
	}
	if req.PhoneNumber != "" {
		p.PhoneNumber = &req.PhoneNumber
	}
	if req.City != "" {
		p.City = &req.City
	}

	// 4. OPTIONAL PHOTO
	if len(dp) > 0 {
		url, err := s.storeProfilePhoto(ctx, userID, dp)
		if err != nil {
			return nil, err
		}
		p.DP = &url
	}

	// 5. PERSIST
	if err := s.repo.UpdateDriver(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *profileService) UpdateDriverLocation(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateLocationRequest) (*profile.DriverProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lat, lon, err := parseCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	// A location update may be the profile's first access; materialize
	// the row before writing coordinates to it.
	if _, err := s.getOrCreateDriver(ctx, userID, email); err != nil {
		return nil, err
	}

	// Driver location updates stamp last_location_update so the stale
	// location sweep can tell live drivers from abandoned rows.
	now := time.Now()
	if err := s.repo.UpdateDriverLocation(ctx, userID, lat, lon, now); err != nil {
		return nil, err
	}

	return s.repo.FindDriverByUserID(ctx, userID)
}

// ========================================
// CLIENT PROFILE
// ========================================

func (s *profileService) GetClientProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.ClientProfile, error) {
	return s.getOrCreateClient(ctx, userID, email)
}

func (s *profileService) UpdateClientProfile(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateClientProfileRequest, dp []byte) (*profile.ClientProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.getOrCreateClient(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		p.FullName = req.FullName
	}
	if req.CNIC != "" {
		p.CNIC = &req.CNIC
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.PhoneNumber != "" {
		p.PhoneNumber = &req.PhoneNumber
	}
	if req.Address != "" {
		p.Address = &req.Address
	}

	if len(dp) > 0 {
		url, err := s.storeProfilePhoto(ctx, userID, dp)
		if err != nil {
			return nil, err
		}
		p.DP = &url
	}

	if err := s.repo.UpdateClient(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *profileService) UpdateClientLocation(ctx context.Context, userID uuid.UUID, email string, req profile.UpdateLocationRequest) (*profile.ClientProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lat, lon, err := parseCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	if _, err := s.getOrCreateClient(ctx, userID, email); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateClientLocation(ctx, userID, lat, lon); err != nil {
		return nil, err
	}

	return s.repo.FindClientByUserID(ctx, userID)
}

// ========================================
// LOOKUPS AND PROBES
// ========================================

func (s *profileService) GetDriverByID(ctx context.Context, id uuid.UUID) (*profile.DriverProfile, error) {
	return s.repo.FindDriverByID(ctx, id)
}

func (s *profileService) GetClientByID(ctx context.Context, id uuid.UUID) (*profile.ClientProfile, error) {
	return s.repo.FindClientByID(ctx, id)
}

func (s *profileService) CheckCNICUnique(ctx context.Context, cnic string) (bool, error) {
	exists, err := s.repo.ExistsCNIC(ctx, cnic)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *profileService) CheckLicenseUnique(ctx context.Context, license string) (bool, error) {
	exists, err := s.repo.ExistsDrivingLicense(ctx, license)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// ========================================
// HELPERS
// ========================================

// storeProfilePhoto validates, resizes and uploads the photo variants,
// returning the medium variant URL to persist on the profile.
func (s *profileService) storeProfilePhoto(ctx context.Context, userID uuid.UUID, data []byte) (string, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return "", fmt.Errorf("%w: %v", profile.ErrInvalidImage, err)
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", profile.ErrInvalidImage, err)
	}

	// Replacing the photo drops every old variant first.
	prefix := fmt.Sprintf("profiles/%s/", userID)
	if err := s.storage.DeleteByPrefix(ctx, prefix); err != nil {
		logger.Error("failed to delete old profile photos", err)
	}

	var mediumURL string
	for name, content := range variants {
		key := fmt.Sprintf("%sdp_%s.jpg", prefix, name)
		url, err := s.storage.Upload(ctx, key, content, "image/jpeg")
		if err != nil {
			return "", fmt.Errorf("failed to upload photo: %w", err)
		}
		if name == "medium" {
			mediumURL = url
		}
	}

	return mediumURL, nil
}

// parseCoordinates parses and bounds-checks a lat/lon pair, rounding
// half-up to 6 decimal places to match the column precision.
func parseCoordinates(latStr, lonStr string) (decimal.Decimal, decimal.Decimal, error) {
	lat, err := decimal.NewFromString(latStr)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, profile.ErrInvalidCoordinate
	}
	lon, err := decimal.NewFromString(lonStr)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, profile.ErrInvalidCoordinate
	}

	if lat.LessThan(decimal.NewFromInt(-90)) || lat.GreaterThan(decimal.NewFromInt(90)) {
		return decimal.Decimal{}, decimal.Decimal{}, profile.ErrInvalidCoordinate
	}
	if lon.LessThan(decimal.NewFromInt(-180)) || lon.GreaterThan(decimal.NewFromInt(180)) {
		return decimal.Decimal{}, decimal.Decimal{}, profile.ErrInvalidCoordinate
	}

	return lat.Round(6), lon.Round(6), nil
}
