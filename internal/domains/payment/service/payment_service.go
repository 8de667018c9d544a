package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"drivo-backend/internal/domains/payment"
	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/domains/user"
)

type paymentService struct {
	repo     payment.Repository
	rides    ride.Repository
	profiles profile.Service
}

func NewPaymentService(repo payment.Repository, rides ride.Repository, profiles profile.Service) payment.Service {
	return &paymentService{
		repo:     repo,
		rides:    rides,
		profiles: profiles,
	}
}

// CreatePayment records a pending payment for one of the caller's rides.
func (s *paymentService) CreatePayment(ctx context.Context, userID uuid.UUID, email, role string, req payment.CreatePaymentRequest) (*payment.Payment, error) {
	// 1. ROLE CHECK
	if role != string(user.RoleClient) {
		return nil, payment.ErrForbiddenRole
	}

	// 2. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	method, ok := payment.ParseMethod(req.Method)
	if !ok {
		return nil, payment.ErrInvalidMethod
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, payment.ErrInvalidAmount
	}

	// 3. RESOLVE PROFILE AND RIDE OWNERSHIP
	clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("resolve client profile: %w", err)
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return nil, ride.ErrRideNotFound
	}
	r, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if r.ClientID != clientProfile.ID {
		return nil, payment.ErrNotRideOwner
	}

	// 4. CREATE: settlement flips the status elsewhere
	p := &payment.Payment{
		ID:        uuid.New(),
		RideID:    r.ID,
		ClientID:  clientProfile.ID,
		Amount:    amount.Round(2),
		Method:    method,
		Status:    payment.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID uuid.UUID, email, role string) ([]*payment.Payment, error) {
	if role != string(user.RoleClient) {
		return nil, payment.ErrForbiddenRole
	}

	clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByClient(ctx, clientProfile.ID)
}

func (s *paymentService) GetPayment(ctx context.Context, userID uuid.UUID, email, role string, paymentID uuid.UUID) (*payment.Payment, error) {
	if role != string(user.RoleClient) {
		return nil, payment.ErrForbiddenRole
	}

	clientProfile, err := s.profiles.GetClientProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.ClientID != clientProfile.ID {
		return nil, payment.ErrNotOwner
	}

	return p, nil
}
