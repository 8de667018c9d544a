package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"drivo-backend/internal/domains/user"
	"drivo-backend/internal/infrastructure/email"
	"drivo-backend/pkg/cache"
	"drivo-backend/pkg/jwt"
)

// Resend throttling: at most maxResends codes per throttleWindow per email.
const (
	resendThrottleWindow = 10 * time.Minute
	maxResends           = 3
)

// userService implements user.Service
type userService struct {
	repo        user.Repository
	jwtManager  *jwt.Manager
	emailSvc    email.EmailService
	cache       cache.Cache
	provisioner user.ProfileProvisioner
}

func NewUserService(
	repo user.Repository,
	jwtManager *jwt.Manager,
	emailSvc email.EmailService,
	c cache.Cache,
	provisioner user.ProfileProvisioner,
) user.Service {
	return &userService{
		repo:        repo,
		jwtManager:  jwtManager,
		emailSvc:    emailSvc,
		cache:       c,
		provisioner: provisioner,
	}
}

// ========================================
// SIGNUP + OTP
// ========================================

// Signup creates an inactive account and mails a verification code.
// An email send failure fails the whole request: silently dropping the
// OTP would strand the user with an account they cannot activate.
func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: email must be unique
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD (bcrypt cost 12)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. CREATE USER ENTITY (inactive until OTP verified)
	role := user.RoleNone
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         role,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. PERSIST (a concurrent signup with the same email loses on the
	// unique constraint and surfaces as ErrEmailAlreadyExists)
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// 6. ISSUE AND SEND OTP
	if err := s.issueOTP(ctx, newUser.Email); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

// VerifyOTP activates the account and returns a token pair.
func (s *userService) VerifyOTP(ctx context.Context, req user.VerifyOTPRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. LATEST UNUSED CODE FOR THIS EMAIL
	otp, err := s.repo.FindLatestOTP(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	// 3. EXPIRY CHECK: expired codes are permanently invalid
	if otp.IsExpired(time.Now()) {
		return nil, user.ErrOTPExpired
	}

	// 4. CODE MATCH (constant-time, the code is a short-lived secret)
	if subtle.ConstantTimeCompare([]byte(otp.OTP), []byte(req.OTP)) != 1 {
		return nil, user.ErrOTPInvalid
	}

	// 5. CONSUME THE CODE AND ACTIVATE, atomically
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ConsumeOTPAndActivate(ctx, otp.ID, u.ID); err != nil {
		return nil, err
	}
	u.IsActive = true

	// 6. ISSUE TOKENS
	return s.buildLoginResponse(u)
}

// ResendOTP mails a fresh code; throttled per email via the cache.
func (s *userService) ResendOTP(ctx context.Context, req user.ResendOTPRequest) error {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return err
	}

	// 2. USER MUST EXIST AND STILL BE UNVERIFIED
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if u.IsActive {
		return nil // already verified, nothing to resend
	}

	// 3. THROTTLE
	key := "otp_resend_" + req.Email
	count, err := s.cache.Increment(ctx, key)
	if err == nil {
		if count == 1 {
			_ = s.cache.Expire(ctx, key, resendThrottleWindow)
		}
		if count > maxResends {
			return user.ErrTooManyResends
		}
	}
	// cache errors fall through: throttling is best-effort, the mail is not

	// 4. ISSUE AND SEND
	return s.issueOTP(ctx, req.Email)
}

// issueOTP creates a 6-digit code, persists it and mails it.
func (s *userService) issueOTP(ctx context.Context, emailAddr string) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	otp := &user.EmailOTP{
		ID:        uuid.New(),
		Email:     emailAddr,
		OTP:       code,
		CreatedAt: time.Now(),
		IsUsed:    false,
	}
	if err := s.repo.CreateOTP(ctx, otp); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	err = s.emailSvc.SendOTPEmail(ctx, email.OTPEmailData{
		Email:     emailAddr,
		OTP:       code,
		ExpiresIn: "5 minutes",
	})
	if err != nil {
		return fmt.Errorf("%w: %v", user.ErrEmailSendFailed, err)
	}

	return nil
}

// ========================================
// LOGIN / TOKENS
// ========================================

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. FIND USER, without revealing whether the email exists
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 3. STATUS: only verified accounts may log in
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	// 4. PASSWORD (constant-time comparison)
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 5. TOKENS
	return s.buildLoginResponse(u)
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.buildLoginResponse(u)
}

func (s *userService) buildLoginResponse(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	dto := u.ToDTO()
	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         dto,
	}, nil
}

// ========================================
// ROLE TRANSITION
// ========================================

// SetRole updates the role and provisions the matching profile.
// This is the explicit replacement for the legacy save-hook that created
// profiles as a side effect of flipping a boolean.
func (s *userService) SetRole(ctx context.Context, userID uuid.UUID, req user.SetRoleRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, ok := user.ParseRole(req.Role)
	if !ok || role == user.RoleNone {
		return nil, user.ErrInvalidRole
	}

	// 2. USER MUST EXIST
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. UPDATE ROLE
	if u.Role != role {
		if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
			return nil, err
		}
		u.Role = role
	}

	// 4. PROVISION THE PROFILE (idempotent get-or-create underneath)
	if err := s.provisioner.EnsureProfile(ctx, userID, u.Email, role); err != nil {
		return nil, fmt.Errorf("provision %s profile: %w", role, err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// QUERIES
// ========================================

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) CheckEmailUnique(ctx context.Context, email string) (bool, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// ========================================
// HELPERS
// ========================================

// generateOTP returns a random zero-padded 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
