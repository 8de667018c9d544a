package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"drivo-backend/internal/domains/user"
	"drivo-backend/internal/infrastructure/email"
	"drivo-backend/pkg/jwt"
)

// ======== FAKES ========

// stubRepo is an in-memory user.Repository.
type stubRepo struct {
	users map[string]*user.User // by email
	otps  []*user.EmailOTP

	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*user.User)}
}

func (r *stubRepo) Create(ctx context.Context, u *user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[u.Email]; ok {
		return user.ErrEmailAlreadyExists
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *stubRepo) FindByEmail(ctx context.Context, emailAddr string) (*user.User, error) {
	u, ok := r.users[emailAddr]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubRepo) ExistsByEmail(ctx context.Context, emailAddr string) (bool, error) {
	_, ok := r.users[emailAddr]
	return ok, nil
}

func (r *stubRepo) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r *stubRepo) Activate(ctx context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.IsActive = true
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r *stubRepo) CreateOTP(ctx context.Context, otp *user.EmailOTP) error {
	cp := *otp
	r.otps = append(r.otps, &cp)
	return nil
}

func (r *stubRepo) FindLatestOTP(ctx context.Context, emailAddr string) (*user.EmailOTP, error) {
	for i := len(r.otps) - 1; i >= 0; i-- {
		if r.otps[i].Email == emailAddr && !r.otps[i].IsUsed {
			cp := *r.otps[i]
			return &cp, nil
		}
	}
	return nil, user.ErrOTPNotFound
}

func (r *stubRepo) ConsumeOTPAndActivate(ctx context.Context, otpID, userID uuid.UUID) error {
	for _, o := range r.otps {
		if o.ID == otpID {
			if o.IsUsed {
				return user.ErrOTPAlreadyUsed
			}
			o.IsUsed = true
			return r.Activate(ctx, userID)
		}
	}
	return user.ErrOTPNotFound
}

func (r *stubRepo) PurgeExpiredOTPs(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

// recordingMailer captures sent OTPs and can be told to fail.
type recordingMailer struct {
	sent    []email.OTPEmailData
	sendErr error
}

func (m *recordingMailer) SendOTPEmail(ctx context.Context, data email.OTPEmailData) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, data)
	return nil
}

// countingCache implements only the counter surface the service touches.
type countingCache struct {
	counters map[string]int64
	incErr   error
}

func newCountingCache() *countingCache {
	return &countingCache{counters: make(map[string]int64)}
}

func (c *countingCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (c *countingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (c *countingCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (c *countingCache) Ping(ctx context.Context) error                          { return nil }
func (c *countingCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (c *countingCache) Increment(ctx context.Context, key string) (int64, error) {
	if c.incErr != nil {
		return 0, c.incErr
	}
	c.counters[key]++
	return c.counters[key], nil
}

func (c *countingCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }
func (c *countingCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (c *countingCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

type noopProvisioner struct {
	calls []user.Role
}

func (p *noopProvisioner) EnsureProfile(ctx context.Context, userID uuid.UUID, email string, role user.Role) error {
	p.calls = append(p.calls, role)
	return nil
}

type fixture struct {
	repo   *stubRepo
	mailer *recordingMailer
	cache  *countingCache
	prov   *noopProvisioner
	svc    user.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newStubRepo(),
		mailer: &recordingMailer{},
		cache:  newCountingCache(),
		prov:   &noopProvisioner{},
	}
	jwtMgr := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	f.svc = NewUserService(f.repo, jwtMgr, f.mailer, f.cache, f.prov)
	return f
}

// ======== SIGNUP ========

func TestSignupCreatesInactiveUserAndMailsOTP(t *testing.T) {
	f := newFixture()

	dto, err := f.svc.Signup(context.Background(), user.SignupRequest{
		Email:    "ali@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", dto.Email)
	assert.False(t, dto.IsActive)
	assert.Equal(t, user.RoleNone, dto.Role)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "ali@example.com", f.mailer.sent[0].Email)
	assert.Len(t, f.mailer.sent[0].OTP, 6)

	stored := f.repo.users["ali@example.com"]
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)
	// password is hashed, never stored raw
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestSignupWithRole(t *testing.T) {
	f := newFixture()

	dto, err := f.svc.Signup(context.Background(), user.SignupRequest{
		Email:    "driver@example.com",
		Password: "password123",
		Role:     "driver",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleDriver, dto.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Signup(context.Background(), user.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = f.svc.Signup(context.Background(), user.SignupRequest{Email: "a@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestSignupFailsWhenEmailCannotBeSent(t *testing.T) {
	f := newFixture()
	f.mailer.sendErr = errors.New("smtp: connection refused")

	_, err := f.svc.Signup(context.Background(), user.SignupRequest{Email: "a@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrEmailSendFailed)
}

func TestSignupRejectsBadInput(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Signup(context.Background(), user.SignupRequest{Email: "not-an-email", Password: "password123"})
	assert.Error(t, err)

	_, err = f.svc.Signup(context.Background(), user.SignupRequest{Email: "a@example.com", Password: "short"})
	assert.Error(t, err)

	_, err = f.svc.Signup(context.Background(), user.SignupRequest{Email: "a@example.com", Password: "password123", Role: "admin"})
	assert.Error(t, err)
}

// ======== OTP VERIFICATION ========

func signup(t *testing.T, f *fixture, emailAddr string) string {
	t.Helper()
	_, err := f.svc.Signup(context.Background(), user.SignupRequest{Email: emailAddr, Password: "password123"})
	require.NoError(t, err)
	return f.mailer.sent[len(f.mailer.sent)-1].OTP
}

func TestVerifyOTPActivatesAndIssuesTokens(t *testing.T) {
	f := newFixture()
	code := signup(t, f, "a@example.com")

	resp, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "a@example.com", OTP: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, resp.User.IsActive)
	assert.True(t, f.repo.users["a@example.com"].IsActive)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newFixture()
	signup(t, f, "a@example.com")

	_, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "a@example.com", OTP: "000000"})
	assert.ErrorIs(t, err, user.ErrOTPInvalid)
	assert.False(t, f.repo.users["a@example.com"].IsActive)
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	f := newFixture()
	code := signup(t, f, "a@example.com")

	// push the code past its validity window
	f.repo.otps[0].CreatedAt = time.Now().Add(-user.OTPValidity - time.Minute)

	_, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "a@example.com", OTP: code})
	assert.ErrorIs(t, err, user.ErrOTPExpired)
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	f := newFixture()
	code := signup(t, f, "a@example.com")

	_, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "a@example.com", OTP: code})
	require.NoError(t, err)

	// the same code cannot be replayed
	_, err = f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "a@example.com", OTP: code})
	assert.ErrorIs(t, err, user.ErrOTPNotFound)
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "ghost@example.com", OTP: "123456"})
	assert.ErrorIs(t, err, user.ErrOTPNotFound)
}

// ======== RESEND ========

func TestResendOTPThrottled(t *testing.T) {
	f := newFixture()
	signup(t, f, "a@example.com")

	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.ResendOTP(context.Background(), user.ResendOTPRequest{Email: "a@example.com"}))
	}

	err := f.svc.ResendOTP(context.Background(), user.ResendOTPRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, user.ErrTooManyResends)

	// 1 from signup + 3 resends, the 4th resend never mailed
	assert.Len(t, f.mailer.sent, 4)
}

func TestResendOTPNoopForActiveUser(t *testing.T) {
	f := newFixture()
	code := signup(t, f, "a@example.com")
	_, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: "a@example.com", OTP: code})
	require.NoError(t, err)

	require.NoError(t, f.svc.ResendOTP(context.Background(), user.ResendOTPRequest{Email: "a@example.com"}))
	assert.Len(t, f.mailer.sent, 1) // only the signup mail
}

func TestResendOTPCacheOutageStillMails(t *testing.T) {
	f := newFixture()
	signup(t, f, "a@example.com")
	f.cache.incErr = errors.New("redis down")

	require.NoError(t, f.svc.ResendOTP(context.Background(), user.ResendOTPRequest{Email: "a@example.com"}))
	assert.Len(t, f.mailer.sent, 2)
}

// ======== LOGIN ========

func activate(t *testing.T, f *fixture, emailAddr string) {
	t.Helper()
	code := signup(t, f, emailAddr)
	_, err := f.svc.VerifyOTP(context.Background(), user.VerifyOTPRequest{Email: emailAddr, OTP: code})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")

	resp, err := f.svc.Login(context.Background(), user.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")

	_, err := f.svc.Login(context.Background(), user.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), user.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnverifiedAccount(t *testing.T) {
	f := newFixture()
	signup(t, f, "a@example.com")

	_, err := f.svc.Login(context.Background(), user.LoginRequest{Email: "a@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")

	login, err := f.svc.Login(context.Background(), user.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	resp, err := f.svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", resp.User.Email)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")

	login, err := f.svc.Login(context.Background(), user.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = f.svc.RefreshToken(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

// ======== ROLE TRANSITION ========

func TestSetRoleProvisionsProfile(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")
	id := f.repo.users["a@example.com"].ID

	dto, err := f.svc.SetRole(context.Background(), id, user.SetRoleRequest{Role: "driver"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleDriver, dto.Role)
	assert.Equal(t, []user.Role{user.RoleDriver}, f.prov.calls)
	assert.Equal(t, user.RoleDriver, f.repo.users["a@example.com"].Role)
}

func TestSetRoleIsIdempotent(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")
	id := f.repo.users["a@example.com"].ID

	_, err := f.svc.SetRole(context.Background(), id, user.SetRoleRequest{Role: "client"})
	require.NoError(t, err)
	_, err = f.svc.SetRole(context.Background(), id, user.SetRoleRequest{Role: "client"})
	require.NoError(t, err)

	// profile provisioning runs on every call, creation underneath is get-or-create
	assert.Len(t, f.prov.calls, 2)
}

func TestSetRoleRejectsNone(t *testing.T) {
	f := newFixture()
	activate(t, f, "a@example.com")
	id := f.repo.users["a@example.com"].ID

	_, err := f.svc.SetRole(context.Background(), id, user.SetRoleRequest{Role: "none"})
	assert.Error(t, err)
}

// ======== QUERIES ========

func TestCheckEmailUnique(t *testing.T) {
	f := newFixture()
	signup(t, f, "taken@example.com")

	available, err := f.svc.CheckEmailUnique(context.Background(), "taken@example.com")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = f.svc.CheckEmailUnique(context.Background(), "free@example.com")
	require.NoError(t, err)
	assert.True(t, available)
}
