package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"drivo-backend/internal/domains/user"
	"drivo-backend/internal/shared/middleware"
	"drivo-backend/internal/shared/response"
	"drivo-backend/pkg/logger"
)

// UserHandler maps HTTP requests onto the user service.
// Stateless - holds dependencies only.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Signup handles POST /auth/signup
// Creates an inactive account and mails a 6-digit verification code.
func (h *UserHandler) Signup(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: CALL SERVICE LAYER (validation happens inside)
	userDTO, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	logger.Info("user signed up", map[string]interface{}{
		"user_id": userDTO.ID,
	})

	// STEP 3: SUCCESS RESPONSE
	response.Success(c, http.StatusCreated, "Signup successful. Please check your email for the verification code.", userDTO)
}

// VerifyOTP handles POST /auth/verify-otp
// Activates the account and returns a token pair.
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req user.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	loginResp, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Email verified successfully", loginResp)
}

// ResendOTP handles POST /auth/resend-otp
func (h *UserHandler) ResendOTP(c *gin.Context) {
	var req user.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.ResendOTP(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "A new verification code has been sent", nil)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", loginResp)
}

// RefreshToken handles POST /auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	loginResp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", loginResp)
}

// ========================================
// PROFILE / ROLE ENDPOINTS
// ========================================

// SetRole handles PUT /auth/role
// Updates the caller's role and provisions the matching profile.
func (h *UserHandler) SetRole(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userDTO, err := h.service.SetRole(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Role updated", userDTO)
}

// GetMe handles GET /auth/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	userDTO, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", userDTO)
}

// CheckEmail handles GET /auth/check-email?email=
// Availability probe used by the signup form.
func (h *UserHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "email query parameter is required")
		return
	}

	available, err := h.service.CheckEmailUnique(c.Request.Context(), email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"available": available})
}

// ========================================
// ERROR MAPPING
// ========================================

// handleError maps domain errors to HTTP responses.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	// 400 - validation failure with field-level details
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)

	// 400 - duplicate email at signup surfaces as a client error
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.ErrorResponse(c, http.StatusBadRequest, "CONFLICT", err.Error())

	// 400 - bad OTP
	case errors.Is(err, user.ErrOTPExpired),
		errors.Is(err, user.ErrOTPInvalid),
		errors.Is(err, user.ErrOTPAlreadyUsed),
		errors.Is(err, user.ErrInvalidRole):
		response.BadRequest(c, err.Error())

	// 401 - authentication failed
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, err.Error())

	// 403 - account not yet verified
	case errors.Is(err, user.ErrUserInactive):
		response.Forbidden(c, err.Error())

	// 404
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrOTPNotFound):
		response.NotFound(c, err.Error())

	// 429 - resend throttle
	case errors.Is(err, user.ErrTooManyResends):
		response.ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", err.Error())

	// 503 - could not deliver the verification email
	case errors.Is(err, user.ErrEmailSendFailed):
		response.ServiceUnavailable(c, "Could not send verification email, please try again later")

	default:
		logger.Error("user handler internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
