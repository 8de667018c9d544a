package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/shared/middleware"
	"drivo-backend/internal/shared/response"
	"drivo-backend/pkg/logger"
)

// ProfileHandler serves both driver and client profile endpoints.
type ProfileHandler struct {
	service profile.Service
}

func NewProfileHandler(service profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// caller pulls the authenticated identity off the context.
func caller(c *gin.Context) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, "", false
	}
	return userID, c.GetString(middleware.CtxEmail), true
}

// readPhotoPart reads the optional "dp" multipart file. A missing part
// is not an error; a broken one is.
func readPhotoPart(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("dp")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// ========================================
// DRIVER ENDPOINTS
// ========================================

// GetDriverMe handles GET /drivers/me
// First access creates the profile with a defaulted full name.
func (h *ProfileHandler) GetDriverMe(c *gin.Context) {
	userID, email, ok := caller(c)
	if !ok {
		return
	}

	p, err := h.service.GetDriverProfile(c.Request.Context(), userID, email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", p)
}

// UpdateDriverMe handles PUT /drivers/me (multipart form)
func (h *ProfileHandler) UpdateDriverMe(c *gin.Context) {
	userID, email, ok := caller(c)
	if !ok {
		return
	}

	var req profile.UpdateDriverProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid form data")
		return
	}

	dp, err := readPhotoPart(c)
	if err != nil {
		response.BadRequest(c, "Could not read profile photo")
		return
	}

	p, err := h.service.UpdateDriverProfile(c.Request.Context(), userID, email, req, dp)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", p)
}

// UpdateDriverLocation handles PUT /drivers/me/location
func (h *ProfileHandler) UpdateDriverLocation(c *gin.Context) {
	userID, email, ok := caller(c)
	if !ok {
		return
	}

	var req profile.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.UpdateDriverLocation(c.Request.Context(), userID, email, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Location updated", p)
}

// ========================================
// CLIENT ENDPOINTS
// ========================================

// GetClientMe handles GET /clients/me
func (h *ProfileHandler) GetClientMe(c *gin.Context) {
	userID, email, ok := caller(c)
	if !ok {
		return
	}

	p, err := h.service.GetClientProfile(c.Request.Context(), userID, email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", p)
}

// UpdateClientMe handles PUT /clients/me (multipart form)
func (h *ProfileHandler) UpdateClientMe(c *gin.Context) {
	userID, email, ok := caller(c)
	if !ok {
		return
	}

	var req profile.UpdateClientProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid form data")
		return
	}

	dp, err := readPhotoPart(c)
	if err != nil {
		response.BadRequest(c, "Could not read profile photo")
		return
	}

	p, err := h.service.UpdateClientProfile(c.Request.Context(), userID, email, req, dp)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", p)
}

// UpdateClientLocation handles PUT /clients/me/location
func (h *ProfileHandler) UpdateClientLocation(c *gin.Context) {
	userID, email, ok := caller(c)
	if !ok {
		return
	}

	var req profile.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.UpdateClientLocation(c.Request.Context(), userID, email, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Location updated", p)
}

// ========================================
// UNIQUENESS PROBES
// ========================================

// CheckCNIC handles GET /auth/check-cnic?cnic=
func (h *ProfileHandler) CheckCNIC(c *gin.Context) {
	cnic := c.Query("cnic")
	if cnic == "" {
		response.BadRequest(c, "cnic query parameter is required")
		return
	}

	available, err := h.service.CheckCNICUnique(c.Request.Context(), cnic)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"available": available})
}

// CheckLicense handles GET /auth/check-license?license=
func (h *ProfileHandler) CheckLicense(c *gin.Context) {
	license := c.Query("license")
	if license == "" {
		response.BadRequest(c, "license query parameter is required")
		return
	}

	available, err := h.service.CheckLicenseUnique(c.Request.Context(), license)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{"available": available})
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *ProfileHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)

	case errors.Is(err, profile.ErrInvalidCoordinate),
		errors.Is(err, profile.ErrInvalidDate),
		errors.Is(err, profile.ErrInvalidImage):
		response.BadRequest(c, err.Error())

	case errors.Is(err, profile.ErrCNICAlreadyExists),
		errors.Is(err, profile.ErrLicenseAlreadyExists):
		response.ErrorResponse(c, http.StatusBadRequest, "CONFLICT", err.Error())

	case errors.Is(err, profile.ErrDriverProfileNotFound),
		errors.Is(err, profile.ErrClientProfileNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("profile handler internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
