package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/shared/middleware"
	"drivo-backend/internal/shared/response"
	"drivo-backend/pkg/logger"
)

type RideHandler struct {
	service ride.Service
}

func NewRideHandler(service ride.Service) *RideHandler {
	return &RideHandler{service: service}
}

// CreateRide handles POST /rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req ride.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	rideResp, err := h.service.CreateRide(c.Request.Context(), userID, email, role, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Ride requested", rideResp)
}

// ListRides handles GET /rides
// Clients see rides they requested; drivers see rides assigned to them.
func (h *RideHandler) ListRides(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	rides, err := h.service.ListRides(c.Request.Context(), userID, email, role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", rides)
}

// GetRide handles GET /rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ride ID")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	rideResp, err := h.service.GetRide(c.Request.Context(), userID, email, role, rideID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", rideResp)
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *RideHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)

	case errors.Is(err, ride.ErrInvalidCoordinate),
		errors.Is(err, ride.ErrInvalidFuelType),
		errors.Is(err, ride.ErrInvalidTripType),
		errors.Is(err, ride.ErrInvalidDateTime):
		response.BadRequest(c, err.Error())

	case errors.Is(err, ride.ErrForbiddenRole),
		errors.Is(err, ride.ErrMissingRole),
		errors.Is(err, ride.ErrNotParticipant):
		response.Forbidden(c, err.Error())

	case errors.Is(err, ride.ErrRideNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("ride handler internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
