package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"drivo-backend/internal/domains/review"
	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/shared/middleware"
	"drivo-backend/internal/shared/response"
	"drivo-backend/pkg/logger"
)

type ReviewHandler struct {
	service review.Service
}

func NewReviewHandler(service review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	rev, err := h.service.CreateReview(c.Request.Context(), userID, email, role, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Review submitted", rev)
}

// GetDriverReviews handles GET /drivers/:id/reviews (public)
func (h *ReviewHandler) GetDriverReviews(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid driver ID")
		return
	}

	reviews, err := h.service.GetDriverReviews(c.Request.Context(), driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", reviews)
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)

	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrDuplicateReview):
		response.BadRequest(c, err.Error())

	case errors.Is(err, review.ErrForbiddenRole),
		errors.Is(err, review.ErrNotRideOwner):
		response.Forbidden(c, err.Error())

	case errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, review.ErrDriverNotFound),
		errors.Is(err, ride.ErrRideNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("review handler internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
