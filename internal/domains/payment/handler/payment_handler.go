package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"drivo-backend/internal/domains/payment"
	"drivo-backend/internal/domains/ride"
	"drivo-backend/internal/shared/middleware"
	"drivo-backend/internal/shared/response"
	"drivo-backend/pkg/logger"
)

type PaymentHandler struct {
	service payment.Service
}

func NewPaymentHandler(service payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	p, err := h.service.CreatePayment(c.Request.Context(), userID, email, role, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Payment recorded", p)
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	payments, err := h.service.ListPayments(c.Request.Context(), userID, email, role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", payments)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	email := c.GetString(middleware.CtxEmail)
	role := middleware.GetRole(c)

	p, err := h.service.GetPayment(c.Request.Context(), userID, email, role, paymentID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", p)
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *PaymentHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)

	case errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrInvalidAmount):
		response.BadRequest(c, err.Error())

	case errors.Is(err, payment.ErrForbiddenRole),
		errors.Is(err, payment.ErrNotRideOwner),
		errors.Is(err, payment.ErrNotOwner):
		response.Forbidden(c, err.Error())

	case errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, ride.ErrRideNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("payment handler internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
