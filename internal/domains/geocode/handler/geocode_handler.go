package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"drivo-backend/internal/domains/geocode"
	"drivo-backend/internal/shared/response"
	"drivo-backend/pkg/logger"
)

type GeocodeHandler struct {
	service geocode.Service
}

func NewGeocodeHandler(service geocode.Service) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

// Geocode handles GET /geocode?q=
// Returns the provider-shaped result list; errors follow the taxonomy:
// 400 empty query, 404 nothing found, 503 provider down with no fallback.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	query := c.Query("q")

	results, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *GeocodeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geocode.ErrEmptyQuery):
		response.BadRequest(c, err.Error())

	case errors.Is(err, geocode.ErrNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, geocode.ErrUpstreamUnavailable):
		response.ServiceUnavailable(c, err.Error())

	default:
		logger.Error("geocode handler internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
