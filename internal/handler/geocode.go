package handler

import (
	"context"
	"net/http"
	"strconv"

	"clientmap-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles forward geocoding and address suggestion requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// GeoCodeService interface for dependency injection
type GeoCodeService interface {
	Geocode(context.Context, string) (*models.Coordinates, error)
	Suggest(context.Context, string, int) ([]models.Suggestion, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /geocode requests
//
//	@Summary	Resolve an address to coordinates
//	@Tags		geocoding
//	@Produce	json
//	@Param		q	query		string	true	"free-text address"
//	@Success	200	{object}	models.Coordinates
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	coords, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if coords == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location found for the specified address"})
		return
	}

	c.JSON(http.StatusOK, coords)
}

// Suggest handles GET /address-suggestions requests
//
//	@Summary	Suggest addresses for a partial query
//	@Tags		geocoding
//	@Produce	json
//	@Param		q		query		string	true	"partial address"
//	@Param		limit	query		int		false	"maximum number of suggestions"
//	@Success	200		{array}		models.Suggestion
//	@Failure	400		{object}	map[string]string
//	@Router		/address-suggestions [get]
func (h *GeoCodeHandler) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	suggestions, err := h.service.Suggest(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	c.JSON(http.StatusOK, suggestions)
}
