package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"clientmap-api/internal/mapview"
	"clientmap-api/internal/models"
	"clientmap-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientHandler serves the client directory and its maps
type ClientHandler struct {
	clients ClientService
	maps    MapService
}

// ClientService interface for dependency injection
type ClientService interface {
	List(ctx context.Context, page, perPage int, path string) (*models.ClientPage, error)
}

// MapService interface for dependency injection
type MapService interface {
	PageMap(ctx context.Context, page, perPage int) (*mapview.Snapshot, error)
	ClientMap(ctx context.Context, id int64) (*mapview.Snapshot, error)
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients ClientService, maps MapService) *ClientHandler {
	return &ClientHandler{clients: clients, maps: maps}
}

// List handles GET /clients requests
//
//	@Summary	List clients page by page
//	@Tags		clients
//	@Produce	json
//	@Param		page		query		int	false	"page number, from 1"
//	@Param		per_page	query		int	false	"clients per page"
//	@Success	200			{object}	models.ClientPage
//	@Failure	400			{object}	map[string]string
//	@Router		/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.clients.List(c.Request.Context(), page, perPage, c.Request.URL.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Map handles GET /clients/map requests
//
//	@Summary	Map of one page of clients and their branches
//	@Tags		clients
//	@Produce	json
//	@Param		page		query		int	false	"page number, from 1"
//	@Param		per_page	query		int	false	"clients per page"
//	@Success	200			{object}	mapview.Snapshot
//	@Failure	400			{object}	map[string]string
//	@Router		/clients/map [get]
func (h *ClientHandler) Map(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		return
	}

	snapshot, err := h.maps.PageMap(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ClientMap handles GET /clients/:id/map requests
//
//	@Summary	Map of one client and its branches
//	@Tags		clients
//	@Produce	json
//	@Param		id	path		int	true	"client id"
//	@Success	200	{object}	mapview.Snapshot
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/clients/{id}/map [get]
func (h *ClientHandler) ClientMap(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	snapshot, err := h.maps.ClientMap(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func pageParams(c *gin.Context) (page, perPage int, ok bool) {
	parse := func(name string) (int, bool) {
		raw := c.Query(name)
		if raw == "" {
			return 0, true
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
			return 0, false
		}
		return n, true
	}

	if page, ok = parse("page"); !ok {
		return 0, 0, false
	}
	if perPage, ok = parse("per_page"); !ok {
		return 0, 0, false
	}
	return page, perPage, true
}
