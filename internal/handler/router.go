package handler

import (
	"net/http"

	_ "clientmap-api/docs"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every handler onto a gin engine.
func NewRouter(logger zerolog.Logger, geo *GeoCodeHandler, reverse *ReverseGeocodeHandler, clients *ClientHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/geocode", geo.GeoCode)
	r.GET("/address-suggestions", geo.Suggest)
	r.GET("/reverse-geocode", reverse.ReverseGeocode)

	r.GET("/clients", clients.List)
	r.GET("/clients/map", clients.Map)
	r.GET("/clients/:id/map", clients.ClientMap)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
