package main

import (
	"context"
	"os"

	"clientmap-api/internal/config"
	"clientmap-api/internal/geocoder"
	"clientmap-api/internal/handler"
	"clientmap-api/internal/mapview"
	"clientmap-api/internal/marker"
	"clientmap-api/internal/models"
	"clientmap-api/internal/repository"
	"clientmap-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(config.LogLevel, config.LogPretty)
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	nominatim := geocoder.New(config.GeocoderBaseURL,
		geocoder.WithTimeout(config.GeocoderTimeout),
		geocoder.WithUserAgent(config.GeocoderUserAgent),
	)
	factory := marker.NewFactory(config.MarkerCellResolution)

	mapOptions := mapview.Options{
		Center:      models.Coordinates{Latitude: config.MapCenterLat, Longitude: config.MapCenterLon},
		Zoom:        config.MapZoom,
		ZoomControl: config.MapZoomControl,
		TileURL:     config.MapTileURL,
		Attribution: config.MapTileAttribution,
	}

	clientService := service.NewClientService(repo)
	mapService := service.NewMapService(clientService, nominatim, factory, mapOptions, log.Logger)
	geoCodeService := service.NewGeoCodeService(nominatim)
	reverseGeocodeService := service.NewReverseGeoCodeService(nominatim)

	r := handler.NewRouter(log.Logger,
		handler.NewGeoCodeHandler(geoCodeService),
		handler.NewReverseGeocodeHandler(reverseGeocodeService),
		handler.NewClientHandler(clientService, mapService),
	)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
