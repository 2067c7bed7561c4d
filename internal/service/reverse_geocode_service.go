package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"clientmap-api/internal/geocoder"
	"clientmap-api/internal/models"
)

// ReverseGeoCodeService contains the business logic for reverse geocoding operations
type ReverseGeoCodeService struct {
	geocoder PlaceGeocoder
}

// PlaceGeocoder finds the address closest to a coordinate pair
type PlaceGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*models.Place, error)
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(g PlaceGeocoder) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{geocoder: g}
}

// ReverseGeocode finds the nearest address to the given coordinates.
// A nil place with a nil error means nothing was found.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Place, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", lon)
	}

	place, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResult) {
			return nil, nil
		}
		return nil, fmt.Errorf("service: failed to find nearest place: %w", err)
	}

	return place, nil
}
