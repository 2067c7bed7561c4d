package service

import (
	"context"
	"errors"
	"fmt"

	"clientmap-api/internal/geocoder"
	"clientmap-api/internal/models"
)

const (
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 20
)

// GeoCodeService contains the business logic for forward lookups and address suggestions
type GeoCodeService struct {
	geocoder AddressGeocoder
}

// AddressGeocoder resolves free-text addresses
type AddressGeocoder interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
	Suggest(ctx context.Context, query string, limit int) ([]models.Suggestion, error)
}

// NewGeoCodeService creates a new geo code service
func NewGeoCodeService(g AddressGeocoder) *GeoCodeService {
	return &GeoCodeService{geocoder: g}
}

// Geocode resolves an address. A nil result with a nil error means nothing matched.
func (s *GeoCodeService) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if address == "" {
		return nil, fmt.Errorf("service: address cannot be empty")
	}

	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResult) {
			return nil, nil
		}
		return nil, fmt.Errorf("service: failed to geocode address: %w", err)
	}

	return coords, nil
}

// Suggest returns address candidates for a partially typed query
func (s *GeoCodeService) Suggest(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	if query == "" {
		return nil, fmt.Errorf("service: query cannot be empty")
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if limit > MaxSuggestionLimit {
		limit = MaxSuggestionLimit
	}

	suggestions, err := s.geocoder.Suggest(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch suggestions: %w", err)
	}

	return suggestions, nil
}
