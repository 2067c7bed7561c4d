package service

import (
	"context"
	"fmt"
	"testing"

	"clientmap-api/internal/geocoder"
	"clientmap-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAddressGeocoder is a mock implementation of the AddressGeocoder interface
type MockAddressGeocoder struct {
	mock.Mock
}

// Geocode implements AddressGeocoder.
func (m *MockAddressGeocoder) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	args := m.Called(ctx, address)
	coords, _ := args.Get(0).(*models.Coordinates)
	return coords, args.Error(1)
}

// Suggest implements AddressGeocoder.
func (m *MockAddressGeocoder) Suggest(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	args := m.Called(ctx, query, limit)
	suggestions, _ := args.Get(0).([]models.Suggestion)
	return suggestions, args.Error(1)
}

func TestGeoCodeService_Geocode(t *testing.T) {
	tests := []struct {
		name        string
		address     string
		mockCoords  *models.Coordinates
		mockError   error
		expected    *models.Coordinates
		expectError bool
	}{
		{
			name:        "empty address",
			address:     "",
			expectError: true,
		},
		{
			name:       "successful lookup",
			address:    "Plaza Independencia, Montevideo",
			mockCoords: &models.Coordinates{Latitude: -34.9011, Longitude: -56.1915},
			expected:   &models.Coordinates{Latitude: -34.9011, Longitude: -56.1915},
		},
		{
			name:      "nothing found",
			address:   "nonexistent address",
			mockError: geocoder.ErrNoResult,
			expected:  nil,
		},
		{
			name:        "geocoder error",
			address:     "Plaza Independencia, Montevideo",
			mockError:   fmt.Errorf("geocoder: request failed: %w", assert.AnError),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockGeocoder := new(MockAddressGeocoder)
			service := NewGeoCodeService(mockGeocoder)

			if tt.address != "" {
				mockGeocoder.On("Geocode", mock.Anything, tt.address).Return(tt.mockCoords, tt.mockError)
			}

			// Execute
			result, err := service.Geocode(context.Background(), tt.address)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockGeocoder.AssertExpectations(t)
		})
	}
}

func TestGeoCodeService_Suggest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		limit       int
		sentLimit   int
		mockResult  []models.Suggestion
		mockError   error
		expectError bool
	}{
		{
			name:        "empty query",
			query:       "",
			expectError: true,
		},
		{
			name:       "default limit",
			query:      "Independencia",
			limit:      0,
			sentLimit:  DefaultSuggestionLimit,
			mockResult: []models.Suggestion{{DisplayName: "Plaza Independencia"}},
		},
		{
			name:       "limit capped",
			query:      "Independencia",
			limit:      500,
			sentLimit:  MaxSuggestionLimit,
			mockResult: []models.Suggestion{},
		},
		{
			name:        "geocoder error",
			query:       "Independencia",
			limit:       3,
			sentLimit:   3,
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGeocoder := new(MockAddressGeocoder)
			service := NewGeoCodeService(mockGeocoder)

			if tt.query != "" {
				mockGeocoder.On("Suggest", mock.Anything, tt.query, tt.sentLimit).Return(tt.mockResult, tt.mockError)
			}

			result, err := service.Suggest(context.Background(), tt.query, tt.limit)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockResult, result)
			}

			mockGeocoder.AssertExpectations(t)
		})
	}
}
