package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clientmap-api/internal/models"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// ErrNoResult is returned when the lookup service answered but found nothing.
var ErrNoResult = errors.New("geocoder: no result")

// Client talks to a Nominatim compatible lookup service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout bounds each request. Zero means no timeout.
// The configured client is copied, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		var hc http.Client
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "clientmap-api",
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Road        string `json:"road"`
		HouseNumber string `json:"house_number"`
		Suburb      string `json:"suburb"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Postcode    string `json:"postcode"`
		Country     string `json:"country"`
	} `json:"address"`
}

// Geocode resolves a free-text address to the coordinates of the first match.
func (c *Client) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", address)

	var results []searchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResult
	}

	lat, lon, err := parseLatLon(results[0].Lat, results[0].Lon)
	if err != nil {
		return nil, err
	}
	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// Suggest returns up to limit candidates for a partially typed address.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []searchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	suggestions := make([]models.Suggestion, 0, len(results))
	for _, r := range results {
		lat, lon, err := parseLatLon(r.Lat, r.Lon)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, models.Suggestion{DisplayName: r.DisplayName, Latitude: lat, Longitude: lon})
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

// Reverse finds the address closest to the given coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*models.Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var result reverseResult
	if err := c.get(ctx, "/reverse", params, &result); err != nil {
		return nil, err
	}
	if result.Error != "" || result.DisplayName == "" {
		return nil, ErrNoResult
	}

	plat, plon, err := parseLatLon(result.Lat, result.Lon)
	if err != nil {
		return nil, err
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = result.Address.Village
	}

	return &models.Place{
		DisplayName: result.DisplayName,
		Road:        result.Address.Road,
		HouseNumber: result.Address.HouseNumber,
		Suburb:      result.Address.Suburb,
		City:        city,
		State:       result.Address.State,
		Postcode:    result.Address.Postcode,
		Country:     result.Address.Country,
		Latitude:    plat,
		Longitude:   plon,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("geocoder: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geocoder: failed to decode response: %w", err)
	}
	return nil
}

func parseLatLon(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoder: invalid latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoder: invalid longitude %q: %w", lonStr, err)
	}
	return lat, lon, nil
}
