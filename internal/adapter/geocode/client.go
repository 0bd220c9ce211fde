// Package geocode resolves coordinates to administrative placements via a
// Nominatim-compatible reverse-geocoding endpoint, with an in-memory LRU
// cache in front of it.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/farmwise/crop-advisor/internal/domain"
)

// Client implements domain.ReverseGeocoder against a Nominatim-style API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a reverse-geocoding client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ReverseGeocode converts coordinates to an administrative placement.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Placement, error) {
	params := url.Values{
		"lat":    {fmt.Sprintf("%.6f", lat)},
		"lon":    {fmt.Sprintf("%.6f", lon)},
		"format": {"jsonv2"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Placement{}, fmt.Errorf("geocoder API error: status %d: %s", resp.StatusCode, body)
	}

	var geoResp response
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return domain.Placement{}, fmt.Errorf("decode response: %w", err)
	}

	placement := domain.Placement{
		Pincode:  geoResp.Address.Postcode,
		District: geoResp.Address.StateDistrict,
		Block:    geoResp.Address.County,
		State:    geoResp.Address.State,
	}
	if placement.District == "" {
		placement.District = geoResp.Address.County
	}
	if placement.Pincode != "" {
		placement.Confidence = 0.9
	} else if placement.District != "" {
		placement.Confidence = 0.6
	}
	return placement, nil
}

// Nominatim API response types.

type response struct {
	Address struct {
		Postcode      string `json:"postcode"`
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		State         string `json:"state"`
	} `json:"address"`
}
