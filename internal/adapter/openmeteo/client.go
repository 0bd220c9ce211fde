// Package openmeteo fetches recent precipitation and deep-layer soil
// moisture from the Open-Meteo archive API. Any failure degrades to the
// calibration defaults (400 mm, 0.3) so the balance estimator always has
// inputs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/farmwise/crop-advisor/internal/domain"
)

const lookbackDays = 182 // six months of daily records

// Client implements domain.ClimateSource against the Open-Meteo archive.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates an Open-Meteo climate client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Climate returns the 6-month cumulative rainfall and current deep-soil
// moisture index for a coordinate. The error is returned so callers can
// count the fallback, but the snapshot is always usable: defaults are
// substituted on any failure.
func (c *Client) Climate(ctx context.Context, lat, lon float64) (domain.ClimateSnapshot, error) {
	end := c.now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)

	params := url.Values{
		"latitude":   {fmt.Sprintf("%.4f", lat)},
		"longitude":  {fmt.Sprintf("%.4f", lon)},
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
		"daily":      {"precipitation_sum"},
		"hourly":     {"soil_moisture_27_to_81cm"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return defaultSnapshot(), fmt.Errorf("create climate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return defaultSnapshot(), fmt.Errorf("climate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return defaultSnapshot(), fmt.Errorf("climate API error: status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return defaultSnapshot(), fmt.Errorf("decode climate response: %w", err)
	}

	var rainfall float64
	for _, mm := range body.Daily.PrecipitationSum {
		rainfall += mm
	}

	moisture := 0.3
	if n := len(body.Hourly.SoilMoisture); n > 0 {
		// Latest reading; the API returns m³/m³, already a 0-1 index for
		// practical purposes.
		moisture = body.Hourly.SoilMoisture[n-1]
		if moisture < 0 {
			moisture = 0
		}
		if moisture > 1 {
			moisture = 1
		}
	}

	return domain.ClimateSnapshot{
		SixMonthRainfallMM: rainfall,
		SoilMoistureIndex:  moisture,
	}, nil
}

func defaultSnapshot() domain.ClimateSnapshot {
	return domain.ClimateSnapshot{SixMonthRainfallMM: 400, SoilMoistureIndex: 0.3}
}

// Open-Meteo archive response types.

type response struct {
	Daily struct {
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
	Hourly struct {
		SoilMoisture []float64 `json:"soil_moisture_27_to_81cm"`
	} `json:"hourly"`
}
