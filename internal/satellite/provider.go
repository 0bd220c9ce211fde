// Package satellite interpolates monthly gridded groundwater-storage
// anomalies (GRACE-style, in cm of equivalent water height) to a point and
// fits a multi-month trend.
package satellite

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/farmwise/crop-advisor/internal/domain"
)

// GridPoint is one cell-center sample of the monthly anomaly grid.
type GridPoint struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	AnomalyCM float64 `json:"anomaly_cm"`
}

// Anomaly is the interpolated storage anomaly at a point for one month.
type Anomaly struct {
	AnomalyCM     float64 `json:"anomaly_cm"`
	Month         string  `json:"month"` // "YYYY-MM"
	UncertaintyCM float64 `json:"uncertainty_cm"`
}

const (
	monthKeyLayout = "2006-01"

	// idwEpsilon keeps the inverse-distance weight finite when the query
	// point sits exactly on a grid node.
	idwEpsilon = 1e-6

	// idwNeighbors is how many nearest grid points contribute to the
	// interpolated value.
	idwNeighbors = 4
)

// Provider answers anomaly and trend queries over a pre-loaded monthly grid
// keyed "YYYY-MM". The grid is immutable after construction.
type Provider struct {
	months map[string][]GridPoint
	keys   []string // sorted ascending
}

// NewProvider builds a Provider over the given monthly grids.
func NewProvider(months map[string][]GridPoint) *Provider {
	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Provider{months: months, keys: keys}
}

// MonthKey formats a time as the grid's month key.
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthKeyLayout)
}

// GetAnomaly interpolates the storage anomaly at (lat, lon) for the month
// containing asOf. A missing month falls back to the most recent available
// one; an empty grid returns false.
func (p *Provider) GetAnomaly(lat, lon float64, asOf time.Time) (Anomaly, bool) {
	key := MonthKey(asOf)
	points, ok := p.months[key]
	if !ok || len(points) == 0 {
		key, points = p.latestMonth()
		if len(points) == 0 {
			return Anomaly{}, false
		}
	}

	value, spread := interpolate(points, lat, lon)
	return Anomaly{AnomalyCM: value, Month: key, UncertaintyCM: spread}, true
}

// GetTrend fits a least-squares line through the interpolated anomaly over
// the last months available months (chronological) and returns the
// annualized slope in cm/yr. Fewer than two usable months yields 0.
func (p *Provider) GetTrend(lat, lon float64, months int) float64 {
	if months < 2 {
		return 0
	}

	keys := p.keys
	if len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	series := make(stats.Series, 0, len(keys))
	for i, key := range keys {
		points := p.months[key]
		if len(points) == 0 {
			continue
		}
		value, _ := interpolate(points, lat, lon)
		series = append(series, stats.Coordinate{X: float64(i), Y: value})
	}
	if len(series) < 2 {
		return 0
	}

	fitted, err := stats.LinearRegression(series)
	if err != nil || len(fitted) < 2 {
		return 0
	}

	first, last := fitted[0], fitted[len(fitted)-1]
	if last.X == first.X {
		return 0
	}
	slopePerMonth := (last.Y - first.Y) / (last.X - first.X)
	return slopePerMonth * 12
}

func (p *Provider) latestMonth() (string, []GridPoint) {
	for i := len(p.keys) - 1; i >= 0; i-- {
		if points := p.months[p.keys[i]]; len(points) > 0 {
			return p.keys[i], points
		}
	}
	return "", nil
}

// interpolate computes the inverse-distance-weighted value over the
// idwNeighbors nearest grid points, weight = 1/(d²+ε). The second return is
// the max-min spread across the contributing neighbors, reported as a crude
// uncertainty band.
func interpolate(points []GridPoint, lat, lon float64) (float64, float64) {
	type neighbor struct {
		distKm float64
		value  float64
	}

	neighbors := make([]neighbor, 0, len(points))
	for _, gp := range points {
		neighbors = append(neighbors, neighbor{
			distKm: domain.Haversine(lat, lon, gp.Lat, gp.Lon),
			value:  gp.AnomalyCM,
		})
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].distKm < neighbors[j].distKm })

	n := idwNeighbors
	if len(neighbors) < n {
		n = len(neighbors)
	}

	var weightedSum, weightSum float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, nb := range neighbors[:n] {
		w := 1 / (nb.distKm*nb.distKm + idwEpsilon)
		weightedSum += nb.value * w
		weightSum += w
		lo = math.Min(lo, nb.value)
		hi = math.Max(hi, nb.value)
	}
	return weightedSum / weightSum, hi - lo
}

// DefaultGrid generates a synthetic monthly anomaly dataset over the
// Maharashtra region for the 12 months ending at now. The surface is a
// smooth deterministic function of position and month: calibration data
// standing in for a real GRACE mascon feed, not observations.
func DefaultGrid(now time.Time) map[string][]GridPoint {
	months := make(map[string][]GridPoint, 12)
	start := now.UTC().AddDate(0, -11, 0)

	for m := 0; m < 12; m++ {
		t := start.AddDate(0, m, 0)
		seasonal := 4 * math.Sin(2*math.Pi*float64(t.Month()-6)/12)
		drift := -0.25 * float64(m) // slow storage loss toward the present

		var points []GridPoint
		for lat := 16.0; lat <= 22.0; lat += 1.5 {
			for lon := 73.0; lon <= 79.0; lon += 1.5 {
				// Deeper deficits toward the interior hard-rock belt.
				regional := -6 - 1.2*(lon-73) + 0.8*(lat-16)
				points = append(points, GridPoint{
					Lat:       lat,
					Lon:       lon,
					AnomalyCM: regional + seasonal + drift,
				})
			}
		}
		months[MonthKey(t)] = points
	}
	return months
}
