// Package groundwater provides per-block groundwater status: CGWB
// classification, water-table depth, recharge/extraction figures, and a
// simulated multi-year decline trend.
//
// Statuses come from a live source when one is configured; otherwise a
// deterministic fallback table answers, so a status is always available.
// The historical trend is generated from classification-dependent decline
// rates, not measured observations. It is calibration data and is labeled
// as such everywhere it surfaces.
package groundwater

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/observability"
)

// StatusTTL is how long a fetched block status stays fresh. Government
// classifications change on a yearly assessment cycle; a day of staleness
// is immaterial.
const StatusTTL = 24 * time.Hour

// BlockStatus is the groundwater picture for one administrative block.
// Recharge and extraction are annual figures in hectare-metres.
type BlockStatus struct {
	Classification   domain.Classification `json:"classification"`
	WaterTableDepthM float64               `json:"water_table_depth_m"`
	RechargeHAM      float64               `json:"recharge_ham"`
	ExtractionHAM    float64               `json:"extraction_ham"`
}

// TrendPoint is one year of the simulated decline series. LevelM is depth
// below ground; ChangeM is the depth change from the previous year,
// positive when the water table fell.
type TrendPoint struct {
	Year    int     `json:"year"`
	LevelM  float64 `json:"level_m"`
	ChangeM float64 `json:"change_m_per_year"`
}

// StatusSource is a live per-block data feed. A nil source means
// "not configured" and the provider answers from the fallback table.
type StatusSource interface {
	FetchStatus(ctx context.Context, district, block string) (BlockStatus, error)
}

// annualDepthChangeM is the simulated yearly water-table depth change per
// classification, in metres (positive = table falling). Calibration values.
var annualDepthChangeM = map[domain.Classification]float64{
	domain.ClassificationOverExploited: 1.2,
	domain.ClassificationCritical:      0.8,
	domain.ClassificationSemiCritical:  0.4,
	domain.ClassificationSafe:          -0.1, // net recharge
	domain.ClassificationUnknown:       0.4,
}

// fallbackStatuses carries hard calibration values for blocks with known
// assessments. Everything else gets genericFallback.
var fallbackStatuses = map[string]BlockStatus{
	"pune/baramati":         {Classification: domain.ClassificationOverExploited, WaterTableDepthM: 32, RechargeHAM: 9800, ExtractionHAM: 13700},
	"pune/indapur":          {Classification: domain.ClassificationOverExploited, WaterTableDepthM: 30, RechargeHAM: 8400, ExtractionHAM: 11300},
	"pune/daund":            {Classification: domain.ClassificationCritical, WaterTableDepthM: 25, RechargeHAM: 7600, ExtractionHAM: 7200},
	"solapur/solapur north": {Classification: domain.ClassificationCritical, WaterTableDepthM: 24, RechargeHAM: 6900, ExtractionHAM: 6500},
	"ahmednagar/rahuri":     {Classification: domain.ClassificationCritical, WaterTableDepthM: 22, RechargeHAM: 7100, ExtractionHAM: 6800},
	"satara/satara":         {Classification: domain.ClassificationSafe, WaterTableDepthM: 8, RechargeHAM: 11200, ExtractionHAM: 5400},
	"kolhapur/karveer":      {Classification: domain.ClassificationSafe, WaterTableDepthM: 6, RechargeHAM: 12800, ExtractionHAM: 5100},
}

var genericFallback = BlockStatus{
	Classification:   domain.ClassificationSemiCritical,
	WaterTableDepthM: 20,
	RechargeHAM:      8000,
	ExtractionHAM:    6400,
}

// High-stress bounding box for point-level depth lookups: the Marathwada
// hard-rock belt, where pre-monsoon levels run much deeper than the state
// average.
const (
	stressBoxLatMin = 18.5
	stressBoxLatMax = 20.5
	stressBoxLonMin = 75.0
	stressBoxLonMax = 78.5

	stressBoxDepthM = 26.0
	defaultDepthM   = 18.0
)

// Provider answers block status queries through a read-through TTL cache,
// degrading from the live source to calibration fallbacks.
type Provider struct {
	source  StatusSource
	cache   *ttlCache
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics // optional
}

// Option configures a Provider.
type Option func(*Provider)

// WithSource attaches a live status feed.
func WithSource(s StatusSource) Option {
	return func(p *Provider) { p.source = s }
}

// WithClock injects a deterministic clock for cache expiry and trend years.
func WithClock(c clockwork.Clock) Option {
	return func(p *Provider) { p.clock = c }
}

// WithMetrics attaches the collaborator fallback counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// NewProvider builds a Provider. With no options it runs purely on the
// fallback tables under a real clock.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cache = newTTLCache(p.clock, StatusTTL)
	return p
}

// GetStatus returns the block's groundwater status, cached per
// case-insensitive (district, block) key for StatusTTL. Live-source failure
// degrades silently to the fallback table; the caller always gets a status.
func (p *Provider) GetStatus(ctx context.Context, district, block string) BlockStatus {
	key := statusKey(district, block)
	if status, ok := p.cache.get(key); ok {
		return status
	}

	status, fromLive := p.fetch(ctx, district, block)
	p.cache.put(key, status)
	if !fromLive {
		p.logger.Debug("groundwater status from fallback table", "district", district, "block", block)
	}
	return status
}

func (p *Provider) fetch(ctx context.Context, district, block string) (BlockStatus, bool) {
	if p.source != nil {
		status, err := p.source.FetchStatus(ctx, district, block)
		if err == nil {
			return status, true
		}
		p.logger.Warn("live groundwater source failed, using fallback",
			"district", district, "block", block, "error", err)
		if p.metrics != nil {
			p.metrics.CollaboratorFallbacks.WithLabelValues("status").Inc()
		}
	}

	if status, ok := fallbackStatuses[statusKey(district, block)]; ok {
		return status, false
	}
	return genericFallback, false
}

// GetLevel returns a point-level water-table depth estimate in metres:
// a deeper figure inside the known high-stress bounding box, the flat
// state default elsewhere.
func (p *Provider) GetLevel(lat, lon float64) float64 {
	if lat >= stressBoxLatMin && lat <= stressBoxLatMax &&
		lon >= stressBoxLonMin && lon <= stressBoxLonMax {
		return stressBoxDepthM
	}
	return defaultDepthM
}

// GetHistoricalTrend returns a simulated depth series for the block, oldest
// year first, generated by applying the classification's annual decline
// backward from the current depth. This is calibration output, not measured
// history.
func (p *Provider) GetHistoricalTrend(ctx context.Context, district, block string, years int) []TrendPoint {
	if years <= 0 {
		return nil
	}

	status := p.GetStatus(ctx, district, block)
	rate := annualDepthChangeM[status.Classification]
	currentYear := p.clock.Now().Year()

	points := make([]TrendPoint, 0, years)
	for i := years - 1; i >= 0; i-- {
		level := status.WaterTableDepthM - rate*float64(i)
		if level < 0 {
			level = 0
		}
		points = append(points, TrendPoint{
			Year:    currentYear - i,
			LevelM:  level,
			ChangeM: rate,
		})
	}
	return points
}

// AverageDeclinePercent sums the positive annual depth changes across a
// trend and expresses them against the oldest level. A flat or recovering
// series scores 0.
func AverageDeclinePercent(trend []TrendPoint) float64 {
	if len(trend) < 2 {
		return 0
	}
	initial := trend[0].LevelM
	if initial <= 0 {
		return 0
	}

	var declined float64
	for i := 1; i < len(trend); i++ {
		if change := trend[i].LevelM - trend[i-1].LevelM; change > 0 {
			declined += change
		}
	}
	return declined / initial * 100
}

func statusKey(district, block string) string {
	return fmt.Sprintf("%s/%s", strings.ToLower(strings.TrimSpace(district)), strings.ToLower(strings.TrimSpace(block)))
}
