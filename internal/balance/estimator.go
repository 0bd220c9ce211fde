// Package balance fuses block classification, satellite storage anomaly,
// and local rainfall/soil moisture into a seasonal groundwater balance for
// a point.
package balance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/groundwater"
	"github.com/farmwise/crop-advisor/internal/observability"
	"github.com/farmwise/crop-advisor/internal/satellite"
)

// Calibration constants for the hard-rock/basaltic aquifers of the Deccan
// trap region.
const (
	// specificYield is the fraction of aquifer volume that drains as
	// usable water.
	specificYield = 0.02

	// dailyDemandMM is the flat crop water demand used to convert a
	// balance into days of supply.
	dailyDemandMM = 4.0

	// trendYears is how much simulated history feeds the decline figure.
	trendYears = 5

	// defaultTrendMonths is how many grid months feed the satellite trend
	// when SATELLITE_TREND_MONTHS is unset.
	defaultTrendMonths = 6

	// declineCorrectionPct: above this average decline the storage figure
	// is scaled down, since a falling table means the static depth
	// overstates what is reachable.
	declineCorrectionPct = 10.0
)

// Day-of-supply thresholds for the status ladder.
const (
	surplusDays  = 150.0
	deficitDays  = 90.0
	criticalDays = 45.0

	// Satellite double-check: a strongly negative anomaly plus a short
	// supply window escalates to Critical even without a government flag.
	anomalyAlarmCM   = -10.0
	anomalyAlarmDays = 60.0
)

// Infiltration factors by soil texture, attenuated in stressed blocks where
// deep percolation no longer reaches the shallow aquifer.
const (
	infiltrationClay    = 0.05
	infiltrationCoarse  = 0.15
	infiltrationDefault = 0.10

	attenuationOverExploited = 0.7
	attenuationCritical      = 0.85
)

// Defaults when the climate source is unavailable.
var defaultClimate = domain.ClimateSnapshot{
	SixMonthRainfallMM: 400,
	SoilMoistureIndex:  0.3,
}

// Estimator computes point-in-time groundwater assessments.
type Estimator struct {
	index       domain.BlockIndex
	status      *groundwater.Provider
	satellite   *satellite.Provider
	climate     domain.ClimateSource
	geocoder    domain.ReverseGeocoder // optional
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics // optional
	trendMonths int
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithMetrics attaches the collaborator fallback counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Estimator) { e.metrics = m }
}

// WithTrendMonths overrides the satellite trend window.
func WithTrendMonths(months int) Option {
	return func(e *Estimator) {
		if months > 0 {
			e.trendMonths = months
		}
	}
}

// New creates an Estimator. The geocoder may be nil; block resolution then
// relies on the spatial index alone.
func New(index domain.BlockIndex, status *groundwater.Provider, sat *satellite.Provider,
	climate domain.ClimateSource, geocoder domain.ReverseGeocoder,
	clock clockwork.Clock, logger *slog.Logger, opts ...Option,
) *Estimator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	e := &Estimator{
		index:       index,
		status:      status,
		satellite:   sat,
		climate:     climate,
		geocoder:    geocoder,
		clock:       clock,
		logger:      logger,
		trendMonths: defaultTrendMonths,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolveBlock finds the administrative block for a farm: exact pincode
// match first, then reverse geocoding, then spatial nearest. A total miss
// returns false and callers fall back to an Unknown-classified default.
func (e *Estimator) ResolveBlock(ctx context.Context, farm domain.FarmContext) (domain.BlockRecord, float64, bool) {
	if farm.Pincode != "" {
		if block, ok := e.index.LookupPincode(farm.Pincode); ok {
			return block, 0, true
		}
	}

	if e.geocoder != nil && (farm.Lat != 0 || farm.Lon != 0) {
		placement, err := e.geocoder.ReverseGeocode(ctx, farm.Lat, farm.Lon)
		if err != nil {
			e.logger.Warn("reverse geocoding failed, falling back to spatial index",
				"lat", farm.Lat, "lon", farm.Lon, "error", err)
			e.countFallback("geocoder")
		} else if placement.Pincode != "" {
			if block, ok := e.index.LookupPincode(placement.Pincode); ok {
				return block, 0, true
			}
		}
	}

	if farm.Lat != 0 || farm.Lon != 0 {
		return e.index.LookupNearest(farm.Lat, farm.Lon)
	}
	return domain.BlockRecord{}, 0, false
}

// Estimate computes the groundwater assessment for a farm. Pass a
// pre-resolved block to skip resolution (the fast path used by the
// recommendation engine); pass nil to let the estimator resolve it.
func (e *Estimator) Estimate(ctx context.Context, farm domain.FarmContext, resolved *domain.BlockRecord) domain.GroundwaterAssessment {
	var block domain.BlockRecord
	var distKm float64
	if resolved != nil {
		block = *resolved
	} else {
		var ok bool
		block, distKm, ok = e.ResolveBlock(ctx, farm)
		if !ok {
			block = domain.BlockRecord{
				District:       farm.District,
				Block:          farm.Block,
				Lat:            farm.Lat,
				Lon:            farm.Lon,
				Classification: domain.ClassificationUnknown,
			}
		}
	}

	district := block.District
	blockName := block.Block
	if farm.District != "" {
		district = farm.District
	}
	if farm.Block != "" {
		blockName = farm.Block
	}

	status := e.status.GetStatus(ctx, district, blockName)

	// Prefer the block-level depth when it exceeds the point estimate: a
	// deeper basin figure dominates the regional default.
	depth := e.status.GetLevel(farm.Lat, farm.Lon)
	if status.WaterTableDepthM > depth {
		depth = status.WaterTableDepthM
	}

	trend := e.status.GetHistoricalTrend(ctx, district, blockName, trendYears)
	declinePct := groundwater.AverageDeclinePercent(trend)

	now := e.clock.Now()
	var anomalyCM, anomalyTrend float64
	if e.satellite != nil {
		if a, ok := e.satellite.GetAnomaly(farm.Lat, farm.Lon, now); ok {
			anomalyCM = a.AnomalyCM
		}
		anomalyTrend = e.satellite.GetTrend(farm.Lat, farm.Lon, e.trendMonths)
	}

	climate := e.fetchClimate(ctx, farm)

	infiltration := infiltrationFactor(farm.SoilType, status.Classification)
	rechargeMM := climate.SixMonthRainfallMM * infiltration

	// Usable storage: the saturated column above the water table is not
	// accessible, so what counts is the drainable fraction of the profile
	// modulated by how wet it currently is.
	storageMM := depth * 1000 * specificYield * climate.SoilMoistureIndex
	storageMM += anomalyCM * 10 // cm → mm of equivalent water
	if storageMM < 0 {
		storageMM = 0
	}
	if declinePct > declineCorrectionPct {
		storageMM *= 1 - declinePct/100
		if storageMM < 0 {
			storageMM = 0
		}
	}

	balanceMM := storageMM + rechargeMM
	days := balanceMM / dailyDemandMM

	blockStatus, message := classify(status.Classification, anomalyCM, days)

	return domain.GroundwaterAssessment{
		Block:            block,
		BlockDistanceKm:  distKm,
		Classification:   status.Classification,
		WaterTableDepthM: depth,
		DeclinePercent:   declinePct,
		AnomalyCM:        anomalyCM,
		AnomalyTrend:     anomalyTrend,
		RechargeMM:       rechargeMM,
		StorageMM:        storageMM,
		NetBalanceMM:     balanceMM,
		DaysOfSupply:     days,
		Status:           blockStatus,
		Message:          message,
	}
}

func (e *Estimator) fetchClimate(ctx context.Context, farm domain.FarmContext) domain.ClimateSnapshot {
	if e.climate == nil {
		return defaultClimate
	}
	snap, err := e.climate.Climate(ctx, farm.Lat, farm.Lon)
	if err != nil {
		e.logger.Warn("climate source failed, using defaults",
			"lat", farm.Lat, "lon", farm.Lon, "error", err)
		e.countFallback("climate")
		return defaultClimate
	}
	return snap
}

func (e *Estimator) countFallback(source string) {
	if e.metrics != nil {
		e.metrics.CollaboratorFallbacks.WithLabelValues(source).Inc()
	}
}

// infiltrationFactor converts soil texture into the share of rainfall
// reaching the aquifer, attenuated in officially stressed blocks.
func infiltrationFactor(soilType string, class domain.Classification) float64 {
	factor := infiltrationDefault
	switch strings.ToLower(strings.TrimSpace(soilType)) {
	case "clay", "black":
		factor = infiltrationClay
	case "red", "sandy", "loam", "loamy":
		factor = infiltrationCoarse
	}

	switch class {
	case domain.ClassificationOverExploited:
		factor *= attenuationOverExploited
	case domain.ClassificationCritical:
		factor *= attenuationCritical
	}
	return factor
}

// classify runs the strict status precedence: the government Over-exploited
// flag overrides everything, then the satellite double-check, then pure
// day-count thresholds.
func classify(class domain.Classification, anomalyCM, days float64) (domain.BalanceStatus, string) {
	if class == domain.ClassificationOverExploited {
		if days > deficitDays {
			return domain.BalanceDeficit,
				"This block is officially Over-exploited: extraction exceeds recharge. Plan for reduced irrigation."
		}
		return domain.BalanceCritical,
			fmt.Sprintf("Over-exploited block with roughly %.0f days of water supply. Only low-water crops are advisable.", days)
	}

	if anomalyCM < anomalyAlarmCM && days < anomalyAlarmDays {
		return domain.BalanceCritical,
			"Satellite data shows severe groundwater depletion in this area. Treat local supply as critical."
	}

	switch {
	case days > surplusDays:
		return domain.BalanceSurplus,
			fmt.Sprintf("Groundwater outlook is comfortable with about %.0f days of supply.", days)
	case days < criticalDays:
		return domain.BalanceCritical,
			fmt.Sprintf("Only about %.0f days of water supply remain. Irrigation-heavy crops will fail.", days)
	case days < deficitDays:
		return domain.BalanceDeficit,
			fmt.Sprintf("Water supply covers about %.0f days, short of a full season. Budget irrigation carefully.", days)
	default:
		return domain.BalanceAdequate,
			fmt.Sprintf("Water supply is adequate for the season at about %.0f days.", days)
	}
}
