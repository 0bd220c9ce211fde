// Package engine runs the full hydro-economic evaluation for one farm:
// block resolution, groundwater assessment, candidate filtering, rotation
// and stress adjustment, economic and risk scoring, ranking, and smart-swap
// detection.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/farmwise/crop-advisor/internal/balance"
	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/observability"
)

// ErrNoLocation rejects requests that carry neither a pincode nor
// coordinates. This is the one input failure surfaced to the caller.
var ErrNoLocation = errors.New("farm context needs a pincode or coordinates")

// Request is one evaluation ask.
type Request struct {
	Farm domain.FarmContext `json:"farm"`

	// IntentCrop is the farmer's stated crop, by id or name. Optional;
	// smart-swap detection only runs when it resolves.
	IntentCrop string `json:"intent_crop,omitempty"`

	// CandidateIDs switches to comparison mode: exactly these crops are
	// scored and zone/soil filtering is skipped.
	CandidateIDs []string `json:"candidate_ids,omitempty"`

	// PumpType prices irrigation; defaults to electric.
	PumpType string `json:"pump_type,omitempty"`
}

// Result is a completed evaluation.
type Result struct {
	EvaluationID    string                       `json:"evaluation_id"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	Zone            string                       `json:"zone"`
	Assessment      domain.GroundwaterAssessment `json:"assessment"`
	Intent          *domain.Recommendation       `json:"intent,omitempty"`
	Recommendations []domain.Recommendation      `json:"recommendations"`
}

// Publisher receives completed evaluations, e.g. a Kafka advisory sink.
type Publisher interface {
	Publish(ctx context.Context, result Result) error
}

// Engine wires the core models and collaborators into one evaluation path.
type Engine struct {
	catalog   []domain.CropProfile
	estimator *balance.Estimator
	market    domain.MarketPriceSource
	waterCost domain.WaterCostModel
	risk      domain.RiskAssessor
	publisher Publisher // optional
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates an Engine. The publisher may be nil.
func New(catalog []domain.CropProfile, estimator *balance.Estimator,
	market domain.MarketPriceSource, waterCost domain.WaterCostModel, risk domain.RiskAssessor,
	publisher Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics,
) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		catalog:   catalog,
		estimator: estimator,
		market:    market,
		waterCost: waterCost,
		risk:      risk,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the engine has completed an evaluation.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("engine has not completed any evaluation yet")
	}
	return nil
}

// Evaluate runs the full pipeline for one farm. Every collaborator failure
// degrades to a deterministic default; the only error returned is a missing
// location.
func (e *Engine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if !req.Farm.HasLocation() {
		return Result{}, ErrNoLocation
	}

	start := e.clock.Now()
	farm := req.Farm

	block, distKm, resolved := e.estimator.ResolveBlock(ctx, farm)
	var assessment domain.GroundwaterAssessment
	if resolved {
		assessment = e.estimator.Estimate(ctx, farm, &block)
		assessment.BlockDistanceKm = distKm
	} else {
		assessment = e.estimator.Estimate(ctx, farm, nil)
	}

	zone := e.resolveZone(farm, assessment.Block)
	availableMM := domain.SeasonalAvailableWaterMM(farm.SoilType)

	candidates := domain.FilterCandidates(e.catalog, farm.SoilType, zone, req.CandidateIDs)
	intentCrop, haveIntent := domain.FindCrop(e.catalog, req.IntentCrop)

	quotes := e.fetchQuotes(ctx, assessment.Block.District, candidates, intentCrop, haveIntent)

	var previous *domain.CropProfile
	if prev, ok := domain.FindCrop(e.catalog, farm.PreviousCropID); ok {
		previous = &prev
	}

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, crop := range candidates {
		recs = append(recs, e.scoreCrop(ctx, crop, farm, assessment, quotes, availableMM, previous, req.PumpType))
	}

	var intent *domain.Recommendation
	if haveIntent {
		for i := range recs {
			if recs[i].Crop.ID == intentCrop.ID {
				intent = &recs[i]
				break
			}
		}
		if intent == nil {
			// The intent crop was filtered out (wrong zone or soil); score
			// it anyway so the comparison baseline exists.
			scored := e.scoreCrop(ctx, intentCrop, farm, assessment, quotes, availableMM, previous, req.PumpType)
			intent = &scored
		}
	}

	recs = domain.Rank(recs, intent, farm.LandAcres, domain.RankOptions{PromoteChampion: true})

	swaps := 0
	for _, r := range recs {
		if r.IsSmartSwap {
			swaps++
		}
	}
	e.metrics.SwapsFlagged.Add(float64(swaps))
	e.metrics.EvaluationsTotal.Inc()
	e.metrics.EvaluationDuration.Observe(e.clock.Since(start).Seconds())
	e.ready.Store(true)
	e.metrics.EngineReady.Set(1)

	result := Result{
		EvaluationID:    uuid.NewString(),
		GeneratedAt:     e.clock.Now(),
		Zone:            zone,
		Assessment:      assessment,
		Intent:          intent,
		Recommendations: recs,
	}

	e.publish(ctx, result)
	return result, nil
}

// scoreCrop runs one candidate through rotation, stress, cost, economics,
// and risk.
func (e *Engine) scoreCrop(ctx context.Context, crop domain.CropProfile, farm domain.FarmContext,
	assessment domain.GroundwaterAssessment, quotes map[string]domain.PriceQuote,
	availableMM float64, previous *domain.CropProfile, pumpType string,
) domain.Recommendation {
	rotation := domain.RotationMultiplier(crop, previous)
	yield := domain.AdjustYield(crop.BaseYieldTons*rotation, crop.WaterRequirementMM, availableMM, crop.Category)

	quote, ok := quotes[crop.ID]
	if !ok {
		quote = domain.PriceQuote{CurrentPrice: crop.BasePricePerTon, Trend: domain.TrendStable}
	}

	cost := e.waterCost.Cost(crop.WaterRequirementMM, farm.LandAcres, pumpType, assessment.WaterTableDepthM)
	economics := domain.ScoreEconomics(crop, yield.AdjustedYieldTons, quote, cost)

	riskResult := e.risk.Assess(ctx, crop, domain.RiskInputs{
		BlockClassification: assessment.Classification,
		WaterRatio:          yield.WaterRatio,
		SoilMatched:         crop.SupportsSoil(farm.SoilType),
		MarketTrend:         quote.Trend,
		MarketVolatility:    volatilityFor(crop),
		WaterTableDepthM:    assessment.WaterTableDepthM,
		PreviousCropID:      farm.PreviousCropID,
	})

	return domain.Recommendation{
		Crop:       crop,
		Yield:      yield,
		Economics:  economics,
		Risk:       riskResult,
		PriceTrend: quote.Trend,
	}
}

// fetchQuotes asks the price source for every crop in play, degrading to
// catalog base prices with a STABLE trend when it fails.
func (e *Engine) fetchQuotes(ctx context.Context, district string,
	candidates []domain.CropProfile, intentCrop domain.CropProfile, haveIntent bool,
) map[string]domain.PriceQuote {
	ids := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	if haveIntent {
		ids = append(ids, intentCrop.ID)
	}

	quotes, err := e.market.Prices(ctx, district, ids)
	if err != nil {
		e.logger.Warn("price source failed, using catalog base prices", "district", district, "error", err)
		e.metrics.CollaboratorFallbacks.WithLabelValues("market").Inc()
		quotes = make(map[string]domain.PriceQuote, len(e.catalog))
		for _, c := range e.catalog {
			quotes[c.ID] = domain.PriceQuote{CurrentPrice: c.BasePricePerTon, Trend: domain.TrendStable}
		}
	}
	return quotes
}

func (e *Engine) resolveZone(farm domain.FarmContext, block domain.BlockRecord) string {
	if farm.Pincode != "" {
		return domain.ZoneForPincode(farm.Pincode)
	}
	return domain.ZoneForPincode(block.Pincode)
}

func (e *Engine) publish(ctx context.Context, result Result) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, result); err != nil {
		e.logger.Warn("advisory publish failed", "evaluation_id", result.EvaluationID, "error", err)
		e.metrics.PublishErrors.Inc()
		return
	}
	e.metrics.AdvisoriesPublished.Inc()
}

// volatilityFor is a static volatility prior per crop category; vegetables
// swing hardest in mandi prices.
func volatilityFor(crop domain.CropProfile) float64 {
	switch crop.Category {
	case domain.CategoryVegetable:
		return 0.5
	case domain.CategoryHorticulture:
		return 0.3
	case domain.CategoryCashCrop:
		return 0.25
	default:
		return 0.15
	}
}
