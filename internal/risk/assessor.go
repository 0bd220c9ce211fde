// Package risk scores candidate crops 0-100 from deterministic heuristics
// over groundwater stress, water sufficiency, market signals, and agronomy.
// It is the default implementation of the engine's RiskAssessor
// collaborator; a deployment can swap in an external model behind the same
// interface.
package risk

import (
	"context"
	"fmt"

	"github.com/farmwise/crop-advisor/internal/domain"
)

// Component score ceilings. They sum to 100.
const (
	maxClassificationPoints = 35.0
	maxWaterPoints          = 30.0
	maxMarketPoints         = 20.0
	maxSoilPoints           = 10.0
	maxRotationPoints       = 5.0
)

// Level thresholds over the summed score.
const (
	mediumAt  = 25.0
	highAt    = 50.0
	extremeAt = 75.0
)

var classificationPoints = map[domain.Classification]float64{
	domain.ClassificationSafe:          5,
	domain.ClassificationSemiCritical:  15,
	domain.ClassificationCritical:      26,
	domain.ClassificationOverExploited: 35,
	domain.ClassificationUnknown:       15,
}

// Assessor is the built-in heuristic risk model.
type Assessor struct{}

// New returns the default assessor.
func New() *Assessor {
	return &Assessor{}
}

// Assess scores one candidate crop against its farm context. Pure and
// deterministic: equal inputs always produce equal scores.
func (a *Assessor) Assess(_ context.Context, crop domain.CropProfile, in domain.RiskInputs) domain.RiskAssessment {
	var factors []domain.RiskFactor
	add := func(points float64, format string, args ...any) {
		if points <= 0 {
			return
		}
		factors = append(factors, domain.RiskFactor{
			Description: fmt.Sprintf(format, args...),
			Points:      points,
		})
	}

	classPts := classificationPoints[in.BlockClassification]
	add(classPts, "Block groundwater is classified %s", in.BlockClassification)

	waterPts := waterPoints(in.WaterRatio)
	add(waterPts, "Seasonal water covers %.0f%% of %s's requirement", in.WaterRatio*100, crop.Name)

	marketPts := marketPoints(in.MarketTrend, in.MarketVolatility)
	add(marketPts, "Market signal for %s: trend %s, volatility %.0f%%", crop.Name, in.MarketTrend, in.MarketVolatility*100)

	var soilPts float64
	if !in.SoilMatched {
		soilPts = maxSoilPoints
		add(soilPts, "%s is outside the crop's preferred soil types", crop.Name)
	}

	var rotationPts float64
	if in.PreviousCropID != "" && in.PreviousCropID == crop.ID {
		rotationPts = maxRotationPoints
		add(rotationPts, "Repeating %s invites pest carry-over and nutrient mining", crop.Name)
	}

	score := classPts + waterPts + marketPts + soilPts + rotationPts
	if score > 100 {
		score = 100
	}

	level := levelFor(score)
	return domain.RiskAssessment{
		Score:           score,
		Level:           level,
		Factors:         factors,
		Recommendations: mitigations(level, in),
	}
}

// waterPoints grows as the water ratio shrinks; full coverage scores 0, a
// dry profile the full ceiling.
func waterPoints(ratio float64) float64 {
	if ratio >= 1 {
		return 0
	}
	if ratio < 0 {
		ratio = 0
	}
	return maxWaterPoints * (1 - ratio)
}

func marketPoints(trend domain.PriceTrend, volatility float64) float64 {
	var pts float64
	switch trend {
	case domain.TrendDown:
		pts = 12
	case domain.TrendStable:
		pts = 4
	case domain.TrendUp:
		pts = 0
	default:
		pts = 4
	}

	if volatility < 0 {
		volatility = 0
	}
	if volatility > 1 {
		volatility = 1
	}
	pts += 8 * volatility
	if pts > maxMarketPoints {
		pts = maxMarketPoints
	}
	return pts
}

func levelFor(score float64) domain.RiskLevel {
	switch {
	case score < mediumAt:
		return domain.RiskLow
	case score < highAt:
		return domain.RiskMedium
	case score < extremeAt:
		return domain.RiskHigh
	default:
		return domain.RiskExtreme
	}
}

// mitigations returns ordered actions for elevated risk; the ranker quotes
// the top entries in swap explanations.
func mitigations(level domain.RiskLevel, in domain.RiskInputs) []string {
	if level == domain.RiskLow {
		return nil
	}

	var out []string
	if in.WaterRatio < 0.75 {
		out = append(out, "Install drip irrigation to stretch the available water.")
	}
	if in.BlockClassification == domain.ClassificationOverExploited ||
		in.BlockClassification == domain.ClassificationCritical {
		out = append(out, "Build or join a farm-pond/recharge structure before the next monsoon.")
	}
	if in.MarketTrend == domain.TrendDown {
		out = append(out, "Lock a forward price or stagger sales to ride out the downtrend.")
	}
	if in.WaterTableDepthM > 25 {
		out = append(out, "Deep water table raises pumping cost; budget for higher energy spend.")
	}
	if len(out) == 0 {
		out = append(out, "Split the acreage across two crops to spread seasonal risk.")
	}
	return out
}
