package domain

import "math"

// stressCurves maps each crop category to yield multipliers at availability
// deciles 30%, 40%, ..., 100%. All curves are normalized to 1.0 at full
// availability and fall monotonically as water drops; cash crops fall
// fastest. Calibration defaults, recalibrate by editing the table.
var stressCurves = map[CropCategory][8]float64{
	CategoryCereal:       {0.30, 0.45, 0.60, 0.72, 0.82, 0.90, 0.96, 1.00},
	CategoryCashCrop:     {0.10, 0.25, 0.40, 0.55, 0.70, 0.82, 0.92, 1.00},
	CategoryPulse:        {0.40, 0.55, 0.68, 0.78, 0.86, 0.92, 0.97, 1.00},
	CategoryVegetable:    {0.25, 0.40, 0.55, 0.68, 0.80, 0.89, 0.95, 1.00},
	CategoryHorticulture: {0.35, 0.48, 0.62, 0.74, 0.84, 0.91, 0.96, 1.00},
}

// failureMultiplier applies below 30% availability regardless of category:
// near-total crop failure.
const failureMultiplier = 0.05

// maxWaterRatio caps the availability ratio before curve lookup. Extra water
// beyond 120% of requirement does not raise yield.
const maxWaterRatio = 1.2

var stressAdvisories = map[StressTier][]string{
	StressNone: nil,
	StressMild: {
		"Minor yield impact expected; schedule irrigation at critical growth stages.",
	},
	StressModerate: {
		"Noticeable yield loss likely; adopt mulching to cut evaporation losses.",
		"Consider drip irrigation to stretch the available water.",
	},
	StressSevere: {
		"Severe water stress: expect heavy yield loss without supplemental irrigation.",
		"Switch to drip irrigation and drought-tolerant varieties if sowing is not done.",
	},
	StressExtreme: {
		"Water availability is far below this crop's requirement; crop failure is likely.",
		"Strongly consider a lower-water crop for this season.",
	},
}

// AdjustYield maps a crop's water situation to an expected yield via the
// category stress curve. The ratio is clamped to [0, 1.2]; the rounded
// availability percent is capped at 100 before lookup, and multipliers
// between deciles are linearly interpolated. A zero water requirement
// short-circuits to an unstressed result rather than dividing by zero.
func AdjustYield(baseYieldTons, waterRequiredMM, waterAvailableMM float64, category CropCategory) YieldAdjustment {
	if waterRequiredMM <= 0 {
		return YieldAdjustment{
			BaseYieldTons:     baseYieldTons,
			AdjustedYieldTons: baseYieldTons,
			WaterRatio:        maxWaterRatio,
			Stress:            StressNone,
		}
	}

	ratio := waterAvailableMM / waterRequiredMM
	if ratio < 0 {
		ratio = 0
	}
	if ratio > maxWaterRatio {
		ratio = maxWaterRatio
	}

	percent := math.Round(ratio * 100)
	if percent > 100 {
		percent = 100
	}

	multiplier := curveMultiplier(category, percent)
	adjusted := baseYieldTons * multiplier
	reduction := 0.0
	if baseYieldTons > 0 {
		reduction = (1 - multiplier) * 100
	}

	tier := stressTier(ratio)
	return YieldAdjustment{
		BaseYieldTons:     baseYieldTons,
		AdjustedYieldTons: adjusted,
		ReductionPercent:  reduction,
		WaterRatio:        ratio,
		Stress:            tier,
		Advisories:        stressAdvisories[tier],
	}
}

// curveMultiplier interpolates the category curve between the two nearest
// multiples of 10. Below 30% every category collapses to failureMultiplier.
func curveMultiplier(category CropCategory, percent float64) float64 {
	if percent < 30 {
		return failureMultiplier
	}
	curve, ok := stressCurves[category]
	if !ok {
		curve = stressCurves[CategoryCereal]
	}

	if percent >= 100 {
		return curve[7]
	}

	lowDecile := math.Floor(percent/10) * 10
	lowIdx := int(lowDecile/10) - 3 // 30% -> index 0
	low := curve[lowIdx]
	high := curve[lowIdx+1]
	frac := (percent - lowDecile) / 10
	return low + (high-low)*frac
}

// stressTier buckets the raw ratio, not the interpolated multiplier, so the
// label stays comparable across categories.
func stressTier(ratio float64) StressTier {
	switch {
	case ratio >= 0.9:
		return StressNone
	case ratio >= 0.75:
		return StressMild
	case ratio >= 0.6:
		return StressModerate
	case ratio >= 0.4:
		return StressSevere
	default:
		return StressExtreme
	}
}
