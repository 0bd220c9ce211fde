package domain

import "strings"

// AssumedSeasonalRainfallMM is the fixed rainfall added to the soil bucket
// for the recommendation pipeline's quick water budget. The balance
// estimator uses observed rainfall instead; this constant exists so the
// per-crop scoring loop never blocks on a weather call.
const AssumedSeasonalRainfallMM = 500.0

// awcPerMeter is the available-water-capacity bucket in mm per metre of
// root-zone depth, by soil texture.
var awcPerMeter = map[string]float64{
	"sandy": 100,
	"loamy": 180,
	"clay":  200,
	"black": 200,
}

const awcDefaultPerMeter = 140

// AvailableWaterCapacityMM converts soil texture into a root-zone water
// bucket in mm, scaled by depth. A depthCm of 0 means the standard 100 cm
// profile. Unknown textures get the medium-soil default.
func AvailableWaterCapacityMM(soilType string, depthCm float64) float64 {
	if depthCm <= 0 {
		depthCm = 100
	}
	perMeter, ok := awcPerMeter[strings.ToLower(strings.TrimSpace(soilType))]
	if !ok {
		perMeter = awcDefaultPerMeter
	}
	return perMeter * depthCm / 100
}

// SeasonalAvailableWaterMM is the simple per-acre water budget the
// recommendation engine feeds into the stress curves: soil bucket plus the
// assumed seasonal rainfall.
func SeasonalAvailableWaterMM(soilType string) float64 {
	return AvailableWaterCapacityMM(soilType, 100) + AssumedSeasonalRainfallMM
}

// RotationMultiplier applies the crop-rotation bonus exactly once, upstream
// of yield adjustment. Repeating the identical crop costs 15%; a prior
// legume boosts a non-legume candidate by 15%. The repeat check wins: a
// legume following itself is still penalized.
func RotationMultiplier(candidate CropProfile, previous *CropProfile) float64 {
	if previous == nil {
		return 1.0
	}
	if previous.ID == candidate.ID {
		return 0.85
	}
	if previous.Legume && !candidate.Legume {
		return 1.15
	}
	return 1.0
}
