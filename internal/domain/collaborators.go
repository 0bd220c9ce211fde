package domain

import "context"

// Placement is a reverse-geocoding result: the administrative location of a
// coordinate pair.
type Placement struct {
	Pincode    string  `json:"pincode"`
	District   string  `json:"district"`
	Block      string  `json:"block"`
	State      string  `json:"state"`
	Confidence float64 `json:"confidence"` // 0.0–1.0 provider confidence score
}

// ReverseGeocoder resolves coordinates to administrative placements.
// Implementations degrade to the spatial block index when unavailable.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Placement, error)
}

// MarketPriceSource supplies current market prices and minimum support
// prices. On failure the engine falls back to catalog base prices with a
// STABLE trend.
type MarketPriceSource interface {
	Prices(ctx context.Context, district string, cropIDs []string) (map[string]PriceQuote, error)
	MSP(cropID string) (float64, bool)
}

// ClimateSnapshot carries the rainfall and soil-moisture inputs the balance
// estimator needs from a weather source.
type ClimateSnapshot struct {
	SixMonthRainfallMM float64 `json:"six_month_rainfall_mm"`
	SoilMoistureIndex  float64 `json:"soil_moisture_index"` // 0–1 deep-layer index
}

// ClimateSource provides recent precipitation and soil moisture for a
// coordinate. Implementations return calibrated defaults on failure.
type ClimateSource interface {
	Climate(ctx context.Context, lat, lon float64) (ClimateSnapshot, error)
}

// WaterCost is the seasonal irrigation cost breakdown for one crop on one
// farm, in INR.
type WaterCost struct {
	TotalSeason          float64 `json:"total_season"`
	PerMM                float64 `json:"per_mm"`
	Electricity          float64 `json:"electricity"`
	BorewellMaintenance  float64 `json:"borewell_maintenance"`
	PumpType             string  `json:"pump_type"`
	LiftedVolumeM3       float64 `json:"lifted_volume_m3"`
	EnergySubsidyApplied bool    `json:"energy_subsidy_applied"`
}

// WaterCostModel prices the water a crop will consume. Treated as a pure
// function of its inputs.
type WaterCostModel interface {
	Cost(waterMM, acres float64, pumpType string, depthM float64) WaterCost
	ComparePumpTypes(waterMM, depthM, acres float64) map[string]WaterCost
}

// RiskInputs is everything the risk assessor sees about one candidate.
type RiskInputs struct {
	BlockClassification Classification
	WaterRatio          float64
	SoilMatched         bool
	MarketTrend         PriceTrend
	MarketVolatility    float64 // 0–1, share of recent price swing
	WaterTableDepthM    float64
	PreviousCropID      string
}

// RiskAssessor scores a candidate crop 0-100 given its context.
type RiskAssessor interface {
	Assess(ctx context.Context, crop CropProfile, in RiskInputs) RiskAssessment
}
