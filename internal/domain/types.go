package domain

import "time"

// FarmContext is the per-request input describing the farm being evaluated.
// It is transient and never persisted by the core.
type FarmContext struct {
	Pincode        string  `json:"pincode"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	SoilType       string  `json:"soil_type"`
	LandAcres      float64 `json:"land_acres"`
	PreviousCropID string  `json:"previous_crop_id,omitempty"`
	District       string  `json:"district,omitempty"`
	Block          string  `json:"block,omitempty"`
}

// HasLocation reports whether the context carries enough information to
// resolve a block. Requests without it are rejected at the entry point.
func (f FarmContext) HasLocation() bool {
	return f.Pincode != "" || f.Lat != 0 || f.Lon != 0
}

// BalanceStatus labels the outcome of the groundwater balance estimate.
type BalanceStatus string

const (
	BalanceSurplus  BalanceStatus = "Surplus"
	BalanceAdequate BalanceStatus = "Adequate"
	BalanceDeficit  BalanceStatus = "Deficit"
	BalanceCritical BalanceStatus = "Critical"
)

// GroundwaterAssessment is the fused point-in-time water picture for a farm.
type GroundwaterAssessment struct {
	Block            BlockRecord    `json:"block"`
	BlockDistanceKm  float64        `json:"block_distance_km"`
	Classification   Classification `json:"classification"`
	WaterTableDepthM float64        `json:"water_table_depth_m"`
	DeclinePercent   float64        `json:"decline_percent"`
	AnomalyCM        float64        `json:"satellite_anomaly_cm"`
	AnomalyTrend     float64        `json:"satellite_trend_cm_per_year"`
	RechargeMM       float64        `json:"recharge_mm"`
	StorageMM        float64        `json:"storage_mm"`
	NetBalanceMM     float64        `json:"net_balance_mm"`
	DaysOfSupply     float64        `json:"days_of_supply"`
	Status           BalanceStatus  `json:"status"`
	Message          string         `json:"message"`
}

// StressTier is the severity bucket derived from the water ratio alone.
type StressTier string

const (
	StressNone     StressTier = "None"
	StressMild     StressTier = "Mild"
	StressModerate StressTier = "Moderate"
	StressSevere   StressTier = "Severe"
	StressExtreme  StressTier = "Extreme"
)

// YieldAdjustment is the outcome of running one crop through the stress
// curves. Invariant: 0 <= AdjustedYieldTons <= BaseYieldTons.
type YieldAdjustment struct {
	BaseYieldTons     float64    `json:"base_yield_tons"`
	AdjustedYieldTons float64    `json:"adjusted_yield_tons"`
	ReductionPercent  float64    `json:"reduction_percent"`
	WaterRatio        float64    `json:"water_ratio"`
	Stress            StressTier `json:"stress"`
	Advisories        []string   `json:"advisories,omitempty"`
}

// EconomicScore summarizes one crop's per-acre economics.
type EconomicScore struct {
	Revenue         float64 `json:"revenue"`
	TotalCost       float64 `json:"total_cost"`
	NetProfit       float64 `json:"net_profit"`
	ProfitIndex     float64 `json:"profit_index"`
	EffectivePrice  float64 `json:"effective_price_per_ton"`
	WaterCostSeason float64 `json:"water_cost_season"`
}

// PriceTrend is the market direction reported by the price source.
type PriceTrend string

const (
	TrendUp     PriceTrend = "UP"
	TrendDown   PriceTrend = "DOWN"
	TrendStable PriceTrend = "STABLE"
)

// PriceQuote is one crop's market snapshot.
type PriceQuote struct {
	CurrentPrice float64    `json:"current_price"`
	MSP          float64    `json:"msp"`
	Trend        PriceTrend `json:"trend"`
	LastUpdated  time.Time  `json:"last_updated"`
}

// RiskLevel buckets a 0-100 risk score.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// RiskFactor is one scored contributor to a crop's risk.
type RiskFactor struct {
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// RiskAssessment is the collaborator-produced risk picture for one crop.
type RiskAssessment struct {
	Score           float64      `json:"score"`
	Level           RiskLevel    `json:"level"`
	Factors         []RiskFactor `json:"factors,omitempty"`
	Recommendations []string     `json:"recommendations,omitempty"`
}

// ImpactComparison quantifies what switching from the intent crop to a swap
// candidate would save, per season over the whole farm.
type ImpactComparison struct {
	WaterSavedMM      float64 `json:"water_saved_mm"`
	LitersSaved       float64 `json:"liters_saved"`
	DrinkingWaterDays float64 `json:"drinking_water_person_days"`
	PondEquivalents   float64 `json:"pond_equivalents"`
	ProfitIndexDelta  float64 `json:"profit_index_delta"`
	RiskScoreDelta    float64 `json:"risk_score_delta"`
}

// Recommendation is the fully scored output for one candidate crop.
type Recommendation struct {
	Crop        CropProfile       `json:"crop"`
	Yield       YieldAdjustment   `json:"yield"`
	Economics   EconomicScore     `json:"economics"`
	Risk        RiskAssessment    `json:"risk"`
	PriceTrend  PriceTrend        `json:"price_trend"`
	IsSmartSwap bool              `json:"is_smart_swap"`
	Reasons     []string          `json:"reasons,omitempty"`
	Impact      *ImpactComparison `json:"impact,omitempty"`
}
