// Package watercost prices seasonal irrigation as a pure function of water
// volume, lift depth, and pump type.
package watercost

import "github.com/farmwise/crop-advisor/internal/domain"

// Pump types accepted by the model.
const (
	PumpElectric = "electric"
	PumpDiesel   = "diesel"
	PumpSolar    = "solar"
)

// INR per cubic metre lifted per metre of depth, by energy source. Electric
// assumes the subsidized agricultural tariff; solar only amortized upkeep.
var liftCostPerM3PerM = map[string]float64{
	PumpElectric: 0.08,
	PumpDiesel:   0.25,
	PumpSolar:    0.02,
}

const (
	m3PerMMAcre = 4.04686 // 1 mm over 1 acre in cubic metres

	// Seasonal borewell upkeep: a flat base plus a deep-bore surcharge for
	// every metre beyond the threshold.
	maintenanceBase       = 2000.0
	deepBoreThresholdM    = 20.0
	deepBoreSurchargePerM = 50.0
	minOperatingDepthM    = 5.0 // even surface-adjacent water is lifted a few metres
)

// Model implements domain.WaterCostModel.
type Model struct{}

// New returns the cost model.
func New() *Model {
	return &Model{}
}

// Cost prices lifting waterMM over acres from depthM with the given pump
// type. Unknown pump types price as electric. Zero or negative water prices
// to maintenance only.
func (m *Model) Cost(waterMM, acres float64, pumpType string, depthM float64) domain.WaterCost {
	if pumpType == "" {
		pumpType = PumpElectric
	}
	rate, ok := liftCostPerM3PerM[pumpType]
	if !ok {
		pumpType = PumpElectric
		rate = liftCostPerM3PerM[PumpElectric]
	}

	if waterMM < 0 {
		waterMM = 0
	}
	if acres <= 0 {
		acres = 1
	}
	if depthM < minOperatingDepthM {
		depthM = minOperatingDepthM
	}

	volumeM3 := waterMM * m3PerMMAcre * acres
	electricity := volumeM3 * depthM * rate

	maintenance := maintenanceBase
	if depthM > deepBoreThresholdM {
		maintenance += (depthM - deepBoreThresholdM) * deepBoreSurchargePerM
	}

	total := electricity + maintenance
	perMM := 0.0
	if waterMM > 0 {
		perMM = total / waterMM
	}

	return domain.WaterCost{
		TotalSeason:          total,
		PerMM:                perMM,
		Electricity:          electricity,
		BorewellMaintenance:  maintenance,
		PumpType:             pumpType,
		LiftedVolumeM3:       volumeM3,
		EnergySubsidyApplied: pumpType == PumpElectric,
	}
}

// ComparePumpTypes prices the same seasonal lift across every pump type.
func (m *Model) ComparePumpTypes(waterMM, depthM, acres float64) map[string]domain.WaterCost {
	out := make(map[string]domain.WaterCost, len(liftCostPerM3PerM))
	for pump := range liftCostPerM3PerM {
		out[pump] = m.Cost(waterMM, acres, pump, depthM)
	}
	return out
}
