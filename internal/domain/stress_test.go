package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustYield_FullWaterKeepsBaseYield(t *testing.T) {
	adj := AdjustYield(2.5, 1200, 1200, CategoryCereal)

	assert.InDelta(t, 2.5, adj.AdjustedYieldTons, 1e-9)
	assert.Zero(t, adj.ReductionPercent)
	assert.Equal(t, StressNone, adj.Stress)
	assert.Empty(t, adj.Advisories)
}

func TestAdjustYield_SurplusCappedAtFullYield(t *testing.T) {
	adj := AdjustYield(1.2, 350, 700, CategoryCereal)

	assert.InDelta(t, maxWaterRatio, adj.WaterRatio, 1e-9)
	assert.InDelta(t, 1.2, adj.AdjustedYieldTons, 1e-9)
}

func TestAdjustYield_FailureFloorBelowThirtyPercent(t *testing.T) {
	for category := range stressCurves {
		adj := AdjustYield(10, 1000, 250, category)
		assert.InDelta(t, 10*failureMultiplier, adj.AdjustedYieldTons, 1e-9, "category %s", category)
		assert.Equal(t, StressExtreme, adj.Stress)
	}
}

func TestAdjustYield_InterpolatesBetweenDeciles(t *testing.T) {
	// 35% availability for a cereal sits halfway between 0.30 and 0.45.
	adj := AdjustYield(1.0, 1000, 350, CategoryCereal)
	assert.InDelta(t, 0.375, adj.AdjustedYieldTons, 1e-9)
}

func TestAdjustYield_CashCropsFallFastest(t *testing.T) {
	availability := []float64{300, 400, 500, 600, 700, 800, 900}
	for _, avail := range availability {
		cereal := AdjustYield(1.0, 1000, avail, CategoryCereal)
		cash := AdjustYield(1.0, 1000, avail, CategoryCashCrop)
		assert.LessOrEqual(t, cash.AdjustedYieldTons, cereal.AdjustedYieldTons,
			"availability %.0f", avail)
	}
}

func TestAdjustYield_MonotonicInAvailability(t *testing.T) {
	for category := range stressCurves {
		prev := -1.0
		for avail := 0.0; avail <= 1300; avail += 50 {
			adj := AdjustYield(1.0, 1000, avail, category)
			require.GreaterOrEqual(t, adj.AdjustedYieldTons, prev,
				"category %s availability %.0f", category, avail)
			prev = adj.AdjustedYieldTons
		}
	}
}

func TestAdjustYield_ZeroRequirementIsUnstressed(t *testing.T) {
	adj := AdjustYield(3.0, 0, 0, CategoryVegetable)

	assert.InDelta(t, 3.0, adj.AdjustedYieldTons, 1e-9)
	assert.Equal(t, StressNone, adj.Stress)
}

func TestAdjustYield_NegativeAvailabilityClampsToZero(t *testing.T) {
	adj := AdjustYield(3.0, 1000, -50, CategoryPulse)

	assert.Zero(t, adj.WaterRatio)
	assert.Equal(t, StressExtreme, adj.Stress)
}

func TestAdjustYield_UnknownCategoryUsesCerealCurve(t *testing.T) {
	known := AdjustYield(1.0, 1000, 600, CategoryCereal)
	unknown := AdjustYield(1.0, 1000, 600, CropCategory("Mystery"))
	assert.InDelta(t, known.AdjustedYieldTons, unknown.AdjustedYieldTons, 1e-9)
}

func TestStressTierThresholds(t *testing.T) {
	cases := []struct {
		ratio float64
		want  StressTier
	}{
		{1.1, StressNone},
		{0.9, StressNone},
		{0.89, StressMild},
		{0.75, StressMild},
		{0.74, StressModerate},
		{0.6, StressModerate},
		{0.59, StressSevere},
		{0.4, StressSevere},
		{0.39, StressExtreme},
		{0.0, StressExtreme},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stressTier(tc.ratio), "ratio %.2f", tc.ratio)
	}
}

func TestAdjustYield_AdvisoriesMatchTier(t *testing.T) {
	adj := AdjustYield(1.0, 1000, 650, CategoryCereal)
	require.Equal(t, StressModerate, adj.Stress)
	assert.Len(t, adj.Advisories, 2)
	assert.Contains(t, adj.Advisories[0], "mulching")
}
