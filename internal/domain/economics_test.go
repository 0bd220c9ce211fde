package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEconomics_Profitable(t *testing.T) {
	jowar, ok := FindCrop(CropCatalog(), "jowar")
	require.True(t, ok)

	score := ScoreEconomics(jowar, 1.2, PriceQuote{CurrentPrice: 32000}, WaterCost{TotalSeason: 4000})

	assert.InDelta(t, 38400, score.Revenue, 1e-9)
	assert.InDelta(t, 16000, score.TotalCost, 1e-9)
	assert.InDelta(t, 22400, score.NetProfit, 1e-9)
	// 22400 / 350mm * 365/110 days, rounded.
	assert.InDelta(t, 212, score.ProfitIndex, 1e-9)
}

func TestScoreEconomics_LossYieldsNegativeIndex(t *testing.T) {
	sugarcane, ok := FindCrop(CropCatalog(), "sugarcane")
	require.True(t, ok)

	// Severe stress knocks 40t down to a few tons; the season is a loss.
	score := ScoreEconomics(sugarcane, 4.6, PriceQuote{CurrentPrice: 3400}, WaterCost{TotalSeason: 12000})

	assert.Negative(t, score.NetProfit)
	assert.Negative(t, score.ProfitIndex)
}

func TestScoreEconomics_MSPFloorsThePrice(t *testing.T) {
	gram, ok := FindCrop(CropCatalog(), "gram")
	require.True(t, ok)

	score := ScoreEconomics(gram, 1.0, PriceQuote{CurrentPrice: 40000, MSP: 54400}, WaterCost{})
	assert.InDelta(t, 54400, score.EffectivePrice, 1e-9)

	// A quote above MSP wins.
	score = ScoreEconomics(gram, 1.0, PriceQuote{CurrentPrice: 60000, MSP: 54400}, WaterCost{})
	assert.InDelta(t, 60000, score.EffectivePrice, 1e-9)
}

func TestScoreEconomics_MissingQuoteFallsBackToBasePrice(t *testing.T) {
	wheat, ok := FindCrop(CropCatalog(), "wheat")
	require.True(t, ok)

	score := ScoreEconomics(wheat, 1.8, PriceQuote{}, WaterCost{})
	assert.InDelta(t, wheat.BasePricePerTon, score.EffectivePrice, 1e-9)
}

func TestScoreEconomics_ZeroWaterOrDurationGuards(t *testing.T) {
	crop := CropProfile{ID: "x", BaseInputCost: 100, WaterRequirementMM: 0, DurationDays: 0}

	score := ScoreEconomics(crop, 1.0, PriceQuote{CurrentPrice: 1000}, WaterCost{})
	assert.Zero(t, score.ProfitIndex)
	assert.InDelta(t, 900, score.NetProfit, 1e-9)
}
