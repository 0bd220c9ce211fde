package domain

import "math"

// ScoreEconomics computes per-acre revenue, cost, and the duration- and
// water-normalized profit index for one crop.
//
// Effective price is the higher of the market quote and the MSP when an MSP
// exists. Zero water requirement or zero duration short-circuits the profit
// index to 0 instead of propagating Inf/NaN.
func ScoreEconomics(crop CropProfile, adjustedYieldTons float64, quote PriceQuote, water WaterCost) EconomicScore {
	price := quote.CurrentPrice
	if price <= 0 {
		price = crop.BasePricePerTon
	}
	if quote.MSP > price {
		price = quote.MSP
	}

	revenue := adjustedYieldTons * price
	totalCost := crop.BaseInputCost + water.TotalSeason
	netProfit := revenue - totalCost

	profitIndex := 0.0
	if crop.WaterRequirementMM > 0 && crop.DurationDays > 0 {
		profitIndex = math.Round(netProfit / crop.WaterRequirementMM * 365 / float64(crop.DurationDays))
	}

	return EconomicScore{
		Revenue:         revenue,
		TotalCost:       totalCost,
		NetProfit:       netProfit,
		ProfitIndex:     profitIndex,
		EffectivePrice:  price,
		WaterCostSeason: water.TotalSeason,
	}
}
