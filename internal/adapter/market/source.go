// Package market supplies crop prices. The static source answers from a
// snapshot of district mandi quotes plus the published MSP table, falling
// back to catalog base prices for crops with no quote, matching the
// degradation the engine applies when a live price API fails.
package market

import (
	"context"
	"strings"
	"time"

	"github.com/farmwise/crop-advisor/internal/domain"
)

// mspPerTon is the minimum support price table in INR/ton. Only crops under
// the MSP regime appear; horticulture and vegetables trade on market price
// alone.
var mspPerTon = map[string]float64{
	"rice":      23000,
	"wheat":     24250,
	"jowar":     33710,
	"bajra":     26250,
	"gram":      54400,
	"soybean":   48920,
	"cotton":    71210,
	"sugarcane": 3400, // FRP, per ton of cane
}

// quote is one static mandi snapshot entry.
type quote struct {
	price float64
	trend domain.PriceTrend
}

// defaultQuotes is the statewide mandi snapshot. Quotes are not
// district-specific; the district argument exists for interface
// compatibility with live price feeds.
var defaultQuotes = map[string]quote{
	"sugarcane":   {price: 3300, trend: domain.TrendStable},
	"rice":        {price: 21500, trend: domain.TrendStable},
	"wheat":       {price: 24000, trend: domain.TrendUp},
	"jowar":       {price: 33000, trend: domain.TrendUp},
	"bajra":       {price: 26000, trend: domain.TrendStable},
	"gram":        {price: 56000, trend: domain.TrendUp},
	"soybean":     {price: 45000, trend: domain.TrendDown},
	"cotton":      {price: 69000, trend: domain.TrendStable},
	"onion":       {price: 14000, trend: domain.TrendUp},
	"tomato":      {price: 7500, trend: domain.TrendDown},
	"pomegranate": {price: 62000, trend: domain.TrendUp},
}

// StaticSource implements domain.MarketPriceSource from in-memory tables.
type StaticSource struct {
	catalog map[string]domain.CropProfile
	now     func() time.Time
}

// NewStaticSource builds a source that falls back to the given catalog's
// base prices for unquoted crops.
func NewStaticSource(catalog []domain.CropProfile) *StaticSource {
	byID := make(map[string]domain.CropProfile, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	return &StaticSource{catalog: byID, now: time.Now}
}

// Prices returns a quote for every requested crop id. Unknown crops get
// their catalog base price with a STABLE trend; crops absent from the
// catalog too are skipped.
func (s *StaticSource) Prices(_ context.Context, _ string, cropIDs []string) (map[string]domain.PriceQuote, error) {
	out := make(map[string]domain.PriceQuote, len(cropIDs))
	now := s.now()
	for _, id := range cropIDs {
		id = strings.ToLower(id)
		q, quoted := defaultQuotes[id]
		if !quoted {
			crop, known := s.catalog[id]
			if !known {
				continue
			}
			q = quote{price: crop.BasePricePerTon, trend: domain.TrendStable}
		}
		msp := mspPerTon[id]
		out[id] = domain.PriceQuote{
			CurrentPrice: q.price,
			MSP:          msp,
			Trend:        q.trend,
			LastUpdated:  now,
		}
	}
	return out, nil
}

// MSP returns the minimum support price for a crop, if one is published.
func (s *StaticSource) MSP(cropID string) (float64, bool) {
	msp, ok := mspPerTon[strings.ToLower(cropID)]
	return msp, ok
}
