package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmwise/crop-advisor/internal/domain"
)

func TestPrices_QuotedCrops(t *testing.T) {
	s := NewStaticSource(domain.CropCatalog())
	fixed := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	quotes, err := s.Prices(context.Background(), "Pune", []string{"jowar", "soybean"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	jowar := quotes["jowar"]
	assert.InDelta(t, 33000, jowar.CurrentPrice, 1e-9)
	assert.InDelta(t, 33710, jowar.MSP, 1e-9)
	assert.Equal(t, domain.TrendUp, jowar.Trend)
	assert.Equal(t, fixed, jowar.LastUpdated)

	assert.Equal(t, domain.TrendDown, quotes["soybean"].Trend)
}

func TestPrices_UnquotedCropFallsBackToCatalog(t *testing.T) {
	catalog := []domain.CropProfile{
		{ID: "turmeric", Name: "Turmeric", BasePricePerTon: 90000},
	}
	s := NewStaticSource(catalog)

	quotes, err := s.Prices(context.Background(), "Sangli", []string{"turmeric"})
	require.NoError(t, err)

	q, ok := quotes["turmeric"]
	require.True(t, ok)
	assert.InDelta(t, 90000, q.CurrentPrice, 1e-9)
	assert.Equal(t, domain.TrendStable, q.Trend)
	assert.Zero(t, q.MSP)
}

func TestPrices_UnknownCropSkipped(t *testing.T) {
	s := NewStaticSource(domain.CropCatalog())

	quotes, err := s.Prices(context.Background(), "Pune", []string{"quinoa", "GRAM"})
	require.NoError(t, err)

	_, ok := quotes["quinoa"]
	assert.False(t, ok)
	// Ids are matched case-insensitively.
	_, ok = quotes["gram"]
	assert.True(t, ok)
}

func TestMSP(t *testing.T) {
	s := NewStaticSource(domain.CropCatalog())

	msp, ok := s.MSP("Gram")
	require.True(t, ok)
	assert.InDelta(t, 54400, msp, 1e-9)

	_, ok = s.MSP("tomato")
	assert.False(t, ok)
}

func TestEveryCatalogCropGetsAQuote(t *testing.T) {
	catalog := domain.CropCatalog()
	s := NewStaticSource(catalog)

	ids := make([]string, 0, len(catalog))
	for _, c := range catalog {
		ids = append(ids, c.ID)
	}

	quotes, err := s.Prices(context.Background(), "Pune", ids)
	require.NoError(t, err)
	assert.Len(t, quotes, len(catalog))
	for id, q := range quotes {
		assert.Positive(t, q.CurrentPrice, id)
	}
}
